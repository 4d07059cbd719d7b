package workflow_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/redisflow/internal/config"
	"github.com/imamik/redisflow/internal/platform/azure"
	"github.com/imamik/redisflow/internal/provisioning"
	"github.com/imamik/redisflow/internal/provisioning/workflow"
	testutil "github.com/imamik/redisflow/internal/testing"
)

var _ = Describe("Provisioning workflow", func() {
	var (
		cfg      *config.Config
		fixture  *testutil.ProviderFixture
		mock     *azure.MockClient
		observer *provisioning.RecordingObserver
		outcome  *workflow.Outcome
		runErr   error
	)

	BeforeEach(func() {
		cfg = testutil.NewConfigBuilder().Build()
		fixture = testutil.NewProviderFixture()
		mock = fixture.Mock()
		observer = provisioning.NewRecordingObserver()
	})

	run := func() {
		ctx := provisioning.NewContext(context.Background(), cfg, mock).WithObserver(observer)
		outcome, runErr = workflow.NewRunner().Run(ctx)
	}

	targets := func(op string) []string {
		return testutil.Targets(mock, op)
	}

	Context("with one basic and two premium caches", func() {
		BeforeEach(run)

		It("succeeds and tears the resource group down once", func() {
			Expect(runErr).NotTo(HaveOccurred())
			Expect(outcome.CleanupRan).To(BeTrue())
			Expect(targets(azure.OpDeleteResourceGroup)).To(Equal([]string{outcome.ResourceGroupID}))
		})

		It("maintains exactly the premium caches", func() {
			premium := []string{outcome.Caches[1].Name, outcome.Caches[2].Name}
			Expect(outcome.PremiumProcessed).To(Equal(premium))
			Expect(targets(azure.OpReboot)).To(Equal(premium))
			Expect(targets(azure.OpUpdateCache)).To(Equal(premium))
		})

		It("deletes the basic cache only in the final step", func() {
			first := outcome.Caches[0].Name
			Expect(targets(azure.OpDeleteCache)).To(HaveLen(3))
			Expect(targets(azure.OpDeleteCache)[2]).To(Equal(first))
			Expect(targets(azure.OpRegenerateKey)).To(ConsistOf(first))
		})

		It("never logs access keys", func() {
			for _, msg := range observer.Messages() {
				Expect(msg).NotTo(ContainSubstring("primary-key"))
				Expect(msg).NotTo(ContainSubstring("regenerated-key"))
			}
		})
	})

	Context("when the resource group cannot be created", func() {
		BeforeEach(func() {
			fixture.FailResourceGroup(errors.New("forbidden"))
			run()
		})

		It("reports the error and skips cleanup without provider calls", func() {
			Expect(runErr).To(MatchError(ContainSubstring("forbidden")))
			Expect(outcome.CleanupSkipped).To(BeTrue())
			Expect(outcome.CleanupErr).NotTo(HaveOccurred())
			Expect(mock.Calls()).To(HaveLen(1))
		})
	})

	Context("when the second cache fails to create", func() {
		BeforeEach(func() {
			fixture.FailCacheCreate("rc2", errors.New("sku unavailable"))
			run()
		})

		It("stops before any follow-up operation and still cleans up once", func() {
			Expect(runErr).To(MatchError(ContainSubstring("sku unavailable")))
			Expect(mock.CallCount(azure.OpGetKeys)).To(BeZero())
			Expect(mock.CallCount(azure.OpListCaches)).To(BeZero())
			Expect(mock.CallCount(azure.OpDeleteResourceGroup)).To(Equal(1))
		})
	})

	Context("when teardown fails", func() {
		BeforeEach(func() {
			fixture.FailTeardown(errors.New("delete timed out"))
			run()
		})

		It("keeps the run result and records the cleanup error", func() {
			Expect(runErr).NotTo(HaveOccurred())
			Expect(outcome.CleanupErr).To(MatchError(ContainSubstring("delete timed out")))
			Expect(observer.EventsOf(provisioning.EventPhaseFailed)).NotTo(BeEmpty())
		})
	})

	Context("in detach mode", func() {
		BeforeEach(func() {
			cfg = testutil.NewConfigBuilder().WithMutationMode(config.MutationDetach).Build()
			run()
		})

		It("drains every detached mutation before cleanup", func() {
			Expect(runErr).NotTo(HaveOccurred())
			Expect(outcome.DetachedErr).NotTo(HaveOccurred())
			Expect(mock.CallCount(azure.OpDeleteCache)).To(Equal(3))
			Expect(mock.CallCount(azure.OpReboot)).To(Equal(2))

			calls := mock.Calls()
			Expect(calls[len(calls)-1].Op).To(Equal(azure.OpDeleteResourceGroup))
		})
	})

	Context("when a detached premium delete fails", func() {
		BeforeEach(func() {
			cfg = testutil.NewConfigBuilder().WithMutationMode(config.MutationDetach).Build()
			fixture.FailCacheDelete("rc3", errors.New("cache busy"))
			run()
		})

		It("reports the failure separately and still tears down", func() {
			Expect(runErr).NotTo(HaveOccurred())
			Expect(outcome.DetachedErr).To(MatchError(ContainSubstring("cache busy")))
			Expect(mock.CallCount(azure.OpDeleteResourceGroup)).To(Equal(1))
		})
	})

	Context("with only basic caches", func() {
		BeforeEach(func() {
			cfg = testutil.NewConfigBuilder().
				WithCaches().
				WithBasicCache("solo", 1).
				WithBasicCache("pair", 0).
				Build()
			run()
		})

		It("skips premium maintenance and deletes only the first cache", func() {
			Expect(runErr).NotTo(HaveOccurred())
			Expect(mock.CallCount(azure.OpReboot)).To(BeZero())
			Expect(mock.CallCount(azure.OpCreateOrUpdateSchedule)).To(BeZero())
			Expect(targets(azure.OpDeleteCache)).To(Equal([]string{outcome.Caches[0].Name}))
		})
	})
})

package workflow_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// TestWorkflowScenarios is the entry point for the Ginkgo scenarios.
func TestWorkflowScenarios(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Workflow Scenario Suite")
}

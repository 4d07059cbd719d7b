// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for workflow configurations
//   - ProviderFixture: MockClient pre-configured for common failure scenarios
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithLocation("westeurope").
//	    WithMutationMode(config.MutationDetach).
//	    Build()
//
//	mock := testing.NewProviderFixture().
//	    FailCacheCreate("rc2", errors.New("sku unavailable")).
//	    Mock()
package testing

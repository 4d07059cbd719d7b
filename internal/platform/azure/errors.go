package azure

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// ARM error codes that mean the target does not exist.
var notFoundCodes = []string{
	"ResourceNotFound",
	"ResourceGroupNotFound",
	"NotFound",
}

// responseError extracts the ARM response error from err, if any.
func responseError(err error) (*azcore.ResponseError, bool) {
	if err == nil {
		return nil, false
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr, true
	}
	return nil, false
}

// IsNotFound checks if an error indicates the resource does not exist.
func IsNotFound(err error) bool {
	respErr, ok := responseError(err)
	if !ok {
		return false
	}
	if respErr.StatusCode == http.StatusNotFound {
		return true
	}
	for _, code := range notFoundCodes {
		if respErr.ErrorCode == code {
			return true
		}
	}
	return false
}

// IsConflict checks if an error indicates a conflicting operation is in progress.
func IsConflict(err error) bool {
	respErr, ok := responseError(err)
	return ok && respErr.StatusCode == http.StatusConflict
}

// IsThrottled checks if an error indicates ARM request throttling.
func IsThrottled(err error) bool {
	respErr, ok := responseError(err)
	return ok && respErr.StatusCode == http.StatusTooManyRequests
}

// CleanupError represents accumulated errors from cleanup operations.
type CleanupError struct {
	Errors []error
}

func (e *CleanupError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("cleanup encountered %d errors: %v", len(e.Errors), e.Errors)
}

func (e *CleanupError) Unwrap() error {
	if len(e.Errors) == 1 {
		return e.Errors[0]
	}
	return errors.Join(e.Errors...)
}

// Add records err if it is non-nil.
func (e *CleanupError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors reports whether any error was recorded.
func (e *CleanupError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ErrOrNil returns e if it holds errors and nil otherwise.
func (e *CleanupError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

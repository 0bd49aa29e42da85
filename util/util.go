// Package util carries the small assertion helpers the allocator uses to
// report programming errors the way the original C library's assert() did:
// loudly, and only for conditions that mean the caller already broke the
// contract (an invalid handle reaching Create or Destroy, an invariant a
// test can violate but a correct caller cannot).
package util

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// Assertf panics with a formatted error if cond is false. Reserved for
// programming errors: conditions a correct caller can never trigger.
func Assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Errorf("assertion failed: "+format, args...))
	}
}

// AssertNoError panics if err is non-nil.
func AssertNoError(err error) {
	Assertf(err == nil, "error: %v", err)
}

// RequireErrorWith fails the test unless err is non-nil and its message
// contains s.
func RequireErrorWith(t *testing.T, err error, s string) {
	require.Error(t, err)
	require.Contains(t, err.Error(), s)
}

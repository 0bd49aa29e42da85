package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssertfPanicsOnFalse(t *testing.T) {
	require.Panics(t, func() { Assertf(false, "boom %d", 1) })
	require.NotPanics(t, func() { Assertf(true, "fine") })
}

func TestAssertNoError(t *testing.T) {
	require.NotPanics(t, func() { AssertNoError(nil) })
}

package rerrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExitCodeMapping(t *testing.T) {
	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, 2, ExitCode(fmt.Errorf("wrap: %w", ErrConfig)))
	require.Equal(t, 3, ExitCode(fmt.Errorf("wrap: %w", ErrInputOpen)))
	require.Equal(t, 4, ExitCode(fmt.Errorf("wrap: %w", ErrInputFormat)))
	require.Equal(t, 5, ExitCode(fmt.Errorf("wrap: %w", ErrOutputWrite)))
	require.Equal(t, 1, ExitCode(fmt.Errorf("boom")))
}

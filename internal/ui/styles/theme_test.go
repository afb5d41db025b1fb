package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestApplyTheme_Explicit(t *testing.T) {
	require.NoError(t, ApplyTheme("dark"))
	require.True(t, lipgloss.HasDarkBackground())

	require.NoError(t, ApplyTheme("light"))
	require.False(t, lipgloss.HasDarkBackground())
}

func TestApplyTheme_AutoUsesDetection(t *testing.T) {
	orig := detectDark
	defer func() { detectDark = orig }()

	detectDark = func() bool { return true }
	require.NoError(t, ApplyTheme("auto"))
	require.True(t, lipgloss.HasDarkBackground())

	detectDark = func() bool { return false }
	require.NoError(t, ApplyTheme(""))
	require.False(t, lipgloss.HasDarkBackground())
}

func TestApplyTheme_Unknown(t *testing.T) {
	err := ApplyTheme("sepia")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown theme")
}

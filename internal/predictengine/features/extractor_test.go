package features

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract_German(t *testing.T) {
	f := Extract("Jürgen Müller")
	require.True(t, f.HasGermanChar)
	require.True(t, f.HasNFKDNormalized)
}

func TestExtract_Nickname(t *testing.T) {
	f := Extract("William Gates")
	require.True(t, f.HasNickname)
}

func TestExtract_Plain(t *testing.T) {
	f := Extract("Alice Carter")
	require.False(t, f.HasGermanChar)
	require.False(t, f.HasNFKDNormalized)
	require.False(t, f.HasNickname)
}

func TestExtract_Empty(t *testing.T) {
	require.Equal(t, Flags{}, Extract(""))
}

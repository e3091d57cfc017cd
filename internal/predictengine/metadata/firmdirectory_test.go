package metadata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeFirmName(t *testing.T) {
	require.Equal(t, "j.p. morgan", NormalizeFirmName("J.P. Morgan"))
	require.Equal(t, "blackstone", NormalizeFirmName("Blackstone"))
}

func TestLoadFirmDirectory_MissingFile(t *testing.T) {
	_, err := LoadFirmDirectory("/nonexistent/path.msgpack")
	require.Error(t, err)
}

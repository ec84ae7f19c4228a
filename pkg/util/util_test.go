package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncateForLog(t *testing.T) {
	require.Equal(t, "leak", TruncateForLog("leak", 10))
	require.Equal(t, "kitc…", TruncateForLog("kitchen sink", 4))
	require.Equal(t, "ünï…", TruncateForLog("ünïcode", 3))
	require.Equal(t, "anything", TruncateForLog("anything", 0))
}

func TestNowUTC(t *testing.T) {
	require.Equal(t, "UTC", NowUTC().Location().String())
}

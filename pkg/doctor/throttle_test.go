package doctor_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/dotkit/pkg/doctor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottle_AbsentTimestampAllowsRun(t *testing.T) {
	throttle := &doctor.Throttle{Path: filepath.Join(t.TempDir(), "last-check")}
	assert.True(t, throttle.ShouldRun(24*time.Hour))
}

func TestThrottle_RecentRunBlocks(t *testing.T) {
	throttle := &doctor.Throttle{Path: filepath.Join(t.TempDir(), "state", "last-check")}

	require.NoError(t, throttle.Touch())
	assert.False(t, throttle.ShouldRun(24*time.Hour))
}

func TestThrottle_ElapsedIntervalAllowsRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last-check")
	stale := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)
	require.NoError(t, os.WriteFile(path, []byte(stale+"\n"), 0644))

	throttle := &doctor.Throttle{Path: path}
	assert.True(t, throttle.ShouldRun(24*time.Hour))
}

func TestThrottle_GarbageTimestampAllowsRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last-check")
	require.NoError(t, os.WriteFile(path, []byte("not a timestamp"), 0644))

	throttle := &doctor.Throttle{Path: path}
	assert.True(t, throttle.ShouldRun(24*time.Hour))
}

func TestThrottle_TouchCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "last-check")
	throttle := &doctor.Throttle{Path: path}

	require.NoError(t, throttle.Touch())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = time.Parse(time.RFC3339, string(data[:len(data)-1]))
	assert.NoError(t, err)
}

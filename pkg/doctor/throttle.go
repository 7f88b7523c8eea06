package doctor

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Throttle limits how often scheduled doctor runs execute, backed by
// a timestamp file in the XDG state directory.
type Throttle struct {
	Path string
}

// ShouldRun reports whether enough time has passed since the last
// recorded run. An absent or unreadable timestamp always allows a run.
func (t *Throttle) ShouldRun(interval time.Duration) bool {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		return true
	}

	last, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		return true
	}

	return time.Since(last) >= interval
}

// Touch records the current time as the last run
func (t *Throttle) Touch() error {
	if err := os.MkdirAll(filepath.Dir(t.Path), 0755); err != nil {
		return err
	}
	return os.WriteFile(t.Path, []byte(time.Now().Format(time.RFC3339)+"\n"), 0644)
}

package doctor_test

import (
	"testing"

	"github.com/arthur-debert/dotkit/pkg/doctor"
	"github.com/arthur-debert/dotkit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCheck returns canned results and records that it ran
type stubCheck struct {
	name    string
	results []types.ValidationResult
	ran     bool
}

func (c *stubCheck) Name() string { return c.name }

func (c *stubCheck) Run() []types.ValidationResult {
	c.ran = true
	return c.results
}

func TestRunner_AggregatesAllChecks(t *testing.T) {
	first := &stubCheck{
		name:    "first",
		results: []types.ValidationResult{{Name: "first", Status: types.CheckPass, Message: "ok"}},
	}
	second := &stubCheck{
		name: "second",
		results: []types.ValidationResult{
			{Name: "second", Status: types.CheckFail, Message: "broken"},
			{Name: "second", Status: types.CheckWarn, Message: "iffy"},
		},
	}

	report := doctor.NewRunner(first, second).Run()

	require.Len(t, report.Results, 3)
	passed, failed, warned := report.Counts()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, warned)
	assert.True(t, report.HasFailures())
}

func TestRunner_FailingCheckDoesNotStopOthers(t *testing.T) {
	failing := &stubCheck{
		name:    "failing",
		results: []types.ValidationResult{{Name: "failing", Status: types.CheckFail, Message: "bad"}},
	}
	after := &stubCheck{
		name:    "after",
		results: []types.ValidationResult{{Name: "after", Status: types.CheckPass, Message: "ok"}},
	}

	doctor.NewRunner(failing, after).Run()

	assert.True(t, failing.ran)
	assert.True(t, after.ran)
}

func TestRunner_WarningsAreNotFailures(t *testing.T) {
	warning := &stubCheck{
		name:    "warning",
		results: []types.ValidationResult{{Name: "warning", Status: types.CheckWarn, Message: "meh"}},
	}

	report := doctor.NewRunner(warning).Run()
	assert.False(t, report.HasFailures())
}

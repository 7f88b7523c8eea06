package inject_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotkit/pkg/errors"
	"github.com/arthur-debert/dotkit/pkg/filesystem"
	"github.com/arthur-debert/dotkit/pkg/inject"
	"github.com/arthur-debert/dotkit/pkg/secrets"
	"github.com/arthur-debert/dotkit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unavailableResolver simulates an unreachable secret store
type unavailableResolver struct{}

func (unavailableResolver) Resolve(name string) (string, error) {
	return "", errors.New(errors.ErrExternalUnavailable, "store unreachable")
}

func TestScan(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "unique_names_in_first_appearance_order",
			content:  "a={{B_TOKEN}} b={{A_TOKEN}} c={{B_TOKEN}}",
			expected: []string{"B_TOKEN", "A_TOKEN"},
		},
		{
			name:     "lowercase_and_shell_syntax_ignored",
			content:  "{{lower}} ${HOME} {{GOOD_1}}",
			expected: []string{"GOOD_1"},
		},
		{
			name:     "no_tokens",
			content:  "plain content",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, inject.Scan([]byte(tt.content)))
		})
	}
}

func TestRender(t *testing.T) {
	resolver := secrets.MapResolver{"API_KEY": "abc123", "USER_NAME": "alice"}

	rendered, err := inject.Render([]byte("key={{API_KEY}} user={{USER_NAME}}"), resolver)
	require.NoError(t, err)
	assert.Equal(t, "key=abc123 user=alice", string(rendered))
}

func TestRender_Deterministic(t *testing.T) {
	resolver := secrets.MapResolver{"TOKEN": "value"}
	content := []byte("a={{TOKEN}} b={{TOKEN}}")

	first, err := inject.Render(content, resolver)
	require.NoError(t, err)
	second, err := inject.Render(content, resolver)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRender_MissingVariablesAllNamed(t *testing.T) {
	resolver := secrets.MapResolver{"PRESENT": "ok"}

	rendered, err := inject.Render([]byte("{{PRESENT}} {{ZEBRA}} {{APPLE}}"), resolver)
	require.Error(t, err)
	assert.Nil(t, rendered)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingVariable))

	// Every missing name is reported, sorted
	assert.Contains(t, err.Error(), "APPLE, ZEBRA")
}

func TestRender_UnavailableStoreIsNotMissing(t *testing.T) {
	rendered, err := inject.Render([]byte("{{TOKEN}}"), unavailableResolver{})
	require.Error(t, err)
	assert.Nil(t, rendered)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExternalUnavailable))
	assert.False(t, errors.IsErrorCode(err, errors.ErrMissingVariable))
}

func TestInject_WritesRenderedOutput(t *testing.T) {
	tmp := t.TempDir()
	source := filepath.Join(tmp, "gitconfig.tmpl")
	output := filepath.Join(tmp, "out", "gitconfig")
	require.NoError(t, os.WriteFile(source, []byte("token = {{GITHUB_TOKEN}}\n"), 0644))

	injector := inject.New(filesystem.NewOS(), secrets.MapResolver{"GITHUB_TOKEN": "secret"})
	changed, err := injector.Inject(types.Template{Name: "gitconfig.tmpl", Source: source, Output: output})
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "token = secret\n", string(data))

	// No temp file left behind
	entries, err := os.ReadDir(filepath.Dir(output))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "gitconfig", entries[0].Name())
}

func TestInject_UnchangedOutputSkipsWrite(t *testing.T) {
	tmp := t.TempDir()
	source := filepath.Join(tmp, "rc.tmpl")
	output := filepath.Join(tmp, "rc")
	require.NoError(t, os.WriteFile(source, []byte("v={{V}}"), 0644))

	injector := inject.New(filesystem.NewOS(), secrets.MapResolver{"V": "1"})
	tmpl := types.Template{Name: "rc.tmpl", Source: source, Output: output}

	changed, err := injector.Inject(tmpl)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = injector.Inject(tmpl)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestInject_MissingVariableWritesNothing(t *testing.T) {
	tmp := t.TempDir()
	source := filepath.Join(tmp, "rc.tmpl")
	output := filepath.Join(tmp, "rc")
	require.NoError(t, os.WriteFile(source, []byte("a={{KNOWN}} b={{UNKNOWN}}"), 0644))

	injector := inject.New(filesystem.NewOS(), secrets.MapResolver{"KNOWN": "x"})
	changed, err := injector.Inject(types.Template{Name: "rc.tmpl", Source: source, Output: output})
	require.Error(t, err)
	assert.False(t, changed)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingVariable))

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestInjectAll_StopsAtFirstFailure(t *testing.T) {
	tmp := t.TempDir()

	good := filepath.Join(tmp, "good.tmpl")
	bad := filepath.Join(tmp, "bad.tmpl")
	after := filepath.Join(tmp, "after.tmpl")
	require.NoError(t, os.WriteFile(good, []byte("{{V}}"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("{{NOPE}}"), 0644))
	require.NoError(t, os.WriteFile(after, []byte("{{V}}"), 0644))

	pkgs := []types.Package{{
		Name: "shell",
		Templates: []types.Template{
			{Name: "good.tmpl", Source: good, Output: filepath.Join(tmp, "good")},
			{Name: "bad.tmpl", Source: bad, Output: filepath.Join(tmp, "bad")},
			{Name: "after.tmpl", Source: after, Output: filepath.Join(tmp, "after")},
		},
	}}

	injector := inject.New(filesystem.NewOS(), secrets.MapResolver{"V": "1"})
	changed, err := injector.InjectAll(pkgs)
	require.Error(t, err)
	assert.Equal(t, 1, changed)

	// The template after the failure was never rendered
	_, statErr := os.Stat(filepath.Join(tmp, "after"))
	assert.True(t, os.IsNotExist(statErr))
}

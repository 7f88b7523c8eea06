package gitsync_test

import (
	"testing"

	"github.com/arthur-debert/dotkit/pkg/gitsync"
	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync_NotARepositorySkips(t *testing.T) {
	result, err := gitsync.Sync(t.TempDir())
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Equal(t, "not a git repository", result.Reason)
}

func TestSync_NoOriginRemoteSkips(t *testing.T) {
	tmp := t.TempDir()
	_, err := git.PlainInit(tmp, false)
	require.NoError(t, err)

	result, err := gitsync.Sync(tmp)
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Equal(t, "no origin remote", result.Reason)
}

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/dotkit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndError(t *testing.T) {
	err := errors.New(errors.ErrConflict, "target exists")
	assert.Equal(t, "[CONFLICT] target exists", err.Error())

	err = errors.Newf(errors.ErrPackageNotFound, "package %q not found", "git")
	assert.Equal(t, `[PACKAGE_NOT_FOUND] package "git" not found`, err.Error())
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := errors.Wrap(cause, errors.ErrFileAccess, "failed to read file")

	assert.Contains(t, err.Error(), "FILE_ACCESS")
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "ignored"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "ignored %d", 1))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.New(errors.ErrMissingVariable, "unresolved variables")
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingVariable))
	assert.False(t, errors.IsErrorCode(err, errors.ErrConflict))

	// Code survives wrapping by plain errors
	wrapped := fmt.Errorf("inject: %w", err)
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrMissingVariable))

	assert.False(t, errors.IsErrorCode(fmt.Errorf("plain"), errors.ErrMissingVariable))
	assert.False(t, errors.IsErrorCode(nil, errors.ErrMissingVariable))
}

func TestGetErrorCode(t *testing.T) {
	err := errors.New(errors.ErrExternalUnavailable, "vault down")
	assert.Equal(t, errors.ErrExternalUnavailable, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(fmt.Errorf("plain")))
}

func TestIsMatchesByCode(t *testing.T) {
	a := errors.New(errors.ErrConflict, "one")
	b := errors.New(errors.ErrConflict, "another")
	c := errors.New(errors.ErrNotFound, "other code")

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrConflict, "target exists").
		WithDetail("package", "git").
		WithDetail("target", "/home/user/.gitconfig")

	require.NotNil(t, err.Details)
	assert.Equal(t, "git", err.Details["package"])
	assert.Equal(t, "/home/user/.gitconfig", err.Details["target"])
}

package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrWrapsOriginal(t *testing.T) {
	log := New("test").Function("TestErrWrapsOriginal")

	original := errors.New("record not found")
	wrapped := log.Err("failed to load profile", original)

	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, original)
	assert.Equal(t, "failed to load profile: record not found", wrapped.Error())
}

func TestErrorBuildsFromMessage(t *testing.T) {
	log := New("test")

	err := log.Error("invalid date of birth", "dob", "garbage")

	require.Error(t, err)
	assert.Equal(t, "invalid date of birth", err.Error())
}

func TestChainedHelpersDoNotMutate(t *testing.T) {
	log := New("test")
	scoped := log.Function("inner")

	assert.Equal(t, log.scope, scoped.scope)
	assert.NotNil(t, scoped.handler)
}

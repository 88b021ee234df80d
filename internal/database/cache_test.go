package database

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheBuilder_WithStructMatchesWithValue(t *testing.T) {
	payload := struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}{Token: "abc", UserID: "user-1"}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	fromStruct := NewCacheBuilder(nil, "session:abc").WithStruct(payload)
	fromValue := NewCacheBuilder(nil, "session:abc").WithValue(string(raw))

	assert.Equal(t, fromValue.value, fromStruct.value)
	assert.NoError(t, fromStruct.err)
}

func TestCacheBuilder_MarshalErrorSurfacesFromTerminals(t *testing.T) {
	// Channels are not JSON-serializable, so WithStruct records an error that
	// every terminal method must return before touching the client.
	builder := NewCacheBuilder(nil, "bad").WithStruct(make(chan int))

	assert.Error(t, builder.Set())
	assert.Error(t, builder.Delete())

	var dest any
	found, err := builder.Get(&dest)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestCacheBuilder_ChainingKeepsKeyAndTTL(t *testing.T) {
	builder := NewCacheBuilder(nil, "profiles:all").
		WithValue("[]").
		WithTTL(5 * time.Minute)

	assert.Equal(t, "profiles:all", builder.key)
	assert.Equal(t, "[]", builder.value)
	assert.Equal(t, 5*time.Minute, builder.ttl)
}

package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"
)

const defaultCacheTimeout = 5 * time.Second

// CacheBuilder is a small fluent wrapper over valkey get/set/delete with JSON
// struct payloads. Terminal methods are Set, Get, and Delete.
type CacheBuilder struct {
	client CacheClient
	key    string
	value  string
	ttl    time.Duration
	ctx    context.Context
	err    error
}

func NewCacheBuilder(client CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{
		client: client,
		key:    key,
	}
}

func (b *CacheBuilder) WithStruct(value any) *CacheBuilder {
	data, err := json.Marshal(value)
	if err != nil {
		b.err = err
		return b
	}
	b.value = string(data)
	return b
}

func (b *CacheBuilder) WithValue(value string) *CacheBuilder {
	b.value = value
	return b
}

func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.ttl = ttl
	return b
}

func (b *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	b.ctx = ctx
	return b
}

func (b *CacheBuilder) context() (context.Context, context.CancelFunc) {
	if b.ctx != nil {
		return b.ctx, func() {}
	}
	return context.WithTimeout(context.Background(), defaultCacheTimeout)
}

func (b *CacheBuilder) Set() error {
	if b.err != nil {
		return b.err
	}

	ctx, cancel := b.context()
	defer cancel()

	builder := b.client.B().Set().Key(b.key).Value(b.value)
	if b.ttl > 0 {
		return b.client.Do(ctx, builder.Ex(b.ttl).Build()).Error()
	}
	return b.client.Do(ctx, builder.Build()).Error()
}

// Get unmarshals the cached value into dest. The boolean reports whether the
// key was present; a miss is not an error.
func (b *CacheBuilder) Get(dest any) (bool, error) {
	if b.err != nil {
		return false, b.err
	}

	ctx, cancel := b.context()
	defer cancel()

	raw, err := b.client.Do(ctx, b.client.B().Get().Key(b.key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}

	return true, nil
}

func (b *CacheBuilder) Delete() error {
	if b.err != nil {
		return b.err
	}

	ctx, cancel := b.context()
	defer cancel()

	return b.client.Do(ctx, b.client.B().Del().Key(b.key).Build()).Error()
}

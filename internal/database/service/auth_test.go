package service_test

import (
	"strings"
	"testing"

	"github.com/quartzlab/tipboard/internal/database/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := service.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "argon2id$"))

	// A fresh salt must produce a different encoding for the same password
	other, err := service.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := service.HashPassword("hunter2")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		t.Parallel()
		assert.True(t, service.VerifyPassword("hunter2", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		assert.False(t, service.VerifyPassword("hunter3", hash))
	})

	t.Run("empty password", func(t *testing.T) {
		t.Parallel()
		assert.False(t, service.VerifyPassword("", hash))
	})

	t.Run("malformed hash", func(t *testing.T) {
		t.Parallel()
		assert.False(t, service.VerifyPassword("hunter2", "not-a-hash"))
		assert.False(t, service.VerifyPassword("hunter2", "argon2id$zz$zz"))
		assert.False(t, service.VerifyPassword("hunter2", "bcrypt$00$00"))
	})
}

package utils_test

import (
	"testing"
	"time"

	"github.com/quartzlab/tipboard/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestTTLMapSetGet(t *testing.T) {
	t.Parallel()

	m := utils.NewTTLMap[string, int](time.Minute)

	m.Set("a", 1)

	got, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, got)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestTTLMapOverwrite(t *testing.T) {
	t.Parallel()

	m := utils.NewTTLMap[string, int](time.Minute)

	m.Set("a", 1)
	m.Set("a", 2)

	got, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestTTLMapDelete(t *testing.T) {
	t.Parallel()

	m := utils.NewTTLMap[string, int](time.Minute)

	m.Set("a", 1)
	m.Delete("a")

	_, ok := m.Get("a")
	assert.False(t, ok)

	// Deleting an absent key is a no-op
	m.Delete("a")
}

func TestTTLMapExpiry(t *testing.T) {
	t.Parallel()

	m := utils.NewTTLMap[string, int](20 * time.Millisecond)

	m.Set("a", 1)

	_, ok := m.Get("a")
	assert.True(t, ok)

	time.Sleep(50 * time.Millisecond)

	_, ok = m.Get("a")
	assert.False(t, ok)
}

func TestTTLMapSetResetsExpiry(t *testing.T) {
	t.Parallel()

	m := utils.NewTTLMap[string, int](60 * time.Millisecond)

	m.Set("a", 1)
	time.Sleep(40 * time.Millisecond)
	m.Set("a", 2)
	time.Sleep(40 * time.Millisecond)

	got, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, got)
}

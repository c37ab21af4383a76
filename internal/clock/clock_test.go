package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeAdvanceAndSet(t *testing.T) {
	t0 := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	c := NewFake(t0)

	assert.Equal(t, t0, c.Now())

	c.Advance(90 * time.Second)
	assert.Equal(t, t0.Add(90*time.Second), c.Now())

	c.Set(t0)
	assert.Equal(t, t0, c.Now())
}

func TestNewZone(t *testing.T) {
	c, err := NewZone("Asia/Bangkok")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Bangkok", c.Now().Location().String())

	_, err = NewZone("Not/AZone")
	assert.Error(t, err)
}

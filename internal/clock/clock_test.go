package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	NowFunc = func() time.Time { return now }
	defer func() { NowFunc = time.Now }()

	assert.False(t, Expired(time.Time{}))
	assert.False(t, Expired(now.Add(time.Second)))
	assert.True(t, Expired(now))
	assert.True(t, Expired(now.Add(-time.Second)))
}

package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
)

func TestClock(t *testing.T) {
	before := time.Now()
	now := clock.New().Now()
	assert.False(t, now.Before(before))

	at := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	fixed := &clock.Fixed{At: at}
	assert.Equal(t, at, fixed.Now())
	assert.Equal(t, at, fixed.Now())
}

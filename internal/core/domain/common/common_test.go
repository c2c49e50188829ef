package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptionalString(t *testing.T) {
	present := NewOptional(42, true)
	absent := NewOptional(0, false)

	assert.Equal(t, "[42]", present.String())
	assert.Equal(t, "[-]", absent.String())
}

func TestFormatTime(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2026, 3, 1, 12, 30, 45, 123_456_789, loc)

	assert.Equal(t, "2026-03-01T09:30:45.123Z", FormatTime(ts))
}

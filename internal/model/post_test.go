package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePostTimeISO(t *testing.T) {
	pt, err := ParsePostTime("2023-10-05T14:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 10, 5, 14, 30, 0, 0, time.UTC), pt.Time)
}

func TestParsePostTimeDisplay(t *testing.T) {
	pt, err := ParsePostTime("5/10/2023 14:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 10, 5, 14, 30, 0, 0, time.UTC), pt.Time)
}

func TestParsePostTimeInvalid(t *testing.T) {
	for _, s := range []string{"", "yesterday", "2023-10-05", "05-10-2023 14:30"} {
		_, err := ParsePostTime(s)
		assert.ErrorIs(t, err, ErrInvalidPostTime, "input %q", s)
		assert.ErrorIs(t, err, ErrValidation, "post time errors are validation errors")
	}
}

func TestPostTimeValueWritesISO(t *testing.T) {
	pt, err := ParsePostTime("5/10/2023 14:30")
	require.NoError(t, err)

	v, err := pt.Value()
	require.NoError(t, err)
	assert.Equal(t, "2023-10-05T14:30:00", v)
}

func TestPostTimeScan(t *testing.T) {
	var pt PostTime

	require.NoError(t, pt.Scan("2023-10-05T14:30:00"))
	assert.Equal(t, 14, pt.Hour())

	require.NoError(t, pt.Scan([]byte("5/10/2023 09:15")))
	assert.Equal(t, 9, pt.Hour())

	now := time.Now()
	require.NoError(t, pt.Scan(now))
	assert.True(t, pt.Equal(now))

	assert.ErrorIs(t, pt.Scan("garbage"), ErrInvalidPostTime)
	assert.ErrorIs(t, pt.Scan(12345), ErrValidation)
}

func TestPostTimeString(t *testing.T) {
	pt, err := ParsePostTime("2023-10-05T14:30:00")
	require.NoError(t, err)
	assert.Equal(t, "5/10/2023 14:30", pt.String())
}

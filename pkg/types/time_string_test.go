package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	ts, err = NewTimeStringFromString("17:00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("17:00"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	next, err := MustTimeString("15:30").AddMinutes(180)
	require.NoError(t, err)
	assert.Equal(t, TimeString("18:30"), next)

	_, err = MustTimeString("23:00").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, MustTimeString("09:00").IsBefore("10:00"))
	assert.False(t, MustTimeString("10:00").IsBefore("10:00"))
	assert.True(t, MustTimeString("10:30").IsAfter("10:00"))
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("clinic", 3*60*60)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	at, err := MustTimeString("10:45").On(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 10, 45, 0, 0, loc), at)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

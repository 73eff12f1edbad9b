package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("18:30")
	require.NoError(t, err)
	assert.Equal(t, "18:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = NewTimeStringFromString("18:30:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = NewTimeStringFromString("")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, "00:00", ts.String())

	ts, err = NewTimeStringFromMinutes(11*60 + 30)
	require.NoError(t, err)
	assert.Equal(t, "11:30", ts.String())

	ts, err = NewTimeStringFromMinutes(23*60 + 59)
	require.NoError(t, err)
	assert.Equal(t, "23:59", ts.String())

	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeStringMinutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 11*60, TimeString("11:00").Minutes())
	assert.Equal(t, 23*60+45, TimeString("23:45").Minutes())
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("11:00").IsBefore(TimeString("12:00")))
	assert.False(t, TimeString("12:00").IsBefore(TimeString("12:00")))
	assert.True(t, TimeString("13:00").IsAfter(TimeString("12:30")))
	assert.False(t, TimeString("12:30").IsAfter(TimeString("12:30")))
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := TimeString("18:00").AddMinutes(135)
	require.NoError(t, err)
	assert.Equal(t, "20:15", ts.String())

	// Результат за пределами суток - ошибка, а не перенос на следующий день
	_, err = TimeString("23:00").AddMinutes(90)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = TimeString("bad").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	// Строка с секундами от postgres TIME
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, "10:00", ts.String())

	require.NoError(t, ts.Scan([]byte("18:45:00")))
	assert.Equal(t, "18:45", ts.String())

	require.NoError(t, ts.Scan(time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, "09:30", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("12:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "12:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

package dateonly

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	d, err := Parse("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, 2, d.Month())
	assert.Equal(t, 29, d.Day())
	assert.Equal(t, "2024-02-29", d.String())
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{
		"", "2024-1-01", "2024/01/01", "24-01-01", "2024-01-1",
		"2024-13-01", "2024-00-10", "2023-02-29", "2024-04-31",
		"abcd-ef-gh", "2024-01-01T00:00:00Z", " 2024-01-01",
	}
	for _, s := range cases {
		_, err := Parse(s)
		require.Error(t, err, "should reject %q", s)
		assert.ErrorIs(t, err, ErrInvalidDate)
	}
}

func TestSplitFormat_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		y := 1900 + rng.Intn(300)
		m := 1 + rng.Intn(12)
		d := 1 + rng.Intn(daysIn(y, m))
		s := Format(y, m, d)

		gy, gm, gd, err := Split(s)
		require.NoError(t, err)
		assert.Equal(t, s, Format(gy, gm, gd))
	}
}

func TestWeekday_MatchesTimePackage(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		n := rng.Intn(200000) - 100000
		d := fromDayNumber(n)
		ref := time.Date(d.Year(), time.Month(d.Month()), d.Day(), 12, 0, 0, 0, time.UTC)
		assert.Equal(t, ref.Weekday(), d.Weekday(), "date %s", d)
	}
}

func TestDayNumber_RoundTrip(t *testing.T) {
	for n := -800000; n <= 800000; n += 997 {
		assert.Equal(t, n, fromDayNumber(n).dayNumber())
	}
	assert.Equal(t, 0, MustParse("1970-01-01").dayNumber())
}

func TestCompareAndSub(t *testing.T) {
	a := MustParse("2024-02-28")
	b := MustParse("2024-03-01")
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, 2, b.Sub(a))
	assert.Equal(t, -2, a.Sub(b))
}

func TestFromTime_UsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("UTC-10", -10*3600)
	ts := time.Date(2024, 3, 10, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-03-10", FromTime(ts).String())
}

func TestJSON_TextForm(t *testing.T) {
	type wrapper struct {
		Start Date `json:"start"`
	}
	b, err := json.Marshal(wrapper{Start: MustParse("2024-06-03")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-06-03"}`, string(b))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2024-01-05"}`), &w))
	assert.Equal(t, "2024-01-05", w.Start.String())

	err = json.Unmarshal([]byte(`{"start":"2024-1-5"}`), &w)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-07-04"))
	assert.Equal(t, "2024-07-04", d.String())

	require.NoError(t, d.Scan(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-08-01", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestValue_ZeroIsNull(t *testing.T) {
	v, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = MustParse("2024-01-01").Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", v)
}

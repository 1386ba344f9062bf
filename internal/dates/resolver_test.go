package dates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/snipstack/internal/classifier"
	"github.com/pbaille/snipstack/internal/domain"
)

// Thursday.
var now = time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func at(m time.Month, d, h, min int) time.Time {
	return time.Date(2024, m, d, h, min, 0, 0, time.UTC)
}

type fakeRemote struct {
	res   *classifier.DateRangeResult
	err   error
	calls int
}

func (f *fakeRemote) ResolveDateRange(context.Context, string, time.Time) (*classifier.DateRangeResult, error) {
	f.calls++
	return f.res, f.err
}

func newResolver(opts Options) *Resolver {
	opts.Now = func() time.Time { return now }
	return New(opts)
}

func TestResolve_LastNight(t *testing.T) {
	dr, err := newResolver(Options{}).Resolve(context.Background(), "Last  Night")
	require.NoError(t, err)

	assert.Equal(t, day(time.May, 1), dr.From)
	assert.Equal(t, day(time.May, 2), dr.To)
	assert.True(t, dr.Overnight())
	assert.Equal(t, at(time.May, 1, 22, 0), dr.Start())
	assert.Equal(t, at(time.May, 2, 4, 0), dr.End())
	assert.Equal(t, "Last night", dr.Label)
}

func TestResolve_PhraseTable(t *testing.T) {
	tests := []struct {
		phrase   string
		from, to time.Time
		times    string // "HH:MM-HH:MM" or ""
	}{
		{"yesterday evening", day(time.May, 1), day(time.May, 1), "18:00-24:00"},
		{"today", day(time.May, 2), day(time.May, 2), ""},
		{"yesterday", day(time.May, 1), day(time.May, 1), ""},
		{"tonight", day(time.May, 2), day(time.May, 3), "22:00-04:00"},
		{"this morning", day(time.May, 2), day(time.May, 2), "05:00-12:00"},
		{"noon", day(time.May, 2), day(time.May, 2), "12:00-13:00"},
		{"friday morning", day(time.April, 26), day(time.April, 26), "05:00-12:00"},
		{"thursday", day(time.May, 2), day(time.May, 2), ""},
		{"last thursday", day(time.April, 25), day(time.April, 25), ""},
		{"this week", day(time.April, 29), day(time.May, 2), ""},
		{"last week", day(time.April, 22), day(time.April, 28), ""},
		{"last month", day(time.April, 1), day(time.April, 30), ""},
	}
	r := newResolver(Options{})
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			dr, err := r.Resolve(context.Background(), tt.phrase)
			require.NoError(t, err)
			assert.Equal(t, tt.from, dr.From)
			assert.Equal(t, tt.to, dr.To)
			if tt.times == "" {
				assert.False(t, dr.HasTimes())
				return
			}
			require.True(t, dr.HasTimes())
			assert.Equal(t, tt.times, dr.FromTime.String()+"-"+dr.ToTime.String())
		})
	}
}

func TestResolve_NaturalLanguage(t *testing.T) {
	r := newResolver(Options{})

	dr, err := r.Resolve(context.Background(), "April 30 and May 1")
	require.NoError(t, err)
	assert.Equal(t, day(time.April, 30), dr.From)
	assert.Equal(t, day(time.May, 1), dr.To)
	assert.False(t, dr.HasTimes())

	dr, err = r.Resolve(context.Background(), "2 days ago")
	require.NoError(t, err)
	assert.Equal(t, day(time.April, 30), dr.From)
	assert.Equal(t, day(time.April, 30), dr.To)
	assert.Equal(t, at(time.April, 30, 23, 59).Add(59*time.Second+999*time.Millisecond), dr.End())

	march3 := time.Date(2023, time.March, 3, 0, 0, 0, 0, time.UTC)
	for _, phrase := range []string{"march 3 2023", "March 3, 2023"} {
		dr, err = r.Resolve(context.Background(), phrase)
		require.NoError(t, err, phrase)
		assert.Equal(t, march3, dr.From, phrase)
		assert.Equal(t, march3, dr.To, phrase)
	}

	dr, err = r.Resolve(context.Background(), "December 30, 2023 to January 2, 2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.December, 30, 0, 0, 0, 0, time.UTC), dr.From)
	assert.Equal(t, day(time.January, 2), dr.To)
}

func TestResolve_MonthDayIsInThePast(t *testing.T) {
	r := newResolver(Options{})

	dr, err := r.Resolve(context.Background(), "december 25")
	require.NoError(t, err)
	christmas := time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, christmas, dr.From)
	assert.Equal(t, christmas, dr.To)

	dr, err = r.Resolve(context.Background(), "march 3")
	require.NoError(t, err)
	assert.Equal(t, day(time.March, 3), dr.From)
}

func TestResolve_Unresolved(t *testing.T) {
	remote := &fakeRemote{err: errors.New("offline")}
	dr, err := newResolver(Options{Remote: remote, Smart: true}).Resolve(context.Background(), "blorp")
	assert.ErrorIs(t, err, ErrUnresolved)
	assert.Equal(t, "blorp", dr.Label)
	assert.Equal(t, 1, remote.calls)

	_, err = newResolver(Options{}).Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestResolve_RemoteOnlyInSmartMode(t *testing.T) {
	remote := &fakeRemote{res: &classifier.DateRangeResult{
		From: "2024-05-01", To: "2024-05-01", FromTime: "22:00", ToTime: "04:00", Display: "Around the party",
	}}
	r := newResolver(Options{Remote: remote})

	_, err := r.Resolve(context.Background(), "around the party")
	assert.ErrorIs(t, err, ErrUnresolved)
	assert.Zero(t, remote.calls)

	r.SetSmart(true)
	dr, err := r.Resolve(context.Background(), "around the party")
	require.NoError(t, err)
	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, "Around the party", dr.Label)
	assert.Equal(t, day(time.May, 2), dr.To, "overnight window ends the next day")
	assert.Equal(t, domain.Clock{Hour: 4}, *dr.ToTime)
}

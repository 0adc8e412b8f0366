package expiry_test

import (
	"testing"
	"time"

	"github.com/robalyx/modlog/internal/expiry"
	"github.com/robalyx/modlog/internal/types"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func mute(expiresAt *time.Time) types.Record {
	return types.Record{ID: 1, Kind: types.KindMute, Player: "Steve", ExpiresAt: expiresAt}
}

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestRemainingPermanent(t *testing.T) {
	t.Parallel()

	for _, sample := range []time.Time{now, {}, now.Add(100 * 365 * 24 * time.Hour)} {
		res := expiry.Remaining(mute(nil), sample)
		assert.Equal(t, expiry.Permanent, res.State)
		assert.Empty(t, res.Parts())
	}
}

func TestRemainingExpired(t *testing.T) {
	t.Parallel()

	offsets := []time.Duration{
		0,
		-time.Millisecond,
		-time.Hour,
		-10 * 365 * 24 * time.Hour,
	}

	for _, offset := range offsets {
		res := expiry.Remaining(mute(at(offset)), now)
		assert.Equal(t, expiry.Expired, res.State, "offset %s", offset)
		assert.Empty(t, res.Parts())
		assert.Zero(t, res.Duration())
	}
}

func TestRemainingActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		offset time.Duration
		want   expiry.Result
		parts  []expiry.Part
	}{
		{
			name:   "one of each unit",
			offset: 90061000 * time.Millisecond,
			want:   expiry.Result{State: expiry.Active, Days: 1, Hours: 1, Minutes: 1, Seconds: 1},
			parts: []expiry.Part{
				{Unit: expiry.Days, Value: 1},
				{Unit: expiry.Hours, Value: 1},
				{Unit: expiry.Minutes, Value: 1},
				{Unit: expiry.Seconds, Value: 1},
			},
		},
		{
			name:   "seconds only",
			offset: 45000 * time.Millisecond,
			want:   expiry.Result{State: expiry.Active, Seconds: 45},
			parts:  []expiry.Part{{Unit: expiry.Seconds, Value: 45}},
		},
		{
			name:   "zero seconds still shown",
			offset: 2 * time.Hour,
			want:   expiry.Result{State: expiry.Active, Hours: 2},
			parts: []expiry.Part{
				{Unit: expiry.Hours, Value: 2},
				{Unit: expiry.Seconds, Value: 0},
			},
		},
		{
			name:   "sub-second remainder is active with zero seconds",
			offset: 500 * time.Millisecond,
			want:   expiry.Result{State: expiry.Active},
			parts:  []expiry.Part{{Unit: expiry.Seconds, Value: 0}},
		},
		{
			name:   "middle zero unit omitted",
			offset: 3*24*time.Hour + 5*time.Minute + 9*time.Second,
			want:   expiry.Result{State: expiry.Active, Days: 3, Minutes: 5, Seconds: 9},
			parts: []expiry.Part{
				{Unit: expiry.Days, Value: 3},
				{Unit: expiry.Minutes, Value: 5},
				{Unit: expiry.Seconds, Value: 9},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := expiry.Remaining(mute(at(tt.offset)), now)
			assert.Equal(t, tt.want, res)
			assert.Equal(t, tt.parts, res.Parts())
		})
	}
}

func TestRemainingDoesNotMutate(t *testing.T) {
	t.Parallel()

	rec := mute(at(time.Minute))
	before := *rec.ExpiresAt

	expiry.Remaining(rec, now.Add(time.Hour))

	assert.Equal(t, before, *rec.ExpiresAt)
}

func TestResultDuration(t *testing.T) {
	t.Parallel()

	res := expiry.Until(now.Add(90061*time.Second), now)
	assert.Equal(t, 90061*time.Second, res.Duration())
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "permanent", expiry.Permanent.String())
	assert.Equal(t, "expired", expiry.Expired.String())
	assert.Equal(t, "active", expiry.Active.String())
}

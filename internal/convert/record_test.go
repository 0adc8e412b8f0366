package convert_test

import (
	"testing"
	"time"

	"github.com/robalyx/modlog/internal/convert"
	"github.com/robalyx/modlog/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestRecordFullPayload(t *testing.T) {
	t.Parallel()

	raw := gjson.Parse(`{
		"id": 42,
		"player": "Steve",
		"reason": "spam",
		"image_url": "/uploads/proof.png",
		"created_at": "2024-05-01T10:00:00.000Z",
		"issuer": "admin",
		"expires_at": "2024-05-02T10:00:00Z",
		"duration": "1d"
	}`)

	rec := convert.Record(types.KindMute, raw)

	assert.Equal(t, int64(42), rec.ID)
	assert.Equal(t, types.KindMute, rec.Kind)
	assert.Equal(t, "Steve", rec.Player)
	assert.Equal(t, "spam", rec.Reason)
	assert.Equal(t, "/uploads/proof.png", rec.ImageURL)
	require.NotNil(t, rec.Issuer)
	assert.Equal(t, "admin", *rec.Issuer)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), rec.CreatedAt.UTC())
	require.NotNil(t, rec.ExpiresAt)
	assert.Equal(t, time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC), rec.ExpiresAt.UTC())
	assert.True(t, rec.HasDuration)
	require.NotNil(t, rec.Duration)
	assert.Equal(t, "1d", *rec.Duration)
	assert.Equal(t, "mute-42", rec.Key())
}

func TestRecordMissingFields(t *testing.T) {
	t.Parallel()

	payloads := []string{
		`{}`,
		`{"player": null, "id": null, "reason": null}`,
		`{"id": "abc", "created_at": 17, "expires_at": "not a date"}`,
		`[]`,
		`"just a string"`,
	}

	for _, payload := range payloads {
		t.Run(payload, func(t *testing.T) {
			t.Parallel()

			for _, kind := range types.Kinds() {
				rec := convert.Record(kind, gjson.Parse(payload))

				assert.Equal(t, kind, rec.Kind)
				assert.Zero(t, rec.ID)
				assert.Empty(t, rec.Player)
				assert.Empty(t, rec.Reason)
				assert.Empty(t, rec.ImageURL)
				assert.Nil(t, rec.Issuer)
				assert.True(t, rec.CreatedAt.IsZero())
				assert.Nil(t, rec.ExpiresAt)
				assert.True(t, rec.IsPermanent())
			}
		})
	}
}

func TestRecordKindIsNeverReadFromPayload(t *testing.T) {
	t.Parallel()

	rec := convert.Record(types.KindBan, gjson.Parse(`{"kind": "kick", "type": "mute"}`))
	assert.Equal(t, types.KindBan, rec.Kind)
}

func TestRecordCoercion(t *testing.T) {
	t.Parallel()

	rec := convert.Record(types.KindBan, gjson.Parse(`{"id": "17", "player": 12345, "reason": true}`))

	assert.Equal(t, int64(17), rec.ID)
	assert.Equal(t, "12345", rec.Player)
	assert.Equal(t, "true", rec.Reason)
}

func TestRecordDuration(t *testing.T) {
	t.Parallel()

	absent := convert.Record(types.KindMute, gjson.Parse(`{}`))
	assert.False(t, absent.HasDuration)
	assert.Nil(t, absent.Duration)

	null := convert.Record(types.KindMute, gjson.Parse(`{"duration": null}`))
	assert.True(t, null.HasDuration)
	assert.Nil(t, null.Duration)
}

func TestRecordExpiry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		kind      types.Kind
		payload   string
		wantUntil string
	}{
		{
			name:    "null expiry is permanent",
			kind:    types.KindBan,
			payload: `{"created_at": "2024-05-01T10:00:00Z", "expires_at": null}`,
		},
		{
			name:    "expiry before creation is ignored",
			kind:    types.KindMute,
			payload: `{"created_at": "2024-05-01T10:00:00Z", "expires_at": "2024-04-30T10:00:00Z"}`,
		},
		{
			name:    "expiry equal to creation is ignored",
			kind:    types.KindMute,
			payload: `{"created_at": "2024-05-01T10:00:00Z", "expires_at": "2024-05-01T10:00:00Z"}`,
		},
		{
			name:      "expiry without creation is kept",
			kind:      types.KindMute,
			payload:   `{"expires_at": "2024-05-01T10:00:00Z"}`,
			wantUntil: "2024-05-01T10:00:00Z",
		},
		{
			name:      "space separated timestamps",
			kind:      types.KindBan,
			payload:   `{"created_at": "2024-05-01 10:00:00", "expires_at": "2024-05-01 11:30:00"}`,
			wantUntil: "2024-05-01T11:30:00Z",
		},
		{
			name:    "kicks never expire",
			kind:    types.KindKick,
			payload: `{"created_at": "2024-05-01T10:00:00Z", "expires_at": "2024-05-02T10:00:00Z"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := convert.Record(tt.kind, gjson.Parse(tt.payload))
			if tt.wantUntil == "" {
				assert.Nil(t, rec.ExpiresAt)
				return
			}

			require.NotNil(t, rec.ExpiresAt)
			assert.Equal(t, tt.wantUntil, rec.ExpiresAt.UTC().Format(time.RFC3339))
		})
	}
}

func TestRecordsPreservesOrder(t *testing.T) {
	t.Parallel()

	raws := gjson.Parse(`[{"id": 3}, {"id": 1}, {"id": 2}]`).Array()
	records := convert.Records(types.KindKick, raws)

	require.Len(t, records, 3)
	assert.Equal(t, int64(3), records[0].ID)
	assert.Equal(t, int64(1), records[1].ID)
	assert.Equal(t, int64(2), records[2].ID)
}

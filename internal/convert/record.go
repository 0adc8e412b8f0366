// Package convert turns raw API payloads into the module's record types.
// Every function here is total: malformed fields are coerced, never reported.
package convert

import (
	"strconv"
	"strings"
	"time"

	"github.com/robalyx/modlog/internal/types"
	"github.com/tidwall/gjson"
)

// timeLayouts lists the timestamp formats accepted in payloads, most common first.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// Record maps one raw record object into a Record tagged with the given kind.
func Record(kind types.Kind, raw gjson.Result) types.Record {
	rec := types.Record{
		ID:        Int64(raw.Get("id")),
		Kind:      kind,
		Player:    String(raw.Get("player")),
		Reason:    String(raw.Get("reason")),
		Issuer:    OptionalString(raw.Get("issuer")),
		CreatedAt: Time(raw.Get("created_at")),
		ImageURL:  String(raw.Get("image_url")),
	}

	duration := raw.Get("duration")
	rec.HasDuration = duration.Exists()
	rec.Duration = OptionalString(duration)

	if kind.SupportsExpiry() {
		rec.ExpiresAt = expiry(raw.Get("expires_at"), rec.CreatedAt)
	}

	return rec
}

// Records maps a list of raw objects, preserving order.
func Records(kind types.Kind, raws []gjson.Result) []types.Record {
	records := make([]types.Record, 0, len(raws))
	for _, raw := range raws {
		records = append(records, Record(kind, raw))
	}

	return records
}

// Int64 coerces a number or numeric string to int64, returning 0 otherwise.
func Int64(v gjson.Result) int64 {
	switch v.Type {
	case gjson.Number:
		return v.Int()
	case gjson.String:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0
		}
		return int64(n)
	default:
		return 0
	}
}

// String coerces a scalar to its string form. Missing, null, and nested values yield "".
func String(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number, gjson.True, gjson.False:
		return v.String()
	default:
		return ""
	}
}

// OptionalString is String for fields whose absence must stay distinguishable.
func OptionalString(v gjson.Result) *string {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}

	s := String(v)
	return &s
}

// Time parses a timestamp string, returning the zero time for anything unparseable.
func Time(v gjson.Result) time.Time {
	if v.Type != gjson.String {
		return time.Time{}
	}

	s := strings.TrimSpace(v.Str)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}

// expiry parses an expiry instant. Values that do not parse, or that do not
// fall after a known creation instant, mean there is no expiry.
func expiry(v gjson.Result, createdAt time.Time) *time.Time {
	t := Time(v)
	if t.IsZero() {
		return nil
	}

	if !createdAt.IsZero() && !t.After(createdAt) {
		return nil
	}

	return &t
}

package filter_test

import (
	"testing"

	"github.com/robalyx/modlog/internal/filter"
	"github.com/robalyx/modlog/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []types.Record {
	return []types.Record{
		{ID: 1, Kind: types.KindMute, Player: "Steve", Reason: "spam"},
		{ID: 2, Kind: types.KindMute, Player: "alex", Reason: "griefing spawn"},
		{ID: 3, Kind: types.KindMute, Player: "STEVEN", Reason: "toxicity"},
		{ID: 4, Kind: types.KindMute, Player: "Notch", Reason: "Spamming links"},
		{ID: 5, Kind: types.KindMute, Player: "", Reason: ""},
	}
}

func ids(records []types.Record) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterEmptyQueryIsIdentity(t *testing.T) {
	t.Parallel()

	records := sample()
	for _, q := range []string{"", " ", "\t\n  "} {
		got := filter.Filter(records, q, filter.KindFields)
		require.Len(t, got, len(records))
		assert.Same(t, &records[0], &got[0], "query %q should return the input slice", q)
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		query  string
		fields filter.Fields
		want   []int64
	}{
		{name: "case insensitive player", query: "steve", fields: filter.SearchFields, want: []int64{1, 3}},
		{name: "query trimmed", query: "  STEVE\t", fields: filter.SearchFields, want: []int64{1, 3}},
		{name: "player only ignores reason", query: "spam", fields: filter.SearchFields, want: []int64{}},
		{name: "reason matches in kind view", query: "spam", fields: filter.KindFields, want: []int64{1, 2, 4}},
		{name: "reason only", query: "alex", fields: filter.Reason, want: []int64{}},
		{name: "no match", query: "herobrine", fields: filter.KindFields, want: []int64{}},
		{name: "substring in middle", query: "otc", fields: filter.KindFields, want: []int64{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := filter.Filter(sample(), tt.query, tt.fields)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterUnicodeFolding(t *testing.T) {
	t.Parallel()

	records := []types.Record{
		{ID: 1, Player: "Straße"},
		{ID: 2, Player: "ΣΟΦΙΑ"},
		{ID: 3, Player: "O'zbek"},
	}

	assert.Equal(t, []int64{1}, ids(filter.Filter(records, "STRASSE", filter.Player)))
	assert.Equal(t, []int64{2}, ids(filter.Filter(records, "σοφια", filter.Player)))
	assert.Equal(t, []int64{3}, ids(filter.Filter(records, "o'Z", filter.Player)))
}

func TestFilterIdempotentAndStable(t *testing.T) {
	t.Parallel()

	once := filter.Filter(sample(), "Spam", filter.KindFields)
	twice := filter.Filter(once, "Spam", filter.KindFields)

	assert.Equal(t, once, twice)
	assert.Equal(t, []int64{1, 2, 4}, ids(twice))
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	records := sample()
	filter.Filter(records, "alex", filter.KindFields)

	assert.Equal(t, sample(), records)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Empty(t, filter.Normalize("   "))
	assert.Equal(t, filter.Normalize("steve"), filter.Normalize(" STEVE "))
}

func TestFieldsHas(t *testing.T) {
	t.Parallel()

	assert.True(t, filter.KindFields.Has(filter.Player))
	assert.True(t, filter.KindFields.Has(filter.Reason))
	assert.False(t, filter.SearchFields.Has(filter.Reason))
}

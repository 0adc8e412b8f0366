// Package filter narrows record sets by free-text queries.
package filter

import (
	"strings"

	"github.com/robalyx/modlog/internal/types"
	"golang.org/x/text/cases"
)

// Fields selects which record fields a query is matched against.
type Fields uint8

const (
	// Player matches against the player name.
	Player Fields = 1 << iota
	// Reason matches against the punishment reason.
	Reason
)

const (
	// SearchFields is used by the cross-kind search view.
	SearchFields = Player
	// KindFields is used by the per-kind list views.
	KindFields = Player | Reason
)

// Has reports whether f includes every field in other.
func (f Fields) Has(other Fields) bool {
	return f&other == other
}

// Filter returns the records whose selected fields contain the query, ignoring case.
// An empty or whitespace-only query returns records unchanged. Otherwise a new slice
// is returned with the original relative order.
func Filter(records []types.Record, query string, fields Fields) []types.Record {
	needle := strings.TrimSpace(query)
	if needle == "" {
		return records
	}

	folder := cases.Fold()
	needle = folder.String(needle)

	matched := make([]types.Record, 0, len(records))
	for i := range records {
		if matches(&records[i], needle, fields, folder) {
			matched = append(matched, records[i])
		}
	}

	return matched
}

// Normalize returns the trimmed query that Filter would compare against.
// Views use it to decide whether a query change actually changes the result.
func Normalize(query string) string {
	needle := strings.TrimSpace(query)
	if needle == "" {
		return ""
	}
	return cases.Fold().String(needle)
}

func matches(rec *types.Record, needle string, fields Fields, folder cases.Caser) bool {
	if fields.Has(Player) && strings.Contains(folder.String(rec.Player), needle) {
		return true
	}

	if fields.Has(Reason) && strings.Contains(folder.String(rec.Reason), needle) {
		return true
	}

	return false
}

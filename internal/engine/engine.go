// Package engine combines fetching, normalization, filtering and expiry
// evaluation into the read-only views every front end renders.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/robalyx/modlog/internal/convert"
	"github.com/robalyx/modlog/internal/endpoint"
	"github.com/robalyx/modlog/internal/expiry"
	"github.com/robalyx/modlog/internal/fetcher"
	"github.com/robalyx/modlog/internal/filter"
	"github.com/robalyx/modlog/internal/types"
	"go.uber.org/zap"
)

// Engine loads moderation records for one API base.
type Engine struct {
	fetcher *fetcher.Fetcher
	base    string
	logger  *zap.Logger
}

// New creates an Engine on top of a fetcher.
func New(f *fetcher.Fetcher, logger *zap.Logger) *Engine {
	return &Engine{
		fetcher: f,
		base:    f.Base(),
		logger:  logger.Named("engine"),
	}
}

// Base returns the API base records are loaded from.
func (e *Engine) Base() string {
	return e.base
}

// Load fetches and normalizes the records of one kind.
func (e *Engine) Load(ctx context.Context, kind types.Kind) (*Collection, error) {
	raws, err := e.fetcher.Fetch(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind.Collection(), err)
	}

	records := convert.Records(kind, raws)
	e.logger.Debug("Loaded collection",
		zap.String("kind", string(kind)),
		zap.Int("records", len(records)))

	return &Collection{Kind: kind, Records: records, base: e.base}, nil
}

// LoadAll fetches and normalizes every kind. Either all three kinds load or an
// error is returned.
func (e *Engine) LoadAll(ctx context.Context) (*Search, error) {
	raws, err := e.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load all: %w", err)
	}

	search := &Search{
		Bans:  convert.Records(types.KindBan, raws[types.KindBan]),
		Mutes: convert.Records(types.KindMute, raws[types.KindMute]),
		Kicks: convert.Records(types.KindKick, raws[types.KindKick]),
		base:  e.base,
	}

	e.logger.Debug("Loaded all collections",
		zap.Int("bans", len(search.Bans)),
		zap.Int("mutes", len(search.Mutes)),
		zap.Int("kicks", len(search.Kicks)))

	return search, nil
}

// Status fetches and normalizes the server status.
func (e *Engine) Status(ctx context.Context) (types.ServerStatus, error) {
	raw, err := e.fetcher.FetchStatus(ctx)
	if err != nil {
		return types.ServerStatus{}, fmt.Errorf("load status: %w", err)
	}

	return convert.Status(raw), nil
}

// Entry is a record prepared for display at a specific instant.
type Entry struct {
	types.Record

	Remaining expiry.Result `json:"remaining"`
	ImageURL  string        `json:"imageUrl"` // Evidence link resolved against the API base
	ShowTerm  bool          `json:"showTerm"` // Whether the remaining or permanent line is shown
}

// NewEntry evaluates a record against a clock sample.
func NewEntry(rec types.Record, base string, now time.Time) Entry {
	return Entry{
		Record:    rec,
		Remaining: expiry.Remaining(rec, now),
		ImageURL:  endpoint.ImageURL(base, rec.ImageURL),
		ShowTerm:  showTerm(&rec),
	}
}

// Entries evaluates every record against the same clock sample.
func Entries(records []types.Record, base string, now time.Time) []Entry {
	entries := make([]Entry, len(records))
	for i := range records {
		entries[i] = NewEntry(records[i], base, now)
	}
	return entries
}

// showTerm reports whether a record displays its remaining time. Mutes only
// show it when the payload carried a duration.
func showTerm(rec *types.Record) bool {
	switch rec.Kind {
	case types.KindBan:
		return true
	case types.KindMute:
		return rec.HasDuration
	case types.KindKick:
		return false
	default:
		return false
	}
}

// Collection is the loaded record list of one kind.
type Collection struct {
	Kind    types.Kind
	Records []types.Record

	base string
}

// Filter matches the query against player and reason.
func (c *Collection) Filter(query string) []types.Record {
	return filter.Filter(c.Records, query, filter.KindFields)
}

// Entries filters and evaluates the collection.
func (c *Collection) Entries(query string, now time.Time) []Entry {
	return Entries(c.Filter(query), c.base, now)
}

// Search is the loaded record list of every kind, filtered by player only.
type Search struct {
	Bans  []types.Record
	Mutes []types.Record
	Kicks []types.Record

	base string
}

// Records returns the records of one kind.
func (s *Search) Records(kind types.Kind) []types.Record {
	switch kind {
	case types.KindBan:
		return s.Bans
	case types.KindMute:
		return s.Mutes
	case types.KindKick:
		return s.Kicks
	default:
		return nil
	}
}

// Len returns the number of records across all kinds.
func (s *Search) Len() int {
	return len(s.Bans) + len(s.Mutes) + len(s.Kicks)
}

// Filter matches the query against player names in every kind.
func (s *Search) Filter(query string) *Search {
	return &Search{
		Bans:  filter.Filter(s.Bans, query, filter.SearchFields),
		Mutes: filter.Filter(s.Mutes, query, filter.SearchFields),
		Kicks: filter.Filter(s.Kicks, query, filter.SearchFields),
		base:  s.base,
	}
}

// Entries filters and evaluates the records of one kind.
func (s *Search) Entries(kind types.Kind, query string, now time.Time) []Entry {
	return Entries(filter.Filter(s.Records(kind), query, filter.SearchFields), s.base, now)
}

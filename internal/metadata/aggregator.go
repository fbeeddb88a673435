package metadata

import (
	"encoding/json"
	"fmt"

	"github.com/Skyluker4/Audfill/internal/logger"
)

// Aggregator merges per-source projections of a recognition result into a
// SongRecord.
type Aggregator struct {
	providers map[Source]Provider
	logger    *logger.Logger
}

// NewAggregator creates an Aggregator over the given providers. One of them
// must serve the audd.io baseline.
func NewAggregator(providers []Provider, log *logger.Logger) *Aggregator {
	m := make(map[Source]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Aggregator{providers: m, logger: log}
}

// Aggregate builds a record from result (the "result" object of a successful
// recognition response). Requested sources are merged in the order given, so
// the first one wins; the audd.io baseline is always merged last.
func (a *Aggregator) Aggregate(result json.RawMessage, requested []Source) (*SongRecord, error) {
	rec := NewSongRecord()

	seen := make(map[Source]bool, len(requested))
	for _, src := range requested {
		if src == SourceAudd || seen[src] {
			continue
		}
		seen[src] = true

		if err := a.Merge(rec, src, result); err != nil {
			return nil, err
		}
	}

	if err := a.Merge(rec, SourceAudd, result); err != nil {
		return nil, err
	}
	return rec, nil
}

// Merge extracts src's fields from result and stores them in rec under src.
// Merging the same source again overwrites its earlier values. rec is left
// untouched when extraction fails.
func (a *Aggregator) Merge(rec *SongRecord, src Source, result json.RawMessage) error {
	p, ok := a.providers[src]
	if !ok {
		return fmt.Errorf("no provider registered for source %q", src)
	}

	raw := result
	if src != SourceAudd {
		sub, found, err := subDocument(result, src)
		if err != nil {
			return err
		}
		if !found {
			a.logger.Warn("No %s data in the response, skipping source", src)
			return nil
		}
		raw = sub
	}

	proj, err := p.Extract(raw)
	if err != nil {
		return fmt.Errorf("failed to extract %s data: %w", src, err)
	}

	for field, value := range proj {
		rec.Set(field, src, value)
	}
	a.logger.Debug("Merged %d fields from %s", len(proj), src)
	return nil
}

// subDocument returns result[src]. A missing or null member means the
// catalog had no match for the song.
func subDocument(result json.RawMessage, src Source) (json.RawMessage, bool, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(result, &members); err != nil {
		return nil, false, fmt.Errorf("failed to decode result: %w", err)
	}

	sub, ok := members[string(src)]
	if !ok || string(sub) == "null" {
		return nil, false, nil
	}
	return sub, true, nil
}

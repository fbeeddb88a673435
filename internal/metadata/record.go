package metadata

import (
	"slices"
	"time"
)

// Entry is one source's value for a field.
type Entry struct {
	Source Source
	Value  any
}

// SongRecord is the aggregated view of one identified song. For every field
// it keeps the contributing sources in merge order; the first entry has the
// highest precedence.
type SongRecord struct {
	fields  map[Field][]Entry
	sources []Source
}

// NewSongRecord returns an empty record.
func NewSongRecord() *SongRecord {
	return &SongRecord{fields: make(map[Field][]Entry)}
}

// Set stores value for field under src. Setting a source twice replaces its
// value in place, keeping its original precedence.
func (r *SongRecord) Set(field Field, src Source, value any) {
	if r.fields == nil {
		r.fields = make(map[Field][]Entry)
	}
	if !slices.Contains(r.sources, src) {
		r.sources = append(r.sources, src)
	}

	entries := r.fields[field]
	for i := range entries {
		if entries[i].Source == src {
			entries[i].Value = value
			return
		}
	}
	r.fields[field] = append(entries, Entry{Source: src, Value: value})
}

// First returns the highest-precedence entry for field.
func (r *SongRecord) First(field Field) (Entry, bool) {
	entries := r.fields[field]
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[0], true
}

// Entries returns field's entries in precedence order.
func (r *SongRecord) Entries(field Field) []Entry {
	return slices.Clone(r.fields[field])
}

// Lookup returns the value src contributed to field.
func (r *SongRecord) Lookup(field Field, src Source) (any, bool) {
	for _, e := range r.fields[field] {
		if e.Source == src {
			return e.Value, true
		}
	}
	return nil, false
}

// Sources lists every source merged into the record, in merge order.
func (r *SongRecord) Sources() []Source {
	return slices.Clone(r.sources)
}

// String returns the highest-precedence string value for field.
func (r *SongRecord) String(field Field) (string, bool) {
	return first[string](r, field)
}

// Int returns the highest-precedence integer value for field.
func (r *SongRecord) Int(field Field) (int, bool) {
	return first[int](r, field)
}

// Bool returns the highest-precedence boolean value for field.
func (r *SongRecord) Bool(field Field) (bool, bool) {
	return first[bool](r, field)
}

// Date returns the highest-precedence release date.
func (r *SongRecord) Date() (ReleaseDate, bool) {
	return first[ReleaseDate](r, FieldReleaseDate)
}

// Duration returns the highest-precedence track duration.
func (r *SongRecord) Duration() (time.Duration, bool) {
	return first[time.Duration](r, FieldDuration)
}

// Strings returns the highest-precedence list value for field.
func (r *SongRecord) Strings(field Field) ([]string, bool) {
	return first[[]string](r, field)
}

func first[T any](r *SongRecord, field Field) (T, bool) {
	var zero T
	e, ok := r.First(field)
	if !ok {
		return zero, false
	}
	v, ok := e.Value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

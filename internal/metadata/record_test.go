package metadata

import (
	"reflect"
	"testing"
	"time"
)

func TestSongRecordPrecedence(t *testing.T) {
	rec := NewSongRecord()
	rec.Set(FieldArtist, SourceSpotify, "Spotify Artist")
	rec.Set(FieldArtist, SourceDeezer, "Deezer Artist")
	rec.Set(FieldArtist, SourceAudd, "Baseline Artist")

	got, ok := rec.String(FieldArtist)
	if !ok || got != "Spotify Artist" {
		t.Errorf("String(artist) = %q, %v; want Spotify Artist", got, ok)
	}

	want := []Entry{
		{Source: SourceSpotify, Value: "Spotify Artist"},
		{Source: SourceDeezer, Value: "Deezer Artist"},
		{Source: SourceAudd, Value: "Baseline Artist"},
	}
	if entries := rec.Entries(FieldArtist); !reflect.DeepEqual(entries, want) {
		t.Errorf("Entries(artist) = %v, want %v", entries, want)
	}
}

func TestSongRecordSetReplacesInPlace(t *testing.T) {
	rec := NewSongRecord()
	rec.Set(FieldTitle, SourceAppleMusic, "old")
	rec.Set(FieldTitle, SourceAudd, "baseline")
	rec.Set(FieldTitle, SourceAppleMusic, "new")

	entries := rec.Entries(FieldTitle)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Source != SourceAppleMusic || entries[0].Value != "new" {
		t.Errorf("first entry = %v, want apple_music/new", entries[0])
	}
	if got := rec.Sources(); !reflect.DeepEqual(got, []Source{SourceAppleMusic, SourceAudd}) {
		t.Errorf("Sources() = %v", got)
	}
}

func TestSongRecordEmptyField(t *testing.T) {
	rec := NewSongRecord()

	if _, ok := rec.First(FieldComposer); ok {
		t.Error("First on empty field reported a value")
	}
	if s, ok := rec.String(FieldComposer); ok || s != "" {
		t.Errorf("String on empty field = %q, %v", s, ok)
	}
	if _, ok := rec.Date(); ok {
		t.Error("Date on empty record reported a value")
	}
	if entries := rec.Entries(FieldComposer); len(entries) != 0 {
		t.Errorf("Entries on empty field = %v", entries)
	}
}

func TestSongRecordTypedAccessors(t *testing.T) {
	rec := NewSongRecord()
	rec.Set(FieldTrack, SourceSpotify, 7)
	rec.Set(FieldExplicit, SourceSpotify, true)
	rec.Set(FieldDuration, SourceSpotify, 3*time.Minute)
	rec.Set(FieldArtistURLs, SourceSpotify, []string{"https://a", "https://b"})
	rec.Set(FieldReleaseDate, SourceSpotify, ReleaseDate{Year: 2021, Month: 3, Day: 5})

	if v, ok := rec.Int(FieldTrack); !ok || v != 7 {
		t.Errorf("Int(track) = %d, %v", v, ok)
	}
	if v, ok := rec.Bool(FieldExplicit); !ok || !v {
		t.Errorf("Bool(explicit) = %v, %v", v, ok)
	}
	if v, ok := rec.Duration(); !ok || v != 3*time.Minute {
		t.Errorf("Duration() = %v, %v", v, ok)
	}
	if v, ok := rec.Strings(FieldArtistURLs); !ok || len(v) != 2 {
		t.Errorf("Strings(artist_urls) = %v, %v", v, ok)
	}
	if v, ok := rec.Date(); !ok || v.String() != "2021-03-05" {
		t.Errorf("Date() = %v, %v", v, ok)
	}

	// Wrong type reads as absent rather than panicking.
	if _, ok := rec.String(FieldTrack); ok {
		t.Error("String(track) should not match an int value")
	}
}

func TestSongRecordLookup(t *testing.T) {
	rec := NewSongRecord()
	rec.Set(FieldRating, SourceDeezer, 512000)

	if v, ok := rec.Lookup(FieldRating, SourceDeezer); !ok || v != 512000 {
		t.Errorf("Lookup(rating, deezer) = %v, %v", v, ok)
	}
	if _, ok := rec.Lookup(FieldRating, SourceSpotify); ok {
		t.Error("Lookup(rating, spotify) found a value")
	}
}

func TestParseReleaseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    ReleaseDate
		wantErr bool
	}{
		{in: "2021-03-05", want: ReleaseDate{2021, 3, 5}},
		{in: "1975-10-31", want: ReleaseDate{1975, 10, 31}},
		{in: "2021", wantErr: true},
		{in: "2021-03", wantErr: true},
		{in: "2021-03-05-01", wantErr: true},
		{in: "2021-xx-05", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseReleaseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseReleaseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseReleaseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSource(t *testing.T) {
	for _, name := range []string{"lyrics", "apple_music", "spotify", "napster", "deezer", " Spotify "} {
		if _, err := ParseSource(name); err != nil {
			t.Errorf("ParseSource(%q) error: %v", name, err)
		}
	}
	for _, name := range []string{"audd.io", "youtube", ""} {
		if _, err := ParseSource(name); err == nil {
			t.Errorf("ParseSource(%q) expected error", name)
		}
	}
}

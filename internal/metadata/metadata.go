package metadata

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Source identifies where a piece of metadata came from.
type Source string

const (
	SourceAudd       Source = "audd.io"
	SourceAppleMusic Source = "apple_music"
	SourceSpotify    Source = "spotify"
	SourceNapster    Source = "napster"
	SourceDeezer     Source = "deezer"
	SourceLyrics     Source = "lyrics"
)

// AuxiliarySources returns the sources a user may request, in the precedence
// order used when every source is requested at once.
func AuxiliarySources() []Source {
	return []Source{SourceLyrics, SourceAppleMusic, SourceSpotify, SourceNapster, SourceDeezer}
}

// ParseSource validates a user-supplied source name. The baseline is not
// requestable: it is always merged.
func ParseSource(s string) (Source, error) {
	name := Source(strings.ToLower(strings.TrimSpace(s)))
	for _, src := range AuxiliarySources() {
		if name == src {
			return src, nil
		}
	}
	return "", fmt.Errorf("unknown source %q, valid sources: lyrics, apple_music, spotify, napster, deezer", s)
}

// Field names one semantic attribute of a song.
type Field string

const (
	FieldTitle        Field = "title"
	FieldShortTitle   Field = "short_title"
	FieldArtist       Field = "artist"
	FieldComposer     Field = "composer"
	FieldReleaseDate  Field = "release_date"
	FieldDuration     Field = "duration"
	FieldGenre        Field = "genre"
	FieldExplicit     Field = "explicit"
	FieldAlbum        Field = "album"
	FieldAlbumArtist  Field = "album_artist"
	FieldDisc         Field = "disc"
	FieldTrack        Field = "track"
	FieldRating       Field = "rating"
	FieldLink         Field = "link"
	FieldArtURL       Field = "art_url"
	FieldArtistArtURL Field = "artist_art_url"
	FieldPreviewURL   Field = "preview_url"
	FieldArtistURLs   Field = "artist_urls"
	FieldISRC         Field = "isrc"

	// Not template fields, but carried on the record.
	FieldFoundAt Field = "found_at"
	FieldLyrics  Field = "lyrics"
)

// Fields lists every field in display order.
func Fields() []Field {
	return []Field{
		FieldTitle, FieldShortTitle, FieldArtist, FieldComposer, FieldReleaseDate,
		FieldDuration, FieldGenre, FieldExplicit, FieldAlbum, FieldAlbumArtist,
		FieldDisc, FieldTrack, FieldRating, FieldLink, FieldArtURL, FieldArtistArtURL,
		FieldPreviewURL, FieldArtistURLs, FieldISRC, FieldFoundAt, FieldLyrics,
	}
}

// Projection is the set of fields one source contributes to a record.
type Projection map[Field]any

// Provider extracts a source's fields from its sub-document of the
// recognition result. A provider must fail, not guess, when a key it needs is
// missing.
type Provider interface {
	Name() Source
	Extract(raw json.RawMessage) (Projection, error)
}

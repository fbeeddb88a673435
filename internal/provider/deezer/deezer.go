package deezer

import (
	"encoding/json"
	"time"

	"github.com/Skyluker4/Audfill/internal/metadata"
)

// Provider projects the "deezer" sub-document of a recognition result, a
// Deezer track object.
type Provider struct{}

// New creates a new Deezer provider.
func New() Provider {
	return Provider{}
}

func (Provider) Name() metadata.Source { return metadata.SourceDeezer }

// Extract reads the Deezer track. Every key is required. Deezer carries no
// full release date on the embedded track, so none is projected.
func (Provider) Extract(raw json.RawMessage) (metadata.Projection, error) {
	d, err := metadata.ParseDoc(raw)
	if err != nil {
		return nil, err
	}

	artist := d.Sub("artist")
	album := d.Sub("album")
	proj := metadata.Projection{
		metadata.FieldTitle:        d.String("title"),
		metadata.FieldShortTitle:   d.String("title_short"),
		metadata.FieldArtist:       artist.String("name"),
		metadata.FieldDuration:     time.Duration(d.Int("duration")) * time.Second,
		metadata.FieldExplicit:     d.Bool("explicit_lyrics"),
		metadata.FieldAlbum:        album.String("title"),
		metadata.FieldRating:       d.Int("rank"),
		metadata.FieldArtistURLs:   []string{artist.String("link")},
		metadata.FieldPreviewURL:   d.String("preview"),
		metadata.FieldArtURL:       album.String("cover"),
		metadata.FieldArtistArtURL: artist.String("picture"),
	}

	if err := d.Err(); err != nil {
		return nil, err
	}
	return proj, nil
}

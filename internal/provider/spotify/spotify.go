package spotify

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Skyluker4/Audfill/internal/metadata"
)

// Provider projects the "spotify" sub-document of a recognition result, a
// Spotify Web API track object.
type Provider struct{}

// New creates a new Spotify provider.
func New() Provider {
	return Provider{}
}

func (Provider) Name() metadata.Source { return metadata.SourceSpotify }

// Extract reads the Spotify track. Every key is required.
func (Provider) Extract(raw json.RawMessage) (metadata.Projection, error) {
	d, err := metadata.ParseDoc(raw)
	if err != nil {
		return nil, err
	}

	var names, artistURLs []string
	for _, a := range d.List("artists") {
		names = append(names, a.String("name"))
		artistURLs = append(artistURLs, a.String("external_urls", "spotify"))
	}

	album := d.Sub("album")
	proj := metadata.Projection{
		metadata.FieldTitle:      d.String("name"),
		metadata.FieldArtist:     strings.Join(names, ", "),
		metadata.FieldDuration:   time.Duration(d.Int("duration_ms")) * time.Millisecond,
		metadata.FieldExplicit:   d.Bool("explicit"),
		metadata.FieldAlbum:      album.String("name"),
		metadata.FieldDisc:       d.Int("disc_number"),
		metadata.FieldTrack:      d.Int("track_number"),
		metadata.FieldISRC:       d.String("external_ids", "isrc"),
		metadata.FieldRating:     d.Int("popularity"),
		metadata.FieldLink:       d.String("external_urls", "spotify"),
		metadata.FieldArtistURLs: artistURLs,
		// Spotify lists album images largest first.
		metadata.FieldArtURL: album.String("images", 0, "url"),
	}
	released := album.String("release_date")

	if err := d.Err(); err != nil {
		return nil, err
	}

	date, err := metadata.ParseReleaseDate(released)
	if err != nil {
		return nil, err
	}
	proj[metadata.FieldReleaseDate] = date

	return proj, nil
}

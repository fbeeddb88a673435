package applemusic

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/Skyluker4/Audfill/internal/metadata"
)

// Provider projects the "apple_music" sub-document of a recognition result.
type Provider struct{}

// New creates a new Apple Music provider.
func New() Provider {
	return Provider{}
}

func (Provider) Name() metadata.Source { return metadata.SourceAppleMusic }

// Extract reads the Apple Music catalog entry. Every key is required.
func (Provider) Extract(raw json.RawMessage) (metadata.Projection, error) {
	d, err := metadata.ParseDoc(raw)
	if err != nil {
		return nil, err
	}

	var genres []string
	for _, g := range d.List("genreNames") {
		genres = append(genres, g.String())
	}

	proj := metadata.Projection{
		metadata.FieldTitle:      d.String("name"),
		metadata.FieldArtist:     d.String("artistName"),
		metadata.FieldComposer:   d.String("composerName"),
		metadata.FieldDuration:   time.Duration(d.Int("durationInMillis")) * time.Millisecond,
		metadata.FieldGenre:      strings.Join(genres, ", "),
		metadata.FieldAlbum:      d.String("albumName"),
		metadata.FieldDisc:       d.Int("discNumber"),
		metadata.FieldTrack:      d.Int("trackNumber"),
		metadata.FieldLink:       d.String("url"),
		metadata.FieldArtURL:     artworkURL(d.Sub("artwork")),
		metadata.FieldPreviewURL: d.String("previews", 0, "url"),
		metadata.FieldISRC:       d.String("isrc"),
	}
	released := d.String("releaseDate")

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

// artworkURL fills the {w}x{h} placeholders of an Apple artwork template with
// the artwork's full dimensions.
func artworkURL(art metadata.Doc) string {
	width := art.Int("width")
	height := art.Int("height")
	url := art.String("url")

	url = strings.ReplaceAll(url, "{w}", strconv.Itoa(width))
	url = strings.ReplaceAll(url, "{h}", strconv.Itoa(height))
	return url
}

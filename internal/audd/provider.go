package audd

import (
	"encoding/json"

	"github.com/Skyluker4/Audfill/internal/metadata"
)

// Provider projects the baseline fields audd.io places directly on the
// result object.
type Provider struct{}

// NewProvider creates the baseline provider.
func NewProvider() Provider {
	return Provider{}
}

func (Provider) Name() metadata.Source { return metadata.SourceAudd }

func (Provider) Extract(raw json.RawMessage) (metadata.Projection, error) {
	d, err := metadata.ParseDoc(raw)
	if err != nil {
		return nil, err
	}

	proj := metadata.Projection{
		metadata.FieldTitle:   d.String("title"),
		metadata.FieldArtist:  d.String("artist"),
		metadata.FieldFoundAt: d.String("timecode"),
		metadata.FieldAlbum:   d.String("album"),
		metadata.FieldLink:    d.String("song_link"),
	}
	released := d.String("release_date")

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

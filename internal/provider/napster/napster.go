package napster

import (
	"encoding/json"
	"time"

	"github.com/Skyluker4/Audfill/internal/metadata"
)

// Provider projects the "napster" sub-document of a recognition result.
type Provider struct{}

// New creates a new Napster provider.
func New() Provider {
	return Provider{}
}

func (Provider) Name() metadata.Source { return metadata.SourceNapster }

// Extract reads the Napster track. Every key is required.
func (Provider) Extract(raw json.RawMessage) (metadata.Projection, error) {
	d, err := metadata.ParseDoc(raw)
	if err != nil {
		return nil, err
	}

	proj := metadata.Projection{
		metadata.FieldTitle:      d.String("name"),
		metadata.FieldArtist:     d.String("artistName"),
		metadata.FieldDuration:   time.Duration(d.Int("playbackSeconds")) * time.Second,
		metadata.FieldAlbum:      d.String("albumName"),
		metadata.FieldExplicit:   d.Bool("isExplicit"),
		metadata.FieldDisc:       d.Int("disc"),
		metadata.FieldTrack:      d.Int("index"),
		metadata.FieldPreviewURL: d.String("previewURL"),
		metadata.FieldISRC:       d.String("isrc"),
	}

	if err := d.Err(); err != nil {
		return nil, err
	}
	return proj, nil
}

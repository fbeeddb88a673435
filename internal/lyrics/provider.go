// Package lyrics supplies song lyrics: from the "lyrics" sub-document of a
// recognition result, or from LRCLib when the result carried none.
package lyrics

import (
	"encoding/json"

	"github.com/Skyluker4/Audfill/internal/metadata"
)

// Provider projects the "lyrics" sub-document of a recognition result.
type Provider struct{}

// NewProvider creates the lyrics provider.
func NewProvider() Provider {
	return Provider{}
}

func (Provider) Name() metadata.Source { return metadata.SourceLyrics }

func (Provider) Extract(raw json.RawMessage) (metadata.Projection, error) {
	d, err := metadata.ParseDoc(raw)
	if err != nil {
		return nil, err
	}

	text := d.String("lyrics")
	if err := d.Err(); err != nil {
		return nil, err
	}
	return metadata.Projection{metadata.FieldLyrics: text}, nil
}

package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Skyluker4/Audfill/internal/metadata"
	"github.com/Skyluker4/Audfill/internal/timespec"
)

var sourceTitles = map[metadata.Source]string{
	metadata.SourceAudd:       "Audd.io",
	metadata.SourceAppleMusic: "Apple Music",
	metadata.SourceSpotify:    "Spotify",
	metadata.SourceNapster:    "Napster",
	metadata.SourceDeezer:     "Deezer",
	metadata.SourceLyrics:     "Lyrics",
}

var fieldLabels = map[metadata.Field]string{
	metadata.FieldTitle:        "Title",
	metadata.FieldShortTitle:   "Short Title",
	metadata.FieldArtist:       "Artist",
	metadata.FieldComposer:     "Composer",
	metadata.FieldReleaseDate:  "Release Date",
	metadata.FieldDuration:     "Duration",
	metadata.FieldGenre:        "Genre",
	metadata.FieldExplicit:     "Explicit",
	metadata.FieldAlbum:        "Album",
	metadata.FieldAlbumArtist:  "Album Artist",
	metadata.FieldDisc:         "Disc",
	metadata.FieldTrack:        "Track",
	metadata.FieldRating:       "Rating",
	metadata.FieldLink:         "Link",
	metadata.FieldArtURL:       "Artwork",
	metadata.FieldArtistArtURL: "Artist Photo",
	metadata.FieldPreviewURL:   "Preview",
	metadata.FieldArtistURLs:   "Artist URLs",
	metadata.FieldISRC:         "ISRC",
	metadata.FieldFoundAt:      "Timecode",
}

// WriteInfo prints what each source said about the song: the audd.io
// baseline first, then every requested source that contributed, in
// precedence order.
func WriteInfo(w io.Writer, rec *metadata.SongRecord, sources []metadata.Source) {
	writeBlock(w, rec, metadata.SourceAudd)

	contributed := rec.Sources()
	for _, src := range sources {
		if src == metadata.SourceAudd || !slices.Contains(contributed, src) {
			continue
		}
		fmt.Fprintln(w)
		writeBlock(w, rec, src)
	}
}

func writeBlock(w io.Writer, rec *metadata.SongRecord, src metadata.Source) {
	fmt.Fprintf(w, "%s:\n", sourceTitles[src])

	if src == metadata.SourceLyrics {
		if v, ok := rec.Lookup(metadata.FieldLyrics, src); ok {
			fmt.Fprintln(w, v)
		}
		return
	}

	for _, field := range metadata.Fields() {
		label, ok := fieldLabels[field]
		if !ok {
			continue
		}
		v, ok := rec.Lookup(field, src)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", label, formatValue(v))
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case time.Duration:
		return timespec.Format(val)
	case metadata.ReleaseDate:
		return val.String()
	case []string:
		return strings.Join(val, ", ")
	}
	return fmt.Sprint(v)
}

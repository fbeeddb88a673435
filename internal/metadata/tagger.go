package metadata

import (
	"fmt"
	"strconv"

	"go.senan.xyz/taglib"
)

// Tags maps the record onto taglib tag keys, taking the highest-precedence
// value of each field. Fields no source supplied are omitted.
func Tags(rec *SongRecord) map[string][]string {
	tags := make(map[string][]string)

	str := func(key string, field Field) {
		if v, ok := rec.String(field); ok && v != "" {
			tags[key] = []string{v}
		}
	}
	num := func(key string, field Field) {
		if v, ok := rec.Int(field); ok && v > 0 {
			tags[key] = []string{strconv.Itoa(v)}
		}
	}

	str(taglib.Title, FieldTitle)
	str(taglib.Artist, FieldArtist)
	str(taglib.Album, FieldAlbum)
	str(taglib.AlbumArtist, FieldAlbumArtist)
	str(taglib.Composer, FieldComposer)
	str(taglib.Genre, FieldGenre)
	str(taglib.ISRC, FieldISRC)
	str(taglib.Lyrics, FieldLyrics)
	num(taglib.TrackNumber, FieldTrack)
	num(taglib.DiscNumber, FieldDisc)

	if d, ok := rec.Date(); ok {
		tags[taglib.Date] = []string{d.String()}
	}

	return tags
}

// WriteTags writes the record's metadata to an audio file.
func WriteTags(path string, rec *SongRecord) error {
	if err := taglib.WriteTags(path, Tags(rec), 0); err != nil {
		return fmt.Errorf("failed to write tags to %s: %w", path, err)
	}
	return nil
}

// WriteArtwork embeds artwork image data into an audio file.
func WriteArtwork(path string, imageData []byte) error {
	if len(imageData) == 0 {
		return nil
	}
	if err := taglib.WriteImage(path, imageData); err != nil {
		return fmt.Errorf("failed to write artwork to %s: %w", path, err)
	}
	return nil
}

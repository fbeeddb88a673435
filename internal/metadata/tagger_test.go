package metadata

import (
	"os/exec"
	"path/filepath"
	"testing"

	"go.senan.xyz/taglib"
)

// createTestAudioFile generates a minimal MP3 using ffmpeg.
// Skips the test if ffmpeg is not available.
func createTestAudioFile(t *testing.T, dir string) string {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available, skipping tagger test")
	}

	path := filepath.Join(dir, "test.mp3")
	cmd := exec.Command("ffmpeg", "-f", "lavfi", "-i", "anullsrc=r=44100:cl=mono", "-t", "0.1", "-q:a", "9", path)
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to create test audio file: %v", err)
	}
	return path
}

func taggedRecord() *SongRecord {
	rec := NewSongRecord()
	rec.Set(FieldTitle, SourceAppleMusic, "Test Song")
	rec.Set(FieldArtist, SourceAppleMusic, "Test Artist")
	rec.Set(FieldAlbum, SourceAppleMusic, "Test Album")
	rec.Set(FieldGenre, SourceAppleMusic, "Pop, Dance")
	rec.Set(FieldTrack, SourceAppleMusic, 3)
	rec.Set(FieldDisc, SourceAppleMusic, 1)
	rec.Set(FieldReleaseDate, SourceAppleMusic, ReleaseDate{Year: 2023, Month: 4, Day: 7})
	rec.Set(FieldTitle, SourceAudd, "Baseline Title")
	return rec
}

func TestTags(t *testing.T) {
	tags := Tags(taggedRecord())

	checks := map[string]string{
		taglib.Title:       "Test Song",
		taglib.Artist:      "Test Artist",
		taglib.Album:       "Test Album",
		taglib.Genre:       "Pop, Dance",
		taglib.TrackNumber: "3",
		taglib.DiscNumber:  "1",
		taglib.Date:        "2023-04-07",
	}
	for key, want := range checks {
		got := ""
		if vals := tags[key]; len(vals) > 0 {
			got = vals[0]
		}
		if got != want {
			t.Errorf("tag %s = %q, want %q", key, got, want)
		}
	}

	if _, ok := tags[taglib.Composer]; ok {
		t.Error("composer tag set although no source supplied it")
	}
}

func TestWriteTags(t *testing.T) {
	path := createTestAudioFile(t, t.TempDir())

	if err := WriteTags(path, taggedRecord()); err != nil {
		t.Fatalf("WriteTags failed: %v", err)
	}

	tags, err := taglib.ReadTags(path)
	if err != nil {
		t.Fatalf("failed to read tags: %v", err)
	}
	if got := tags[taglib.Title]; len(got) == 0 || got[0] != "Test Song" {
		t.Errorf("title = %v, want Test Song", got)
	}
	if got := tags[taglib.TrackNumber]; len(got) == 0 || got[0] != "3" {
		t.Errorf("track = %v, want 3", got)
	}
}

func TestWriteArtworkEmpty(t *testing.T) {
	// Should be a no-op with empty data
	if err := WriteArtwork("/nonexistent", nil); err != nil {
		t.Errorf("expected nil error for empty image, got %v", err)
	}
}

func TestWriteTagsNonexistentFile(t *testing.T) {
	if err := WriteTags("/nonexistent/file.mp3", taggedRecord()); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

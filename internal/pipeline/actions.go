package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Skyluker4/Audfill/internal/lyrics"
	"github.com/Skyluker4/Audfill/internal/metadata"
	"github.com/Skyluker4/Audfill/internal/naming"
	"github.com/Skyluker4/Audfill/pkg/utils"
)

// act runs the requested actions for one identified song. Every action is
// attempted; the joined failures are returned.
func (r *Runner) act(ctx context.Context, rec *metadata.SongRecord, input string, isFile bool) error {
	filename := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	var errs []error

	if r.opts.Lyrics {
		errs = append(errs, r.printLyrics(ctx, rec))
	}
	if r.opts.Link {
		if link, ok := rec.String(metadata.FieldLink); ok && link != "" {
			fmt.Fprintln(r.deps.Out, link)
		} else {
			errs = append(errs, errors.New("link not found for song"))
		}
	}
	if r.opts.Art != "" {
		errs = append(errs, r.saveAsset(ctx, rec, metadata.FieldArtURL, "art", r.opts.Art, filename))
	}
	if r.opts.ArtistArt != "" {
		errs = append(errs, r.saveAsset(ctx, rec, metadata.FieldArtistArtURL, "artist art", r.opts.ArtistArt, filename))
	}
	if r.opts.Preview != "" {
		errs = append(errs, r.saveAsset(ctx, rec, metadata.FieldPreviewURL, "preview", r.opts.Preview, filename))
	}
	if isFile && r.opts.Tag {
		errs = append(errs, r.tag(ctx, rec, input))
	}
	if isFile && r.opts.Rename != "" {
		errs = append(errs, r.rename(rec, input, filename))
	}
	if r.opts.Info {
		WriteInfo(r.deps.Out, rec, r.sources)
	}

	return errors.Join(errs...)
}

func (r *Runner) printLyrics(ctx context.Context, rec *metadata.SongRecord) error {
	text, ok := rec.String(metadata.FieldLyrics)
	if (!ok || text == "") && r.deps.Lyrics != nil {
		r.logger.Debug("No lyrics in recognition result, asking LRCLib")
		result, err := r.deps.Lyrics.Fetch(ctx, lyrics.QueryFromRecord(rec))
		if err != nil {
			return fmt.Errorf("lyrics lookup failed: %w", err)
		}
		text = result.Text()
	}
	if text == "" {
		return errors.New("lyrics not found for song")
	}
	fmt.Fprintln(r.deps.Out, text)
	return nil
}

func (r *Runner) saveAsset(ctx context.Context, rec *metadata.SongRecord, field metadata.Field, what, template, filename string) error {
	assetURL, ok := rec.String(field)
	if !ok || assetURL == "" {
		return fmt.Errorf("%s not found for song", what)
	}

	base, err := r.resolver.Resolve(rec, template, filename)
	if err != nil {
		return err
	}
	if base == "" {
		return fmt.Errorf("%s template %q resolved to an empty name", what, template)
	}

	path, err := r.deps.Fetcher.Save(ctx, assetURL, base)
	if err != nil {
		return err
	}
	r.logger.Info("Saved %s to %s", what, path)
	return nil
}

func (r *Runner) tag(ctx context.Context, rec *metadata.SongRecord, path string) error {
	if err := metadata.WriteTags(path, rec); err != nil {
		return err
	}

	artURL, ok := rec.String(metadata.FieldArtURL)
	if !ok || artURL == "" {
		return nil
	}
	img, _, err := r.deps.Fetcher.Fetch(ctx, artURL)
	if err != nil {
		r.logger.Warn("Could not fetch cover art for tagging: %v", err)
		return nil
	}
	return metadata.WriteArtwork(path, img)
}

// rename moves path to the resolved name in the same directory, keeping the
// extension. Sub-directories in the template are created.
func (r *Runner) rename(rec *metadata.SongRecord, path, filename string) error {
	name, err := r.resolver.Resolve(rec, r.opts.Rename, filename)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("rename template %q resolved to an empty name", r.opts.Rename)
	}

	want := filepath.Join(filepath.Dir(path), name+filepath.Ext(path))
	if want == path {
		return nil
	}
	target := naming.UniquePath(want)
	if target != want {
		r.logger.Warn("File %q already exists. Renaming to %q", want, target)
	}

	if err := utils.MoveFile(path, target); err != nil {
		return err
	}
	r.logger.Info("Renamed %s to %s", path, target)
	return nil
}

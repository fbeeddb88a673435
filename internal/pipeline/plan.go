// Package pipeline processes each input end to end: recognition,
// aggregation and the requested actions.
package pipeline

import (
	"slices"

	"github.com/Skyluker4/Audfill/internal/audio"
	"github.com/Skyluker4/Audfill/internal/metadata"
	"github.com/Skyluker4/Audfill/internal/naming"
)

// Options are the user's choices for one run.
type Options struct {
	Window audio.WindowOptions

	// Sources are the requested sources, highest precedence first.
	Sources    []metadata.Source
	AllSources bool
	// Minimum disables implicit sources.
	Minimum bool
	Market  string
	Token   string

	Lyrics bool
	Info   bool
	JSON   bool
	Link   bool
	Tag    bool

	// Templates; empty disables the action.
	Rename    string
	Art       string
	ArtistArt string
	Preview   string
}

// PlanSources returns the sources to request, in precedence order. The
// user's sources come first. --all-sources appends the rest in the fixed
// order. Unless Minimum is set, sources needed by the chosen actions are
// added when no requested source can supply the data.
func PlanSources(opts Options) []metadata.Source {
	var plan []metadata.Source
	add := func(src metadata.Source) {
		if !slices.Contains(plan, src) {
			plan = append(plan, src)
		}
	}
	noneOf := func(srcs ...metadata.Source) bool {
		for _, s := range srcs {
			if slices.Contains(plan, s) {
				return false
			}
		}
		return true
	}

	for _, s := range opts.Sources {
		add(s)
	}
	if opts.AllSources {
		for _, s := range metadata.AuxiliarySources() {
			add(s)
		}
	}
	if opts.Minimum {
		return plan
	}

	const (
		apple   = metadata.SourceAppleMusic
		spotify = metadata.SourceSpotify
		napster = metadata.SourceNapster
		deezer  = metadata.SourceDeezer
	)

	if opts.Art != "" && noneOf(apple, spotify, deezer) {
		add(apple)
	}
	if opts.ArtistArt != "" {
		add(deezer)
	}
	// Spotify previews are usually empty, so it does not count here.
	if opts.Preview != "" && noneOf(apple, napster, deezer) {
		add(apple)
	}

	if t := opts.Rename; t != "" {
		if naming.UsesDirective(t, 't') {
			add(deezer)
		}
		if naming.UsesDirective(t, 'g') {
			add(apple)
		}
		if naming.UsesDirective(t, 'x') && noneOf(spotify, napster, deezer) {
			add(spotify)
		}
		if (naming.UsesDirective(t, '#') || naming.UsesDirective(t, 'k')) && noneOf(apple, spotify, napster) {
			add(apple)
		}
		if naming.UsesDirective(t, 'i') && noneOf(apple, spotify, napster) {
			add(apple)
		}
		if naming.UsesDirective(t, 'c') {
			add(apple)
		}
	}

	if opts.Lyrics {
		add(metadata.SourceLyrics)
	}
	return plan
}

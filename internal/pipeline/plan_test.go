package pipeline

import (
	"reflect"
	"testing"

	"github.com/Skyluker4/Audfill/internal/metadata"
)

func TestPlanSources(t *testing.T) {
	const (
		apple   = metadata.SourceAppleMusic
		spotify = metadata.SourceSpotify
		napster = metadata.SourceNapster
		deezer  = metadata.SourceDeezer
		lyr     = metadata.SourceLyrics
	)

	tests := []struct {
		name string
		opts Options
		want []metadata.Source
	}{
		{
			name: "nothing requested",
			opts: Options{},
			want: nil,
		},
		{
			name: "user order kept",
			opts: Options{Sources: []metadata.Source{deezer, apple}},
			want: []metadata.Source{deezer, apple},
		},
		{
			name: "duplicates dropped",
			opts: Options{Sources: []metadata.Source{spotify, spotify}},
			want: []metadata.Source{spotify},
		},
		{
			name: "all sources after user order",
			opts: Options{Sources: []metadata.Source{deezer}, AllSources: true},
			want: []metadata.Source{deezer, lyr, apple, spotify, napster},
		},
		{
			name: "art adds apple music",
			opts: Options{Art: "%a"},
			want: []metadata.Source{apple},
		},
		{
			name: "art satisfied by deezer",
			opts: Options{Sources: []metadata.Source{deezer}, Art: "%a"},
			want: []metadata.Source{deezer},
		},
		{
			name: "artist art adds deezer",
			opts: Options{Sources: []metadata.Source{apple}, ArtistArt: "%a"},
			want: []metadata.Source{apple, deezer},
		},
		{
			name: "preview ignores spotify",
			opts: Options{Sources: []metadata.Source{spotify}, Preview: "%T"},
			want: []metadata.Source{spotify, apple},
		},
		{
			name: "preview satisfied by napster",
			opts: Options{Sources: []metadata.Source{napster}, Preview: "%T"},
			want: []metadata.Source{napster},
		},
		{
			name: "rename short title and genre",
			opts: Options{Rename: "%t [%g]"},
			want: []metadata.Source{deezer, apple},
		},
		{
			name: "rename explicit adds spotify",
			opts: Options{Rename: "%T (%x)"},
			want: []metadata.Source{spotify},
		},
		{
			name: "rename explicit satisfied by deezer",
			opts: Options{Sources: []metadata.Source{deezer}, Rename: "%T (%x)"},
			want: []metadata.Source{deezer},
		},
		{
			name: "rename track satisfied by spotify",
			opts: Options{Sources: []metadata.Source{spotify}, Rename: "%# %T %i"},
			want: []metadata.Source{spotify},
		},
		{
			name: "rename track adds apple music",
			opts: Options{Rename: "%k-%# %T"},
			want: []metadata.Source{apple},
		},
		{
			name: "rename composer",
			opts: Options{Sources: []metadata.Source{spotify}, Rename: "%c - %T"},
			want: []metadata.Source{spotify, apple},
		},
		{
			name: "escaped directive ignored",
			opts: Options{Rename: "100%%t"},
			want: nil,
		},
		{
			name: "lyrics",
			opts: Options{Lyrics: true},
			want: []metadata.Source{lyr},
		},
		{
			name: "minimum adds nothing",
			opts: Options{Minimum: true, Lyrics: true, Art: "%a", Rename: "%t %g", Sources: []metadata.Source{napster}},
			want: []metadata.Source{napster},
		},
		{
			name: "minimum keeps all sources",
			opts: Options{Minimum: true, AllSources: true},
			want: []metadata.Source{lyr, apple, spotify, napster, deezer},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanSources(tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PlanSources() = %v, want %v", got, tt.want)
			}
		})
	}
}

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Skyluker4/Audfill/internal/config"
	"github.com/Skyluker4/Audfill/internal/metadata"
	"github.com/Skyluker4/Audfill/internal/pipeline"
)

// parse runs args through the real flag set and returns the merged
// configuration and options.
func parse(t *testing.T, args ...string) (config.Config, pipeline.Options, error) {
	t.Helper()

	var (
		cfg     config.Config
		opts    pipeline.Options
		loadErr error
	)
	app := &cli.App{
		Name:  "audfill",
		Flags: flags(),
		Action: func(c *cli.Context) error {
			cfg, _, loadErr = loadConfig(c)
			if loadErr != nil {
				return nil
			}
			opts, loadErr = buildOptions(c, cfg)
			return nil
		},
	}
	if err := app.Run(append([]string{"audfill"}, args...)); err != nil {
		t.Fatalf("app.Run() error: %v", err)
	}
	return cfg, opts, loadErr
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvToken, "")
	return home
}

func TestFlagsOverrideConfig(t *testing.T) {
	home := isolate(t)

	path := filepath.Join(home, "custom.yaml")
	yaml := "api_token: from-file\nmarket: de\nsources: [deezer]\ntimeout: 5s\n"
	if err := os.WriteFile(path, []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, opts, err := parse(t,
		"--config", path,
		"-t", "from-flag",
		"-s", "spotify", "-s", "apple_music",
		"-b", "0:30", "-l", "10",
		"-r", "%a - %T",
		"-q",
		"song.mp3",
	)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.APIToken != "from-flag" || opts.Token != "from-flag" {
		t.Errorf("token = %q / %q, want from-flag", cfg.APIToken, opts.Token)
	}
	if cfg.Market != "de" {
		t.Errorf("market = %q, want de from file", cfg.Market)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %s, want 5s", cfg.Timeout)
	}
	wantSources := []metadata.Source{metadata.SourceSpotify, metadata.SourceAppleMusic}
	if !reflect.DeepEqual(opts.Sources, wantSources) {
		t.Errorf("sources = %v, want %v", opts.Sources, wantSources)
	}
	if opts.Window.Start != "0:30" || opts.Window.Length != "10" {
		t.Errorf("window = %+v", opts.Window)
	}
	if opts.Rename != "%a - %T" || !cfg.Quiet {
		t.Errorf("rename = %q, quiet = %v", opts.Rename, cfg.Quiet)
	}
}

func TestTokenFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvToken, "from-env")

	cfg, _, err := parse(t, "song.mp3")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.APIToken != "from-env" {
		t.Errorf("token = %q, want from-env", cfg.APIToken)
	}
	if cfg.Market != "us" {
		t.Errorf("market = %q, want default us", cfg.Market)
	}
}

func TestTokenFromEnvFile(t *testing.T) {
	home := isolate(t)
	os.Unsetenv(config.EnvToken)

	envFile := filepath.Join(home, "audfill.env")
	if err := os.WriteFile(envFile, []byte(config.EnvToken+"=from-dotenv\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := parse(t, "--env-file", envFile, "song.mp3")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.APIToken != "from-dotenv" {
		t.Errorf("token = %q, want from-dotenv", cfg.APIToken)
	}
}

func TestInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown source", []string{"-s", "tidal", "song.mp3"}},
		{"bad market", []string{"-c", "usa", "song.mp3"}},
		{"bad timeout", []string{"--timeout=0s", "song.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if _, _, err := parse(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestNeedsFFmpeg(t *testing.T) {
	custom := pipeline.Options{}
	custom.Window.Start = "0:10"

	tests := []struct {
		name   string
		inputs []string
		opts   pipeline.Options
		want   bool
	}{
		{"file", []string{"song.mp3"}, pipeline.Options{}, true},
		{"url", []string{"https://example.com/a.mp3"}, pipeline.Options{}, false},
		{"url with window", []string{"https://example.com/a.mp3"}, custom, true},
		{"mixed", []string{"https://example.com/a.mp3", "b.flac"}, pipeline.Options{}, true},
	}
	for _, tt := range tests {
		if got := needsFFmpeg(tt.inputs, tt.opts); got != tt.want {
			t.Errorf("%s: needsFFmpeg() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

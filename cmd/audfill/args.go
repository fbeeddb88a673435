package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Skyluker4/Audfill/internal/audio"
	"github.com/Skyluker4/Audfill/internal/config"
	"github.com/Skyluker4/Audfill/internal/metadata"
	"github.com/Skyluker4/Audfill/internal/pipeline"
)

const templateHelp = `The format for naming files is:
    Percent Symbol: %%
    Filename:       %f
    Artist(s):      %a
    Composer:       %c
    Album:          %b
    Genre(s):       %g
    Title:          %T
    Short Title:    %t
    Explicit:       %x
    ISRC:           %i
    Disc Number:    %k
    Track Number:   %#
    Release Date (capital = extended, lowercase = short):
                    %Y, %y
                    %M, %m
                    %D, %d`

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "start", Aliases: []string{"b"}, Usage: `time to start the sample at, "mm:ss.ms"`},
		&cli.StringFlag{Name: "end", Aliases: []string{"e"}, Usage: `time to end the sample at, "mm:ss.ms" (at most 25 seconds after start)`},
		&cli.StringFlag{Name: "length", Aliases: []string{"l"}, Usage: `sample length, "mm:ss.ms" (at most 25 seconds)`},
		&cli.BoolFlag{Name: "minimum", Aliases: []string{"n"}, Usage: "don't implicitly add sources"},
		&cli.StringSliceFlag{Name: "source", Aliases: []string{"s"}, Usage: "get extra data from `SOURCE` (lyrics, apple_music, spotify, napster, deezer); earlier sources win"},
		&cli.BoolFlag{Name: "all-sources", Aliases: []string{"S"}, Usage: "get extra data from all sources"},
		&cli.StringFlag{Name: "market", Aliases: []string{"c"}, Usage: `market for Apple Music and Spotify lookups, e.g. "us", "es"`},
		&cli.BoolFlag{Name: "lyrics", Aliases: []string{"w"}, Usage: "print the lyrics"},
		&cli.StringFlag{Name: "rename", Aliases: []string{"r"}, Usage: "rename the file(s) to `FORMAT`, keeping the extension"},
		&cli.BoolFlag{Name: "info", Aliases: []string{"i"}, Usage: "print all info gathered about the song"},
		&cli.BoolFlag{Name: "output-json", Aliases: []string{"j"}, Usage: "print the raw audd.io response"},
		&cli.BoolFlag{Name: "link", Aliases: []string{"u"}, Usage: "print a link to the song"},
		&cli.StringFlag{Name: "art", Aliases: []string{"a"}, Usage: "save the cover art to `FORMAT`"},
		&cli.StringFlag{Name: "artist-art", Aliases: []string{"g"}, Usage: "save the artist picture to `FORMAT`"},
		&cli.StringFlag{Name: "preview", Aliases: []string{"p"}, Usage: "save the song preview to `FORMAT`"},
		&cli.BoolFlag{Name: "tag", Usage: "write the gathered metadata and cover art into the file"},
		&cli.StringFlag{Name: "token", Aliases: []string{"t"}, Usage: "audd.io API token (default $" + config.EnvToken + ")"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "don't print diagnostics; requested output is still printed"},
		&cli.BoolFlag{Name: "verbose", Usage: "show detailed output"},
		&cli.StringFlag{Name: "log-file", Usage: "also write diagnostics to `PATH`"},
		&cli.DurationFlag{Name: "timeout", Usage: "HTTP timeout per request"},
		&cli.StringFlag{Name: "config", Usage: "path to config file"},
		&cli.StringFlag{Name: "env-file", Usage: "load environment variables from `PATH` instead of ./.env"},
		&cli.BoolFlag{Name: "init-config", Usage: "create a default config file and exit"},
	}
}

// loadConfig merges configuration. Priority: CLI flags > environment >
// config file > defaults.
func loadConfig(c *cli.Context) (config.Config, string, error) {
	configPath := c.String("config")

	cfg, err := config.LoadConfigFile(configPath)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to load config: %w", err)
	}
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	var envFiles []string
	if f := c.String("env-file"); f != "" {
		envFiles = append(envFiles, f)
	}
	if err := config.LoadEnv(envFiles...); err != nil {
		return config.Config{}, "", err
	}
	cfg.ApplyEnv()

	if c.IsSet("token") {
		cfg.APIToken = c.String("token")
	}
	if c.IsSet("market") {
		cfg.Market = c.String("market")
	}
	if c.IsSet("source") {
		cfg.Sources = c.StringSlice("source")
	}
	if c.Bool("all-sources") {
		cfg.AllSources = true
	}
	if c.Bool("minimum") {
		cfg.Minimum = true
	}
	if c.Bool("quiet") {
		cfg.Quiet = true
		cfg.Verbose = false
	}
	if c.Bool("verbose") {
		cfg.Verbose = true
		cfg.Quiet = false
	}
	if c.IsSet("log-file") {
		cfg.LogFile = config.ExpandHome(c.String("log-file"))
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", fmt.Errorf("configuration error: %w", err)
	}
	return cfg, configPath, nil
}

// buildOptions collects the per-run choices from the flags and the merged
// configuration.
func buildOptions(c *cli.Context, cfg config.Config) (pipeline.Options, error) {
	sources, err := cfg.ParsedSources()
	if err != nil {
		return pipeline.Options{}, err
	}

	return pipeline.Options{
		Window: audio.WindowOptions{
			Start:  c.String("start"),
			End:    c.String("end"),
			Length: c.String("length"),
		},
		Sources:    sources,
		AllSources: cfg.AllSources,
		Minimum:    cfg.Minimum,
		Market:     cfg.Market,
		Token:      cfg.APIToken,
		Lyrics:     c.Bool("lyrics"),
		Info:       c.Bool("info"),
		JSON:       c.Bool("output-json"),
		Link:       c.Bool("link"),
		Tag:        c.Bool("tag"),
		Rename:     c.String("rename"),
		Art:        c.String("art"),
		ArtistArt:  c.String("artist-art"),
		Preview:    c.String("preview"),
	}, nil
}

// initConfigFile creates a new config file with default values
func initConfigFile() error {
	path := config.GetDefaultConfigPath()

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists at: %s\n", path)
		fmt.Println("Delete it first if you want to recreate it.")
		return nil
	}

	cfg := config.DefaultConfig()

	if err := config.SaveConfigFile(cfg, path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created default config file at: %s\n", path)
	fmt.Println("\nYou can now edit this file to customize your settings.")
	fmt.Println("Available options:")
	fmt.Println("  api_token: audd.io token (or set " + config.EnvToken + ")")
	fmt.Println("  market: two-letter market code, e.g. us, es")
	fmt.Printf("  sources: list of %v\n", metadata.AuxiliarySources())
	fmt.Println("  all_sources, minimum, quiet, verbose: true/false")
	fmt.Println("  log_file: path for a diagnostics log")
	fmt.Printf("  timeout: HTTP timeout, e.g. %s\n", 30*time.Second)
	return nil
}

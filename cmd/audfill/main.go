package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/Skyluker4/Audfill/internal/asset"
	"github.com/Skyluker4/Audfill/internal/audd"
	"github.com/Skyluker4/Audfill/internal/audio"
	"github.com/Skyluker4/Audfill/internal/logger"
	"github.com/Skyluker4/Audfill/internal/lyrics"
	"github.com/Skyluker4/Audfill/internal/pipeline"
	"github.com/Skyluker4/Audfill/internal/progress"
	"github.com/Skyluker4/Audfill/internal/shutdown"
	"github.com/Skyluker4/Audfill/pkg/utils"
)

const version = "1.0.0"

func main() {
	app := &cli.App{
		Name:            "audfill",
		Usage:           "Get information about a sound file by looking it up on audd.io",
		UsageText:       "audfill [options] FILENAME...\n\nFILENAME is a path, glob pattern, directory or URL of a sound file.\n\n" + templateHelp,
		Version:         version,
		Flags:           flags(),
		Action:          run,
		HideHelpCommand: true,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}

// run processes every input and exits with the number of failed inputs,
// capped at 255.
func run(c *cli.Context) error {
	if c.Bool("init-config") {
		return initConfigFile()
	}
	if c.NArg() == 0 {
		cli.ShowAppHelpAndExit(c, 1)
	}

	cfg, configPath, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Verbose)
	log.Quiet = cfg.Quiet
	defer log.Close()

	if cfg.LogFile != "" {
		if err := log.SetFileLog(cfg.LogFile); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] Failed to setup file logging: %v\n", err)
		} else {
			log.Debug("Logging to file: %s", cfg.LogFile)
		}
	}
	if configPath != "" {
		log.Debug("Loaded configuration from: %s", configPath)
	}
	if cfg.APIToken == "" {
		log.Debug("No API token set, audd.io limits anonymous use")
	}

	opts, err := buildOptions(c, cfg)
	if err != nil {
		return err
	}

	inputs := c.Args().Slice()
	if needsFFmpeg(inputs, opts) {
		log.Debug("Checking dependencies...")
		if err := utils.CheckDependencies(); err != nil {
			return fmt.Errorf("dependency check failed: %w", err)
		}
	}

	sh := shutdown.New()
	sh.Listen()
	defer sh.Shutdown()

	deps := pipeline.Deps{
		Recognizer: audd.New(cfg.APIURL, cfg.Timeout),
		Slicer:     audio.NewSlicer(log),
		Fetcher:    asset.NewFetcher(cfg.Timeout, log),
		Lyrics:     lyrics.NewClient(),
		Logger:     log,
		Out:        os.Stdout,
	}

	interactive := !cfg.Quiet && isatty.IsTerminal(os.Stderr.Fd()) && isatty.IsTerminal(os.Stdout.Fd())

	var bar *progress.Bar
	hooks := pipeline.Hooks{
		OnStart: func(total int) {
			if interactive && !cfg.Verbose && total > 1 {
				bar = progress.New(os.Stderr, total)
				log.SetProgressBar(true)
			}
		},
		OnInput: func(input string) {
			if bar != nil {
				bar.Describe(input)
			}
		},
		OnDone: func() {
			if bar != nil {
				bar.Increment()
			}
		},
	}
	if interactive {
		hooks.Wait = func(ctx context.Context, title string, fn func(context.Context) error) error {
			if bar != nil {
				return fn(ctx)
			}
			return spinner.New().Title(title).Context(ctx).ActionWithErr(fn).Run()
		}
	}

	runner := pipeline.NewRunner(opts, deps, hooks)
	failures := runner.Run(sh.Context(), inputs)

	if bar != nil {
		bar.Finish()
		log.SetProgressBar(false)
	}

	if failures > 0 {
		log.Debug("%d input(s) failed", failures)
		return cli.Exit("", min(failures, 255))
	}
	return nil
}

// needsFFmpeg reports whether any input will be sliced locally.
func needsFFmpeg(inputs []string, opts pipeline.Options) bool {
	for _, in := range inputs {
		if !utils.IsURL(in) || opts.Window.Custom() {
			return true
		}
	}
	return false
}

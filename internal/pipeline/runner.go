package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Skyluker4/Audfill/internal/audd"
	"github.com/Skyluker4/Audfill/internal/audio"
	"github.com/Skyluker4/Audfill/internal/logger"
	"github.com/Skyluker4/Audfill/internal/lyrics"
	"github.com/Skyluker4/Audfill/internal/metadata"
	"github.com/Skyluker4/Audfill/internal/naming"
	"github.com/Skyluker4/Audfill/internal/provider/applemusic"
	"github.com/Skyluker4/Audfill/internal/provider/deezer"
	"github.com/Skyluker4/Audfill/internal/provider/napster"
	"github.com/Skyluker4/Audfill/internal/provider/spotify"
	"github.com/Skyluker4/Audfill/pkg/utils"
)

// Recognizer identifies songs. *audd.Client implements it.
type Recognizer interface {
	RecognizeFile(ctx context.Context, req audd.Request, name string, audio io.Reader) (*audd.Response, error)
	RecognizeURL(ctx context.Context, req audd.Request, audioURL string) (*audd.Response, error)
}

// Slicer cuts the recognition sample out of a file. *audio.Slicer
// implements it.
type Slicer interface {
	Slice(ctx context.Context, path string, w audio.Window) ([]byte, error)
}

// Fetcher downloads remote files. *asset.Fetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, string, error)
	Save(ctx context.Context, rawURL, base string) (string, error)
}

// LyricsFetcher looks lyrics up when the recognition result has none.
// *lyrics.Client implements it.
type LyricsFetcher interface {
	Fetch(ctx context.Context, q lyrics.Query) (lyrics.Result, error)
}

// Deps are the collaborators a Runner drives.
type Deps struct {
	Recognizer Recognizer
	Slicer     Slicer
	Fetcher    Fetcher
	Lyrics     LyricsFetcher
	Logger     *logger.Logger
	// Out receives primary output: JSON, lyrics, links and info.
	Out io.Writer
}

// Hooks let the caller observe a run.
type Hooks struct {
	// OnStart is called once inputs are expanded.
	OnStart func(total int)
	// OnInput is called before each input is processed.
	OnInput func(input string)
	// OnDone is called after each input, failed or not.
	OnDone func()
	// Wait wraps each recognition call, e.g. to show a spinner.
	Wait func(ctx context.Context, title string, fn func(context.Context) error) error
}

// Runner processes inputs one after another.
type Runner struct {
	opts       Options
	sources    []metadata.Source
	window     audio.Window
	deps       Deps
	hooks      Hooks
	aggregator *metadata.Aggregator
	resolver   *naming.Resolver
	logger     *logger.Logger
}

// NewRunner plans sources and the recognition window for opts.
func NewRunner(opts Options, deps Deps, hooks Hooks) *Runner {
	log := deps.Logger
	if log == nil {
		log = logger.Discard()
		deps.Logger = log
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}

	sources := PlanSources(opts)
	log.Debug("Requesting sources: %v", sources)

	market := opts.Market
	if market != "" && market != audd.DefaultMarket &&
		!slices.Contains(sources, metadata.SourceAppleMusic) && !slices.Contains(sources, metadata.SourceSpotify) {
		log.Warn("Market specified but will not be used")
	}

	providers := []metadata.Provider{
		audd.NewProvider(),
		applemusic.New(),
		spotify.New(),
		napster.New(),
		deezer.New(),
		lyrics.NewProvider(),
	}

	return &Runner{
		opts:       opts,
		sources:    sources,
		window:     audio.ResolveWindow(opts.Window, log),
		deps:       deps,
		hooks:      hooks,
		aggregator: metadata.NewAggregator(providers, log),
		resolver:   naming.NewResolver(log),
		logger:     log,
	}
}

// Sources returns the planned sources.
func (r *Runner) Sources() []metadata.Source {
	return slices.Clone(r.sources)
}

type job struct {
	input string
	isURL bool
}

// Run processes every input and returns how many failed. File inputs may
// be glob patterns or directories. A pattern matching nothing counts as one
// failure.
func (r *Runner) Run(ctx context.Context, inputs []string) int {
	failures := 0

	var jobs []job
	for _, in := range inputs {
		if utils.IsURL(in) {
			jobs = append(jobs, job{input: in, isURL: true})
			continue
		}
		files, err := utils.ExpandInputs(in)
		if err != nil {
			r.logger.Error("%v", err)
			failures++
			continue
		}
		if len(files) == 0 {
			r.logger.Error("No files match %s", in)
			failures++
			continue
		}
		for _, f := range files {
			jobs = append(jobs, job{input: f})
		}
	}

	if r.hooks.OnStart != nil {
		r.hooks.OnStart(len(jobs))
	}

	for _, j := range jobs {
		if ctx.Err() != nil {
			r.logger.Warn("Interrupted, skipping remaining inputs")
			failures++
			break
		}
		if r.hooks.OnInput != nil {
			r.hooks.OnInput(j.input)
		}

		var err error
		if j.isURL {
			err = r.processURL(ctx, j.input)
		} else {
			err = r.processFile(ctx, j.input)
		}
		if err != nil {
			r.logger.Error("%s: %v", j.input, err)
			failures++
		}

		if r.hooks.OnDone != nil {
			r.hooks.OnDone()
		}
	}

	return failures
}

func (r *Runner) request() audd.Request {
	return audd.Request{Return: r.sources, Market: r.opts.Market, Token: r.opts.Token}
}

func (r *Runner) wait(ctx context.Context, title string, fn func(context.Context) error) error {
	if r.hooks.Wait == nil {
		return fn(ctx)
	}
	return r.hooks.Wait(ctx, title, fn)
}

func (r *Runner) processURL(ctx context.Context, rawURL string) error {
	r.logger.Info("Processing URL %s", rawURL)
	if r.opts.Rename != "" || r.opts.Tag {
		r.logger.Warn("Cannot rename or tag a URL. Ignoring file operations")
	}

	if !r.opts.Window.Custom() {
		var resp *audd.Response
		err := r.wait(ctx, "Recognizing "+rawURL, func(ctx context.Context) error {
			var err error
			resp, err = r.deps.Recognizer.RecognizeURL(ctx, r.request(), rawURL)
			return err
		})
		return r.handle(ctx, resp, err, rawURL, false)
	}

	r.logger.Info("Downloading file from URL because custom times are specified")
	data, _, err := r.deps.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}

	dir, err := utils.CreateTempDir()
	if err != nil {
		return err
	}
	defer utils.Cleanup(dir)

	name := filepath.Base(rawURL)
	if q := strings.IndexAny(name, "?#"); q >= 0 {
		name = name[:q]
	}
	if name == "" || name == "." || name == "/" {
		name = "download"
	}
	tmp := filepath.Join(dir, name)
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to save download: %w", err)
	}

	resp, err := r.recognizeFile(ctx, tmp)
	return r.handle(ctx, resp, err, rawURL, false)
}

func (r *Runner) processFile(ctx context.Context, path string) error {
	r.logger.Info("Processing file %s", path)

	resp, err := r.recognizeFile(ctx, path)
	return r.handle(ctx, resp, err, path, true)
}

func (r *Runner) recognizeFile(ctx context.Context, path string) (*audd.Response, error) {
	sample, err := r.deps.Slicer.Slice(ctx, path, r.window)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".mp3"
	var resp *audd.Response
	err = r.wait(ctx, "Recognizing "+filepath.Base(path), func(ctx context.Context) error {
		var err error
		resp, err = r.deps.Recognizer.RecognizeFile(ctx, r.request(), name, bytes.NewReader(sample))
		return err
	})
	return resp, err
}

// handle prints the raw response when asked, then acts on a recognized
// song.
func (r *Runner) handle(ctx context.Context, resp *audd.Response, recErr error, input string, isFile bool) error {
	if resp != nil && r.opts.JSON {
		pretty, err := resp.Pretty()
		if err != nil {
			return err
		}
		fmt.Fprintln(r.deps.Out, string(pretty))
	}

	var apiErr *audd.APIError
	switch {
	case recErr == nil:
	case errors.Is(recErr, audd.ErrNotFound), errors.As(recErr, &apiErr):
		return recErr
	default:
		return fmt.Errorf("recognition failed: %w", recErr)
	}

	rec, err := r.aggregator.Aggregate(resp.Result, r.sources)
	if err != nil {
		return err
	}
	return r.act(ctx, rec, input, isFile)
}

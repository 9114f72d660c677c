package shop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/youruser/shopmosaic/internal/catalog"
	imagepkg "github.com/youruser/shopmosaic/internal/image"
	"github.com/youruser/shopmosaic/internal/logging"
	"github.com/youruser/shopmosaic/internal/util"
)

const (
	lockFileName   = ".shopmosaic.lock"
	lockRetryDelay = 100 * time.Millisecond
)

// Options configures a Pipeline. Zero Workers uses one worker per CPU.
type Options struct {
	OutputDir string
	Workers   int
	Fetch     FetchFunc
	Logger    *slog.Logger
}

// Pipeline turns item lists into published mosaics.
type Pipeline struct {
	assets    *imagepkg.Assets
	composer  *imagepkg.Composer
	outputDir string
	workers   int
	fetch     FetchFunc
	logger    *slog.Logger
}

// New creates a pipeline that renders with assets and writes under
// opts.OutputDir.
func New(assets *imagepkg.Assets, opts Options) *Pipeline {
	p := &Pipeline{
		assets:    assets,
		composer:  imagepkg.NewComposer(assets),
		outputDir: opts.OutputDir,
		workers:   opts.Workers,
		fetch:     opts.Fetch,
		logger:    logging.Or(opts.Logger),
	}
	if p.workers <= 0 {
		p.workers = runtime.NumCPU()
	}
	if p.fetch == nil {
		p.fetch = Fetch
	}
	if p.outputDir == "" {
		p.outputDir = "."
	}
	return p
}

// OutputDir returns the root under which mosaics are written.
func (p *Pipeline) OutputDir() string { return p.outputDir }

// Drop records an item whose card could not be produced.
type Drop struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Report summarizes one mosaic run.
type Report struct {
	RunID    string            `json:"run_id"`
	Path     string            `json:"path,omitempty"`
	Rendered int               `json:"rendered"`
	Dropped  []Drop            `json:"dropped,omitempty"`
	Layout   imagepkg.Layout   `json:"-"`
	Title    imagepkg.TitleFit `json:"-"`
}

type outcome struct {
	card imagepkg.Card
	err  error
}

// RenderCards renders one card per item on the worker pool and returns the
// successful cards in item order together with the failures.
func (p *Pipeline) RenderCards(ctx context.Context, items []catalog.Item) ([]imagepkg.Card, []Drop) {
	results := make([]outcome, len(items))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range min(p.workers, len(items)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.renderOne(ctx, i, items[i])
			}
		}()
	}
	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	cards := make([]imagepkg.Card, 0, len(items))
	var drops []Drop
	for i, r := range results {
		if r.err != nil {
			drops = append(drops, Drop{ID: items[i].ID, Reason: r.err.Error()})
			continue
		}
		cards = append(cards, r.card)
	}
	return cards, drops
}

func (p *Pipeline) renderOne(ctx context.Context, i int, item catalog.Item) outcome {
	if err := ctx.Err(); err != nil {
		return outcome{err: err}
	}
	src, err := p.fetch(ctx, item.Image)
	if err != nil {
		return outcome{err: fmt.Errorf("fetch image: %w", err)}
	}
	card, err := imagepkg.RenderCard(item, src, i, p.assets)
	if err != nil {
		return outcome{err: err}
	}
	return outcome{card: card}
}

// Run renders items and publishes one mosaic for cfg. The destination is
// checked before any item is fetched. When no card survives, Run returns
// imagepkg.ErrNoCards and writes nothing.
func (p *Pipeline) Run(ctx context.Context, items []catalog.Item, cfg imagepkg.MosaicConfig) (Report, error) {
	report := Report{RunID: uuid.NewString()}
	logger := p.logger.With(
		slog.String("run_id", report.RunID),
		slog.String("destination", cfg.Destination.Kind.String()),
	)
	if err := cfg.Destination.Validate(); err != nil {
		return report, err
	}

	start := time.Now()
	cards, drops := p.RenderCards(ctx, items)
	report.Rendered = len(cards)
	report.Dropped = drops
	for _, d := range drops {
		logger.Warn("card dropped", slog.String("item_id", d.ID), slog.String("error", d.Reason))
	}
	if len(cards) == 0 {
		logger.Warn("no items to compose", slog.Int("requested", len(items)))
		return report, imagepkg.ErrNoCards
	}

	unlock, err := p.lock(ctx)
	if err != nil {
		return report, err
	}
	defer unlock()

	res, err := p.composer.ComposeFile(cards, cfg, p.outputDir)
	if err != nil {
		return report, err
	}
	report.Path = res.Path
	report.Layout = res.Layout
	report.Title = res.Title

	logger.Info("mosaic saved",
		slog.String("path", res.Path),
		slog.Int("cards", len(cards)),
		slog.Int("dropped", len(drops)),
		slog.Int("title_size", res.Title.Size),
		slog.Bool("title_truncated", res.Title.Truncated),
		slog.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// lock serializes publishing into the output directory across processes.
func (p *Pipeline) lock(ctx context.Context) (func(), error) {
	if err := util.EnsureDir(p.outputDir); err != nil {
		return nil, fmt.Errorf("ensure output dir: %w", err)
	}
	fl := flock.New(filepath.Join(p.outputDir, lockFileName))
	ok, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("lock output dir: %w", err)
	}
	if !ok {
		return nil, errors.New("lock output dir: not acquired")
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			p.logger.Warn("unlock output dir", slog.String("error", err.Error()))
		}
	}, nil
}

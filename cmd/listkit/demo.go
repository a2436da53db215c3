package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/listkit/internal/config"
	"github.com/vango-dev/listkit/internal/sample"
	"github.com/vango-dev/listkit/pkg/adapter"
	"github.com/vango-dev/listkit/pkg/differ"
	"github.com/vango-dev/listkit/pkg/host/term"
	"github.com/vango-dev/listkit/pkg/paging"
)

type demoOptions struct {
	dir      string
	items    int
	rounds   int
	interval time.Duration
	paged    bool
	s3       s3Options
}

func demoCmd() *cobra.Command {
	var opts demoOptions

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render the sample list in the terminal",
		Long: `Render the sample list in the terminal grid.

In list mode every round renames the titles and rotates the content rows,
printing the grid after each diff is applied. In paged mode every round
scrolls to the end of the list, which loads the next page.

Examples:
  listkit demo
  listkit demo --rounds=5 --items=60
  listkit demo --paged
  listkit demo --s3-bucket=my-bucket --s3-prefix=exports/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "Directory containing listkit.json")
	cmd.Flags().IntVarP(&opts.items, "items", "n", 41, "Number of items")
	cmd.Flags().IntVarP(&opts.rounds, "rounds", "r", 3, "Number of rounds")
	cmd.Flags().DurationVarP(&opts.interval, "interval", "i", 500*time.Millisecond, "Pause between rounds")
	cmd.Flags().BoolVarP(&opts.paged, "paged", "p", false, "Load the list page by page")
	opts.s3.register(cmd)

	return cmd
}

func runDemo(ctx context.Context, opts demoOptions) error {
	cfg, err := config.LoadOrDefault(opts.dir)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The loop stands in for the render goroutine: diffs are applied and the
	// grid is read only from it.
	loop := differ.NewLoop(64)
	go loop.Run(ctx)
	defer loop.Close()

	gridCfg := term.Config{
		SpanCount: cfg.Grid.SpanCount,
		Width:     cfg.Grid.Width,
		Renderer:  term.NewRenderer(os.Stdout),
	}

	printBanner()
	switch {
	case opts.s3.bucket != "":
		return demoS3(ctx, loop, gridCfg, cfg, opts)
	case opts.paged:
		return demoPaged(ctx, loop, gridCfg, cfg, opts)
	default:
		return demoList(ctx, loop, gridCfg, opts)
	}
}

func demoList(ctx context.Context, loop *differ.Loop, gridCfg term.Config, opts demoOptions) error {
	a, err := sample.NewAdapter(adapter.WithExecutor(loop))
	if err != nil {
		return err
	}
	grid := term.NewGrid(a, gridCfg)
	a.Attach(grid)

	items := sample.Build(0, opts.items)
	for round := 0; round < opts.rounds; round++ {
		if round > 0 {
			items = rotate(sample.Retitle(items, round))
		}
		applied := make(chan struct{})
		a.SubmitWithCallback(items, func() { close(applied) })
		select {
		case <-applied:
		case <-ctx.Done():
			return nil
		}
		printFrame(loop, grid, fmt.Sprintf("round %d: %d rows", round, a.ItemCount()))
		if !pause(ctx, opts.interval) {
			return nil
		}
	}

	created, reused := grid.Stats()
	success("%d rounds, %d units created, %d reused", opts.rounds, created, reused)
	return nil
}

// rotate moves the first content row to the end of the list.
func rotate(items []sample.Item) []sample.Item {
	for i, it := range items {
		if _, ok := it.(sample.Content); ok {
			out := make([]sample.Item, 0, len(items))
			out = append(out, items[:i]...)
			out = append(out, items[i+1:]...)
			return append(out, it)
		}
	}
	return items
}

func demoPaged(ctx context.Context, loop *differ.Loop, gridCfg term.Config, cfg *config.Config, opts demoOptions) error {
	pager, err := paging.NewPager[int, sample.Item](
		sample.Source{Limit: opts.items, Latency: 100 * time.Millisecond},
		cfg.PagingConfig(),
	)
	if err != nil {
		return err
	}
	return scroll(ctx, loop, gridCfg, pager, opts)
}

// scroll shows a paged list, touching the last row every round.
func scroll[K comparable](ctx context.Context, loop *differ.Loop, gridCfg term.Config, pager *paging.Pager[K, sample.Item], opts demoOptions) error {
	a, err := sample.NewPagingAdapter(adapter.WithExecutor(loop))
	if err != nil {
		return err
	}
	grid := term.NewGrid(a, gridCfg)
	a.Attach(grid)
	a.Submit(ctx, pager)

	for round := 0; round < opts.rounds; round++ {
		if !pause(ctx, opts.interval) {
			return nil
		}
		loop.Do(func() {
			if n := a.ItemCount(); n > 0 {
				_, _ = a.Item(n - 1)
			}
		})
		state := a.LoadState()
		printFrame(loop, grid, fmt.Sprintf("round %d: %d rows, %s", round, a.ItemCount(), state))
		switch state {
		case paging.Error:
			info("load failed: %v", pager.Err())
			if err := a.Retry(ctx); err != nil {
				return err
			}
		case paging.Done:
			success("all pages loaded")
			return nil
		}
	}
	return nil
}

func printFrame(loop *differ.Loop, grid *term.Grid, title string) {
	loop.Do(func() {
		fmt.Printf("\n── %s ──\n%s\n", title, grid.Render())
	})
}

func pause(ctx context.Context, d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}

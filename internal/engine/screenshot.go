package engine

import (
	"context"
	"errors"
	"path"
	"path/filepath"

	"github.com/IshaanNene/hnarcade/internal/catalog"
)

// ScreenshotOptions controls a screenshot run.
type ScreenshotOptions struct {
	DryRun bool
	All    bool // re-capture documents that already have a screenshot
}

// ScreenshotResult summarizes a screenshot run.
type ScreenshotResult struct {
	Total   int
	Success []string
	Skipped []string
	NoURL   []string
	Failed  []string
}

// Screenshots captures each catalog game's play page and records the image
// path in the document's frontmatter.
func (e *Engine) Screenshots(ctx context.Context, opts ScreenshotOptions) (*ScreenshotResult, error) {
	if e.capturer == nil && !opts.DryRun {
		return nil, errors.New("no screenshot capturer configured")
	}

	done, err := e.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	if opts.DryRun {
		e.println("DRY RUN MODE - No changes will be made")
		e.println()
	}

	paths, err := catalog.ListDocuments(e.cfg.Catalog.GamesDir)
	if err != nil {
		return nil, err
	}
	res := &ScreenshotResult{Total: len(paths)}
	e.printf("Found %d game files\n\n", len(paths))

	for _, p := range paths {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		file := filepath.Base(p)
		e.printf("Processing: %s\n", file)

		doc, err := catalog.ReadDocument(p)
		if err != nil {
			e.printf("  Failed: %v\n\n", err)
			res.Failed = append(res.Failed, file)
			continue
		}

		if shot, _ := doc.Get(catalog.FieldScreenshot); shot != "" && !opts.All {
			e.println("  Skipping: Already has screenshot")
			e.println()
			res.Skipped = append(res.Skipped, file)
			continue
		}

		playURL, err := doc.RequirePlayURL()
		if err != nil {
			e.logger.Debug("screenshot skipped", "error", err)
			e.println("  Skipping: No play URL found")
			e.println()
			res.NoURL = append(res.NoURL, file)
			continue
		}

		name := doc.Slug() + ".png"
		outPath := filepath.Join(e.cfg.Catalog.ScreenshotsDir, name)
		publicPath := path.Join(e.cfg.Catalog.ScreenshotPrefix, name)
		e.printf("  URL: %s\n", playURL)
		e.printf("  Screenshot: %s\n", publicPath)

		if opts.DryRun {
			e.println("  Would take screenshot and update frontmatter")
			e.println()
			res.Success = append(res.Success, file)
			continue
		}

		if err := e.capturer.Capture(ctx, playURL, outPath); err != nil {
			e.logger.Warn("screenshot failed", "file", file, "url", playURL, "error", err)
			e.printf("  Failed to take screenshot: %v\n\n", err)
			res.Failed = append(res.Failed, file)
			continue
		}

		if err := doc.Set(catalog.FieldScreenshot, publicPath); err == nil {
			err = doc.Write()
		}
		if err != nil {
			e.printf("  Failed to update frontmatter: %v\n\n", err)
			res.Failed = append(res.Failed, file)
			continue
		}

		e.println("  Success!")
		e.println()
		res.Success = append(res.Success, file)
	}

	e.stats.DocsUpdated.Add(int64(len(res.Success)))
	e.stats.DocsSkipped.Add(int64(len(res.Skipped) + len(res.NoURL)))
	e.stats.DocsFailed.Add(int64(len(res.Failed)))
	e.printScreenshotSummary(res)
	return res, nil
}

func (e *Engine) printScreenshotSummary(res *ScreenshotResult) {
	e.println()
	e.println("Summary")
	e.println("=======================")
	e.printf("Total games: %d\n", res.Total)
	e.printf("Successful: %d\n", len(res.Success))
	e.printf("Skipped (already has screenshot): %d\n", len(res.Skipped))
	e.printf("Skipped (no URL): %d\n", len(res.NoURL))
	e.printf("Failed: %d\n", len(res.Failed))

	if len(res.Failed) > 0 {
		e.println("\nFailed games:")
		for _, f := range res.Failed {
			e.printf("  - %s\n", f)
		}
	}
	if len(res.NoURL) > 0 {
		e.println("\nGames without play URL:")
		for _, f := range res.NoURL {
			e.printf("  - %s\n", f)
		}
	}
}

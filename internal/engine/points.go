package engine

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"github.com/IshaanNene/hnarcade/internal/catalog"
)

// PointsOptions controls a points refresh.
type PointsOptions struct {
	DryRun     bool
	All        bool // refresh documents that already have points
	RecentDays int  // only documents added within this many days; 0 means all
}

// PointsResult summarizes a points refresh.
type PointsResult struct {
	Updated int
	Skipped int
	Errors  int
}

// Points refreshes the HN score stored in each catalog document's
// frontmatter, adding the hnId field where it was only in the body.
func (e *Engine) Points(ctx context.Context, opts PointsOptions) (PointsResult, error) {
	var res PointsResult

	done, err := e.begin()
	if err != nil {
		return res, err
	}
	defer done()

	mode := "update"
	if opts.DryRun {
		mode = "dry-run"
	}
	e.printf("HN Points Updater - mode: %s\n", mode)
	if opts.RecentDays > 0 {
		e.printf("Only updating games added in the past %d days\n", opts.RecentDays)
	}
	e.println()

	paths, err := catalog.ListDocuments(e.cfg.Catalog.GamesDir)
	if err != nil {
		return res, err
	}

	var cutoff time.Time
	if opts.RecentDays > 0 {
		cutoff = e.now().Add(-time.Duration(opts.RecentDays) * 24 * time.Hour)
	}

	fetched := false
	for _, path := range paths {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		file := filepath.Base(path)

		doc, err := catalog.ReadDocument(path)
		if err != nil {
			e.printf("%s: %v\n", file, err)
			res.Errors++
			continue
		}
		if !doc.HasFrontmatter() {
			e.printf("%s: No frontmatter found, skipping\n", file)
			res.Skipped++
			continue
		}

		id := doc.HNID()
		if id == "" {
			e.printf("%s: No HN item ID found, skipping\n", file)
			res.Skipped++
			continue
		}
		_, hadID := doc.Get(catalog.FieldHNID)

		if !cutoff.IsZero() {
			if added, ok := doc.Time(catalog.FieldDateAdded); ok && added.Before(cutoff) {
				res.Skipped++
				continue
			}
		}

		oldPoints, hadPoints := doc.Int(catalog.FieldPoints)
		if doc.Has(catalog.FieldPoints) && !opts.All {
			e.printf("%s: Already has points (%d), skipping\n", file, oldPoints)
			res.Skipped++
			continue
		}

		if fetched {
			if err := sleepCtx(ctx, e.cfg.Points.Delay); err != nil {
				return res, err
			}
		}
		fetched = true

		item, err := e.hn.Item(ctx, id)
		if err != nil {
			e.logger.Warn("points fetch failed", "file", file, "id", id, "error", err)
			e.printf("%s: Failed to fetch HN data: %v\n", file, err)
			res.Errors++
			continue
		}

		changed := !hadPoints || oldPoints != item.Points
		if !changed && hadID {
			e.printf("%s: Points unchanged (%d), skipping\n", file, item.Points)
			res.Skipped++
			continue
		}

		if err := setHNID(doc, id); err != nil {
			res.Errors++
			continue
		}
		if err := doc.Set(catalog.FieldPoints, item.Points); err != nil {
			res.Errors++
			continue
		}

		if opts.DryRun {
			e.printf("%s: Would update\n", file)
		} else {
			if err := doc.Write(); err != nil {
				e.printf("%s: %v\n", file, err)
				res.Errors++
				continue
			}
			e.printf("%s: Updated\n", file)
		}
		if !hadID {
			e.printf("   + hnId: %s\n", id)
		}
		if changed {
			if hadPoints {
				e.printf("   %d -> %d\n", oldPoints, item.Points)
			} else {
				e.printf("   + points: %d\n", item.Points)
			}
		}
		res.Updated++
	}

	e.stats.DocsUpdated.Add(int64(res.Updated))
	e.stats.DocsSkipped.Add(int64(res.Skipped))
	e.stats.DocsFailed.Add(int64(res.Errors))

	e.println()
	e.printf("Summary: %d updated, %d skipped, %d errors\n", res.Updated, res.Skipped, res.Errors)
	if opts.DryRun {
		e.println()
		e.println("This was a dry run. Run without --dry-run to apply changes.")
	}
	return res, nil
}

// setHNID stores id as a number when it is one.
func setHNID(doc *catalog.Document, id string) error {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return doc.Set(catalog.FieldHNID, n)
	}
	return doc.Set(catalog.FieldHNID, id)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

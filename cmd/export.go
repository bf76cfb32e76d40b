package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/shared"
	"github.com/desertthunder/evloca/internal/tasks"
	"github.com/urfave/cli/v3"
)

// exportFormat picks --export-format, then a non-text global --format, then the configured default.
func (r *Runner) exportFormat(cmd *cli.Command) string {
	if f := cmd.String("export-format"); f != "" {
		return f
	}
	if f := cmd.String("format"); f != "" && f != "text" {
		return f
	}
	return r.config.Export.Format
}

// Export bulk exports events or places, caching every detail it fetches.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	kind, err := tasks.ParseKind(cmd.Name)
	if err != nil {
		return err
	}

	opts := tasks.BulkExportOpts{
		Kind:       kind,
		Format:     r.exportFormat(cmd),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
		IDs:        cmd.StringSlice("id"),
		Banners:    cmd.Bool("banners"),
		OnFetched: func(k tasks.Kind, id, title string, v any) {
			cacheKind := models.KindEvent
			if k == tasks.KindPlaces {
				cacheKind = models.KindPlace
			}
			r.remember(cacheKind, id, title, v)
		},
	}
	if opts.OutputDir == "" {
		opts.OutputDir = r.config.Export.OutputDir
	}
	if opts.NumWorkers == 0 {
		opts.NumWorkers = r.config.Export.Workers
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = r.config.Export.RateLimit
	}

	r.logger.Info("starting export", "kind", kind, "format", opts.Format)

	engine := tasks.NewExportEngine(r.client, shared.WithLogger(r.logger, "export", kind))
	progress := make(chan tasks.ProgressUpdate, 16)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			if update.Total > 0 {
				r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
			} else {
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	result, err := engine.BulkExport(ctx, progress, opts)
	close(progress)
	wg.Wait()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlain("\n")
	r.writePlainHeader(fmt.Sprintf("Exported %s", kind))
	r.writePlain("Total:      %d\n", result.Total)
	r.writePlain("Succeeded:  %d\n", result.Succeeded)
	r.writePlain("Failed:     %d\n", result.Failed)
	r.writePlain("Directory:  %s\n", result.OutputDirectory)
	r.writePlain("Manifest:   %s\n", result.ManifestPath)

	for _, res := range result.Results {
		if !res.Success {
			r.writePlain("  ✗ %s (%s): %v\n", res.Name, res.ID, res.Error)
		}
	}
	return nil
}

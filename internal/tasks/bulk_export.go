package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/desertthunder/evloca/internal/formatter"
	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/services"
	"github.com/desertthunder/evloca/internal/shared"
	"golang.org/x/time/rate"
)

// BulkExportOpts contains configuration for bulk exports.
type BulkExportOpts struct {
	Kind       Kind     // events or places
	Format     string   // Export format: json, yaml, csv, markdown, txt
	OutputDir  string   // Base output directory (default: {kind}_export_{epoch})
	NumWorkers int      // Concurrent workers (default: 4, max 10)
	RateLimit  float64  // Detail requests per second (default: 5)
	IDs        []string // Resources to export; empty exports the whole list
	Banners    bool     // Download banner images for markdown exports

	// OnFetched is called from the fetching goroutine for each resource fetched.
	OnFetched func(kind Kind, id, title string, v any)
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	Kind            Kind
	Total           int
	Succeeded       int
	Failed          int
	OutputDirectory string
	ManifestPath    string
	Results         []ExportResult
}

// ExportResult is the outcome for a single resource.
type ExportResult struct {
	ID      string
	Name    string
	Success bool
	Files   []string
	Error   error
}

type exportJob struct {
	id        string
	name      string
	value     any
	bannerURL string
}

// BulkExport exports resources concurrently with rate limiting and progress tracking.
//
// Detail fetches run sequentially behind a [rate.Limiter]; file writing fans out to a worker pool.
// Partial failures are recorded per resource, and a manifest summarizing the run is written last.
func (e *ExportEngine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, opts BulkExportOpts) (*BulkExportResult, error) {
	if e.src == nil {
		return nil, fmt.Errorf("%w: export source not configured", shared.ErrInvalidArgument)
	}
	if opts.Kind == "" {
		opts.Kind = KindEvents
	}
	if opts.Format == "" {
		opts.Format = "json"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("%s_export_%d", opts.Kind, time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	ids := opts.IDs
	if len(ids) == 0 {
		e.sendProgress(prog, fetchListUpdate(opts.Kind))
		listed, err := e.listIDs(ctx, opts.Kind)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", opts.Kind, err)
		}
		ids = listed
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		Kind:            opts.Kind,
		Total:           len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan exportJob, len(ids))
	results := make(chan ExportResult, len(ids))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, id := range ids {
			if ctx.Err() != nil {
				return
			}
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			e.sendProgress(prog, fetchDetailUpdate(i+1, len(ids), id))
			job, err := e.fetch(ctx, opts.Kind, id)
			if err != nil {
				results <- ExportResult{
					ID:    id,
					Name:  fmt.Sprintf("Unknown (%s)", id),
					Error: fmt.Errorf("failed to fetch %s: %w", id, err),
				}
				continue
			}
			if opts.OnFetched != nil {
				opts.OnFetched(opts.Kind, id, job.name, job.value)
			}
			jobs <- job
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.Succeeded++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(ids), res.Name, len(res.Files)))
		} else {
			result.Failed++
			e.logger.Warn("export failed", "kind", opts.Kind, "id", res.ID, "error", res.Error)
			e.sendProgress(prog, exportFailedUpdate(completed, len(ids), res.Name, res.Error))
		}
	}

	sort.Slice(result.Results, func(i, j int) bool { return result.Results[i].ID < result.Results[j].ID })

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	e.sendProgress(prog, manifestUpdate(manifestPath))
	if err := formatter.WriteManifest(manifestOf(result, opts.Format), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

func (e *ExportEngine) fetch(ctx context.Context, kind Kind, id string) (exportJob, error) {
	switch kind {
	case KindEvents:
		ev, err := e.src.Event(ctx, id)
		if err != nil {
			return exportJob{}, err
		}
		return exportJob{id: id, name: ev.Title, value: ev, bannerURL: e.src.AssetURL(services.AssetEventPic, ev.BannerImage)}, nil
	case KindPlaces:
		p, err := e.src.Place(ctx, id)
		if err != nil {
			return exportJob{}, err
		}
		return exportJob{id: id, name: p.Name, value: p, bannerURL: e.src.AssetURL(services.AssetPlacePic, p.Banner)}, nil
	}
	return exportJob{}, fmt.Errorf("%w: unknown resource kind %q", shared.ErrInvalidArgument, kind)
}

// exportWorker is a worker goroutine that writes resources from the jobs channel.
func (e *ExportEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- ExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		results <- e.exportSingle(job, opts)
	}
}

// exportSingle writes one resource in the requested format.
func (e *ExportEngine) exportSingle(j exportJob, opts BulkExportOpts) ExportResult {
	result := ExportResult{ID: j.id, Name: j.name, Files: []string{}}
	base := filepath.Join(opts.OutputDir, j.id)

	write := func(path string, data []byte, err error) {
		if err != nil {
			result.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
			return
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			result.Error = fmt.Errorf("%s write failed: %w", opts.Format, err)
			return
		}
		result.Files = append(result.Files, path)
		result.Success = true
	}

	switch opts.Format {
	case "csv":
		data, err := toCSV(j.value)
		write(base+".csv", data, err)
	case "yaml":
		data, err := formatter.ToYAML(j.value)
		write(base+".yaml", data, err)
	case "txt":
		write(base+".txt", toText(j.value), nil)
	case "markdown":
		bannerURL := ""
		if opts.Banners {
			bannerURL = j.bannerURL
		}
		files, err := formatter.WriteMarkdownExport(base, bannerURL, func(banner string) ([]byte, error) {
			return toMarkdown(j.value, banner)
		}, func(err error) {
			e.logger.Warn("failed to save banner", "id", j.id, "error", err)
		})
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = files
		result.Success = true
	case "json":
		fallthrough
	default:
		data, err := shared.MarshalJSON(j.value, true)
		write(base+".json", data, err)
	}
	return result
}

func toCSV(v any) ([]byte, error) {
	switch r := v.(type) {
	case *models.Event:
		return formatter.EventsToCSV([]models.Event{*r})
	case *models.Place:
		return formatter.PlacesToCSV([]models.Place{*r})
	}
	return nil, fmt.Errorf("%w: cannot export %T as CSV", shared.ErrInvalidArgument, v)
}

func toText(v any) []byte {
	switch r := v.(type) {
	case *models.Event:
		return formatter.EventToText(r)
	case *models.Place:
		return formatter.PlaceToText(r)
	}
	return nil
}

func toMarkdown(v any, banner string) ([]byte, error) {
	switch r := v.(type) {
	case *models.Event:
		return formatter.EventToMarkdown(r, banner)
	case *models.Place:
		return formatter.PlaceToMarkdown(r, banner)
	}
	return nil, fmt.Errorf("%w: cannot export %T as Markdown", shared.ErrInvalidArgument, v)
}

func manifestOf(r *BulkExportResult, format string) formatter.Manifest {
	m := formatter.Manifest{
		Kind:            string(r.Kind),
		Format:          format,
		ExportedAt:      time.Now().UTC(),
		Total:           r.Total,
		Succeeded:       r.Succeeded,
		Failed:          r.Failed,
		OutputDirectory: r.OutputDirectory,
		Entries:         make([]formatter.ManifestEntry, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		entry := formatter.ManifestEntry{ID: res.ID, Name: res.Name, Success: res.Success, Files: res.Files}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		m.Entries = append(m.Entries, entry)
	}
	return m
}

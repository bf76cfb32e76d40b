package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/evloca/internal/formatter"
	"github.com/desertthunder/evloca/internal/shared"
	tu "github.com/desertthunder/evloca/internal/testing"
)

func drain(ch chan ProgressUpdate) {
	go func() {
		for range ch {
		}
	}()
}

func TestBulkExport_SuccessfulExport(t *testing.T) {
	tests := []struct {
		name           string
		kind           Kind
		format         string
		count          int
		validateResult func(t *testing.T, result *BulkExportResult, tempDir string)
	}{
		{
			name:   "single event json export",
			kind:   KindEvents,
			format: "json",
			count:  1,
			validateResult: func(t *testing.T, result *BulkExportResult, tempDir string) {
				tu.AssertFileExists(t, filepath.Join(tempDir, "event1.json"))
				if !strings.Contains(tu.MustReadFile(t, filepath.Join(tempDir, "event1.json")), `"eventid": "event1"`) {
					t.Error("expected indented JSON with API field names")
				}
			},
		},
		{
			name:   "multiple events csv export",
			kind:   KindEvents,
			format: "csv",
			count:  3,
			validateResult: func(t *testing.T, result *BulkExportResult, tempDir string) {
				for _, res := range result.Results {
					if len(res.Files) != 1 || !strings.HasSuffix(res.Files[0], ".csv") {
						t.Errorf("CSV export should create 1 csv file, got %v", res.Files)
					}
				}
			},
		},
		{
			name:   "places yaml export",
			kind:   KindPlaces,
			format: "yaml",
			count:  2,
			validateResult: func(t *testing.T, result *BulkExportResult, tempDir string) {
				content := tu.MustReadFile(t, filepath.Join(tempDir, "place2.yaml"))
				if !strings.Contains(content, "placeid: place2") {
					t.Errorf("unexpected yaml: %s", content)
				}
			},
		},
		{
			name:   "places text export",
			kind:   KindPlaces,
			format: "txt",
			count:  2,
			validateResult: func(t *testing.T, result *BulkExportResult, tempDir string) {
				if !strings.HasPrefix(tu.MustReadFile(t, filepath.Join(tempDir, "place1.txt")), "Place: Place 1") {
					t.Error("unexpected text export")
				}
			},
		},
		{
			name:   "event markdown export",
			kind:   KindEvents,
			format: "markdown",
			count:  1,
			validateResult: func(t *testing.T, result *BulkExportResult, tempDir string) {
				tu.AssertDirExists(t, filepath.Join(tempDir, "event1"))
				tu.AssertFileExists(t, filepath.Join(tempDir, "event1", "README.md"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			var src *mockSource
			if tt.kind == KindEvents {
				src = newMockSource(tt.count, 0)
			} else {
				src = newMockSource(0, tt.count)
			}

			engine := NewExportEngine(src, nil)
			progressCh := make(chan ProgressUpdate, 100)
			drain(progressCh)

			result, err := engine.BulkExport(context.Background(), progressCh, BulkExportOpts{
				Kind:       tt.kind,
				Format:     tt.format,
				OutputDir:  tempDir,
				NumWorkers: 2,
				RateLimit:  100,
			})
			close(progressCh)

			if err != nil {
				t.Fatalf("BulkExport() error = %v", err)
			}
			if result.Total != tt.count || result.Succeeded != tt.count || result.Failed != 0 {
				t.Errorf("unexpected counts: total=%d ok=%d failed=%d", result.Total, result.Succeeded, result.Failed)
			}
			if result.OutputDirectory != tempDir {
				t.Errorf("OutputDirectory = %s, want %s", result.OutputDirectory, tempDir)
			}

			manifestPath := filepath.Join(tempDir, "export_manifest.json")
			if result.ManifestPath != manifestPath {
				t.Errorf("ManifestPath = %s, want %s", result.ManifestPath, manifestPath)
			}

			var manifest formatter.Manifest
			if err := json.Unmarshal([]byte(tu.MustReadFile(t, manifestPath)), &manifest); err != nil {
				t.Fatalf("failed to parse manifest: %v", err)
			}
			if manifest.Format != tt.format || manifest.Kind != string(tt.kind) || manifest.Total != tt.count {
				t.Errorf("unexpected manifest: %+v", manifest)
			}

			if tt.validateResult != nil {
				tt.validateResult(t, result, tempDir)
			}
		})
	}
}

func TestBulkExport_PartialFailures(t *testing.T) {
	src := newMockSource(2, 0)
	engine := NewExportEngine(src, nil)

	result, err := engine.BulkExport(context.Background(), nil, BulkExportOpts{
		Format:    "json",
		OutputDir: t.TempDir(),
		RateLimit: 100,
		IDs:       []string{"event1", "missing", "event2"},
	})
	if err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}

	if result.Total != 3 || result.Succeeded != 2 || result.Failed != 1 {
		t.Errorf("unexpected counts: total=%d ok=%d failed=%d", result.Total, result.Succeeded, result.Failed)
	}

	// Results are sorted by ID
	failed := result.Results[2]
	if failed.ID != "missing" || failed.Success {
		t.Fatalf("expected missing to fail, got %+v", failed)
	}
	if !errors.Is(failed.Error, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", failed.Error)
	}
	if failed.Name != "Unknown (missing)" {
		t.Errorf("unexpected name %q", failed.Name)
	}
}

func TestBulkExport_ListError(t *testing.T) {
	src := newMockSource(0, 0)
	src.listErr = errors.New("boom")
	engine := NewExportEngine(src, nil)

	_, err := engine.BulkExport(context.Background(), nil, BulkExportOpts{OutputDir: t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "failed to list events") {
		t.Errorf("expected list error, got %v", err)
	}
}

func TestBulkExport_SourceError(t *testing.T) {
	engine := NewExportEngine(nil, nil)

	_, err := engine.BulkExport(context.Background(), nil, BulkExportOpts{OutputDir: t.TempDir()})
	if !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for nil source, got %v", err)
	}
}

func TestBulkExport_ContextCancellation(t *testing.T) {
	engine := NewExportEngine(newMockSource(2, 0), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.BulkExport(ctx, nil, BulkExportOpts{
		OutputDir:  t.TempDir(),
		NumWorkers: 1,
		IDs:        []string{"event1", "event2"},
	})
	if err != nil {
		t.Errorf("BulkExport() should handle cancellation gracefully, got error: %v", err)
	}
	if result == nil {
		t.Fatal("result should not be nil")
	}
	if result.Succeeded != 0 {
		t.Errorf("expected nothing exported after cancellation, got %d", result.Succeeded)
	}
}

func TestBulkExport_DefaultOptions(t *testing.T) {
	tempDir := t.TempDir()
	originalDir := tu.MustGetwd(t)
	tu.MustChdir(t, tempDir)
	defer tu.MustChdir(t, originalDir)

	engine := NewExportEngine(newMockSource(1, 0), nil)
	result, err := engine.BulkExport(context.Background(), nil, BulkExportOpts{RateLimit: 100})
	if err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}

	if !strings.HasPrefix(filepath.Base(result.OutputDirectory), "events_export_") {
		t.Errorf("default output directory should start with 'events_export_', got: %s", result.OutputDirectory)
	}
	tu.AssertDirExists(t, result.OutputDirectory)
	tu.AssertFileExists(t, filepath.Join(result.OutputDirectory, "event1.json"))
}

func TestBulkExport_OnFetched(t *testing.T) {
	engine := NewExportEngine(newMockSource(3, 0), nil)

	var mu sync.Mutex
	seen := map[string]string{}
	_, err := engine.BulkExport(context.Background(), nil, BulkExportOpts{
		OutputDir: t.TempDir(),
		RateLimit: 100,
		OnFetched: func(kind Kind, id, title string, v any) {
			mu.Lock()
			defer mu.Unlock()
			seen[id] = title
		},
	})
	if err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}
	if len(seen) != 3 || seen["event2"] != "Event 2" {
		t.Errorf("unexpected fetched callbacks: %v", seen)
	}
}

func TestBulkExport_MarkdownBanner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/eventpic/b.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("PNG"))
	}))
	defer srv.Close()

	src := newMockSource(1, 0)
	src.assetBase = srv.URL
	src.events["event1"].BannerImage = "b.png"
	tempDir := t.TempDir()

	result, err := NewExportEngine(src, nil).BulkExport(context.Background(), nil, BulkExportOpts{
		Format:    "markdown",
		OutputDir: tempDir,
		RateLimit: 100,
		Banners:   true,
	})
	if err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}
	if len(result.Results[0].Files) != 2 {
		t.Errorf("expected banner and README, got %v", result.Results[0].Files)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "event1", "banner.png")); err != nil {
		t.Errorf("expected banner file: %v", err)
	}
}

func TestBulkExport_WorkerPoolLimits(t *testing.T) {
	engine := NewExportEngine(newMockSource(12, 0), nil)

	result, err := engine.BulkExport(context.Background(), nil, BulkExportOpts{
		OutputDir:  t.TempDir(),
		NumWorkers: 50,
		RateLimit:  1000,
	})
	if err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}
	if result.Succeeded != 12 {
		t.Errorf("expected 12 exports, got %d", result.Succeeded)
	}
}

package formatter

import (
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/evloca/internal/shared"
)

// ManifestEntry is the outcome of exporting one resource.
type ManifestEntry struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Manifest summarizes a bulk export.
type Manifest struct {
	Kind            string          `json:"kind"`
	Format          string          `json:"format"`
	ExportedAt      time.Time       `json:"exported_at"`
	Total           int             `json:"total"`
	Succeeded       int             `json:"succeeded"`
	Failed          int             `json:"failed"`
	OutputDirectory string          `json:"output_directory"`
	Entries         []ManifestEntry `json:"entries"`
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(m Manifest, path string) error {
	data, err := shared.MarshalJSON(m, true)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

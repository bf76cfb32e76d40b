package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/shared"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

func parseResourceKind(s string) (models.ResourceKind, error) {
	kind := models.ResourceKind(s)
	if s != "" && !kind.Valid() {
		return "", fmt.Errorf("%w: unknown kind %q", shared.ErrInvalidFlag, s)
	}
	return kind, nil
}

type cacheEntry struct {
	ID         string              `json:"id"`
	Kind       models.ResourceKind `json:"kind"`
	ResourceID string              `json:"resource_id"`
	Title      string              `json:"title"`
	UpdatedAt  string              `json:"updated_at"`
}

// CacheList lists cached resources, optionally filtered by kind.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	kind, err := parseResourceKind(cmd.String("kind"))
	if err != nil {
		return err
	}
	criteria := map[string]any{}
	if kind != "" {
		criteria["kind"] = kind
	}

	entries, err := r.cache.List(criteria)
	if err != nil {
		return err
	}

	out := make([]cacheEntry, len(entries))
	for i, e := range entries {
		out[i] = cacheEntry{
			ID:         e.ID(),
			Kind:       e.Kind,
			ResourceID: e.ResourceID,
			Title:      e.Title,
			UpdatedAt:  e.UpdatedAt().Format(time.RFC3339),
		}
	}

	return r.emit(cmd, out, func() error {
		if len(entries) == 0 {
			return r.writePlain("Cache is empty.\n")
		}
		for _, e := range entries {
			r.writePlain("%s  %-7s  %-24s  %s  (%s)\n", e.ID(), e.Kind, e.ResourceID, e.Title, humanize.Time(e.UpdatedAt()))
		}
		return nil
	})
}

// CacheShow prints a cached payload by cache ID.
func (r *Runner) CacheShow(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	entry, err := r.cache.Get(id)
	if err != nil {
		return err
	}

	var payload any
	if err := entry.Decode(&payload); err != nil {
		return err
	}
	if cmd.String("format") == "yaml" {
		return r.writeYAML(payload)
	}
	return r.writeJSON(payload, true)
}

// CacheClear removes cached resources, optionally only one kind.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	kind, err := parseResourceKind(cmd.String("kind"))
	if err != nil {
		return err
	}
	n, err := r.cache.Clear(kind)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Removed %d cached %s\n", n, pluralEntries(n))
}

func pluralEntries(n int64) string {
	if n == 1 {
		return "entry"
	}
	return "entries"
}

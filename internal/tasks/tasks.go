package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/services"
	"github.com/desertthunder/evloca/internal/shared"
)

// Kind selects the resource family an operation works on.
type Kind string

const (
	KindEvents Kind = "events"
	KindPlaces Kind = "places"
)

// ParseKind accepts "events"/"event" and "places"/"place".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "events", "event":
		return KindEvents, nil
	case "places", "place":
		return KindPlaces, nil
	}
	return "", fmt.Errorf("%w: unknown resource kind %q", shared.ErrInvalidArgument, s)
}

// Source is the subset of the platform API used by exports. [*services.Client] satisfies it.
type Source interface {
	Events(ctx context.Context) ([]models.Event, error)
	Event(ctx context.Context, id string) (*models.Event, error)
	Places(ctx context.Context) ([]models.Place, error)
	Place(ctx context.Context, id string) (*models.Place, error)
	AssetURL(kind services.AssetKind, name string) string
}

// ExportEngine runs bulk exports against a [Source].
type ExportEngine struct {
	src    Source
	logger *log.Logger
}

// NewExportEngine creates an engine. A nil logger falls back to stderr.
func NewExportEngine(src Source, logger *log.Logger) *ExportEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ExportEngine{src: src, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// listIDs returns the IDs of every resource of kind.
func (e *ExportEngine) listIDs(ctx context.Context, kind Kind) ([]string, error) {
	switch kind {
	case KindEvents:
		events, err := e.src.Events(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(events))
		for _, ev := range events {
			ids = append(ids, ev.EventID)
		}
		return ids, nil
	case KindPlaces:
		places, err := e.src.Places(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(places))
		for _, p := range places {
			ids = append(ids, p.PlaceID)
		}
		return ids, nil
	}
	return nil, fmt.Errorf("%w: unknown resource kind %q", shared.ErrInvalidArgument, kind)
}

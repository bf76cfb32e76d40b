package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/shared"
)

// CacheRepository implements models.Repository[*models.CachedResource] for fetched resources.
//
// One row exists per (kind, resource_id); [CacheRepository.Put] upserts on that key.
type CacheRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.CachedResource] = (*CacheRepository)(nil)

// NewCacheRepository creates a new CacheRepository with the given database connection
func NewCacheRepository(db *sql.DB) *CacheRepository {
	return &CacheRepository{db: db}
}

const cacheColumns = "id, sequence, kind, resource_id, title, payload, created_at, updated_at"

// Create inserts a new entry with a generated ID and sequence.
func (r *CacheRepository) Create(c *models.CachedResource) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "resource_cache")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	query := `
		INSERT INTO resource_cache (id, sequence, kind, resource_id, title, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.Exec(query, id, sequence, string(c.Kind), c.ResourceID, c.Title, string(c.Payload), c.CreatedAt(), c.UpdatedAt()); err != nil {
		return fmt.Errorf("failed to insert cached %s: %w", c.Kind, err)
	}

	c.SetID(id)
	c.Sequence = sequence
	return nil
}

// Get retrieves an entry by its ID.
func (r *CacheRepository) Get(id string) (*models.CachedResource, error) {
	row := r.db.QueryRow("SELECT "+cacheColumns+" FROM resource_cache WHERE id = ?", id)
	return scanCached(row)
}

// GetByResource retrieves the entry for a remote resource.
func (r *CacheRepository) GetByResource(kind models.ResourceKind, resourceID string) (*models.CachedResource, error) {
	row := r.db.QueryRow("SELECT "+cacheColumns+" FROM resource_cache WHERE kind = ? AND resource_id = ?", string(kind), resourceID)
	return scanCached(row)
}

// Update replaces the title and payload of an existing entry.
func (r *CacheRepository) Update(c *models.CachedResource) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	c.Touch()

	res, err := r.db.Exec(
		"UPDATE resource_cache SET title = ?, payload = ?, updated_at = ? WHERE id = ?",
		c.Title, string(c.Payload), c.UpdatedAt(), c.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update cached %s: %w", c.Kind, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: cache entry %s", shared.ErrNotFound, c.ID())
	}
	return nil
}

// Put creates or refreshes the entry for c's (kind, resource_id).
func (r *CacheRepository) Put(c *models.CachedResource) error {
	existing, err := r.GetByResource(c.Kind, c.ResourceID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return r.Create(c)
	case err != nil:
		return err
	}

	c.SetID(existing.ID())
	c.Sequence = existing.Sequence
	return r.Update(c)
}

// Delete removes an entry by ID.
func (r *CacheRepository) Delete(id string) error {
	res, err := r.db.Exec("DELETE FROM resource_cache WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: cache entry %s", shared.ErrNotFound, id)
	}
	return nil
}

// Clear removes every entry of kind, or all entries when kind is empty. It returns the number removed.
func (r *CacheRepository) Clear(kind models.ResourceKind) (int64, error) {
	var res sql.Result
	var err error
	if kind == "" {
		res, err = r.db.Exec("DELETE FROM resource_cache")
	} else {
		res, err = r.db.Exec("DELETE FROM resource_cache WHERE kind = ?", string(kind))
	}
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	return res.RowsAffected()
}

// List returns entries ordered by sequence. Supported criteria: "kind" (string or models.ResourceKind).
func (r *CacheRepository) List(criteria map[string]any) ([]*models.CachedResource, error) {
	query := "SELECT " + cacheColumns + " FROM resource_cache"
	var args []any

	if v, ok := criteria["kind"]; ok {
		switch k := v.(type) {
		case string:
			args = append(args, k)
		case models.ResourceKind:
			args = append(args, string(k))
		default:
			return nil, fmt.Errorf("%w: kind must be a string", shared.ErrInvalidArgument)
		}
		query += " WHERE kind = ?"
	}
	query += " ORDER BY sequence"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache: %w", err)
	}
	defer rows.Close()

	var out []*models.CachedResource
	for rows.Next() {
		c, err := scanCached(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCached(s scanner) (*models.CachedResource, error) {
	var (
		id, kind, resourceID, title, payload string
		sequence                             int
		created, updated                     time.Time
	)
	err := s.Scan(&id, &sequence, &kind, &resourceID, &title, &payload, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: cache entry", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan cache entry: %w", err)
	}
	return models.RestoreCachedResource(id, sequence, models.ResourceKind(kind), resourceID, title, []byte(payload), created, updated), nil
}

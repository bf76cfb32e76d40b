package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ResourceKind names the remote collection a cached payload came from.
type ResourceKind string

const (
	KindEvent   ResourceKind = "event"
	KindPlace   ResourceKind = "place"
	KindUser    ResourceKind = "user"
	KindProfile ResourceKind = "profile"
)

func (k ResourceKind) Valid() bool {
	switch k {
	case KindEvent, KindPlace, KindUser, KindProfile:
		return true
	}
	return false
}

// CachedResource is the last fetched JSON copy of a remote resource.
type CachedResource struct {
	id         string
	Sequence   int
	Kind       ResourceKind
	ResourceID string
	Title      string
	Payload    json.RawMessage
	createdAt  time.Time
	updatedAt  time.Time
}

var _ Model = (*CachedResource)(nil)

// NewCachedResource encodes v as the payload of a new cache entry.
func NewCachedResource(kind ResourceKind, resourceID, title string, v any) (*CachedResource, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s %s: %w", kind, resourceID, err)
	}
	now := time.Now().UTC()
	return &CachedResource{
		Kind:       kind,
		ResourceID: resourceID,
		Title:      title,
		Payload:    payload,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// RestoreCachedResource rebuilds an entry read from storage.
func RestoreCachedResource(id string, seq int, kind ResourceKind, resourceID, title string, payload []byte, created, updated time.Time) *CachedResource {
	return &CachedResource{
		id: id, Sequence: seq, Kind: kind, ResourceID: resourceID, Title: title,
		Payload: payload, createdAt: created, updatedAt: updated,
	}
}

func (c *CachedResource) ID() string           { return c.id }
func (c *CachedResource) SetID(id string)      { c.id = id }
func (c *CachedResource) CreatedAt() time.Time { return c.createdAt }
func (c *CachedResource) UpdatedAt() time.Time { return c.updatedAt }
func (c *CachedResource) Touch()               { c.updatedAt = time.Now().UTC() }

func (c *CachedResource) Validate() error {
	if !c.Kind.Valid() {
		return fmt.Errorf("unknown resource kind %q", c.Kind)
	}
	if c.ResourceID == "" {
		return fmt.Errorf("resource id is required")
	}
	if !json.Valid(c.Payload) {
		return fmt.Errorf("payload is not valid JSON")
	}
	return nil
}

// Decode unmarshals the payload into v.
func (c *CachedResource) Decode(v any) error {
	return json.Unmarshal(c.Payload, v)
}

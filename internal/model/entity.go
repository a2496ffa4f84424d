package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Now is the clock used for entity timestamps. Tests may replace it.
var Now = func() time.Time {
	return time.Now().UTC()
}

// Props is the closed field set carried by a concrete entity kind
type Props interface {
	Validate() error
	Record() map[string]interface{}
}

// Patch is a typed partial update for a props kind. Nil fields are left untouched.
type Patch[P Props] interface {
	Apply(props *P) error
}

// EntityMeta carries the identity fields used when constructing or restoring an entity
type EntityMeta struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Entity is the shared identity and timestamp shell of every domain object.
// ID and CreatedAt are fixed at construction; UpdatedAt is nil until the first mutation.
type Entity[P Props] struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt *time.Time
	Props     P
}

// NewEntity builds an entity, generating an ID and creation time when absent
func NewEntity[P Props](props P, meta EntityMeta) Entity[P] {
	id := meta.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := meta.CreatedAt
	if createdAt.IsZero() {
		createdAt = Now()
	}
	var updatedAt *time.Time
	if meta.UpdatedAt != nil {
		t := *meta.UpdatedAt
		updatedAt = &t
	}
	return Entity[P]{
		ID:        id,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Props:     props,
	}
}

// Mutate applies a patch to a copy of the props, validates the result and stamps UpdatedAt.
// The entity is left unchanged when the patch or validation fails.
func (e *Entity[P]) Mutate(patch Patch[P]) error {
	next := e.Props
	if err := patch.Apply(&next); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	e.Props = next
	e.touch()
	return nil
}

// touch stamps UpdatedAt, never moving it backwards
func (e *Entity[P]) touch() {
	now := Now()
	if now.Before(e.CreatedAt) {
		now = e.CreatedAt
	}
	if e.UpdatedAt != nil && now.Before(*e.UpdatedAt) {
		now = *e.UpdatedAt
	}
	e.UpdatedAt = &now
}

// ToRecord flattens the entity into a single key/value map used by storage mappers
func (e Entity[P]) ToRecord() map[string]interface{} {
	record := e.Props.Record()
	record["id"] = e.ID
	record["created_at"] = e.CreatedAt
	if e.UpdatedAt != nil {
		record["updated_at"] = *e.UpdatedAt
	} else {
		record["updated_at"] = nil
	}
	return record
}

// MarshalJSON renders the flat record
func (e Entity[P]) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToRecord())
}

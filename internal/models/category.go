package models

import (
	"time"
)

// CategoryNode is one node of the hierarchical category tree. Path is the
// materialized slug chain from root to this node and is globally unique;
// a node with parent P satisfies Path == append(P.Path, Slug).
type CategoryNode struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	ParentID  *string   `json:"parent_id,omitempty" db:"parent_id"`
	Path      []string  `json:"path" db:"path"`
	Level     int       `json:"level" db:"level"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

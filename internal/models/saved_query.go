package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SavedQuery is a user-owned SQL snippet with an optional visualization
// config blob (stored as JSON, opaque to the backend).
type SavedQuery struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"user_id"`
	Name                string    `json:"name"`
	SQL                 string    `json:"sql"`
	Dialect             string    `json:"dialect,omitempty"`
	VisualizationConfig *string   `json:"visualization_config,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (q *SavedQuery) Prepare() {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	q.Name = strings.TrimSpace(q.Name)
}

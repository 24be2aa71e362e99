package models

import (
	"time"

	"github.com/google/uuid"
)

// QueryHistory records one generation round-trip for an authenticated user.
type QueryHistory struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Prompt     string    `json:"prompt"`
	SQL        string    `json:"sql"`
	Dialect    string    `json:"dialect,omitempty"`
	Bookmarked bool      `json:"bookmarked"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *QueryHistory) Prepare() {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
}

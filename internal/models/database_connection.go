package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DatabaseConnection is connection metadata a user stores to tag generated
// queries with a target database. The backend never dials it.
type DatabaseConnection struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Name             string    `json:"name"`
	ConnectionType   string    `json:"connection_type"`
	ConnectionString string    `json:"connection_string"`
	CreatedAt        time.Time `json:"created_at"`
}

func (c *DatabaseConnection) Prepare() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Name = strings.TrimSpace(c.Name)
	c.ConnectionType = strings.ToLower(strings.TrimSpace(c.ConnectionType))
}

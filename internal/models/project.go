package models

import "time"

// Project is an entry in the project registry.
type Project struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Alias     string    `json:"alias,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used"`
}

// Package domain defines the core domain models for the paper backend.
package domain

import (
	"strings"
	"time"
)

// Turn roles. Exactly two participants; system instructions are never
// stored as turns.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ValidRole reports whether role is one of the two stored participant roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleModel
}

// Turn is a single role-tagged message in a conversation.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one ongoing conversation about one paper. History is
// append-only; insertion order is chronological order. A session is never
// deleted: once idle past the configured timeout it is logically expired
// and any recovery attempt creates a replacement instead of reviving it.
type Session struct {
	Token        string    `json:"session_token"`
	PaperID      string    `json:"paper_id"`
	History      []Turn    `json:"messages"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Paper is one catalogue entry. Taxonomy fields hold enum values from
// enums.go; FullText is the extracted article body used as chat context.
type Paper struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Abstract    string   `json:"abstract"`
	Authors     []string `json:"authors"`
	Year        int      `json:"year"`
	Date        string   `json:"date,omitempty"`
	Source      string   `json:"source,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	StudyTypes  []string `json:"study_types,omitempty"`
	Organisms   []string `json:"organisms,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
	Stressors   []string `json:"stressors,omitempty"`
	Agencies    []string `json:"agencies,omitempty"`
	FullText    string   `json:"full_text,omitempty"`
	SearchScore float64  `json:"search_score,omitempty"`
}

// SessionRequest is the input to session creation/recovery.
type SessionRequest struct {
	PaperID      string `json:"paper_id"`
	SessionToken string `json:"session_token,omitempty"`
}

// SessionResponse is returned when a session is created or recovered.
type SessionResponse struct {
	SessionToken string    `json:"session_token"`
	PaperID      string    `json:"paper_id"`
	Messages     []Turn    `json:"messages"`
	IsNewSession bool      `json:"is_new_session"`
	LastActivity time.Time `json:"last_activity"`
}

// ChatRequest is the input to one turn exchange: the client's view of new
// input since the last exchange, in chronological order.
type ChatRequest struct {
	PaperID      string `json:"paper_id"`
	SessionToken string `json:"session_token,omitempty"`
	Messages     []Turn `json:"messages"`
}

// SearchFilter selects papers whose named taxonomy field contains at least
// one of the given values.
type SearchFilter struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// SearchRequest is the input to paper search.
type SearchRequest struct {
	Query   string         `json:"query,omitempty"`
	Filters []SearchFilter `json:"filters,omitempty"`
	Limit   int            `json:"limit,omitempty"`
}

// FilterValue describes one taxonomy facet and its allowed values.
type FilterValue struct {
	Name   string   `json:"name"`
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// ValidateTurns rejects an empty turn list, turns with unknown roles, and
// turns with empty content. Runs before any collaborator call.
func ValidateTurns(turns []Turn) error {
	if len(turns) == 0 {
		return ErrInvalidInput
	}
	for _, t := range turns {
		if !ValidRole(t.Role) {
			return ErrInvalidInput
		}
		if strings.TrimSpace(t.Content) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Match statuses. CANCELLED is terminal; CLOSED still allows the organizer
// to edit the roster but accepts no new joins.
const (
	MatchStatusOpen      = "OPEN"
	MatchStatusClosed    = "CLOSED"
	MatchStatusCancelled = "CANCELLED"
)

// Participant statuses. Every join starts PENDING; only the organizer moves
// a row to ACCEPTED or REJECTED.
const (
	ParticipantStatusPending  = "PENDING"
	ParticipantStatusAccepted = "ACCEPTED"
	ParticipantStatusRejected = "REJECTED"
)

type Match struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	OrganizerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"organizer_id"`
	Organizer    User      `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Title        string    `gorm:"size:100;not null" json:"title"`
	Slug         string    `gorm:"size:140;index" json:"slug"`
	Description  string    `gorm:"type:text" json:"description"`
	Location     string    `gorm:"not null" json:"location"`
	MatchDate    time.Time `gorm:"not null;index" json:"match_date"`
	MaxPlayers   int       `gorm:"not null" json:"max_players"`
	MainPhotoURL string    `json:"main_photo_url,omitempty"`
	Status       string    `gorm:"type:varchar(20);not null;default:'OPEN';index" json:"status"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// MatchParticipant pairs a player with a match. The (match_id, player_id)
// unique index is load-bearing: it closes the concurrent-join race that an
// application-level existence check alone cannot.
type MatchParticipant struct {
	ID       uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	MatchID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_match_participant" json:"match_id"`
	PlayerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_match_participant" json:"player_id"`
	Player   User      `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	Status   string    `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	JoinedAt time.Time `gorm:"not null;autoCreateTime" json:"joined_at"`
}

type MatchResponse struct {
	ID             uuid.UUID   `json:"id"`
	Title          string      `json:"title"`
	Slug           string      `json:"slug"`
	Description    string      `json:"description"`
	Location       string      `json:"location"`
	MatchDate      time.Time   `json:"match_date"`
	MaxPlayers     int         `json:"max_players"`
	CurrentPlayers int64       `json:"current_players"` // accepted count
	MainPhotoURL   string      `json:"main_photo_url,omitempty"`
	Status         string      `json:"status"`
	Organizer      UserSummary `json:"organizer"`
	CreatedAt      time.Time   `json:"created_at"`
}

type ParticipantResponse struct {
	ID       uuid.UUID   `json:"id"`
	Player   UserSummary `json:"player"`
	Status   string      `json:"status"`
	JoinedAt time.Time   `json:"joined_at"`
}

type PaginatedMatchResponse struct {
	Data       []MatchResponse `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

func (m *Match) Response(acceptedCount int64) MatchResponse {
	return MatchResponse{
		ID:             m.ID,
		Title:          m.Title,
		Slug:           m.Slug,
		Description:    m.Description,
		Location:       m.Location,
		MatchDate:      m.MatchDate,
		MaxPlayers:     m.MaxPlayers,
		CurrentPlayers: acceptedCount,
		MainPhotoURL:   m.MainPhotoURL,
		Status:         m.Status,
		Organizer:      m.Organizer.Summary(),
		CreatedAt:      m.CreatedAt,
	}
}

func (p *MatchParticipant) Response() ParticipantResponse {
	return ParticipantResponse{
		ID:       p.ID,
		Player:   p.Player.Summary(),
		Status:   p.Status,
		JoinedAt: p.JoinedAt,
	}
}

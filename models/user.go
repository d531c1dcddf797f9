package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Roles are fixed at registration — there is no promotion flow.
const (
	RolePlayer    = "PLAYER"
	RoleOrganizer = "ORGANIZER"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Role         string    `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// UserSummary is the minimal user shape embedded in match and participant
// responses (never the credential columns).
type UserSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

// AuthResult is returned by register, login and refresh.
type AuthResult struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"` // always "Bearer"
	ExpiresIn    int64        `json:"expiresIn"` // access token TTL in seconds
	User         UserResponse `json:"user"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name}
}

func (u *User) Response() UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

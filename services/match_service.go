package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"foot-match-service/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchService owns the match lifecycle: OPEN -> CLOSED happens
// automatically when the accepted roster reaches capacity, OPEN|CLOSED ->
// CANCELLED is an organizer action and terminal.
type MatchService struct {
	DB *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{DB: db}
}

// MatchInput carries the organizer-editable fields. Status is never part of
// it: status only moves through Cancel and the auto-close check.
type MatchInput struct {
	Title       string
	Description string
	Location    string
	MatchDate   time.Time
	MaxPlayers  int
}

// ListMatchesQuery mirrors the public listing filters.
type ListMatchesQuery struct {
	Status   string
	Location string
	DateFrom *time.Time
	Page     int
	Size     int
	SortBy   string
	SortDir  string
}

// lockForUpdate takes a row lock so count-then-act sequences on the same
// match serialize. SQLite (the test dialect) has no FOR UPDATE; its single
// writer lock already serializes the transaction, so the clause is skipped
// there and the code path stays identical.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func acceptedCount(tx *gorm.DB, matchID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&models.MatchParticipant{}).
		Where("match_id = ? AND status = ?", matchID, models.ParticipantStatusAccepted).
		Count(&count).Error
	return count, err
}

func (s *MatchService) Create(input MatchInput, organizerID uuid.UUID, organizerRole string) (*models.MatchResponse, error) {
	if !CanCreateMatch(organizerRole) {
		return nil, models.ErrForbidden
	}

	var organizer models.User
	if err := s.DB.First(&organizer, "id = ?", organizerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}

	match := models.Match{
		ID:          uuid.New(),
		OrganizerID: organizer.ID,
		Organizer:   organizer,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		MatchDate:   input.MatchDate,
		MaxPlayers:  input.MaxPlayers,
		Status:      models.MatchStatusOpen,
	}
	// Slug gets a short id suffix so two matches may share a title.
	match.Slug = fmt.Sprintf("%s-%s", slug.Make(input.Title), match.ID.String()[:8])

	if err := s.DB.Omit("Organizer").Create(&match).Error; err != nil {
		return nil, err
	}

	resp := match.Response(0)
	return &resp, nil
}

func (s *MatchService) Get(matchID uuid.UUID) (*models.MatchResponse, error) {
	var match models.Match
	if err := s.DB.Preload("Organizer").First(&match, "id = ?", matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrMatchNotFound
		}
		return nil, err
	}
	accepted, err := acceptedCount(s.DB, match.ID)
	if err != nil {
		return nil, err
	}
	resp := match.Response(accepted)
	return &resp, nil
}

// List returns a page of matches, filtered and sorted. Location is a
// partial, case-insensitive match; default order is match_date ascending.
func (s *MatchService) List(q ListMatchesQuery) (*models.PaginatedMatchResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 || q.Size > 100 {
		q.Size = 20
	}

	filtered := func() *gorm.DB {
		db := s.DB.Model(&models.Match{})
		if q.Status != "" {
			db = db.Where("status = ?", q.Status)
		}
		if q.Location != "" {
			db = db.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(q.Location)+"%")
		}
		if q.DateFrom != nil {
			db = db.Where("match_date >= ?", *q.DateFrom)
		}
		return db
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, err
	}

	sortBy := "match_date"
	switch q.SortBy {
	case "created_at", "title", "match_date":
		sortBy = q.SortBy
	}
	dir := "ASC"
	if strings.EqualFold(q.SortDir, "desc") {
		dir = "DESC"
	}

	var matches []models.Match
	err := filtered().Preload("Organizer").
		Order(sortBy + " " + dir).
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	data := make([]models.MatchResponse, 0, len(matches))
	for i := range matches {
		accepted, err := acceptedCount(s.DB, matches[i].ID)
		if err != nil {
			return nil, err
		}
		data = append(data, matches[i].Response(accepted))
	}

	totalPages := int((total + int64(q.Size) - 1) / int64(q.Size))
	return &models.PaginatedMatchResponse{
		Data:       data,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.Size,
		TotalPages: totalPages,
	}, nil
}

// Update replaces the editable fields and leaves status and the roster
// untouched. Lowering max_players below the current accepted count is
// allowed; capacity is only enforced against new acceptances.
func (s *MatchService) Update(matchID uuid.UUID, input MatchInput, actorID uuid.UUID) (*models.MatchResponse, error) {
	var match models.Match
	if err := s.DB.Preload("Organizer").First(&match, "id = ?", matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrMatchNotFound
		}
		return nil, err
	}
	if !CanManageMatch(actorID, &match) {
		return nil, models.ErrForbidden
	}

	updates := map[string]any{
		"title":       input.Title,
		"description": input.Description,
		"location":    input.Location,
		"match_date":  input.MatchDate,
		"max_players": input.MaxPlayers,
	}
	if err := s.DB.Model(&match).Updates(updates).Error; err != nil {
		return nil, err
	}

	accepted, err := acceptedCount(s.DB, match.ID)
	if err != nil {
		return nil, err
	}
	resp := match.Response(accepted)
	return &resp, nil
}

// Delete removes the match and its participant rows in one transaction —
// participant rows never outlive their match.
func (s *MatchService) Delete(matchID uuid.UUID, actorID uuid.UUID) error {
	var match models.Match
	if err := s.DB.First(&match, "id = ?", matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrMatchNotFound
		}
		return err
	}
	if !CanManageMatch(actorID, &match) {
		return models.ErrForbidden
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_id = ?", match.ID).Delete(&models.MatchParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Match{}, "id = ?", match.ID).Error
	})
}

// Cancel is unconditional for the organizer: it overrides OPEN and CLOSED
// alike, and nothing transitions out of CANCELLED.
func (s *MatchService) Cancel(matchID uuid.UUID, actorID uuid.UUID) error {
	var match models.Match
	if err := s.DB.First(&match, "id = ?", matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrMatchNotFound
		}
		return err
	}
	if !CanManageMatch(actorID, &match) {
		return models.ErrForbidden
	}
	return s.DB.Model(&match).Update("status", models.MatchStatusCancelled).Error
}

// SetMainPhoto stores the uploaded cover photo URL. Organizer only.
func (s *MatchService) SetMainPhoto(matchID uuid.UUID, actorID uuid.UUID, url string) error {
	var match models.Match
	if err := s.DB.First(&match, "id = ?", matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrMatchNotFound
		}
		return err
	}
	if !CanManageMatch(actorID, &match) {
		return models.ErrForbidden
	}
	return s.DB.Model(&match).Update("main_photo_url", url).Error
}

// AutoCloseIfFull re-reads the accepted count and closes an OPEN match that
// has reached capacity. Idempotent: already-closed or under-capacity
// matches are a no-op. Callers inside a roster transaction pass their tx so
// the close lands atomically with the accepting write.
func (s *MatchService) AutoCloseIfFull(tx *gorm.DB, matchID uuid.UUID) error {
	if tx == nil {
		tx = s.DB
	}
	var match models.Match
	if err := tx.First(&match, "id = ?", matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrMatchNotFound
		}
		return err
	}
	if match.Status != models.MatchStatusOpen {
		return nil
	}
	accepted, err := acceptedCount(tx, match.ID)
	if err != nil {
		return err
	}
	if accepted >= int64(match.MaxPlayers) {
		return tx.Model(&match).Update("status", models.MatchStatusClosed).Error
	}
	return nil
}

package services

import (
	"errors"

	"foot-match-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParticipantService tracks per-match roster entries. Its one hard
// invariant: accepted count never exceeds match.MaxPlayers, at any
// observable instant, under concurrent joins and acceptances. Every
// count-then-act pair here runs with the match row locked inside a
// transaction.
type ParticipantService struct {
	DB      *gorm.DB
	Matches *MatchService
}

func NewParticipantService(db *gorm.DB, matches *MatchService) *ParticipantService {
	return &ParticipantService{DB: db, Matches: matches}
}

// Join adds the player to the roster as PENDING. Order of checks follows
// the lifecycle: match exists, match open, not the organizer, not already
// joined, capacity not reached. The unique index on (match_id, player_id)
// backs the already-joined check — a concurrent duplicate insert loses at
// the constraint, not at the prior read. Join never auto-closes; only an
// acceptance can.
func (s *ParticipantService) Join(matchID, playerID uuid.UUID) (*models.ParticipantResponse, error) {
	var participant models.MatchParticipant

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var match models.Match
		if err := lockForUpdate(tx).First(&match, "id = ?", matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrMatchNotFound
			}
			return err
		}
		if match.Status != models.MatchStatusOpen {
			return models.ErrMatchNotOpen
		}
		if match.OrganizerID == playerID {
			return models.ErrSelfJoin
		}

		var existing int64
		if err := tx.Model(&models.MatchParticipant{}).
			Where("match_id = ? AND player_id = ?", matchID, playerID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return models.ErrAlreadyJoined
		}

		accepted, err := acceptedCount(tx, matchID)
		if err != nil {
			return err
		}
		if accepted >= int64(match.MaxPlayers) {
			return models.ErrMatchFull
		}

		var player models.User
		if err := tx.First(&player, "id = ?", playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrUserNotFound
			}
			return err
		}

		participant = models.MatchParticipant{
			ID:       uuid.New(),
			MatchID:  match.ID,
			PlayerID: player.ID,
			Player:   player,
			Status:   models.ParticipantStatusPending,
		}
		if err := tx.Omit("Player").Create(&participant).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.ErrAlreadyJoined
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := participant.Response()
	return &resp, nil
}

// Leave deletes the row unconditionally, in any match status. An ACCEPTED
// player leaving a CLOSED match does not reopen it — no compensation here.
func (s *ParticipantService) Leave(matchID, playerID uuid.UUID) error {
	result := s.DB.Where("match_id = ? AND player_id = ?", matchID, playerID).
		Delete(&models.MatchParticipant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrParticipantNotFound
	}
	return nil
}

// List returns the roster ordered by join time.
func (s *ParticipantService) List(matchID uuid.UUID) ([]models.ParticipantResponse, error) {
	var exists int64
	if err := s.DB.Model(&models.Match{}).Where("id = ?", matchID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, models.ErrMatchNotFound
	}

	var participants []models.MatchParticipant
	err := s.DB.Preload("Player").
		Where("match_id = ?", matchID).
		Order("joined_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}

	responses := make([]models.ParticipantResponse, 0, len(participants))
	for i := range participants {
		responses = append(responses, participants[i].Response())
	}
	return responses, nil
}

// CountByStatus reflects committed state only.
func (s *ParticipantService) CountByStatus(matchID uuid.UUID, status string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.MatchParticipant{}).
		Where("match_id = ? AND status = ?", matchID, status).
		Count(&count).Error
	return count, err
}

// UpdateStatus is the organizer's accept/reject decision. An acceptance
// re-checks capacity at decision time under the match lock and, when it
// fills the roster, closes the match inside the same transaction. Of two
// concurrent acceptances racing for the last slot, exactly one commits.
func (s *ParticipantService) UpdateStatus(matchID, playerID uuid.UUID, newStatus string, actorID uuid.UUID) (*models.ParticipantResponse, error) {
	switch newStatus {
	case models.ParticipantStatusPending, models.ParticipantStatusAccepted, models.ParticipantStatusRejected:
	default:
		return nil, models.ErrInvalidStatus
	}

	var participant models.MatchParticipant

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var match models.Match
		if err := lockForUpdate(tx).First(&match, "id = ?", matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrMatchNotFound
			}
			return err
		}
		if !CanManageMatch(actorID, &match) {
			return models.ErrForbidden
		}

		if err := tx.Preload("Player").
			Where("match_id = ? AND player_id = ?", matchID, playerID).
			First(&participant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrParticipantNotFound
			}
			return err
		}

		if newStatus == models.ParticipantStatusAccepted {
			accepted, err := acceptedCount(tx, matchID)
			if err != nil {
				return err
			}
			if accepted >= int64(match.MaxPlayers) {
				return models.ErrMatchFull
			}
		}

		if err := tx.Model(&participant).Update("status", newStatus).Error; err != nil {
			return err
		}
		participant.Status = newStatus

		if newStatus == models.ParticipantStatusAccepted {
			return s.Matches.AutoCloseIfFull(tx, matchID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := participant.Response()
	return &resp, nil
}

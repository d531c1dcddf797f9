package services

import (
	"foot-match-service/models"

	"github.com/google/uuid"
)

// Authorization is decided here, not in routing. Pure functions: the caller
// turns a false into models.ErrForbidden so denials are never silent.

// CanManageMatch reports whether the actor owns the match. Organizer-only
// mutations (update, delete, cancel, participant decisions) all go through
// this check.
func CanManageMatch(actorID uuid.UUID, match *models.Match) bool {
	return actorID == match.OrganizerID
}

// CanCreateMatch reports whether a role may publish matches.
func CanCreateMatch(role string) bool {
	return role == models.RoleOrganizer
}

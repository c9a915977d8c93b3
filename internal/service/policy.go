package service

import (
	"github.com/google/uuid"

	"github.com/nurpe/ecoreports/internal/model"
)

// Policy decides whether an actor may modify a report owned by ownerID.
type Policy interface {
	CanModify(actor model.Principal, ownerID uuid.UUID) bool
}

type OwnerOrStaffPolicy struct{}

func (OwnerOrStaffPolicy) CanModify(actor model.Principal, ownerID uuid.UUID) bool {
	if actor.IsStaffMember() {
		return true
	}
	return actor.UserID != uuid.Nil && actor.UserID == ownerID
}

package reservation

import (
	"github.com/navalha-labs/booking-engine/internal/httperr"
	"github.com/navalha-labs/booking-engine/internal/models"
)

// Actor is the calling identity supplied by the authorization collaborator.
// The engine trusts it and only checks ownership by id equality; role
// semantics live outside.
type Actor struct {
	ClientID   uint
	ProviderID uint
}

func (a Actor) owns(r *models.Reservation) bool {
	if a.ProviderID != 0 && a.ProviderID == r.ProviderID {
		return true
	}
	if a.ClientID != 0 && a.ClientID == r.ClientID {
		return true
	}
	return false
}

func authorize(a Actor, r *models.Reservation) error {
	if !a.owns(r) {
		return httperr.Authorization(httperr.CodeNotOwner)
	}
	return nil
}

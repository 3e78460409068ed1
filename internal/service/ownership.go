package service

import "github.com/rdogf/AppImovel/internal/model"

// Actor is the authenticated identity making a request, resolved per
// request from the session token. Never persisted by the services.
type Actor struct {
	ID   uint
	Role model.Role
}

// Authenticated reports whether the actor was actually resolved.
// The zero Actor denies everything.
func (a Actor) Authenticated() bool {
	return a.ID != 0
}

func (a Actor) IsMaster() bool {
	return a.Authenticated() && a.Role == model.RoleMaster
}

// CanMutate reports whether the actor may update, deactivate or restore
// the given property: masters always, everyone else only their own rows.
func (a Actor) CanMutate(p *model.Property) bool {
	if !a.Authenticated() {
		return false
	}
	return a.IsMaster() || a.ID == p.UserID
}

// CanPermanentlyDelete is master-only. Soft delete is enough for agents.
func (a Actor) CanPermanentlyDelete() bool {
	return a.IsMaster()
}

// CanViewInactive gates the deactivated-listings view.
func (a Actor) CanViewInactive() bool {
	return a.IsMaster()
}

package services

import "blogapi/models"

// Identity is the acting user of a request. The zero value is anonymous.
type Identity struct {
	UserID uint
	Name   string
}

func Anonymous() Identity {
	return Identity{}
}

func Authenticated(user *models.User) Identity {
	if user == nil {
		return Anonymous()
	}
	return Identity{UserID: user.ID, Name: user.Name}
}

func (i Identity) IsAuthenticated() bool {
	return i.UserID != 0
}

// RequireAuthenticated fails with ErrUnauthorized for anonymous callers.
func RequireAuthenticated(id Identity) error {
	if !id.IsAuthenticated() {
		return ErrUnauthorized
	}
	return nil
}

// Guard decides privileged access. Privilege is a single fixed user id, the
// first account registered unless configured otherwise.
type Guard struct {
	adminID uint
}

func NewGuard(adminID uint) *Guard {
	if adminID == 0 {
		adminID = 1
	}
	return &Guard{adminID: adminID}
}

func (g *Guard) AdminID() uint {
	return g.adminID
}

func (g *Guard) IsPrivileged(id Identity) bool {
	return id.IsAuthenticated() && id.UserID == g.adminID
}

// RequirePrivileged fails with ErrUnauthorized for anonymous callers and
// ErrForbidden for everyone but the privileged identity.
func (g *Guard) RequirePrivileged(id Identity) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	if !g.IsPrivileged(id) {
		return ErrForbidden
	}
	return nil
}

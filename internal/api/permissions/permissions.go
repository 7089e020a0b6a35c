// Package permissions decides whether an actor may perform a request, both at
// the endpoint level (AllowsRequest) and against a specific object
// (AllowsOnResource). Policies are plain values selected per resource group.
package permissions

import (
	"net/http"

	"reviewhub/internal/api/models"
)

// Actor is the possibly-anonymous principal attached to a request.
type Actor struct {
	Authenticated bool
	ID            string
	Role          string
	IsStaff       bool
	IsSuperuser   bool
}

// Anonymous returns the actor for a request without credentials.
func Anonymous() Actor {
	return Actor{}
}

// FromUser builds an actor from a persisted user record.
func FromUser(user *models.User) Actor {
	return Actor{
		Authenticated: true,
		ID:            user.ID,
		Role:          user.Role,
		IsStaff:       user.IsStaff,
		IsSuperuser:   user.IsSuperuser,
	}
}

func (a Actor) IsAdmin() bool {
	return a.Authenticated && (a.IsStaff || a.Role == models.RoleAdmin || a.IsSuperuser)
}

func (a Actor) IsModerator() bool {
	return a.Authenticated && a.Role == models.RoleModerator
}

// SafeMethod reports whether the HTTP method is read-only.
func SafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Policy gates a request twice: once per endpoint class, once per object
// instance. ownerID is the empty string when the resource has no author.
type Policy interface {
	AllowsRequest(actor Actor, method string) bool
	AllowsOnResource(actor Actor, method string, ownerID string) bool
}

// AdminOnly protects the user-management endpoint: every method, including
// reads, requires admin.
type AdminOnly struct{}

func (AdminOnly) AllowsRequest(actor Actor, method string) bool {
	return actor.IsAdmin()
}

func (p AdminOnly) AllowsOnResource(actor Actor, method string, ownerID string) bool {
	return p.AllowsRequest(actor, method)
}

// AdminOrReadOnly protects catalog resources: anyone may read, only admins
// may mutate.
type AdminOrReadOnly struct{}

func (AdminOrReadOnly) AllowsRequest(actor Actor, method string) bool {
	return SafeMethod(method) || actor.IsAdmin()
}

func (p AdminOrReadOnly) AllowsOnResource(actor Actor, method string, ownerID string) bool {
	return p.AllowsRequest(actor, method)
}

// AuthorOrPrivileged protects reviews and comments: anyone may read, any
// authenticated user may create, and mutation of an existing object requires
// the author, a moderator or an admin.
type AuthorOrPrivileged struct{}

func (AuthorOrPrivileged) AllowsRequest(actor Actor, method string) bool {
	return SafeMethod(method) || actor.Authenticated
}

func (AuthorOrPrivileged) AllowsOnResource(actor Actor, method string, ownerID string) bool {
	if SafeMethod(method) {
		return true
	}
	return actor.IsAdmin() || actor.IsModerator() || (actor.Authenticated && actor.ID == ownerID)
}

// AuthenticatedOnly protects the self-profile alias: any authenticated actor,
// no role requirement.
type AuthenticatedOnly struct{}

func (AuthenticatedOnly) AllowsRequest(actor Actor, method string) bool {
	return actor.Authenticated
}

func (p AuthenticatedOnly) AllowsOnResource(actor Actor, method string, ownerID string) bool {
	return p.AllowsRequest(actor, method)
}

package permissions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"reviewhub/internal/api/models"
)

var (
	anon      = Anonymous()
	plainUser = Actor{Authenticated: true, ID: "u1", Role: models.RoleUser}
	moderator = Actor{Authenticated: true, ID: "m1", Role: models.RoleModerator}
	admin     = Actor{Authenticated: true, ID: "a1", Role: models.RoleAdmin}
	staff     = Actor{Authenticated: true, ID: "s1", Role: models.RoleUser, IsStaff: true}
	superuser = Actor{Authenticated: true, ID: "su1", Role: models.RoleUser, IsSuperuser: true}
)

func TestActorPredicates(t *testing.T) {
	assert.False(t, anon.IsAdmin())
	assert.False(t, anon.IsModerator())
	assert.False(t, plainUser.IsAdmin())
	assert.True(t, moderator.IsModerator())
	assert.False(t, moderator.IsAdmin())
	assert.True(t, admin.IsAdmin())
	assert.True(t, staff.IsAdmin())
	assert.True(t, superuser.IsAdmin())
}

func TestAdminOrReadOnly(t *testing.T) {
	p := AdminOrReadOnly{}

	// Safe methods are open to everyone, including anonymous actors.
	assert.True(t, p.AllowsRequest(anon, http.MethodGet))
	assert.True(t, p.AllowsRequest(plainUser, http.MethodGet))

	assert.False(t, p.AllowsRequest(anon, http.MethodPost))
	assert.False(t, p.AllowsRequest(plainUser, http.MethodPost))
	assert.False(t, p.AllowsRequest(moderator, http.MethodDelete))
	assert.True(t, p.AllowsRequest(admin, http.MethodPost))
	assert.True(t, p.AllowsRequest(staff, http.MethodPatch))
	assert.True(t, p.AllowsRequest(superuser, http.MethodDelete))
}

func TestAdminOnly(t *testing.T) {
	p := AdminOnly{}

	// Even reads require admin on the user-management endpoint.
	assert.False(t, p.AllowsRequest(anon, http.MethodGet))
	assert.False(t, p.AllowsRequest(plainUser, http.MethodGet))
	assert.False(t, p.AllowsRequest(moderator, http.MethodGet))
	assert.True(t, p.AllowsRequest(admin, http.MethodGet))
	assert.True(t, p.AllowsRequest(admin, http.MethodDelete))
}

func TestAuthorOrPrivileged_Request(t *testing.T) {
	p := AuthorOrPrivileged{}

	assert.True(t, p.AllowsRequest(anon, http.MethodGet))
	assert.False(t, p.AllowsRequest(anon, http.MethodPost))
	assert.True(t, p.AllowsRequest(plainUser, http.MethodPost))
	assert.True(t, p.AllowsRequest(moderator, http.MethodPost))
}

func TestAuthorOrPrivileged_Resource(t *testing.T) {
	p := AuthorOrPrivileged{}
	owner := "u1"

	// Reads are always allowed at the object level too.
	assert.True(t, p.AllowsOnResource(anon, http.MethodGet, owner))

	// The author may mutate their own object.
	assert.True(t, p.AllowsOnResource(plainUser, http.MethodPatch, owner))
	assert.True(t, p.AllowsOnResource(plainUser, http.MethodDelete, owner))

	// A plain user may not touch someone else's object even after passing the
	// coarse check.
	other := Actor{Authenticated: true, ID: "u2", Role: models.RoleUser}
	assert.False(t, p.AllowsOnResource(other, http.MethodDelete, owner))
	assert.False(t, p.AllowsOnResource(other, http.MethodPatch, owner))

	// Moderators and admins may mutate anyone's object.
	assert.True(t, p.AllowsOnResource(moderator, http.MethodDelete, owner))
	assert.True(t, p.AllowsOnResource(admin, http.MethodDelete, owner))
	assert.True(t, p.AllowsOnResource(staff, http.MethodPatch, owner))

	// Anonymous actors never mutate.
	assert.False(t, p.AllowsOnResource(anon, http.MethodDelete, owner))
	assert.False(t, p.AllowsOnResource(anon, http.MethodDelete, ""))
}

func TestAuthenticatedOnly(t *testing.T) {
	p := AuthenticatedOnly{}

	assert.False(t, p.AllowsRequest(anon, http.MethodGet))
	assert.True(t, p.AllowsRequest(plainUser, http.MethodGet))
	assert.True(t, p.AllowsRequest(plainUser, http.MethodPatch))
}

func TestFromUser(t *testing.T) {
	user := &models.User{ID: "u9", Role: models.RoleModerator}
	actor := FromUser(user)
	assert.True(t, actor.Authenticated)
	assert.Equal(t, "u9", actor.ID)
	assert.True(t, actor.IsModerator())
}

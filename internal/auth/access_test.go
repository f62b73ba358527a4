package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cadotvn/cadot-user/internal/models"
)

func TestAccessPredicates(t *testing.T) {
	t.Parallel()

	active := models.User{ID: "a", IsActive: true}
	inactive := models.User{ID: "b", IsActive: false}
	super := models.User{ID: "s", IsActive: true, IsSuperuser: true}
	inactiveSuper := models.User{ID: "is", IsActive: false, IsSuperuser: true}

	assert.True(t, IsActive(active))
	assert.False(t, IsActive(inactive))
	assert.True(t, IsSuperuser(super))
	assert.False(t, IsSuperuser(active))

	assert.NoError(t, RequireActive(active))
	assert.ErrorIs(t, RequireActive(inactive), ErrInactiveAccount)
	// Superuser role does not override a disabled account.
	assert.ErrorIs(t, RequireActive(inactiveSuper), ErrInactiveAccount)

	assert.NoError(t, RequireSuperuser(super))
	assert.ErrorIs(t, RequireSuperuser(active), ErrInsufficientPrivilege)
}

func TestCanViewUser(t *testing.T) {
	t.Parallel()

	a := models.User{ID: "a"}
	b := models.User{ID: "b"}
	super := models.User{ID: "s", IsSuperuser: true}

	assert.True(t, CanViewUser(a, a), "users always see themselves")
	assert.False(t, CanViewUser(a, b))
	assert.True(t, CanViewUser(super, a))
	assert.True(t, CanViewUser(super, super))
}

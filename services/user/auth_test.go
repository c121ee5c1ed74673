package user

import (
	"testing"

	"nyayamitra/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveRole(t *testing.T) {
	assert.Equal(t, models.RolePrisoner, resolveRole(false, false))
	assert.Equal(t, models.RoleProvider, resolveRole(true, false))
	assert.Equal(t, models.RoleJudge, resolveRole(false, true))
	// The judge flag wins when both are set.
	assert.Equal(t, models.RoleJudge, resolveRole(true, true))
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-marketplace.com/task-marketplace/internal/constants"
	model "task-marketplace.com/task-marketplace/internal/models"
)

func TestJWTManager_IssueAndParse(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	actor := model.Actor{ID: "tasker-1", Role: constants.RoleTasker}

	token, err := m.Issue(actor)
	require.NoError(t, err)

	parsed, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, actor, parsed)
}

func TestJWTManager_RejectsSystemRole(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	_, err := m.Issue(model.Actor{ID: "system", Role: constants.RoleSystem})
	assert.Error(t, err)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret", time.Hour).Issue(model.Actor{ID: "c1", Role: constants.RoleCustomer})
	require.NoError(t, err)

	_, err = NewJWTManager("other", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issuedAt }

	token, err := m.Issue(model.Actor{ID: "c1", Role: constants.RoleCustomer})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTManager_Garbage(t *testing.T) {
	_, err := NewJWTManager("secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

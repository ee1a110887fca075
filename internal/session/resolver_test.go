package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func storeWithUser(t *testing.T, value string) Store {
	t.Helper()
	s := NewMemStore()
	require.NoError(t, s.SetItem(context.Background(), UserKey, value))
	return s
}

func TestCurrentUserEmailSingleEncoded(t *testing.T) {
	raw, err := json.Marshal(User{Type: "Employee", Email: "mel@gmail.com"})
	require.NoError(t, err)

	r := NewResolver(storeWithUser(t, string(raw)), zap.NewNop())
	assert.Equal(t, "mel@gmail.com", r.CurrentUserEmail(context.Background()))
}

func TestCurrentUserEmailDoubleEncoded(t *testing.T) {
	inner, err := json.Marshal(User{Type: "Employee", Email: "mel@gmail.com"})
	require.NoError(t, err)
	// Stringified twice by a buggy upstream writer.
	outer, err := json.Marshal(string(inner))
	require.NoError(t, err)

	r := NewResolver(storeWithUser(t, string(outer)), zap.NewNop())
	assert.Equal(t, "mel@gmail.com", r.CurrentUserEmail(context.Background()))
}

func TestCurrentUserEmailNoUser(t *testing.T) {
	r := NewResolver(NewMemStore(), zap.NewNop())
	assert.Equal(t, "", r.CurrentUserEmail(context.Background()))
}

func TestCurrentUserEmailGarbage(t *testing.T) {
	r := NewResolver(storeWithUser(t, "{not json"), zap.NewNop())
	assert.Equal(t, "", r.CurrentUserEmail(context.Background()))
}

func TestCurrentUserWithoutEmailField(t *testing.T) {
	r := NewResolver(storeWithUser(t, `{"type":"Employee"}`), zap.NewNop())
	u := r.CurrentUser(context.Background())
	require.NotNil(t, u)
	assert.Equal(t, "Employee", u.Type)
	assert.Equal(t, "", u.Email)
}

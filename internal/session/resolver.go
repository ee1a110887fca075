package session

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// User is the authenticated user object persisted in the session store.
type User struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

// Resolver extracts the current user's identity from session state.
type Resolver struct {
	store  Store
	logger *zap.Logger
}

// NewResolver creates a resolver over the given session store.
func NewResolver(store Store, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:  store,
		logger: logger,
	}
}

// CurrentUser returns the user stored in the session, or nil when no user
// is present or the stored value cannot be decoded.
//
// Upstream writers have been observed storing the user object stringified
// twice, so if the first decode yields a string the value is decoded once
// more. Both single- and double-encoded forms must resolve without error.
func (r *Resolver) CurrentUser(ctx context.Context) *User {
	raw, ok, err := r.store.GetItem(ctx, UserKey)
	if err != nil {
		r.logger.Warn("Failed to read user from session store", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	payload := []byte(raw)
	var nested string
	if err := json.Unmarshal(payload, &nested); err == nil {
		// Double-encoded: the stored value is a JSON string containing JSON.
		payload = []byte(nested)
	}

	var u User
	if err := json.Unmarshal(payload, &u); err != nil {
		r.logger.Warn("Undecodable user in session store",
			zap.String("value", raw),
			zap.Error(err))
		return nil
	}

	return &u
}

// CurrentUserEmail returns the email of the session's user, or "" when no
// user is present.
func (r *Resolver) CurrentUserEmail(ctx context.Context) string {
	u := r.CurrentUser(ctx)
	if u == nil {
		return ""
	}
	return u.Email
}

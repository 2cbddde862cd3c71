package auth

import "context"

type contextKey string

// UserIDKey keys the authenticated user's ID in the request context.
// The unexported key type keeps other packages' string keys from
// colliding with it.
const UserIDKey contextKey = "user_id"

// UserID returns the authenticated user's ID from the request context,
// or the empty string when the request never passed the auth middleware.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

package models

// Session is the client-side record of the currently authenticated user.
// Token presence is the sole authentication signal; a profile without a
// token is stale state and must never be treated as a login.
type Session struct {
	Token string `json:"-"` // Opaque bearer credential; never serialized
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	ID    *int64 `json:"id,omitempty"`
}

// Authenticated reports whether this session can make authorized calls.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Profile is the user-identity part of a session, as captured at login
// or registration time.
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	ID    *int64 `json:"id,omitempty"`
}

// ProfileUpdate is a partial profile change. Nil fields are left as-is,
// so a single-field update (e.g. phone only) does not clobber the rest.
type ProfileUpdate struct {
	Email *string
	Name  *string
	Phone *string
	ID    *int64
}

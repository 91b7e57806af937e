package model

// Session is the authenticated caller identity carried through request
// context after the auth middleware has run.
type Session struct {
	UserID   string
	Username string
}

// Package session carries the authenticated context that adjustment
// workflows run under: the API token, the responsible user, and the OTP
// verification gate. It replaces ambient globals with an explicit value
// passed into store and CLI construction.
package session

// User identifies the responsible user recorded on adjustment records.
type User struct {
	Username string
	Email    string
	Name     string
}

// Context is the state an adjustment workflow needs. It is constructed
// once after login and passed down explicitly.
type Context struct {
	Token    string
	User     User
	verified bool
}

// NewContext builds a session for an authenticated user.
func NewContext(token string, user User) *Context {
	return &Context{Token: token, User: user}
}

// MarkVerified records that the OTP gate passed. Adjustment writes must
// not proceed before this.
func (c *Context) MarkVerified() {
	c.verified = true
}

// Verified reports whether the OTP gate passed.
func (c *Context) Verified() bool {
	return c.verified
}

package client

// Session is the explicit authentication state of a client: created by
// a successful signup or login, torn down by Logout. Nothing else
// mutates it.
type Session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

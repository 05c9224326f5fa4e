// Package session holds the bearer credential. The token lives in the local
// key-value store and travels to API calls inside an explicit Session value.
package session

// Session is the credential context handed to every API call.
// The zero value is Anonymous.
type Session struct {
	token   string
	present bool
}

// Anonymous carries no credential.
var Anonymous = Session{}

// New wraps a token. An empty token is present but does not authenticate.
func New(token string) Session {
	return Session{token: token, present: true}
}

func (s Session) Token() string { return s.token }

// Present reports whether a token was stored, even an empty one.
func (s Session) Present() bool { return s.present }

// Authenticated reports whether requests will carry an Authorization header.
func (s Session) Authenticated() bool { return s.token != "" }

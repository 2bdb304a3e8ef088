package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User owns zero or more processes, keyed by username. Password holds
// whatever the store was given: a bcrypt hash via the auth endpoints, or a
// raw secret via the plain sync endpoint.
type User struct {
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Processes []Process `json:"processes"`
}

// internal/domain/user.go
package domain

import "time"

// User represents a registered user of the messaging service.
// Password holds the bcrypt hash, never the plaintext, and is excluded
// from every JSON projection.
type User struct {
	Username    string     `db:"username" json:"username"`           // Primary identifier, unique, immutable
	Password    string     `db:"password" json:"-"`                  // bcrypt hash, never serialized
	FirstName   string     `db:"first_name" json:"first_name"`       // Display name
	LastName    string     `db:"last_name" json:"last_name"`         // Display name
	Phone       string     `db:"phone" json:"phone"`                 // Contact string, unvalidated at this layer
	JoinAt      time.Time  `db:"join_at" json:"join_at"`             // Set once at creation, server-assigned
	LastLoginAt *time.Time `db:"last_login_at" json:"last_login_at"` // NULL until first login
}

// NewUser creates a new User instance with a server-assigned join timestamp.
func NewUser(username, passwordHash, firstName, lastName, phone string) *User {
	return &User{
		Username:  username,
		Password:  passwordHash,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		JoinAt:    time.Now().UTC(),
	}
}

// UserSummary is the projection returned by the user listing.
type UserSummary struct {
	Username  string `db:"username" json:"username"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
}

// UserRef is the counterpart profile embedded in message projections.
type UserRef struct {
	Username  string `db:"username" json:"username"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Phone     string `db:"phone" json:"phone"`
}

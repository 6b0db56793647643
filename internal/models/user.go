package models

// Roles known to the credential table.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is one entry of the static credential table. PasswordHash holds a
// bcrypt hash; plaintext passwords never leave the config loader.
type User struct {
	Username     string
	PasswordHash string
	Role         string
}

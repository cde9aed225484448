package users

import "time"

// User es dueño de cero o más kittens. No se modifica después del registro.
type User struct {
	ID           string
	Username     string
	PasswordHash string

	CreatedAt time.Time
}

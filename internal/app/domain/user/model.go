package user

// User is a registered shopper. The stored record carries only a bcrypt hash
// of the password; the raw password is never persisted or logged.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// Public is the projection returned to clients. It never includes credential
// material.
type Public struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Public returns the client-facing projection of the user.
func (u User) Public() Public {
	return Public{ID: u.ID, Email: u.Email}
}

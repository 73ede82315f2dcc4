package domain

// User is the authenticated account profile.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

// UpdateUserData is the partial payload for editing the current user.
// Zero-valued fields are omitted from the request body.
type UpdateUserData struct {
	Name     string `json:"nome,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"senha,omitempty"`
}

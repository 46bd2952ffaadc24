package domain

import "crypto/subtle"

// User is a storefront account. The demo fixture keeps credentials in
// process; there is no real identity provider behind it.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`

	password string
}

// NewUser constructs a user with the given credential.
func NewUser(id int64, username, displayName, email, password string) *User {
	return &User{
		ID:          id,
		Username:    username,
		DisplayName: displayName,
		Email:       email,
		password:    password,
	}
}

// CheckPassword compares the candidate against the stored credential in
// constant time.
func (u *User) CheckPassword(candidate string) bool {
	if u == nil || u.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(u.password), []byte(candidate)) == 1
}

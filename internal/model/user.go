package model

import "time"

// User is the identity record owning files. Users are created and managed by
// the external auth collaborator; this service only reads them when resolving
// a session and as the foreign-key target of File.UserID.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

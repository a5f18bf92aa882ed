package domain

// User is the identity attached to comments and events. Authentication itself
// lives in a separate service; handlers receive the already-resolved identity.
type User struct {
	Id       UserId   `json:"id"`
	Username Username `json:"username"`
	Avatar   string   `json:"avatar,omitempty"`
}

package models

import "time"

// User is an identity record from the roster. Immutable after creation;
// there is no profile-edit path.
type User struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	Avatar    string    `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Phone     string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

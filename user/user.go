// Package user is the user directory: plain CRUD plus the paginated listing.
package user

import (
	"errors"
	"time"

	"github.com/Alp4ka/relaypager"
)

// ErrNotFound is returned when no user has the requested ID.
var ErrNotFound = errors.New("user not found")

// User is a directory entry.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36);index:idx_users_created_at_id,priority:2" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;uniqueIndex" json:"email"`
	Age       int       `gorm:"not null" json:"age"`
	Bio       *string   `json:"bio,omitempty"`
	CreatedAt time.Time `gorm:"not null;index:idx_users_created_at_id,priority:1" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// PageKey returns the pagination key of the user.
func PageKey(u User) relaypager.Key {
	return relaypager.Key{CreatedAt: u.CreatedAt, ID: u.ID}
}

// CreateInput holds the fields of a new user. A nil Bio stores no bio.
type CreateInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Age   int     `json:"age"`
	Bio   *string `json:"bio,omitempty"`
}

// UpdateInput holds the fields to change. Nil pointers leave fields untouched;
// Bio can additionally be cleared.
type UpdateInput struct {
	Name  *string       `json:"name,omitempty"`
	Email *string       `json:"email,omitempty"`
	Age   *int          `json:"age,omitempty"`
	Bio   Patch[string] `json:"bio"`
}

// IsEmpty returns true if the input changes nothing.
func (in UpdateInput) IsEmpty() bool {
	return in.Name == nil && in.Email == nil && in.Age == nil && !in.Bio.IsSpecified()
}

// columns returns the column assignments of the update.
func (in UpdateInput) columns() map[string]any {
	ret := make(map[string]any, 4)
	if in.Name != nil {
		ret["name"] = *in.Name
	}

	if in.Email != nil {
		ret["email"] = *in.Email
	}

	if in.Age != nil {
		ret["age"] = *in.Age
	}

	if v, ok := in.Bio.column(); ok {
		ret["bio"] = v
	}

	return ret
}

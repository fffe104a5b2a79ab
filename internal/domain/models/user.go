// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents super-admins, lab admins, technicians, and receptionists.
//
// NOTE:
//   - LabID is nil only for super-admins; every other role belongs to
//     exactly one lab (the tenant boundary).
//   - PasswordHash is bcrypt and is never serialized to JSON.
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	NameCI       string              `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string              `bson:"email" json:"email"`
	PasswordHash string              `bson:"password_hash" json:"-"`
	Role         string              `bson:"role" json:"role"` // super-admin | admin | technician | receptionist
	Status       string              `bson:"status,omitempty" json:"status,omitempty"`
	LabID        *primitive.ObjectID `bson:"lab_id,omitempty" json:"labId,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

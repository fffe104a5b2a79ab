package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/pathlabhq/pathlab/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID    string
	Name  string
	Email string
	Role  string
	LabID string
}

// SuperAdminUser returns a TestUser with the super-admin role.
func SuperAdminUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Super Admin",
		Email: "superadmin@test.com",
		Role:  "super-admin",
	}
}

// AdminUser returns a TestUser with admin role in the given lab.
func AdminUser(labID primitive.ObjectID) TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Admin",
		Email: "admin@test.com",
		Role:  "admin",
		LabID: labID.Hex(),
	}
}

// TechnicianUser returns a TestUser with technician role in the given lab.
func TechnicianUser(labID primitive.ObjectID) TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Technician",
		Email: "technician@test.com",
		Role:  "technician",
		LabID: labID.Hex(),
	}
}

// ReceptionistUser returns a TestUser with receptionist role in the given lab.
func ReceptionistUser(labID primitive.ObjectID) TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Receptionist",
		Email: "receptionist@test.com",
		Role:  "receptionist",
		LabID: labID.Hex(),
	}
}

// UserFor returns a TestUser matching an existing user record's identity,
// so handler tests act as users that exist in the test database.
func UserFor(id primitive.ObjectID, name, email, role string, labID *primitive.ObjectID) TestUser {
	u := TestUser{
		ID:    id.Hex(),
		Name:  name,
		Email: email,
		Role:  role,
	}
	if labID != nil {
		u.LabID = labID.Hex()
	}
	return u
}

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses token verification and injects the user directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	tokenUser := &auth.TokenUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		LabID: user.LabID,
	}
	return auth.WithTestUser(r, tokenUser)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

package tenantpolicy

import (
	"testing"

	"github.com/pathlabhq/pathlab/internal/app/system/authz"
	"github.com/pathlabhq/pathlab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanAccessLab(t *testing.T) {
	labA := primitive.NewObjectID()
	labB := primitive.NewObjectID()

	superAdmin := authz.Actor{UserID: primitive.NewObjectID(), Role: authz.RoleSuperAdmin}
	adminA := authz.Actor{UserID: primitive.NewObjectID(), Role: authz.RoleAdmin, LabID: labA}
	techA := authz.Actor{UserID: primitive.NewObjectID(), Role: authz.RoleTechnician, LabID: labA}

	tests := []struct {
		name   string
		actor  authz.Actor
		target primitive.ObjectID
		want   bool
	}{
		{"super-admin any lab", superAdmin, labA, true},
		{"super-admin other lab", superAdmin, labB, true},
		{"admin own lab", adminA, labA, true},
		{"admin other lab", adminA, labB, false},
		{"technician own lab", techA, labA, true},
		{"technician other lab", techA, labB, false},
	}

	for _, tt := range tests {
		if got := CanAccessLab(tt.actor, tt.target); got != tt.want {
			t.Errorf("%s: CanAccessLab = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCanAccessReport(t *testing.T) {
	labA := primitive.NewObjectID()
	labB := primitive.NewObjectID()
	techID := primitive.NewObjectID()
	otherTechID := primitive.NewObjectID()

	report := models.Report{LabID: labA, TechnicianID: techID}

	tests := []struct {
		name  string
		actor authz.Actor
		want  bool
	}{
		{"admin same lab", authz.Actor{UserID: primitive.NewObjectID(), Role: authz.RoleAdmin, LabID: labA}, true},
		{"admin other lab", authz.Actor{UserID: primitive.NewObjectID(), Role: authz.RoleAdmin, LabID: labB}, false},
		{"technician own report", authz.Actor{UserID: techID, Role: authz.RoleTechnician, LabID: labA}, true},
		{"technician same lab not owner", authz.Actor{UserID: otherTechID, Role: authz.RoleTechnician, LabID: labA}, false},
		{"technician other lab", authz.Actor{UserID: techID, Role: authz.RoleTechnician, LabID: labB}, false},
		{"super-admin never", authz.Actor{UserID: primitive.NewObjectID(), Role: authz.RoleSuperAdmin}, false},
		{"receptionist never", authz.Actor{UserID: primitive.NewObjectID(), Role: authz.RoleReceptionist, LabID: labA}, false},
	}

	for _, tt := range tests {
		if got := CanAccessReport(tt.actor, report); got != tt.want {
			t.Errorf("%s: CanAccessReport = %v, want %v", tt.name, got, tt.want)
		}
	}
}

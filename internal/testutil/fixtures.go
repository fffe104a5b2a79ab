package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/pathlabhq/pathlab/internal/app/policy/lifecycle"
	"github.com/pathlabhq/pathlab/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateLab creates a test lab with the given name.
// Returns the created lab with its generated ID.
func (f *Fixtures) CreateLab(ctx context.Context, name string) models.Lab {
	f.t.Helper()

	now := time.Now().UTC()
	lab := models.Lab{
		ID:     primitive.NewObjectID(),
		Name:   name,
		NameCI: text.Fold(name),
		Address: models.LabAddress{
			Street:  "12 Test Road",
			City:    "Test City",
			State:   "TS",
			ZipCode: "00000",
			Country: "Testland",
		},
		Contact: models.LabContact{
			Phone: "555-0100",
			Email: "lab@test.com",
		},
		Subscription: models.Subscription{
			Plan:      "basic",
			Status:    "active",
			StartDate: now,
		},
		CreatedBy: primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("labs").InsertOne(ctx, lab)
	if err != nil {
		f.t.Fatalf("failed to create test lab: %v", err)
	}

	return lab
}

// CreateUser creates a test user with the given parameters. labID must be
// nil only for super-admins.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string, labID *primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtesth",
		Role:         role,
		Status:       "active",
		LabID:        labID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, u)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return u
}

// CreateAdmin creates a lab admin for the given lab.
func (f *Fixtures) CreateAdmin(ctx context.Context, labID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, "Test Admin", "admin+"+primitive.NewObjectID().Hex()+"@test.com", "admin", &labID)
}

// CreateTechnician creates a technician for the given lab.
func (f *Fixtures) CreateTechnician(ctx context.Context, labID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, "Test Technician", "tech+"+primitive.NewObjectID().Hex()+"@test.com", "technician", &labID)
}

// CreateReport creates a test report in the given lab, created by the
// given technician, with the given status.
func (f *Fixtures) CreateReport(ctx context.Context, labID, technicianID primitive.ObjectID, status string) models.Report {
	f.t.Helper()

	if status == "" {
		status = lifecycle.StatusPending
	}
	now := time.Now().UTC()
	r := models.Report{
		ID: primitive.NewObjectID(),
		PatientInfo: models.PatientInfo{
			Name:      "Test Patient",
			NameCI:    text.Fold("Test Patient"),
			Age:       42,
			Gender:    "female",
			PatientID: "PAT-" + primitive.NewObjectID().Hex()[:8],
		},
		TestInfo: models.TestInfo{
			Name:                 "Complete Blood Count",
			NameCI:               text.Fold("Complete Blood Count"),
			Category:             "hematology",
			SampleType:           "blood",
			SampleCollectionDate: now,
			SampleID:             "SMP-" + primitive.NewObjectID().Hex()[:8],
		},
		Results: []models.ResultEntry{
			{Parameter: "Hemoglobin", Value: "13.5", Unit: "g/dL", ReferenceRange: "12.0-15.5", Flag: "normal"},
		},
		Status:       status,
		LabID:        labID,
		TechnicianID: technicianID,
		ReportMeta: models.ReportMeta{
			GeneratedAt: now,
			Version:     1,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("reports").InsertOne(ctx, r)
	if err != nil {
		f.t.Fatalf("failed to create test report: %v", err)
	}

	return r
}

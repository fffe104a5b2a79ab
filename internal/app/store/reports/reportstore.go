// internal/app/store/reports/reportstore.go
package reportstore

import (
	"context"
	"time"

	"github.com/pathlabhq/pathlab/internal/app/policy/lifecycle"
	"github.com/pathlabhq/pathlab/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reports")}
}

// Filter narrows report list queries. Nil/empty fields are ignored.
type Filter struct {
	LabID        *primitive.ObjectID
	TechnicianID *primitive.ObjectID
	Status       string
	PatientID    string
	TestName     string // case-insensitive substring match
	StartDate    *time.Time
	EndDate      *time.Time
}

// Query builds the Mongo filter document.
func (f Filter) Query() bson.M {
	q := bson.M{}
	if f.LabID != nil {
		q["lab_id"] = *f.LabID
	}
	if f.TechnicianID != nil {
		q["technician_id"] = *f.TechnicianID
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.PatientID != "" {
		q["patient_info.patient_id"] = f.PatientID
	}
	if f.TestName != "" {
		q["test_info.name"] = bson.M{"$regex": f.TestName, "$options": "i"}
	}
	if f.StartDate != nil || f.EndDate != nil {
		dr := bson.M{}
		if f.StartDate != nil {
			dr["$gte"] = *f.StartDate
		}
		if f.EndDate != nil {
			dr["$lte"] = *f.EndDate
		}
		q["created_at"] = dr
	}
	return q
}

func (s *Store) Create(ctx context.Context, r models.Report) (models.Report, error) {
	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	r.PatientInfo.NameCI = text.Fold(r.PatientInfo.Name)
	r.TestInfo.NameCI = text.Fold(r.TestInfo.Name)
	if r.TestInfo.SampleID == "" {
		// Generate a short accession identifier: SMP-xxxxxxxx
		r.TestInfo.SampleID = "SMP-" + uuid.New().String()[:8]
	}
	if r.Status == "" {
		r.Status = lifecycle.StatusPending
	}
	r.ReportMeta.GeneratedAt = now
	r.ReportMeta.Version = 1
	r.CreatedAt = now
	r.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, r)
	if err != nil {
		return models.Report{}, err
	}
	return r, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Report, error) {
	var r models.Report
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err != nil {
		return models.Report{}, err
	}
	return r, nil
}

// Update applies a content edit: patient info, test info, results, and
// optionally a status move. Every successful update increments the
// version by exactly 1 and stamps the modifier. Callers enforce the
// lifecycle rules before getting here.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, r models.Report, by primitive.ObjectID) error {
	now := time.Now().UTC()
	set := bson.M{
		"report_meta.last_modified_at": now,
		"report_meta.last_modified_by": by,
		"updated_at":                   now,
	}
	if r.PatientInfo.Name != "" {
		r.PatientInfo.NameCI = text.Fold(r.PatientInfo.Name)
		set["patient_info"] = r.PatientInfo
	}
	if r.TestInfo.Name != "" {
		r.TestInfo.NameCI = text.Fold(r.TestInfo.Name)
		set["test_info"] = r.TestInfo
	}
	if r.Results != nil {
		set["results"] = r.Results
	}
	if r.Status != "" {
		set["status"] = r.Status
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": set,
		"$inc": bson.M{"report_meta.version": 1},
	})
	return err
}

// Verify stamps the report verified regardless of its current status.
// Re-verification overwrites the previous verifier.
func (s *Store) Verify(ctx context.Context, id primitive.ObjectID, adminID primitive.ObjectID) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"status":                       lifecycle.StatusVerified,
			"verified_by":                  adminID,
			"report_meta.last_modified_at": now,
			"report_meta.last_modified_by": adminID,
			"updated_at":                   now,
		},
		"$inc": bson.M{"report_meta.version": 1},
	})
	return err
}

// AddComment appends a comment. Comments are append-only and allowed in
// any status.
func (s *Store) AddComment(ctx context.Context, id primitive.ObjectID, c models.Comment) error {
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"comments": c},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// Delete removes a report by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByLab removes every report belonging to a lab. Used by the lab
// delete cascade; run it inside the same transaction as the lab delete.
func (s *Store) DeleteByLab(ctx context.Context, labID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"lab_id": labID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ExistsForPatient reports whether the lab already has any report for the
// given patient identifier. Used to keep the lab's patient counter honest.
func (s *Store) ExistsForPatient(ctx context.Context, labID primitive.ObjectID, patientID string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"lab_id":                  labID,
		"patient_info.patient_id": patientID,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Find returns reports matching the given filter with optional find options.
// The caller builds the filter and options (pagination, sorting, projection).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Report, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reports []models.Report
	if err := cur.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Count returns the number of reports matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

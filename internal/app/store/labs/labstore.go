// internal/app/store/labs/labstore.go
package labstore

import (
	"context"
	"errors"
	"time"

	"github.com/pathlabhq/pathlab/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Subscription plan and status values.
const (
	PlanBasic      = "basic"
	PlanPremium    = "premium"
	PlanEnterprise = "enterprise"

	SubActive    = "active"
	SubInactive  = "inactive"
	SubSuspended = "suspended"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateLab = errors.New("a lab with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("labs")}
}

func (s *Store) Create(ctx context.Context, lab models.Lab) (models.Lab, error) {
	now := time.Now().UTC()
	lab.ID = primitive.NewObjectID()
	lab.NameCI = text.Fold(lab.Name)
	if lab.Subscription.Plan == "" {
		lab.Subscription.Plan = PlanBasic
	}
	if lab.Subscription.Status == "" {
		lab.Subscription.Status = SubActive
	}
	if lab.Subscription.StartDate.IsZero() {
		lab.Subscription.StartDate = now
	}
	lab.CreatedAt = now
	lab.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, lab)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Lab{}, ErrDuplicateLab
		}
		return models.Lab{}, err
	}
	return lab, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Lab, error) {
	var lab models.Lab
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&lab)
	if err != nil {
		return models.Lab{}, err
	}
	return lab, nil
}

// Update modifies a lab's mutable fields and refreshes UpdatedAt. The
// subscription, creator, and stats fields are never written here; the
// subscription has its own route and the stats move with report writes.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, lab models.Lab) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if lab.Name != "" {
		set["name"] = lab.Name
		set["name_ci"] = text.Fold(lab.Name)
	}
	if lab.Address != (models.LabAddress{}) {
		set["address"] = lab.Address
	}
	if lab.Contact != (models.LabContact{}) {
		set["contact"] = lab.Contact
	}
	if lab.Settings != (models.LabSettings{}) {
		set["settings"] = lab.Settings
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateLab
		}
		return err
	}
	return nil
}

// UpdateSubscription replaces the subscription block. Super-admin only;
// the handler enforces that.
func (s *Store) UpdateSubscription(ctx context.Context, id primitive.ObjectID, sub models.Subscription) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"subscription": sub,
		"updated_at":   time.Now().UTC(),
	}})
	return err
}

// Delete removes a lab by ID. Returns the number of documents deleted (0 or 1).
// Callers are responsible for cascading to users and reports inside the
// same transaction.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ExistsByNameCI checks if a lab with the given case-insensitive name exists.
func (s *Store) ExistsByNameCI(ctx context.Context, nameCI string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"name_ci": nameCI}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NameExistsForOther checks if a lab with the given name exists, excluding
// the specified ID. Used by update validation.
func (s *Store) NameExistsForOther(ctx context.Context, nameCI string, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"name_ci": nameCI,
		"_id":     bson.M{"$ne": excludeID},
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ApplyReportCreated bumps the denormalized report counters after a
// report insert. newPatient also bumps the patient counter.
func (s *Store) ApplyReportCreated(ctx context.Context, id primitive.ObjectID, newPatient bool, at time.Time) error {
	inc := bson.M{"stats.total_reports": 1}
	if newPatient {
		inc["stats.total_patients"] = 1
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$inc": inc,
		"$set": bson.M{
			"stats.last_report_date": at,
			"updated_at":             time.Now().UTC(),
		},
	})
	return err
}

// ApplyReportDeleted decrements the report counter after a report delete.
func (s *Store) ApplyReportDeleted(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{"stats.total_reports": -1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// Find returns labs matching the given filter with optional find options.
// The caller builds the filter and options (pagination, sorting, projection).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Lab, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var labs []models.Lab
	if err := cur.All(ctx, &labs); err != nil {
		return nil, err
	}
	return labs, nil
}

// Count returns the number of labs matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Package labstats provides the read-only aggregations behind the lab
// statistics endpoint.
package labstats

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// StatusCount is one bucket of the reports-by-status aggregation.
type StatusCount struct {
	ID    string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// RoleCount is one bucket of the users-by-role aggregation.
type RoleCount struct {
	ID    string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// MonthKey identifies one calendar month.
type MonthKey struct {
	Year  int `bson:"year" json:"year"`
	Month int `bson:"month" json:"month"`
}

// MonthlyCount is one bucket of the monthly report volume aggregation.
type MonthlyCount struct {
	ID    MonthKey `bson:"_id" json:"_id"`
	Count int64    `bson:"count" json:"count"`
}

// ReportsByStatus groups a lab's reports by lifecycle status. Statuses
// with no reports produce no bucket.
func ReportsByStatus(ctx context.Context, db *mongo.Database, labID primitive.ObjectID) ([]StatusCount, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"lab_id": labID}},
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	cur, err := db.Collection("reports").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []StatusCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// UsersByRole groups a lab's staff by role.
func UsersByRole(ctx context.Context, db *mongo.Database, labID primitive.ObjectID) ([]RoleCount, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"lab_id": labID}},
		{"$group": bson.M{"_id": "$role", "count": bson.M{"$sum": 1}}},
	}

	cur, err := db.Collection("users").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []RoleCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// MonthlyReports buckets a lab's report volume by calendar month of
// creation, most recent month first, limited to the last twelve buckets
// that contain data.
func MonthlyReports(ctx context.Context, db *mongo.Database, labID primitive.ObjectID) ([]MonthlyCount, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"lab_id": labID}},
		{"$group": bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$created_at"},
				"month": bson.M{"$month": "$created_at"},
			},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id.year": -1, "_id.month": -1}},
		{"$limit": 12},
	}

	cur, err := db.Collection("reports").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []MonthlyCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

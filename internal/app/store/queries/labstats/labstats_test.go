package labstats

import (
	"testing"

	"github.com/pathlabhq/pathlab/internal/app/policy/lifecycle"
	"github.com/pathlabhq/pathlab/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestReportsByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	labID := primitive.NewObjectID()
	tech := primitive.NewObjectID()

	f.CreateReport(ctx, labID, tech, lifecycle.StatusPending)
	f.CreateReport(ctx, labID, tech, lifecycle.StatusPending)
	f.CreateReport(ctx, labID, tech, lifecycle.StatusPending)
	f.CreateReport(ctx, labID, tech, lifecycle.StatusVerified)
	// Another lab's reports must not leak into the buckets.
	f.CreateReport(ctx, primitive.NewObjectID(), tech, lifecycle.StatusPending)

	rows, err := ReportsByStatus(ctx, db, labID)
	if err != nil {
		t.Fatalf("ReportsByStatus failed: %v", err)
	}

	// Aggregation output order is unspecified; compare as a set.
	got := make(map[string]int64, len(rows))
	for _, row := range rows {
		got[row.ID] = row.Count
	}
	want := map[string]int64{
		lifecycle.StatusPending:  3,
		lifecycle.StatusVerified: 1,
	}
	if len(got) != len(want) {
		t.Fatalf("buckets = %v, want %v", got, want)
	}
	for status, count := range want {
		if got[status] != count {
			t.Errorf("bucket %q = %d, want %d", status, got[status], count)
		}
	}
}

func TestUsersByRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	labID := primitive.NewObjectID()

	f.CreateAdmin(ctx, labID)
	f.CreateTechnician(ctx, labID)
	f.CreateTechnician(ctx, labID)
	f.CreateAdmin(ctx, primitive.NewObjectID())

	rows, err := UsersByRole(ctx, db, labID)
	if err != nil {
		t.Fatalf("UsersByRole failed: %v", err)
	}

	got := make(map[string]int64, len(rows))
	for _, row := range rows {
		got[row.ID] = row.Count
	}
	if got["admin"] != 1 || got["technician"] != 2 {
		t.Errorf("buckets = %v, want admin:1 technician:2", got)
	}
}

func TestMonthlyReports(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	labID := primitive.NewObjectID()
	tech := primitive.NewObjectID()

	f.CreateReport(ctx, labID, tech, "")
	f.CreateReport(ctx, labID, tech, "")

	rows, err := MonthlyReports(ctx, db, labID)
	if err != nil {
		t.Fatalf("MonthlyReports failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("buckets = %d, want 1 (all fixtures created now)", len(rows))
	}
	if rows[0].Count != 2 {
		t.Errorf("count = %d, want 2", rows[0].Count)
	}
	if rows[0].ID.Year == 0 || rows[0].ID.Month == 0 {
		t.Error("month key not populated")
	}
}

func TestEmptyLab(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	labID := primitive.NewObjectID()

	rows, err := ReportsByStatus(ctx, db, labID)
	if err != nil {
		t.Fatalf("ReportsByStatus failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no buckets for empty lab, got %v", rows)
	}
}

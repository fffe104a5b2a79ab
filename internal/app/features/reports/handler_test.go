package reports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/policy/lifecycle"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	"github.com/pathlabhq/pathlab/internal/app/system/auditlog"
	"github.com/pathlabhq/pathlab/internal/domain/models"
	"github.com/pathlabhq/pathlab/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
}

func newTestHandler(t *testing.T, db *mongo.Database) *Handler {
	t.Helper()
	auditLog := auditlog.New(audit.New(db), zap.NewNop(), auditlog.Config{Auth: "db", Admin: "db"})
	return NewHandler(db, auditLog, apierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
}

func jsonRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return e
}

func decodeReport(t *testing.T, w *httptest.ResponseRecorder) models.Report {
	t.Helper()
	var rep models.Report
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &rep); err != nil {
		t.Fatalf("decode report failed: %v", err)
	}
	return rep
}

const createBody = `{
	"patientInfo": {"name": "Elena Marsh", "age": 54, "gender": "female", "patientId": "PAT-3001"},
	"testInfo": {"name": "Thyroid Panel", "category": "endocrinology", "sampleType": "serum"},
	"results": [{"parameter": "TSH", "value": "6.1", "unit": "mIU/L", "referenceRange": "0.4-4.0", "flag": "high"}]
}`

func TestHandleCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	lab := f.CreateLab(ctx, "Create Lab")
	tech := testutil.TechnicianUser(lab.ID)

	t.Run("technician creates", func(t *testing.T) {
		r := testutil.WithUser(jsonRequest(http.MethodPost, "/reports", createBody), tech)
		w := httptest.NewRecorder()
		h.HandleCreate(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
		}
		rep := decodeReport(t, w)

		// Lab and technician come from the actor, not the body.
		if rep.LabID.Hex() != tech.LabID {
			t.Errorf("LabID = %s, want actor lab %s", rep.LabID.Hex(), tech.LabID)
		}
		if rep.TechnicianID.Hex() != tech.ID {
			t.Errorf("TechnicianID = %s, want actor %s", rep.TechnicianID.Hex(), tech.ID)
		}
		if rep.Status != lifecycle.StatusPending {
			t.Errorf("Status = %q, want pending default", rep.Status)
		}

		// Denormalized lab counters move with the insert.
		got, err := h.Labs.GetByID(ctx, lab.ID)
		if err != nil {
			t.Fatalf("reload lab failed: %v", err)
		}
		if got.Stats.TotalReports != 1 || got.Stats.TotalPatients != 1 {
			t.Errorf("stats = %+v, want 1 report, 1 patient", got.Stats)
		}

		n, err := db.Collection("audit_events").CountDocuments(ctx, bson.M{"event_type": audit.EventReportCreated})
		if err != nil {
			t.Fatalf("audit count failed: %v", err)
		}
		if n != 1 {
			t.Errorf("audit events = %d, want 1", n)
		}
	})

	t.Run("repeat patient counts reports only", func(t *testing.T) {
		r := testutil.WithUser(jsonRequest(http.MethodPost, "/reports", createBody), tech)
		w := httptest.NewRecorder()
		h.HandleCreate(w, r)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
		}
		got, err := h.Labs.GetByID(ctx, lab.ID)
		if err != nil {
			t.Fatalf("reload lab failed: %v", err)
		}
		if got.Stats.TotalReports != 2 || got.Stats.TotalPatients != 1 {
			t.Errorf("stats = %+v, want 2 reports, still 1 patient", got.Stats)
		}
	})

	t.Run("admin forbidden", func(t *testing.T) {
		r := testutil.WithUser(jsonRequest(http.MethodPost, "/reports", createBody), testutil.AdminUser(lab.ID))
		w := httptest.NewRecorder()
		h.HandleCreate(w, r)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("super-admin forbidden", func(t *testing.T) {
		r := testutil.WithUser(jsonRequest(http.MethodPost, "/reports", createBody), testutil.SuperAdminUser())
		w := httptest.NewRecorder()
		h.HandleCreate(w, r)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("missing patient info rejected", func(t *testing.T) {
		body := `{"patientInfo":{"name":""},"testInfo":{"name":"CBC"}}`
		r := testutil.WithUser(jsonRequest(http.MethodPost, "/reports", body), tech)
		w := httptest.NewRecorder()
		h.HandleCreate(w, r)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		body := `{
			"patientInfo": {"name": "Ed Case", "patientId": "PAT-3002"},
			"testInfo": {"name": "CBC"},
			"status": "archived"
		}`
		r := testutil.WithUser(jsonRequest(http.MethodPost, "/reports", body), tech)
		w := httptest.NewRecorder()
		h.HandleCreate(w, r)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestServeList_ActorScoping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	lab := f.CreateLab(ctx, "List Lab")
	techA := f.CreateTechnician(ctx, lab.ID)
	techB := f.CreateTechnician(ctx, lab.ID)

	f.CreateReport(ctx, lab.ID, techA.ID, lifecycle.StatusPending)
	f.CreateReport(ctx, lab.ID, techA.ID, lifecycle.StatusCompleted)
	f.CreateReport(ctx, lab.ID, techB.ID, lifecycle.StatusCompleted)
	// Another lab's report never shows.
	f.CreateReport(ctx, primitive.NewObjectID(), techA.ID, lifecycle.StatusPending)

	list := func(user testutil.TestUser, target string) *httptest.ResponseRecorder {
		r := testutil.WithUser(testutil.NewRequest(http.MethodGet, target), user)
		w := httptest.NewRecorder()
		h.ServeList(w, r)
		return w
	}

	admin := testutil.AdminUser(lab.ID)
	asTechA := testutil.UserFor(techA.ID, techA.Name, techA.Email, techA.Role, &lab.ID)

	t.Run("admin sees whole lab", func(t *testing.T) {
		w := list(admin, "/reports")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		if e := decodeEnvelope(t, w); e.Count != 3 {
			t.Errorf("count = %d, want 3", e.Count)
		}
	})

	t.Run("technician sees own only", func(t *testing.T) {
		w := list(asTechA, "/reports")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		if e := decodeEnvelope(t, w); e.Count != 2 {
			t.Errorf("count = %d, want 2", e.Count)
		}
	})

	t.Run("status filter", func(t *testing.T) {
		w := list(admin, "/reports?status="+lifecycle.StatusCompleted)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		if e := decodeEnvelope(t, w); e.Count != 2 {
			t.Errorf("count = %d, want 2", e.Count)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		w := list(admin, "/reports?status=archived")
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("bad date rejected", func(t *testing.T) {
		w := list(admin, "/reports?startDate=yesterday")
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestServeGet_RecordAccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	lab := f.CreateLab(ctx, "Access Lab")
	otherLab := f.CreateLab(ctx, "Other Lab")
	owner := f.CreateTechnician(ctx, lab.ID)
	rep := f.CreateReport(ctx, lab.ID, owner.ID, "")

	get := func(user testutil.TestUser, id string) *httptest.ResponseRecorder {
		r := testutil.WithChiURLParam(
			testutil.WithUser(testutil.NewRequest(http.MethodGet, "/reports/"+id), user),
			"id", id)
		w := httptest.NewRecorder()
		h.ServeGet(w, r)
		return w
	}

	asOwner := testutil.UserFor(owner.ID, owner.Name, owner.Email, owner.Role, &lab.ID)

	if w := get(asOwner, rep.ID.Hex()); w.Code != http.StatusOK {
		t.Errorf("owner read: status = %d, want 200", w.Code)
	}
	if w := get(testutil.AdminUser(lab.ID), rep.ID.Hex()); w.Code != http.StatusOK {
		t.Errorf("lab admin read: status = %d, want 200", w.Code)
	}
	if w := get(testutil.TechnicianUser(lab.ID), rep.ID.Hex()); w.Code != http.StatusForbidden {
		t.Errorf("other technician in lab: status = %d, want 403", w.Code)
	}
	if w := get(testutil.AdminUser(otherLab.ID), rep.ID.Hex()); w.Code != http.StatusForbidden {
		t.Errorf("other lab's admin: status = %d, want 403", w.Code)
	}
	if w := get(asOwner, primitive.NewObjectID().Hex()); w.Code != http.StatusNotFound {
		t.Errorf("missing report: status = %d, want 404", w.Code)
	}
	if w := get(asOwner, "not-an-id"); w.Code != http.StatusBadRequest {
		t.Errorf("malformed id: status = %d, want 400", w.Code)
	}
}

func TestHandleUpdate_Lifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	lab := f.CreateLab(ctx, "Edit Lab")
	owner := f.CreateTechnician(ctx, lab.ID)
	asOwner := testutil.UserFor(owner.ID, owner.Name, owner.Email, owner.Role, &lab.ID)

	put := func(id, body string) *httptest.ResponseRecorder {
		r := testutil.WithChiURLParam(
			testutil.WithUser(jsonRequest(http.MethodPut, "/reports/"+id, body), asOwner),
			"id", id)
		w := httptest.NewRecorder()
		h.HandleUpdate(w, r)
		return w
	}

	t.Run("forward move bumps version", func(t *testing.T) {
		rep := f.CreateReport(ctx, lab.ID, owner.ID, lifecycle.StatusPending)
		body := `{"status": "in-progress", "results": [{"parameter": "WBC", "value": "11.2", "unit": "K/uL", "referenceRange": "4.5-11.0", "flag": "high"}]}`

		w := put(rep.ID.Hex(), body)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		got := decodeReport(t, w)
		if got.Status != lifecycle.StatusInProgress {
			t.Errorf("Status = %q, want in-progress", got.Status)
		}
		if got.ReportMeta.Version != 2 {
			t.Errorf("Version = %d, want 2", got.ReportMeta.Version)
		}
		if got.ReportMeta.LastModifiedBy == nil || *got.ReportMeta.LastModifiedBy != owner.ID {
			t.Error("LastModifiedBy not stamped with the editor")
		}
	})

	t.Run("backward move rejected", func(t *testing.T) {
		rep := f.CreateReport(ctx, lab.ID, owner.ID, lifecycle.StatusInProgress)
		w := put(rep.ID.Hex(), `{"status": "pending"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
		}
	})

	t.Run("skip ahead allowed", func(t *testing.T) {
		rep := f.CreateReport(ctx, lab.ID, owner.ID, lifecycle.StatusPending)
		w := put(rep.ID.Hex(), `{"status": "completed"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		if got := decodeReport(t, w); got.Status != lifecycle.StatusCompleted {
			t.Errorf("Status = %q, want completed", got.Status)
		}
	})

	t.Run("completed report no longer editable", func(t *testing.T) {
		rep := f.CreateReport(ctx, lab.ID, owner.ID, lifecycle.StatusCompleted)
		w := put(rep.ID.Hex(), `{"results": []}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
		}
	})

	t.Run("another technician forbidden", func(t *testing.T) {
		rep := f.CreateReport(ctx, lab.ID, owner.ID, lifecycle.StatusPending)
		r := testutil.WithChiURLParam(
			testutil.WithUser(jsonRequest(http.MethodPut, "/reports/"+rep.ID.Hex(), `{}`), testutil.TechnicianUser(lab.ID)),
			"id", rep.ID.Hex())
		w := httptest.NewRecorder()
		h.HandleUpdate(w, r)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})
}

func TestHandleVerify(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	lab := f.CreateLab(ctx, "Verify Lab")
	tech := f.CreateTechnician(ctx, lab.ID)
	rep := f.CreateReport(ctx, lab.ID, tech.ID, lifecycle.StatusCompleted)

	verify := func(user testutil.TestUser) *httptest.ResponseRecorder {
		r := testutil.WithChiURLParam(
			testutil.WithUser(testutil.NewRequest(http.MethodPut, "/reports/"+rep.ID.Hex()+"/verify"), user),
			"id", rep.ID.Hex())
		w := httptest.NewRecorder()
		h.HandleVerify(w, r)
		return w
	}

	t.Run("technician forbidden", func(t *testing.T) {
		asTech := testutil.UserFor(tech.ID, tech.Name, tech.Email, tech.Role, &lab.ID)
		if w := verify(asTech); w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	firstAdmin := testutil.AdminUser(lab.ID)

	t.Run("admin verifies", func(t *testing.T) {
		w := verify(firstAdmin)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		got := decodeReport(t, w)
		if got.Status != lifecycle.StatusVerified {
			t.Errorf("Status = %q, want verified", got.Status)
		}
		if got.VerifiedBy == nil || got.VerifiedBy.Hex() != firstAdmin.ID {
			t.Error("VerifiedBy not stamped with the verifying admin")
		}

		// The audit detail records where the report came from.
		var ev struct {
			Details map[string]string `bson:"details"`
		}
		err := db.Collection("audit_events").FindOne(ctx, bson.M{"event_type": audit.EventReportVerified}).Decode(&ev)
		if err != nil {
			t.Fatalf("audit event lookup failed: %v", err)
		}
		if ev.Details["previous_status"] != lifecycle.StatusCompleted {
			t.Errorf("previous_status = %q, want completed", ev.Details["previous_status"])
		}
	})

	t.Run("re-verify overwrites verifier", func(t *testing.T) {
		secondAdmin := testutil.AdminUser(lab.ID)
		w := verify(secondAdmin)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		got := decodeReport(t, w)
		if got.VerifiedBy == nil || got.VerifiedBy.Hex() != secondAdmin.ID {
			t.Error("re-verification should replace VerifiedBy")
		}
	})
}

func TestHandleDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	lab := f.CreateLab(ctx, "Delete Lab")
	tech := f.CreateTechnician(ctx, lab.ID)
	rep := f.CreateReport(ctx, lab.ID, tech.ID, "")

	// Walk the counter up so the delete has something to walk back.
	if err := h.Labs.ApplyReportCreated(ctx, lab.ID, true, rep.CreatedAt); err != nil {
		t.Fatalf("seed counters failed: %v", err)
	}

	t.Run("technician forbidden", func(t *testing.T) {
		asTech := testutil.UserFor(tech.ID, tech.Name, tech.Email, tech.Role, &lab.ID)
		r := testutil.WithChiURLParam(
			testutil.WithUser(testutil.NewRequest(http.MethodDelete, "/reports/"+rep.ID.Hex()), asTech),
			"id", rep.ID.Hex())
		w := httptest.NewRecorder()
		h.HandleDelete(w, r)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("admin deletes", func(t *testing.T) {
		r := testutil.WithChiURLParam(
			testutil.WithUser(testutil.NewRequest(http.MethodDelete, "/reports/"+rep.ID.Hex()), testutil.AdminUser(lab.ID)),
			"id", rep.ID.Hex())
		w := httptest.NewRecorder()
		h.HandleDelete(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		if _, err := h.Reports.GetByID(ctx, rep.ID); err != mongo.ErrNoDocuments {
			t.Errorf("report should be gone, got err %v", err)
		}
		got, err := h.Labs.GetByID(ctx, lab.ID)
		if err != nil {
			t.Fatalf("reload lab failed: %v", err)
		}
		if got.Stats.TotalReports != 0 {
			t.Errorf("TotalReports = %d, want 0 after delete", got.Stats.TotalReports)
		}
	})
}

func TestHandleAddComment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	lab := f.CreateLab(ctx, "Comment Lab")
	owner := f.CreateTechnician(ctx, lab.ID)
	// Comments stay open after verification.
	rep := f.CreateReport(ctx, lab.ID, owner.ID, lifecycle.StatusVerified)
	asOwner := testutil.UserFor(owner.ID, owner.Name, owner.Email, owner.Role, &lab.ID)

	post := func(user testutil.TestUser, body string) *httptest.ResponseRecorder {
		r := testutil.WithChiURLParam(
			testutil.WithUser(jsonRequest(http.MethodPost, "/reports/"+rep.ID.Hex()+"/comments", body), user),
			"id", rep.ID.Hex())
		w := httptest.NewRecorder()
		h.HandleAddComment(w, r)
		return w
	}

	t.Run("markup is stripped", func(t *testing.T) {
		w := post(asOwner, `{"text": "<script>alert(1)</script>recollect <b>sample</b>"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		got := decodeReport(t, w)
		if len(got.Comments) != 1 {
			t.Fatalf("comments = %d, want 1", len(got.Comments))
		}
		if got.Comments[0].Text != "recollect sample" {
			t.Errorf("comment text = %q, want tags stripped", got.Comments[0].Text)
		}
		if got.Comments[0].UserID != owner.ID {
			t.Error("comment author not stamped")
		}
	})

	t.Run("comments append in order", func(t *testing.T) {
		w := post(testutil.AdminUser(lab.ID), `{"text": "approved for release"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		got := decodeReport(t, w)
		if len(got.Comments) != 2 || got.Comments[1].Text != "approved for release" {
			t.Errorf("comments = %+v, want second entry appended", got.Comments)
		}
	})

	t.Run("empty after stripping rejected", func(t *testing.T) {
		w := post(asOwner, `{"text": "<p>  </p>"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("other lab forbidden", func(t *testing.T) {
		otherLab := f.CreateLab(ctx, "Other Comment Lab")
		w := post(testutil.AdminUser(otherLab.ID), `{"text": "hello"}`)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})
}

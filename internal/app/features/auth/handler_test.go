package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	"github.com/pathlabhq/pathlab/internal/app/system/auditlog"
	sysauth "github.com/pathlabhq/pathlab/internal/app/system/auth"
	"github.com/pathlabhq/pathlab/internal/app/system/authz"
	"github.com/pathlabhq/pathlab/internal/domain/models"
	"github.com/pathlabhq/pathlab/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
}

func newTestHandler(t *testing.T, db *mongo.Database) *Handler {
	t.Helper()
	tokens, err := sysauth.NewManager("0123456789abcdef0123456789abcdef", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	auditLog := auditlog.New(audit.New(db), zap.NewNop(), auditlog.Config{Auth: "db", Admin: "db"})
	return NewHandler(db, tokens, auditLog, apierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
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

func TestRegister_FirstUserBecomesSuperAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	w := httptest.NewRecorder()
	h.HandleRegister(w, jsonRequest(http.MethodPost, "/auth/register",
		`{"name":"Root","email":"root@pathlab.test","password":"supersecret"}`))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	e := decodeEnvelope(t, w)
	if !e.Success || e.Token == "" {
		t.Fatalf("expected token envelope, got %s", w.Body.String())
	}

	// The token resolves to the new super-admin.
	tu, err := h.Tokens.Verify(e.Token)
	if err != nil {
		t.Fatalf("minted token does not verify: %v", err)
	}
	if tu.Role != authz.RoleSuperAdmin {
		t.Errorf("token role = %q, want super-admin", tu.Role)
	}
	if tu.LabID != "" {
		t.Errorf("super-admin token should carry no lab, got %q", tu.LabID)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	var u models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": "root@pathlab.test"}).Decode(&u); err != nil {
		t.Fatalf("registered user not found: %v", err)
	}
	if u.Role != authz.RoleSuperAdmin || u.LabID != nil {
		t.Errorf("stored user = role %q lab %v, want super-admin with nil lab", u.Role, u.LabID)
	}

	// Registration lands in the audit trail.
	n, err := db.Collection("audit_events").CountDocuments(ctx, bson.M{"event_type": audit.EventUserRegistered})
	if err != nil {
		t.Fatalf("audit count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("audit events = %d, want 1", n)
	}
}

func TestRegister_ClosedOnceUsersExist(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	f.CreateUser(ctx, "Existing", "existing@pathlab.test", authz.RoleSuperAdmin, nil)

	w := httptest.NewRecorder()
	h.HandleRegister(w, jsonRequest(http.MethodPost, "/auth/register",
		`{"name":"Mallory","email":"mallory@evil.test","password":"supersecret"}`))

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRegister_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	tests := []struct {
		name string
		body string
	}{
		{"short password", `{"name":"A","email":"a@b.test","password":"short"}`},
		{"missing email", `{"name":"A","password":"supersecret"}`},
		{"bad email", `{"name":"A","email":"nope","password":"supersecret"}`},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		h.HandleRegister(w, jsonRequest(http.MethodPost, "/auth/register", tt.body))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.name, w.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	f := testutil.NewFixtures(t, db)
	u := f.CreateUser(ctx, "Sam Admin", "sam@pathlab.test", authz.RoleSuperAdmin, nil)
	_, err := db.Collection("users").UpdateByID(ctx, u.ID, bson.M{"$set": bson.M{"password_hash": string(hash)}})
	if err != nil {
		t.Fatalf("update hash failed: %v", err)
	}

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleLogin(w, jsonRequest(http.MethodPost, "/auth/login",
			`{"email":"sam@pathlab.test","password":"supersecret"}`))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		e := decodeEnvelope(t, w)
		if e.Token == "" {
			t.Error("expected a token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleLogin(w, jsonRequest(http.MethodPost, "/auth/login",
			`{"email":"sam@pathlab.test","password":"wrong-password"}`))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
		if e := decodeEnvelope(t, w); e.Message != "Invalid credentials" {
			t.Errorf("message = %q, want uniform Invalid credentials", e.Message)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleLogin(w, jsonRequest(http.MethodPost, "/auth/login",
			`{"email":"ghost@pathlab.test","password":"supersecret"}`))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
		if e := decodeEnvelope(t, w); e.Message != "Invalid credentials" {
			t.Errorf("message = %q, want uniform Invalid credentials", e.Message)
		}
	})

	t.Run("disabled user", func(t *testing.T) {
		_, err := db.Collection("users").UpdateByID(ctx, u.ID, bson.M{"$set": bson.M{"status": "disabled"}})
		if err != nil {
			t.Fatalf("disable failed: %v", err)
		}
		defer db.Collection("users").UpdateByID(ctx, u.ID, bson.M{"$set": bson.M{"status": "active"}})

		w := httptest.NewRecorder()
		h.HandleLogin(w, jsonRequest(http.MethodPost, "/auth/login",
			`{"email":"sam@pathlab.test","password":"supersecret"}`))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	// The three failure cases above leave distinct audit events.
	for _, eventType := range []string{
		audit.EventLoginFailedWrongPassword,
		audit.EventLoginFailedUserNotFound,
		audit.EventLoginFailedUserDisabled,
	} {
		n, err := db.Collection("audit_events").CountDocuments(ctx, bson.M{"event_type": eventType})
		if err != nil {
			t.Fatalf("audit count failed: %v", err)
		}
		if n != 1 {
			t.Errorf("audit %q events = %d, want 1", eventType, n)
		}
	}
}

func TestServeMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	labID := f.CreateLab(ctx, "Me Lab").ID
	u := f.CreateAdmin(ctx, labID)

	r := testutil.WithUser(testutil.NewRequest(http.MethodGet, "/auth/me"),
		testutil.UserFor(u.ID, u.Name, u.Email, u.Role, u.LabID))
	w := httptest.NewRecorder()
	h.ServeMe(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	e := decodeEnvelope(t, w)
	var got models.User
	if err := json.Unmarshal(e.Data, &got); err != nil {
		t.Fatalf("decode data failed: %v", err)
	}
	if got.ID != u.ID || got.Email != u.Email {
		t.Errorf("got user %s/%s, want %s/%s", got.ID.Hex(), got.Email, u.ID.Hex(), u.Email)
	}
}

func TestServeMe_DeletedAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	labID := testutil.NewFixtures(t, db).CreateLab(ctx, "Gone Lab").ID
	// The token user has no matching record in the database.
	r := testutil.WithUser(testutil.NewRequest(http.MethodGet, "/auth/me"), testutil.AdminUser(labID))
	w := httptest.NewRecorder()
	h.ServeMe(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for vanished account", w.Code)
	}
}

func TestHandleUpdatePassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hash, _ := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	f := testutil.NewFixtures(t, db)
	labID := f.CreateLab(ctx, "Pw Lab").ID
	u := f.CreateAdmin(ctx, labID)
	if _, err := db.Collection("users").UpdateByID(ctx, u.ID, bson.M{"$set": bson.M{"password_hash": string(hash)}}); err != nil {
		t.Fatalf("update hash failed: %v", err)
	}

	asUser := func(body string) *http.Request {
		return testutil.WithUser(jsonRequest(http.MethodPut, "/auth/updatepassword", body),
			testutil.UserFor(u.ID, u.Name, u.Email, u.Role, u.LabID))
	}

	t.Run("wrong current password", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleUpdatePassword(w, asUser(`{"currentPassword":"nope","newPassword":"brand-new-pass"}`))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleUpdatePassword(w, asUser(`{"currentPassword":"old-password","newPassword":"brand-new-pass"}`))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		if e := decodeEnvelope(t, w); e.Token == "" {
			t.Error("expected a fresh token after password change")
		}

		var got models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": u.ID}).Decode(&got); err != nil {
			t.Fatalf("reload user failed: %v", err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("brand-new-pass")); err != nil {
			t.Error("stored hash does not match the new password")
		}
	})
}

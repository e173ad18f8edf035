package doctor_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	doctorHandler "github.com/GraftonJ/repsy-be/internal/handler/doctor"
	"github.com/GraftonJ/repsy-be/internal/middleware"
	"github.com/GraftonJ/repsy-be/internal/model"
	doctorService "github.com/GraftonJ/repsy-be/internal/service/doctor"
	"github.com/GraftonJ/repsy-be/pkg/errors"
	"github.com/GraftonJ/repsy-be/pkg/security"
	"github.com/GraftonJ/repsy-be/pkg/token"
)

type fakeDoctorRepo struct {
	nextID      int64
	byID        map[int64]model.Doctor
	updateCalls int
	lastChanges map[string]interface{}
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{byID: make(map[int64]model.Doctor)}
}

func (f *fakeDoctorRepo) List(_ context.Context) ([]model.Doctor, error) {
	recs := make([]model.Doctor, 0, len(f.byID))
	for id := int64(1); id <= f.nextID; id++ {
		if d, ok := f.byID[id]; ok {
			recs = append(recs, d)
		}
	}
	return recs, nil
}

func (f *fakeDoctorRepo) Get(_ context.Context, id int64) (*model.Doctor, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, errors.NotFound("doctor")
	}
	return &d, nil
}

func (f *fakeDoctorRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeDoctorRepo) Insert(_ context.Context, doctor *model.Doctor) (*model.Doctor, error) {
	for _, existing := range f.byID {
		if existing.Email == doctor.Email {
			return nil, errors.Conflict("email already exists")
		}
	}
	f.nextID++
	inserted := *doctor
	inserted.ID = f.nextID
	inserted.CreatedAt = time.Now()
	inserted.UpdatedAt = inserted.CreatedAt
	f.byID[inserted.ID] = inserted
	return &inserted, nil
}

func (f *fakeDoctorRepo) Update(_ context.Context, id int64, changes map[string]interface{}) (*model.Doctor, error) {
	f.updateCalls++
	f.lastChanges = changes

	d, ok := f.byID[id]
	if !ok {
		return nil, errors.NotFound("doctor")
	}
	for col, v := range changes {
		switch col {
		case "fname":
			d.Fname = v.(string)
		case "lname":
			d.Lname = v.(string)
		case "email":
			d.Email = v.(string)
		case "pswd_hash":
			d.PswdHash = v.(string)
		case "zip":
			d.Zip = v.(int64)
		case "updated_at":
			d.UpdatedAt = v.(time.Time)
		}
	}
	f.byID[id] = d
	return &d, nil
}

func (f *fakeDoctorRepo) Delete(_ context.Context, id int64) (*model.Doctor, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, errors.NotFound("doctor")
	}
	delete(f.byID, id)
	return &d, nil
}

func (f *fakeDoctorRepo) GetByEmail(_ context.Context, email string) (*model.Doctor, error) {
	for _, d := range f.byID {
		if d.Email == email {
			return &d, nil
		}
	}
	return nil, errors.NotFound("doctor")
}

func setupDoctorRouter(t *testing.T) (*gin.Engine, *fakeDoctorRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeDoctorRepo()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	issuer := token.NewIssuer("test-secret", time.Hour)
	revoker := token.NewMemoryRevoker()
	svc := doctorService.NewService(repo, hasher, issuer, revoker)

	engine := gin.New()
	doctorHandler.NewHandler(svc).RegisterRoutes(engine.Group(""), middleware.NewAuthMiddleware(issuer, revoker))
	return engine, repo
}

func performRequest(engine *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func registerBody(email string) string {
	return fmt.Sprintf(`{
		"fname": "Ada", "lname": "Lovelace", "specialties_id": 2,
		"npi_num": "1234567891", "clinic_name": "New Clinic",
		"clinic_address": "12 New St", "city": "Denver", "state": "CO",
		"zip": 80203, "email": %q, "password": "secret"
	}`, email)
}

func registerDoctor(t *testing.T, engine *gin.Engine, email string) string {
	t.Helper()
	w := performRequest(engine, http.MethodPost, "/doctors", registerBody(email), nil)
	require.Equal(t, http.StatusOK, w.Code)
	auth := w.Header().Get("Auth")
	require.True(t, strings.HasPrefix(auth, "Bearer "))
	return strings.TrimPrefix(auth, "Bearer ")
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Message
}

func TestRegister(t *testing.T) {
	engine, repo := setupDoctorRouter(t)

	w := performRequest(engine, http.MethodPost, "/doctors", registerBody("ada@example.com"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body, "doctor")

	var doc model.Doctor
	require.NoError(t, json.Unmarshal(body["doctor"], &doc))
	assert.Equal(t, int64(1), doc.ID)
	assert.Equal(t, "ada@example.com", doc.Email)

	// The hash is stored, never the raw password, and never serialized.
	stored := repo.byID[1]
	assert.NotEqual(t, "secret", stored.PswdHash)
	assert.NotEmpty(t, stored.PswdHash)
	assert.NotContains(t, w.Body.String(), "pswd_hash")

	assert.True(t, strings.HasPrefix(w.Header().Get("Auth"), "Bearer "))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	engine, _ := setupDoctorRouter(t)
	registerDoctor(t, engine, "ada@example.com")

	w := performRequest(engine, http.MethodPost, "/doctors", registerBody("ada@example.com"), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email already exists", errorMessage(t, w))
}

func TestRegisterMissingField(t *testing.T) {
	engine, _ := setupDoctorRouter(t)

	w := performRequest(engine, http.MethodPost, "/doctors", `{"fname": "Ada"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "required")
}

func TestRegisterUnknownFieldRejected(t *testing.T) {
	engine, _ := setupDoctorRouter(t)

	body := strings.Replace(registerBody("ada@example.com"), `"fname": "Ada"`, `"fname": "Ada", "bogus": 1`, 1)
	w := performRequest(engine, http.MethodPost, "/doctors", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "bogus")
}

func TestLogin(t *testing.T) {
	engine, _ := setupDoctorRouter(t)
	registerDoctor(t, engine, "ada@example.com")

	w := performRequest(engine, http.MethodPost, "/doctors/login",
		`{"email": "ada@example.com", "password": "secret"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Auth"), "Bearer "))
	assert.Contains(t, w.Body.String(), `"doctor"`)
}

func TestLoginWrongPassword(t *testing.T) {
	engine, _ := setupDoctorRouter(t)
	registerDoctor(t, engine, "ada@example.com")

	w := performRequest(engine, http.MethodPost, "/doctors/login",
		`{"email": "ada@example.com", "password": "wrong"}`, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "incorrect password", errorMessage(t, w))
}

func TestLoginUnknownEmail(t *testing.T) {
	engine, _ := setupDoctorRouter(t)

	w := performRequest(engine, http.MethodPost, "/doctors/login",
		`{"email": "nobody@example.com", "password": "secret"}`, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "email not found", errorMessage(t, w))
}

func TestLogout(t *testing.T) {
	engine, _ := setupDoctorRouter(t)
	signed := registerDoctor(t, engine, "ada@example.com")

	w := performRequest(engine, http.MethodPost, "/doctors/logout", "",
		map[string]string{"Auth": "Bearer " + signed})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "success"}`, w.Body.String())
	assert.True(t, strings.HasPrefix(w.Header().Get("Auth"), "Bearer "))

	// The revoked token no longer opens mutation routes.
	w = performRequest(engine, http.MethodPatch, "/doctors/1", `{"fname": "Eve"}`,
		map[string]string{"Authorization": "Bearer " + signed})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPatchRequiresToken(t *testing.T) {
	engine, _ := setupDoctorRouter(t)
	registerDoctor(t, engine, "ada@example.com")

	w := performRequest(engine, http.MethodPatch, "/doctors/1", `{"fname": "Eve"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPatchAppliesAllowListOnly(t *testing.T) {
	engine, repo := setupDoctorRouter(t)
	signed := registerDoctor(t, engine, "ada@example.com")

	w := performRequest(engine, http.MethodPatch, "/doctors/1",
		`{"fname": "Eve", "unrelated_field": "x"}`,
		map[string]string{"Authorization": "Bearer " + signed})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Eve", repo.byID[1].Fname)
	assert.NotContains(t, repo.lastChanges, "unrelated_field")
	assert.Contains(t, repo.lastChanges, "updated_at")
}

func TestPatchEmptyAfterProjection(t *testing.T) {
	engine, repo := setupDoctorRouter(t)
	signed := registerDoctor(t, engine, "ada@example.com")

	w := performRequest(engine, http.MethodPatch, "/doctors/1",
		`{"unrelated_field": "x"}`,
		map[string]string{"Authorization": "Bearer " + signed})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "empty or invalid patch request", errorMessage(t, w))
	assert.Zero(t, repo.updateCalls)
}

func TestPatchPasswordIsRehashed(t *testing.T) {
	engine, repo := setupDoctorRouter(t)
	signed := registerDoctor(t, engine, "ada@example.com")

	w := performRequest(engine, http.MethodPatch, "/doctors/1",
		`{"password": "newsecret"}`,
		map[string]string{"Authorization": "Bearer " + signed})
	require.Equal(t, http.StatusOK, w.Code)

	assert.NotEqual(t, "newsecret", repo.byID[1].PswdHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.byID[1].PswdHash), []byte("newsecret")))
}

func TestPatchUnknownID(t *testing.T) {
	engine, _ := setupDoctorRouter(t)
	signed := registerDoctor(t, engine, "ada@example.com")

	w := performRequest(engine, http.MethodPatch, "/doctors/99", `{"fname": "Eve"}`,
		map[string]string{"Authorization": "Bearer " + signed})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "doctor not found", errorMessage(t, w))
}

func TestDelete(t *testing.T) {
	engine, repo := setupDoctorRouter(t)
	signed := registerDoctor(t, engine, "ada@example.com")

	w := performRequest(engine, http.MethodDelete, "/doctors/1", "",
		map[string]string{"Authorization": "Bearer " + signed})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted"`)
	assert.NotContains(t, repo.byID, int64(1))
}

func TestDeleteUnknownID(t *testing.T) {
	engine, _ := setupDoctorRouter(t)
	signed := registerDoctor(t, engine, "ada@example.com")

	w := performRequest(engine, http.MethodDelete, "/doctors/99", "",
		map[string]string{"Authorization": "Bearer " + signed})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "doctor not found", errorMessage(t, w))
}

func TestGetUnknownID(t *testing.T) {
	engine, _ := setupDoctorRouter(t)

	w := performRequest(engine, http.MethodGet, "/doctors/99", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestList(t *testing.T) {
	engine, _ := setupDoctorRouter(t)
	registerDoctor(t, engine, "ada@example.com")
	registerDoctor(t, engine, "grace@example.com")

	w := performRequest(engine, http.MethodGet, "/doctors", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var docs []model.Doctor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
	assert.Len(t, docs, 2)
}

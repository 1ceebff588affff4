package main

import (
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
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"climate-science-service/auth"
	"climate-science-service/config"
	"climate-science-service/export"
	"climate-science-service/models"
	"climate-science-service/query"
)

type listResponse struct {
	Count   int              `json:"count"`
	Records []map[string]any `json:"records"`
}

func newTestEnv(t *testing.T) (*serverEnv, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Person{}, &models.Publication{}, &models.Declaration{},
		&models.Quotation{}, &models.Authorship{}, &models.Signatory{},
		&models.User{}, &models.Journal{},
	))

	env := &serverEnv{
		cfg:    &config.Config{},
		log:    zap.NewNop(),
		db:     db,
		exec:   query.NewExecutor(db),
		tokens: auth.NewTokenService("test-secret", time.Hour),
		pdf:    export.NewPDFRenderer(export.Abbreviations{}),
	}
	return env, newRouter(env)
}

func do(router *gin.Engine, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedClimatePersons(t *testing.T, db *gorm.DB) {
	t.Helper()
	for i := 1; i <= 12; i++ {
		require.NoError(t, db.Create(&models.Person{
			FirstName:   "Alex",
			LastName:    fmt.Sprintf("Climate%02d", i),
			Description: "climate scientist",
		}).Error)
	}
	for i := 1; i <= 3; i++ {
		require.NoError(t, db.Create(&models.Person{
			FirstName:   "Pat",
			LastName:    fmt.Sprintf("Other%02d", i),
			Description: "weather presenter",
		}).Error)
	}
}

func TestFindPersonsFilteredAndPaginated(t *testing.T) {
	env, router := newTestEnv(t)
	seedClimatePersons(t, env.db)

	w := do(router, http.MethodGet, "/person/find?filter=climate&start=0&count=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var body listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 12, body.Count)
	require.Len(t, body.Records, 5)
	for i, record := range body.Records {
		assert.Equal(t, fmt.Sprintf("Climate%02d", i+1), record["last_name"])
	}
}

func TestFindPersonsWindowBeyondTotal(t *testing.T) {
	env, router := newTestEnv(t)
	seedClimatePersons(t, env.db)

	w := do(router, http.MethodGet, "/person/find?filter=climate&start=20&count=5", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 12, body.Count)
	assert.Empty(t, body.Records)
}

func TestGetPersonByID(t *testing.T) {
	env, router := newTestEnv(t)
	require.NoError(t, env.db.Create(&models.Person{FirstName: "Ada", LastName: "Lovelace"}).Error)

	w := do(router, http.MethodGet, "/person/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var record map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "Lovelace", record["last_name"])

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/person/999", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/person/abc", "").Code)
}

func TestBadRequestShapes(t *testing.T) {
	_, router := newTestEnv(t)

	// invalid sort expression
	assert.Equal(t, http.StatusBadRequest,
		do(router, http.MethodGet, "/person/find?sort=last_name%3B%20DROP%20TABLE%20person", "").Code)
	// invalid window
	assert.Equal(t, http.StatusBadRequest,
		do(router, http.MethodGet, "/person/find?start=-1", "").Code)
	// missing related id
	assert.Equal(t, http.StatusBadRequest,
		do(router, http.MethodGet, "/publication/findByAuthor", "").Code)
	// unknown resource family
	assert.Equal(t, http.StatusBadRequest,
		do(router, http.MethodGet, "/nonsense/find", "").Code)
	// unsupported verb on a known route
	assert.Equal(t, http.StatusMethodNotAllowed,
		do(router, http.MethodDelete, "/person/1", "").Code)
}

func TestPreflight(t *testing.T) {
	_, router := newTestEnv(t)

	w := do(router, http.MethodOptions, "/person", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, w.Body.String())

	w = do(router, http.MethodOptions, "/authorship/1/2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PUT, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))

	w = do(router, http.MethodOptions, "/quotation/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GET, PATCH, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestAuthorshipLifecycle(t *testing.T) {
	env, router := newTestEnv(t)
	require.NoError(t, env.db.Create(&models.Person{LastName: "Lindzen"}).Error)
	require.NoError(t, env.db.Create(&models.Publication{Title: "On climate sensitivity"}).Error)

	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	require.NoError(t, env.db.Create(&models.User{
		ID: "admin", PasswordHash: hash,
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.org",
	}).Error)

	countLinks := func() int64 {
		var n int64
		require.NoError(t, env.db.Model(&models.Authorship{}).Count(&n).Error)
		return n
	}

	// Unauthenticated writes are refused and change nothing.
	w := do(router, http.MethodPut, "/authorship/1/1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.EqualValues(t, 0, countLinks())

	// Wrong password is refused.
	bad := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"userId":"admin","password":"wrong"}`))
	bad.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, bad)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Login issues a bearer token.
	good := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"userId":"admin","password":"secret"}`))
	good.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, good)
	require.Equal(t, http.StatusOK, w.Code)
	var token string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))

	// First create: 201 with the new resource URI.
	w = do(router, http.MethodPut, "/authorship/1/1", token)
	assert.Equal(t, http.StatusCreated, w.Code)
	var uri string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uri))
	assert.Equal(t, "/authorship/1/1", uri)
	assert.EqualValues(t, 1, countLinks())

	// Repeat create: success-shaped no-op.
	w = do(router, http.MethodPut, "/authorship/1/1", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.EqualValues(t, 1, countLinks())

	// Delete, then delete again: both succeed.
	assert.Equal(t, http.StatusOK, do(router, http.MethodDelete, "/authorship/1/1", token).Code)
	assert.EqualValues(t, 0, countLinks())
	assert.Equal(t, http.StatusOK, do(router, http.MethodDelete, "/authorship/1/1", token).Code)
	assert.EqualValues(t, 0, countLinks())
}

func TestFindPublicationsByAuthor(t *testing.T) {
	env, router := newTestEnv(t)
	require.NoError(t, env.db.Create(&models.Person{LastName: "Smith"}).Error)
	publications := []models.Publication{
		{Title: "Linked Only", Authors: "Jones, A."},
		{Title: "Name Only", Authors: "Smith, B."},
		{Title: "Both", Authors: "Smith, C."},
	}
	for i := range publications {
		require.NoError(t, env.db.Create(&publications[i]).Error)
	}
	require.NoError(t, env.db.Create(&models.Authorship{PersonID: 1, PublicationID: 1}).Error)
	require.NoError(t, env.db.Create(&models.Authorship{PersonID: 1, PublicationID: 3}).Error)

	w := do(router, http.MethodGet, "/publication/findByAuthor?personId=1&lastName=Smith&sort=id", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Count)
	require.Len(t, body.Records, 3)
	assert.EqualValues(t, 1, body.Records[0]["linked"], "linking-table match is tagged linked")
	assert.EqualValues(t, 0, body.Records[1]["linked"], "name-only match is tagged unlinked")
	assert.EqualValues(t, 1, body.Records[2]["linked"], "row matching both appears once, as linked")
}

func TestQuotationAuthorPatch(t *testing.T) {
	env, router := newTestEnv(t)
	require.NoError(t, env.db.Create(&models.Person{LastName: "Smith"}).Error)
	require.NoError(t, env.db.Create(&models.Quotation{Author: "Smith", Text: "It warms."}).Error)

	token, err := env.tokens.Mint("admin", "A", "B", "a@b")
	require.NoError(t, err)

	// Writes are gated; reads on the same resource are not.
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodPatch, "/quotation/1?personId=1", "").Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/quotation/1", "").Code)

	assert.Equal(t, http.StatusOK, do(router, http.MethodPatch, "/quotation/1?personId=1", token).Code)
	var quotation models.Quotation
	require.NoError(t, env.db.First(&quotation, 1).Error)
	require.NotNil(t, quotation.PersonID)
	assert.EqualValues(t, 1, *quotation.PersonID)

	// Empty personId removes the attribution.
	assert.Equal(t, http.StatusOK, do(router, http.MethodPatch, "/quotation/1", token).Code)
	require.NoError(t, env.db.First(&quotation, 1).Error)
	assert.Nil(t, quotation.PersonID)
}

func TestClimateStatistics(t *testing.T) {
	env, router := newTestEnv(t)
	require.NoError(t, env.db.Create(&models.Person{LastName: "A", Title: "Prof.", Published: true}).Error)
	require.NoError(t, env.db.Create(&models.Person{LastName: "B", Title: "Dr."}).Error)

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/statistics/find", "").Code)

	w := do(router, http.MethodGet, "/statistics/find?topic=climate", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 14, body.Count)
	assert.Len(t, body.Records, 14)

	byCategory := map[string]float64{}
	for _, record := range body.Records {
		byCategory[record["category"].(string)] = record["count"].(float64)
	}
	assert.EqualValues(t, 2, byCategory["Persons"])
	assert.EqualValues(t, 1, byCategory["Professors"])
	assert.EqualValues(t, 1, byCategory["Doctorates"])
	assert.EqualValues(t, 1, byCategory["Published"])
}

func TestListExports(t *testing.T) {
	env, router := newTestEnv(t)
	seedClimatePersons(t, env.db)

	w := do(router, http.MethodGet, "/person/find?contentType=csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), export.MIMETSV)
	lines := strings.Split(w.Body.String(), "\n")
	assert.Contains(t, lines[0], "last_name")
	assert.Contains(t, lines[0], "\t")

	req := httptest.NewRequest(http.MethodGet, "/person/find", nil)
	req.Header.Set("Accept", export.MIMEPDF)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestMetricsEndpoint(t *testing.T) {
	_, router := newTestEnv(t)
	w := do(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
}

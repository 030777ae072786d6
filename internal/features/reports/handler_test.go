package reports

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/postmortem/internal/config"
	"github.com/xyz-asif/postmortem/internal/features/auth"
	"github.com/xyz-asif/postmortem/internal/pkg/metrics"
	"github.com/xyz-asif/postmortem/internal/pkg/sanitize"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret-key"

// fakeStore keeps reports in memory, keyed by slug
type fakeStore struct {
	bySlug  map[string]*Report
	updated bson.M
	deleted bool
}

func (f *fakeStore) List(_ context.Context, _ *primitive.ObjectID, _ string) ([]Report, error) {
	return nil, nil
}

func (f *fakeStore) Create(_ context.Context, _ *Report) error { return nil }

func (f *fakeStore) AllocateSlug(_ context.Context, title string) (string, error) {
	return Slugify(title), nil
}

func (f *fakeStore) GetBySlug(_ context.Context, slug string) (*Report, error) {
	if report, ok := f.bySlug[slug]; ok {
		copied := *report
		return &copied, nil
	}
	return nil, ErrReportNotFound
}

func (f *fakeStore) IncrementViewCount(_ context.Context, _ primitive.ObjectID) error { return nil }

func (f *fakeStore) Update(_ context.Context, id primitive.ObjectID, updates bson.M) (*Report, error) {
	f.updated = updates
	for _, report := range f.bySlug {
		if report.ID == id {
			copied := *report
			if title, ok := updates["title"].(string); ok {
				copied.Title = title
			}
			return &copied, nil
		}
	}
	return nil, ErrReportNotFound
}

func (f *fakeStore) Delete(_ context.Context, _ primitive.ObjectID) error {
	f.deleted = true
	return nil
}

// principalDirectory resolves any id it was seeded with
type principalDirectory struct {
	principals map[primitive.ObjectID]*auth.Principal
}

func (d *principalDirectory) FindPrincipalByID(_ context.Context, userID primitive.ObjectID) (*auth.Principal, error) {
	if p, ok := d.principals[userID]; ok {
		return p, nil
	}
	return nil, auth.ErrUserNotFound
}

func reportRouter(store *fakeStore, users ...primitive.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: testSecret}

	directory := &principalDirectory{principals: map[primitive.ObjectID]*auth.Principal{}}
	for _, id := range users {
		directory.principals[id] = &auth.Principal{ID: id}
	}

	handler := NewHandler(store, nil, nil, nil, sanitize.NewPolicy(), metrics.NewCollector(prometheus.NewRegistry()))

	r := gin.New()
	r.PATCH("/api/reports/:slug", auth.RequireAuth(directory, cfg), handler.UpdateReport)
	r.DELETE("/api/reports/:slug", auth.RequireAuth(directory, cfg), handler.DeleteReport)
	return r
}

func doAs(t *testing.T, r *gin.Engine, userID primitive.ObjectID, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.GenerateToken(userID.Hex(), testSecret)
	require.NoError(t, err)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seededStore(owner primitive.ObjectID) *fakeStore {
	return &fakeStore{bySlug: map[string]*Report{
		"lost-a-sample-batch": {
			ID:       primitive.NewObjectID(),
			Slug:     "lost-a-sample-batch",
			Title:    "Lost a sample batch",
			AuthorID: owner,
		},
	}}
}

func TestUpdateReportNonOwnerForbidden(t *testing.T) {
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	store := seededStore(owner)
	r := reportRouter(store, owner, intruder)

	w := doAs(t, r, intruder, "PATCH", "/api/reports/lost-a-sample-batch", `{"title":"Hijacked"}`)

	require.Equal(t, 403, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Not authorized to update this report", body["message"])
	require.Nil(t, store.updated, "mutation must not run for a non-owner")
}

func TestDeleteReportNonOwnerForbidden(t *testing.T) {
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	store := seededStore(owner)
	r := reportRouter(store, owner, intruder)

	w := doAs(t, r, intruder, "DELETE", "/api/reports/lost-a-sample-batch", "")

	require.Equal(t, 403, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Not authorized to delete this report", body["message"])
	require.False(t, store.deleted, "delete must not run for a non-owner")
}

func TestUpdateReportUnknownSlug(t *testing.T) {
	owner := primitive.NewObjectID()
	store := seededStore(owner)
	r := reportRouter(store, owner)

	w := doAs(t, r, owner, "PATCH", "/api/reports/no-such-report", `{"title":"New"}`)

	require.Equal(t, 404, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Report not found", body["message"])
}

func TestUpdateReportOwnerEditsTitleOnly(t *testing.T) {
	owner := primitive.NewObjectID()
	store := seededStore(owner)
	r := reportRouter(store, owner)

	w := doAs(t, r, owner, "PATCH", "/api/reports/lost-a-sample-batch", `{"title":"Recovered the batch"}`)

	require.Equal(t, 200, w.Code)
	var updated Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "Recovered the batch", updated.Title)
	// The slug never follows a title edit
	require.Equal(t, "lost-a-sample-batch", updated.Slug)
	// Only the supplied field reaches the store
	require.Equal(t, bson.M{"title": "Recovered the batch"}, store.updated)
}

func TestDeleteReportOwner(t *testing.T) {
	owner := primitive.NewObjectID()
	store := seededStore(owner)
	r := reportRouter(store, owner)

	w := doAs(t, r, owner, "DELETE", "/api/reports/lost-a-sample-batch", "")

	require.Equal(t, 200, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Report deleted successfully", body["message"])
	require.True(t, store.deleted)
}

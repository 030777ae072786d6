package comments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/postmortem/internal/config"
	"github.com/xyz-asif/postmortem/internal/features/auth"
	"github.com/xyz-asif/postmortem/internal/features/reports"
	"github.com/xyz-asif/postmortem/internal/pkg/sanitize"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret-key"

// fakeStore keeps comments in memory
type fakeStore struct {
	byID    map[primitive.ObjectID]*Comment
	created *Comment
	updated bool
	deleted bool
}

func (f *fakeStore) Create(_ context.Context, comment *Comment) error {
	comment.ID = primitive.NewObjectID()
	f.created = comment
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id primitive.ObjectID) (*Comment, error) {
	if comment, ok := f.byID[id]; ok {
		copied := *comment
		return &copied, nil
	}
	return nil, ErrCommentNotFound
}

func (f *fakeStore) UpdateContent(_ context.Context, id primitive.ObjectID, content string) (*Comment, error) {
	f.updated = true
	if comment, ok := f.byID[id]; ok {
		copied := *comment
		copied.Content = content
		return &copied, nil
	}
	return nil, ErrCommentNotFound
}

func (f *fakeStore) Delete(_ context.Context, _ primitive.ObjectID) error {
	f.deleted = true
	return nil
}

// fakeAuthors answers every byline lookup with a fixed job title
type fakeAuthors struct{}

func (f *fakeAuthors) GetAuthorInfo(_ context.Context, userID primitive.ObjectID) (*auth.AuthorInfo, error) {
	return &auth.AuthorInfo{ID: userID, JobTitle: "Research Assistant"}, nil
}

// fakeReports knows a single report
type fakeReports struct {
	report *reports.Report
}

func (f *fakeReports) GetByID(_ context.Context, id primitive.ObjectID) (*reports.Report, error) {
	if f.report != nil && f.report.ID == id {
		return f.report, nil
	}
	return nil, reports.ErrReportNotFound
}

type principalDirectory struct {
	principals map[primitive.ObjectID]*auth.Principal
}

func (d *principalDirectory) FindPrincipalByID(_ context.Context, userID primitive.ObjectID) (*auth.Principal, error) {
	if p, ok := d.principals[userID]; ok {
		return p, nil
	}
	return nil, auth.ErrUserNotFound
}

func commentRouter(store *fakeStore, report *reports.Report, users ...primitive.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: testSecret}

	directory := &principalDirectory{principals: map[primitive.ObjectID]*auth.Principal{}}
	for _, id := range users {
		directory.principals[id] = &auth.Principal{ID: id}
	}

	handler := NewHandler(store, &fakeAuthors{}, &fakeReports{report: report}, sanitize.NewPolicy())

	r := gin.New()
	gated := r.Group("/api/comments", auth.RequireAuth(directory, cfg))
	gated.POST("", handler.CreateComment)
	gated.PATCH("/:id", handler.UpdateComment)
	gated.DELETE("/:id", handler.DeleteComment)
	return r
}

func doAs(t *testing.T, r *gin.Engine, userID primitive.ObjectID, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.GenerateToken(userID.Hex(), testSecret)
	require.NoError(t, err)

	if body == "" {
		body = "{}"
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestUpdateCommentNonOwnerForbidden(t *testing.T) {
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	comment := &Comment{ID: primitive.NewObjectID(), Content: "original", AuthorID: owner}
	store := &fakeStore{byID: map[primitive.ObjectID]*Comment{comment.ID: comment}}
	r := commentRouter(store, nil, owner, intruder)

	w := doAs(t, r, intruder, "PATCH", "/api/comments/"+comment.ID.Hex(), `{"content":"hijacked"}`)

	require.Equal(t, 403, w.Code)
	require.Equal(t, "Not authorized to update this comment", messageOf(t, w))
	require.False(t, store.updated, "mutation must not run for a non-owner")
}

func TestDeleteCommentNonOwnerForbidden(t *testing.T) {
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	comment := &Comment{ID: primitive.NewObjectID(), Content: "original", AuthorID: owner}
	store := &fakeStore{byID: map[primitive.ObjectID]*Comment{comment.ID: comment}}
	r := commentRouter(store, nil, owner, intruder)

	w := doAs(t, r, intruder, "DELETE", "/api/comments/"+comment.ID.Hex(), "")

	require.Equal(t, 403, w.Code)
	require.Equal(t, "Not authorized to delete this comment", messageOf(t, w))
	require.False(t, store.deleted, "delete must not run for a non-owner")
}

func TestUpdateCommentOwner(t *testing.T) {
	owner := primitive.NewObjectID()
	comment := &Comment{ID: primitive.NewObjectID(), Content: "original", AuthorID: owner}
	store := &fakeStore{byID: map[primitive.ObjectID]*Comment{comment.ID: comment}}
	r := commentRouter(store, nil, owner)

	w := doAs(t, r, owner, "PATCH", "/api/comments/"+comment.ID.Hex(), `{"content":"clarified"}`)

	require.Equal(t, 200, w.Code)
	var resp CommentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "clarified", resp.Content)
	require.Equal(t, "Research Assistant", resp.Author.JobTitle)
}

func TestCreateCommentReplyToReply(t *testing.T) {
	// Threads stay one level deep: a reply cannot parent another reply
	user := primitive.NewObjectID()
	report := &reports.Report{ID: primitive.NewObjectID()}
	topLevel := &Comment{ID: primitive.NewObjectID(), ReportID: report.ID}
	reply := &Comment{ID: primitive.NewObjectID(), ReportID: report.ID, ParentID: &topLevel.ID}
	store := &fakeStore{byID: map[primitive.ObjectID]*Comment{topLevel.ID: topLevel, reply.ID: reply}}
	r := commentRouter(store, report, user)

	body := fmt.Sprintf(`{"content":"too deep","reportId":%q,"parentId":%q}`, report.ID.Hex(), reply.ID.Hex())
	w := doAs(t, r, user, "POST", "/api/comments", body)

	require.Equal(t, 400, w.Code)
	require.Equal(t, "Invalid parent comment", messageOf(t, w))
	require.Nil(t, store.created)
}

func TestCreateCommentParentFromOtherReport(t *testing.T) {
	user := primitive.NewObjectID()
	report := &reports.Report{ID: primitive.NewObjectID()}
	stray := &Comment{ID: primitive.NewObjectID(), ReportID: primitive.NewObjectID()}
	store := &fakeStore{byID: map[primitive.ObjectID]*Comment{stray.ID: stray}}
	r := commentRouter(store, report, user)

	body := fmt.Sprintf(`{"content":"crossed wires","reportId":%q,"parentId":%q}`, report.ID.Hex(), stray.ID.Hex())
	w := doAs(t, r, user, "POST", "/api/comments", body)

	require.Equal(t, 400, w.Code)
	require.Equal(t, "Invalid parent comment", messageOf(t, w))
}

func TestCreateCommentValidReply(t *testing.T) {
	user := primitive.NewObjectID()
	report := &reports.Report{ID: primitive.NewObjectID()}
	topLevel := &Comment{ID: primitive.NewObjectID(), ReportID: report.ID}
	store := &fakeStore{byID: map[primitive.ObjectID]*Comment{topLevel.ID: topLevel}}
	r := commentRouter(store, report, user)

	body := fmt.Sprintf(`{"content":"good point","reportId":%q,"parentId":%q}`, report.ID.Hex(), topLevel.ID.Hex())
	w := doAs(t, r, user, "POST", "/api/comments", body)

	require.Equal(t, 201, w.Code)
	require.NotNil(t, store.created)
	require.Equal(t, user, store.created.AuthorID)
	require.Equal(t, topLevel.ID, *store.created.ParentID)
}

func TestCreateCommentUnknownReport(t *testing.T) {
	user := primitive.NewObjectID()
	store := &fakeStore{byID: map[primitive.ObjectID]*Comment{}}
	r := commentRouter(store, nil, user)

	body := fmt.Sprintf(`{"content":"hello","reportId":%q}`, primitive.NewObjectID().Hex())
	w := doAs(t, r, user, "POST", "/api/comments", body)

	require.Equal(t, 404, w.Code)
	require.Equal(t, "Report not found", messageOf(t, w))
}

package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rfenwick/blogapi/api"
	"github.com/rfenwick/blogapi/blog/application"
	"github.com/rfenwick/blogapi/blog/persistence"
	"github.com/rfenwick/blogapi/shared/db/sqlite"
)

// setupRouter wires the full stack (router, service, repository, SQLite
// with real migrations) against a throwaway database file.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	database := sqlite.NewSQLiteDB(&sqlite.SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err := database.Connect(); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	repo := persistence.NewPostRepository(database.DB())
	service := application.NewPostService(repo)

	router := gin.New()
	NewApi(router, service)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createPost(t *testing.T, router *gin.Engine, body string) api.PostResponse {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/posts", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp api.PostResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

const validBody = `{"title":"New Post","content":"body","category":"Misc","tags":["fresh","new"]}`

func TestCreatePost_Returns201(t *testing.T) {
	router := setupRouter(t)

	resp := createPost(t, router, validBody)

	if resp.ID <= 0 {
		t.Errorf("ID = %d, want > 0", resp.ID)
	}
	if want := []string{"FRESH", "NEW"}; !slices.Equal(resp.Tags, want) {
		t.Errorf("Tags = %v, want %v", resp.Tags, want)
	}
	if !resp.CreatedAt.Equal(resp.UpdatedAt) {
		t.Errorf("CreatedAt %v != UpdatedAt %v on create", resp.CreatedAt, resp.UpdatedAt)
	}
}

func TestCreatePost_BlankTitleReturns400(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/posts",
		`{"title":"   ","content":"body","category":"Misc","tags":[]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if w.Body.String() != "Title cannot be EMPTY or BLANK" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestCreatePost_NullTitleReturns400(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/posts",
		`{"title":null,"content":"body","category":"Misc","tags":[]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if w.Body.String() != "Title cannot be NULL" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestCreatePost_MalformedJSONReturns400(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/posts", `{"title":`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetPost_Returns200(t *testing.T) {
	router := setupRouter(t)
	created := createPost(t, router, validBody)

	w := doJSON(t, router, http.MethodGet, "/posts/"+strconv.FormatInt(created.ID, 10), "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp api.PostResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != created.ID || resp.Title != "New Post" {
		t.Errorf("response = %+v", resp)
	}
}

func TestGetPost_MissingReturns404(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/posts/999", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if w.Body.String() != "Post not found" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestGetPost_BadIDReturns400(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/posts/abc", "")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdatePost_Returns200(t *testing.T) {
	router := setupRouter(t)
	created := createPost(t, router, validBody)

	w := doJSON(t, router, http.MethodPut, "/posts/"+strconv.FormatInt(created.ID, 10),
		`{"title":"Changed","content":"new body","category":"Tech","tags":["c"]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp api.PostResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Title != "Changed" {
		t.Errorf("Title = %q", resp.Title)
	}
	if want := []string{"C"}; !slices.Equal(resp.Tags, want) {
		t.Errorf("Tags = %v, want %v", resp.Tags, want)
	}
	if !resp.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed from %v to %v", created.CreatedAt, resp.CreatedAt)
	}
}

func TestUpdatePost_MissingReturns404(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPut, "/posts/999", validBody)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if w.Body.String() != "Post not found" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestDeletePost_Returns204(t *testing.T) {
	router := setupRouter(t)
	created := createPost(t, router, validBody)

	w := doJSON(t, router, http.MethodDelete, "/posts/"+strconv.FormatInt(created.ID, 10), "")

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/posts/"+strconv.FormatInt(created.ID, 10), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", w.Code)
	}
}

func TestDeletePost_MissingReturns404(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodDelete, "/posts/999", "")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestSearchPosts_DefaultTermReturnsEverything(t *testing.T) {
	router := setupRouter(t)
	createPost(t, router, validBody)
	createPost(t, router, `{"title":"Second","content":"body","category":"Tech","tags":[]}`)

	w := doJSON(t, router, http.MethodGet, "/posts", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp []api.PostResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("results = %d, want 2", len(resp))
	}
}

func TestSearchPosts_TermFiltersByCategory(t *testing.T) {
	router := setupRouter(t)
	createPost(t, router, validBody)
	target := createPost(t, router, `{"title":"Second","content":"body","category":"Gardening","tags":["soil"]}`)

	w := doJSON(t, router, http.MethodGet, "/posts?term=garden", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp []api.PostResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("results = %d, want 1", len(resp))
	}
	if resp[0].ID != target.ID {
		t.Errorf("matched id = %d, want %d", resp[0].ID, target.ID)
	}
	if want := []string{"SOIL"}; !slices.Equal(resp[0].Tags, want) {
		t.Errorf("Tags = %v, want %v", resp[0].Tags, want)
	}
}

func TestSearchPosts_NoMatchReturnsEmptyArray(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/posts?term=nothing", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// setupTestServer wires the real router against an in-memory database and a
// fixed fake corpus.
func setupTestServer(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	db = setupTestDB(t)
	if _, err := db.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT 0
	);`); err != nil {
		t.Fatalf("failed to create users table: %v", err)
	}
	indexCache = NewIndexCache(func() ([]RawCell, error) { return partyMixCells(), nil }, time.Hour)
	return setupRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearchEndpointReturnsRankedResults(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/search?q=opus&threshold=70", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Query   string             `json:"query"`
		Results []SearchResultSong `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Results) == 0 {
		t.Fatalf("expected results for 'opus'")
	}
	top := resp.Results[0]
	if top.Song != "Live is Life - Opus" || top.Score != 100 {
		t.Fatalf("unexpected top result: %+v", top)
	}
	if top.RoundDisplay != "Party Mix, Woche 1" || top.SeedTrack != "Peter Schilling - Major Tom" {
		t.Fatalf("missing cluster context: %+v", top)
	}
}

func TestSearchEndpointEmptyQueryIsOK(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/search?q=", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("empty query must not error, got %d", w.Code)
	}
	var resp struct {
		Results []SearchResultSong `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Results == nil || len(resp.Results) != 0 {
		t.Fatalf("expected empty (non-null) result array, got %v", resp.Results)
	}
}

func TestConnectionsEndpointSeedFirst(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/connections?song=Live+is+Life+-+Opus", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Connections []ConnectionCluster `json:"connections"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Connections) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(resp.Connections))
	}
	songs := resp.Connections[0].Songs
	if len(songs) == 0 || !songs[0].IsSeed {
		t.Fatalf("expected seed first, got %+v", songs)
	}
}

func TestLikeEndpointsRoundTrip(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/likes", map[string]string{"song": "Falco - Rock Me Amadeus"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var likeResp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &likeResp); err != nil || likeResp.Count != 1 {
		t.Fatalf("expected count 1, got %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/likes", nil, nil)
	var likes map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &likes); err != nil {
		t.Fatalf("bad likes response: %v", err)
	}
	if likes["Falco - Rock Me Amadeus"] != 1 {
		t.Fatalf("unexpected likes map: %v", likes)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/likes", map[string]string{"song": "  "}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank song must be rejected, got %d", w.Code)
	}
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	r := setupTestServer(t)

	// No token at all.
	w := doJSON(t, r, http.MethodGet, "/api/v1/admin/feedback", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	// Valid token, but not an admin.
	token, err := GenerateJWT("guest", false)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}
	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/feedback", nil, map[string]string{"Authorization": "Bearer " + token})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", w.Code)
	}

	// Admin token passes.
	token, err = GenerateJWT("admin", true)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}
	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/feedback", nil, map[string]string{"Authorization": "Bearer " + token})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginIssuesAdminToken(t *testing.T) {
	r := setupTestServer(t)

	hash, err := hashPassword("secret")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO users (username, password_hash, is_admin) VALUES (?, ?, ?)", "admin", hash, true); err != nil {
		t.Fatalf("seed admin failed: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/user/login", map[string]string{"username": "admin", "password": "secret"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token   string `json:"token"`
		IsAdmin bool   `json:"is_admin"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" || !resp.IsAdmin {
		t.Fatalf("unexpected login response: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/user/login", map[string]string{"username": "admin", "password": "wrong"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", w.Code)
	}

	// An unknown user gets the same response as a wrong password.
	w = doJSON(t, r, http.MethodPost, "/api/v1/user/login", map[string]string{"username": "nobody", "password": "secret"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", w.Code)
	}
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil || errResp.Error == "" {
		t.Fatalf("expected an error body, got %s", w.Body.String())
	}
}

func TestFeedbackEndpointStoresAndGates(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/feedback", map[string]string{
		"type":        "BUG",
		"description": "Woche 3 fehlt im Sheet",
		"contact":     "max@example.org",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created Feedback
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil || created.ID == "" || created.Type != "bug" {
		t.Fatalf("unexpected feedback response: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/feedback", map[string]string{"type": "bug", "description": "  "}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank description must be rejected, got %d", w.Code)
	}

	token, _ := GenerateJWT("admin", true)
	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/feedback", nil, map[string]string{"Authorization": "Bearer " + token})
	var items []Feedback
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil || len(items) != 1 {
		t.Fatalf("expected 1 stored feedback, got %s", w.Body.String())
	}
}

func TestTopSongsEndpointLimits(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/top-songs?limit=2", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Songs []TopSong `json:"songs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(resp.Songs))
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/top-songs?limit=-5", nil, nil)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Songs) != 0 {
		t.Fatalf("negative limit must yield empty list, got %d", len(resp.Songs))
	}
}

func TestAdminRefreshAndReports(t *testing.T) {
	r := setupTestServer(t)
	token, _ := GenerateJWT("admin", true)
	auth := map[string]string{"Authorization": "Bearer " + token}

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/refresh", nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/validate", nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("validate: expected 200, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/duplicates", nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("duplicates: expected 200, got %d", w.Code)
	}
}

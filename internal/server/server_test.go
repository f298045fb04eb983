package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"leanacademy/internal/app"
	"leanacademy/internal/bus"
	"leanacademy/internal/store"
	"leanacademy/pkg/domain"
)

const (
	testAdminUser     = store.ProtectedAdminUsername
	testAdminPassword = "Divyanshu 123"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	local := store.NewMemoryStore()
	if err := local.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	appCore, err := app.New(app.Config{
		Local:    local,
		Changes:  bus.New(),
		Sessions: store.NewJWTSessionStore("test-secret", time.Hour),
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	cfg.App = appCore
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func login(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": testAdminUser, "password": testAdminPassword})
	resp, err := http.Post(ts.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if out.Token == "" {
		t.Fatal("login returned empty token")
	}
	return out.Token
}

func doJSON(t *testing.T, method, url, token string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func TestPublicCoursesServeLocalDataWithSourceHeader(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/api/courses")
	if err != nil {
		t.Fatalf("get courses: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Data-Source"); got != "local" {
		t.Fatalf("X-Data-Source = %q, want local", got)
	}
	var out struct {
		Items []domain.Course `json:"items"`
		Count int             `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 5 || len(out.Items) != 5 {
		t.Fatalf("courses count = %d, want 5", out.Count)
	}
	if out.Items[0].Title != "Lean Basics" {
		t.Fatalf("first course = %q", out.Items[0].Title)
	}
}

func TestCourseVideosNestedRoute(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/api/courses")
	if err != nil {
		t.Fatalf("get courses: %v", err)
	}
	var list struct {
		Items []domain.Course `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/api/courses/" + list.Items[0].ID + "/videos")
	if err != nil {
		t.Fatalf("get course videos: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var videos struct {
		Items []domain.CourseVideo `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&videos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(videos.Items) != 2 {
		t.Fatalf("lesson count = %d, want 2 seeded", len(videos.Items))
	}
	for _, v := range videos.Items {
		if v.CourseID != list.Items[0].ID {
			t.Fatalf("video from another course leaked: %+v", v)
		}
	}
}

func TestPublicBlogHidesDrafts(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/api/blog")
	if err != nil {
		t.Fatalf("get blog: %v", err)
	}
	defer resp.Body.Close()
	var out struct {
		Items []domain.BlogPost `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Items) != 2 {
		t.Fatalf("public blog served %d posts, want 2 published", len(out.Items))
	}

	// A draft fetched by id stays hidden on the public route.
	token := login(t, ts)
	adminResp := doJSON(t, http.MethodGet, ts.URL+"/api/admin/blog", token, nil)
	defer adminResp.Body.Close()
	var all struct {
		Items []domain.BlogPost `json:"items"`
	}
	if err := json.NewDecoder(adminResp.Body).Decode(&all); err != nil {
		t.Fatalf("decode admin blog: %v", err)
	}
	if len(all.Items) != 3 {
		t.Fatalf("admin blog served %d posts, want 3", len(all.Items))
	}
	var draftID string
	for _, p := range all.Items {
		if !p.IsPublished {
			draftID = p.ID
		}
	}
	if draftID == "" {
		t.Fatal("no seeded draft found")
	}
	draftResp, err := http.Get(ts.URL + "/api/blog/" + draftID)
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}
	draftResp.Body.Close()
	if draftResp.StatusCode != http.StatusNotFound {
		t.Fatalf("public draft fetch status = %d, want 404", draftResp.StatusCode)
	}
}

func TestStatusEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/api/status")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	defer resp.Body.Close()
	var out statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.RemoteConfigured || out.Connected {
		t.Fatalf("local-only status = %+v", out)
	}
}

func TestContentSnapshotEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/api/content")
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("X-Data-Source"); got != "local" {
		t.Fatalf("X-Data-Source = %q, want local", got)
	}
	var snap app.ContentSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap.Courses) != 5 || len(snap.Videos) != 3 || len(snap.BlogPosts) != 2 || len(snap.BookingForms) != 1 {
		t.Fatalf("snapshot incomplete: %+v", snap)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	ts := newTestServer(t, Config{})

	// 1) No token.
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/admin/users", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("missing token status = %d, want 401", resp.StatusCode)
	}

	// 2) Garbage token.
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/admin/users", "not-a-session", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d, want 401", resp.StatusCode)
	}

	// 3) Valid session.
	token := login(t, ts)
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/admin/users", token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("valid token status = %d, want 200", resp.StatusCode)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts := newTestServer(t, Config{})

	body, _ := json.Marshal(map[string]string{"username": testAdminUser, "password": "wrong"})
	resp, err := http.Post(ts.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", resp.StatusCode)
	}
}

func TestAdminCourseCRUDOverHTTP(t *testing.T) {
	ts := newTestServer(t, Config{})
	token := login(t, ts)

	// Create.
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/admin/courses", token, domain.CourseDraft{
		Title: "New Course", LessonsCount: 4, OrderIndex: 9,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var created domain.Course
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	resp.Body.Close()
	if created.ID == "" {
		t.Fatal("created course has empty id")
	}

	// Update.
	resp = doJSON(t, http.MethodPut, ts.URL+"/api/admin/courses/"+created.ID, token, map[string]any{
		"lessons_count": 6,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want 200", resp.StatusCode)
	}
	var updated domain.Course
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	resp.Body.Close()
	if updated.LessonsCount != 6 || updated.Title != "New Course" {
		t.Fatalf("partial update wrong: %+v", updated)
	}

	// Delete.
	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/admin/courses/"+created.ID, token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}

	// Gone now.
	resp = doJSON(t, http.MethodPut, ts.URL+"/api/admin/courses/"+created.ID, token, map[string]any{"title": "x"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("update deleted course status = %d, want 404", resp.StatusCode)
	}
}

func TestAdminCourseVideoRejectsMissingCourse(t *testing.T) {
	ts := newTestServer(t, Config{})
	token := login(t, ts)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/admin/course-videos", token, domain.CourseVideoDraft{
		CourseID: "local-404", Title: "orphan",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("orphan video status = %d, want 404", resp.StatusCode)
	}
}

func TestAdminUserValidation(t *testing.T) {
	ts := newTestServer(t, Config{})
	token := login(t, ts)

	// Bad role.
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/admin/users", token, map[string]string{
		"username": "new", "password": "pw12345", "role": "emperor",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad role status = %d, want 400", resp.StatusCode)
	}

	// Duplicate username.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/admin/users", token, map[string]string{
		"username": testAdminUser, "password": "pw12345",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate username status = %d, want 409", resp.StatusCode)
	}

	// Protected seed account cannot be deleted.
	usersResp := doJSON(t, http.MethodGet, ts.URL+"/api/admin/users", token, nil)
	var users struct {
		Items []domain.AdminUser `json:"items"`
	}
	if err := json.NewDecoder(usersResp.Body).Decode(&users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	usersResp.Body.Close()
	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/admin/users/"+users.Items[0].ID, token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("protected delete status = %d, want 403", resp.StatusCode)
	}
}

func TestVideoCategoryFilter(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/api/videos?category=testimonials")
	if err != nil {
		t.Fatalf("get videos: %v", err)
	}
	defer resp.Body.Close()
	var out struct {
		Items []domain.Video `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].Category != domain.CategoryTestimonials {
		t.Fatalf("category filter wrong: %+v", out.Items)
	}

	bad, err := http.Get(ts.URL + "/api/videos?category=nonsense")
	if err != nil {
		t.Fatalf("get videos: %v", err)
	}
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad category status = %d, want 400", bad.StatusCode)
	}
}

func TestLoginRateLimit(t *testing.T) {
	redis := miniredis.RunT(t)
	ts := newTestServer(t, Config{
		RedisAddr:               redis.Addr(),
		LoginRateLimitPerMinute: 2,
	})

	body, _ := json.Marshal(map[string]string{"username": testAdminUser, "password": "wrong"})
	for i := 0; i < 2; i++ {
		resp, err := http.Post(ts.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("login attempt %d: %v", i, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want 401", i, resp.StatusCode)
		}
	}
	resp, err := http.Post(ts.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("rate limited attempt: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("third attempt status = %d, want 429", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Post(ts.URL+"/api/courses", "application/json", bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("post courses: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
}

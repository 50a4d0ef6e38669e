package editor_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/bootstrap"
	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/shared/config"
)

func buildApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func adminToken(t *testing.T, app *bootstrap.App) string {
	t.Helper()
	email := portfolio.Seed(portfolio.LangEN).PersonalInfo.Email
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": portfolio.FallbackAdminPassword,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("login: %d %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return out.Token
}

func do(t *testing.T, app *bootstrap.App, token, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestEditFlowCommitBecomesVisible(t *testing.T) {
	app := buildApp(t)
	token := adminToken(t, app)

	// Open a session for English.
	resp := do(t, app, token, http.MethodPost, "/api/v1/admin/sessions", []byte(`{"lang":"en"}`), "application/json")
	if resp.Code != http.StatusCreated {
		t.Fatalf("open: %d %s", resp.Code, resp.Body.String())
	}
	var sess struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}

	// Change the location in the draft.
	resp = do(t, app, token, http.MethodPut, "/api/v1/admin/sessions/"+sess.ID+"/personal-info",
		[]byte(`{"location":"Khartoum, Sudan"}`), "application/json")
	if resp.Code != http.StatusOK {
		t.Fatalf("personal-info: %d %s", resp.Code, resp.Body.String())
	}

	// Not visible publicly before commit.
	resp = do(t, app, "", http.MethodGet, "/api/v1/portfolio/en", nil, "")
	var doc portfolio.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode public doc: %v", err)
	}
	if doc.PersonalInfo.Location == "Khartoum, Sudan" {
		t.Fatalf("uncommitted draft leaked into public document")
	}

	// Commit and check visibility.
	resp = do(t, app, token, http.MethodPost, "/api/v1/admin/sessions/"+sess.ID+"/commit", nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("commit: %d %s", resp.Code, resp.Body.String())
	}
	resp = do(t, app, "", http.MethodGet, "/api/v1/portfolio/en", nil, "")
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode public doc: %v", err)
	}
	if doc.PersonalInfo.Location != "Khartoum, Sudan" {
		t.Fatalf("committed location not visible, got %q", doc.PersonalInfo.Location)
	}
}

func TestSessionRoutesRequireToken(t *testing.T) {
	app := buildApp(t)

	resp := do(t, app, "", http.MethodPost, "/api/v1/admin/sessions", []byte(`{"lang":"en"}`), "application/json")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d", resp.Code)
	}
}

func TestImageUploadOverCeilingIsRejected(t *testing.T) {
	app := buildApp(t)
	token := adminToken(t, app)

	resp := do(t, app, token, http.MethodPost, "/api/v1/admin/sessions", []byte(`{"lang":"en"}`), "application/json")
	var sess struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("target", "profile"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fw, err := writer.CreateFormFile("image", "big.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(bytes.Repeat([]byte{0xAB}, (1<<20)+1)); err != nil {
		t.Fatalf("write image: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	resp = do(t, app, token, http.MethodPost, "/api/v1/admin/sessions/"+sess.ID+"/images",
		body.Bytes(), writer.FormDataContentType())
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized image status = %d", resp.Code)
	}
}

func TestImageUploadArchivesAndServesOriginal(t *testing.T) {
	app := buildApp(t)
	token := adminToken(t, app)

	resp := do(t, app, token, http.MethodPost, "/api/v1/admin/sessions", []byte(`{"lang":"en"}`), "application/json")
	var sess struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}

	payload := []byte{0x01, 0x02, 0x03, 0x04}
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("target", "profile"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fw, err := writer.CreateFormFile("image", "avatar.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("write image: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	resp = do(t, app, token, http.MethodPost, "/api/v1/admin/sessions/"+sess.ID+"/images",
		body.Bytes(), writer.FormDataContentType())
	if resp.Code != http.StatusOK {
		t.Fatalf("image upload: %d %s", resp.Code, resp.Body.String())
	}
	var out struct {
		MediaKey string `json:"mediaKey"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if out.MediaKey == "" {
		t.Fatalf("upload response carries no media key")
	}

	resp = do(t, app, token, http.MethodGet, "/api/v1/admin/media/"+out.MediaKey, nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("media download: %d %s", resp.Code, resp.Body.String())
	}
	if !bytes.Equal(resp.Body.Bytes(), payload) {
		t.Fatalf("archived bytes differ from the upload")
	}

	resp = do(t, app, token, http.MethodGet, "/api/v1/admin/media/media/en/missing.png", nil, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("missing media status = %d", resp.Code)
	}
}

func TestPasswordChangeOverHTTP(t *testing.T) {
	app := buildApp(t)
	token := adminToken(t, app)

	resp := do(t, app, token, http.MethodPost, "/api/v1/admin/sessions", []byte(`{"lang":"en"}`), "application/json")
	var sess struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}

	resp = do(t, app, token, http.MethodPost, "/api/v1/admin/sessions/"+sess.ID+"/password",
		[]byte(`{"old":"wrong","new":"newpass","confirm":"newpass"}`), "application/json")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("wrong old password status = %d", resp.Code)
	}

	resp = do(t, app, token, http.MethodPost, "/api/v1/admin/sessions/"+sess.ID+"/password",
		[]byte(`{"old":"admin@123","new":"newpass","confirm":"newpass"}`), "application/json")
	if resp.Code != http.StatusOK {
		t.Fatalf("valid password change status = %d %s", resp.Code, resp.Body.String())
	}
}

package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rlourenco/catalog-admin/internal/auth"
	api "github.com/rlourenco/catalog-admin/internal/http"
	handler "github.com/rlourenco/catalog-admin/internal/http/handlers"
	rl "github.com/rlourenco/catalog-admin/internal/http/rate_limiter"
	"github.com/rlourenco/catalog-admin/internal/mailer"
	"github.com/rlourenco/catalog-admin/internal/models"
	"github.com/rlourenco/catalog-admin/internal/repo"
	"github.com/rlourenco/catalog-admin/internal/storage"
)

const (
	adminEmail     = "admin@example.com"
	storageBaseURL = "https://backend.example.com"
)

var (
	token       string
	productRepo *repo.InMemoryProductRepository
	userRepo    *repo.InMemoryUserRepository
	tokenStore  *auth.InMemoryTokenStore
	objectStore *storage.InMemory
	mockMailer  *mailer.Mock
)

func init() {
	setupTestDeps()
	r := api.NewRouter()

	var err error
	token, err = signIn(r, adminEmail)
	if err != nil {
		panic(fmt.Sprintf("error signing in: %v", err))
	}
}

func setupTestDeps() {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	userRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)
	userRepo.CreateUser(models.User{ID: uuid.NewString(), Email: adminEmail, CreatedAt: time.Now()})

	objectStore = storage.NewInMemory()
	handler.SetObjectStore(objectStore, storageBaseURL)

	tokenStore = auth.NewInMemoryTokenStore()
	api.SetTokenStore(tokenStore)

	mockMailer = &mailer.Mock{}
	magicLink := auth.NewMagicLinkService(tokenStore, userRepo, mockMailer, "http://localhost:8080", "no-reply@example.com")
	handler.SetMagicLinkService(magicLink)
}

func clearAllProducts() {
	productRepo.Clear()
}

func resetSignInLimits() {
	rl.CleanupAllVisitors()
	tokenStore.ResetCounters()
}

// resetIPLimit clears only the per-IP limiter, leaving the per-email
// counters in place.
func resetIPLimit() {
	rl.CleanupAllVisitors()
}

// signIn walks the passwordless flow: request a link, pull the token out
// of the captured email, and redeem it for a session token.
func signIn(r http.Handler, email string) (string, error) {
	resetSignInLimits()

	body, _ := json.Marshal(handler.MagicLinkRequest{Email: email})
	req := httptest.NewRequest(http.MethodPost, "/auth/magic-link", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusAccepted {
		return "", fmt.Errorf("magic link request failed with status %d", w.Code)
	}

	signInToken, err := lastEmailedToken()
	if err != nil {
		return "", err
	}

	body, _ = json.Marshal(handler.CallbackRequest{Token: signInToken})
	req = httptest.NewRequest(http.MethodPost, "/auth/callback", bytes.NewReader(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("callback failed with status %d", w.Code)
	}

	var resp handler.TokenResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

// lastEmailedToken extracts the sign-in token from the most recently
// captured email body.
func lastEmailedToken() (string, error) {
	email, ok := mockMailer.LastSent()
	if !ok {
		return "", fmt.Errorf("no email was sent")
	}
	idx := strings.Index(email.Body, "token=")
	if idx < 0 {
		return "", fmt.Errorf("no token in email body: %q", email.Body)
	}
	rest := email.Body[idx+len("token="):]
	if end := strings.IndexAny(rest, " \n"); end >= 0 {
		rest = rest[:end]
	}
	return rest, nil
}

type stagedFile struct {
	name    string
	content string
}

// productFormBody builds the multipart add/edit form: text fields,
// pre-existing image keys, and staged files in order.
func productFormBody(fields map[string]string, existingImages []string, files []stagedFile) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for k, v := range fields {
		writer.WriteField(k, v)
	}
	for _, key := range existingImages {
		writer.WriteField("images", key)
	}
	for _, f := range files {
		part, _ := writer.CreateFormFile("files", f.name)
		io.WriteString(part, f.content)
	}

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func createProduct(r http.Handler, fields map[string]string, existingImages []string, files []stagedFile) *httptest.ResponseRecorder {
	body, contentType := productFormBody(fields, existingImages, files)
	req := httptest.NewRequest(http.MethodPost, "/products", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func updateProduct(r http.Handler, id string, fields map[string]string, existingImages []string, files []stagedFile) *httptest.ResponseRecorder {
	body, contentType := productFormBody(fields, existingImages, files)
	req := httptest.NewRequest(http.MethodPut, "/products/"+id, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getJSON(r http.Handler, path string, out any) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if out != nil && w.Code == http.StatusOK {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			return w, err
		}
	}
	return w, nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(out); err != nil {
		t.Fatalf("error decoding response body: %v", err)
	}
}

// seedProduct puts a product straight into the repository, bypassing the
// handlers, with an explicit creation time.
func seedProduct(p models.Product) models.Product {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	created, _ := productRepo.Create(p)
	return created
}

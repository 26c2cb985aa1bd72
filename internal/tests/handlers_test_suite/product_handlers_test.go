package handlers_test_suite

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	api "github.com/rlourenco/catalog-admin/internal/http"
	handler "github.com/rlourenco/catalog-admin/internal/http/handlers"
	"github.com/rlourenco/catalog-admin/internal/models"
)

func TestCreateProduct(t *testing.T) {
	r := api.NewRouter()
	clearAllProducts()

	w := createProduct(r, map[string]string{
		"title":       "Enamel Mug",
		"category":    "Kitchen",
		"price":       "12.50",
		"description": "A sturdy mug",
		"sku":         "MUG-001",
		"stock":       "7",
		"tags":        "camping, enamel ,outdoor",
		"available":   "on",
	}, nil, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var resp handler.ProductResponse
	decodeBody(t, w, &resp)

	if resp.ID == "" {
		t.Error("expected a generated product id")
	}
	if resp.Title != "Enamel Mug" || resp.Price != 12.50 || resp.Stock != 7 {
		t.Errorf("unexpected product fields: %+v", resp)
	}
	if !resp.Available {
		t.Error("expected available to be true")
	}
	if want := []string{"camping", "enamel", "outdoor"}; !reflect.DeepEqual(resp.Tags, want) {
		t.Errorf("expected tags %v, got %v", want, resp.Tags)
	}
	if resp.CreatedAt == "" {
		t.Error("expected a creation timestamp")
	}
}

func TestCreateProductWithoutImages(t *testing.T) {
	r := api.NewRouter()
	clearAllProducts()

	w := createProduct(r, map[string]string{
		"title": "Plain",
		"price": "5",
	}, nil, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	// Images must serialize as an empty array, never null.
	body := w.Body.String()
	if !strings.Contains(body, `"images":[]`) {
		t.Errorf("expected an empty images array in the response, got: %s", body)
	}
	if !strings.Contains(body, `"image_urls":[]`) {
		t.Errorf("expected an empty image_urls array in the response, got: %s", body)
	}

	products, _ := productRepo.GetAll()
	if len(products) != 1 || products[0].Images == nil {
		t.Error("expected the stored product to carry a non-nil images slice")
	}
}

func TestCreateProductValidation(t *testing.T) {
	r := api.NewRouter()
	clearAllProducts()
	keysBefore := len(objectStore.Keys())

	// A staged file must not be uploaded when validation fails.
	w := createProduct(r, map[string]string{
		"title": "",
		"price": "",
	}, nil, []stagedFile{{name: "photo.png", content: "png-bytes"}})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if products, _ := productRepo.GetAll(); len(products) != 0 {
		t.Errorf("expected no product to be created, found %d", len(products))
	}
	if len(objectStore.Keys()) != keysBefore {
		t.Error("expected no upload for an invalid form")
	}
}

func TestCreateProductUploadsStagedFiles(t *testing.T) {
	r := api.NewRouter()
	clearAllProducts()

	w := createProduct(r, map[string]string{
		"title": "Poster",
		"price": "8",
	}, nil, []stagedFile{
		{name: "front side.png", content: "front"},
		{name: "back.png", content: "back"},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var resp handler.ProductResponse
	decodeBody(t, w, &resp)

	if len(resp.Images) != 2 {
		t.Fatalf("expected 2 image keys, got %d", len(resp.Images))
	}
	if !strings.HasPrefix(resp.Images[0], "product-images/") {
		t.Errorf("unexpected key prefix: %q", resp.Images[0])
	}
	if !strings.HasSuffix(resp.Images[0], "_front_side.png") {
		t.Errorf("expected sanitized filename in key, got %q", resp.Images[0])
	}
	if !strings.HasSuffix(resp.Images[1], "_back.png") {
		t.Errorf("expected staged order to be preserved, got %q", resp.Images[1])
	}
	for i, key := range resp.Images {
		if _, ok := objectStore.Object(key); !ok {
			t.Errorf("image %d was not stored under %q", i, key)
		}
		wantURL := storageBaseURL + "/storage/v1/object/public/" + key
		if resp.ImageURLs[i] != wantURL {
			t.Errorf("expected public url %q, got %q", wantURL, resp.ImageURLs[i])
		}
	}
}

func TestCreateProductUploadFailure(t *testing.T) {
	r := api.NewRouter()
	clearAllProducts()

	objectStore.FailNext = errors.New("bucket unavailable")
	w := createProduct(r, map[string]string{
		"title": "Poster",
		"price": "8",
	}, nil, []stagedFile{{name: "a.png", content: "a"}})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if products, _ := productRepo.GetAll(); len(products) != 0 {
		t.Errorf("expected no product after a failed upload, found %d", len(products))
	}
}

func TestGetProductsNewestFirst(t *testing.T) {
	r := api.NewRouter()
	clearAllProducts()

	seedProduct(models.Product{Title: "Old", Price: 1, CreatedAt: "2026-01-01T10:00:00Z"})
	seedProduct(models.Product{Title: "New", Price: 1, CreatedAt: "2026-03-01T10:00:00Z"})
	seedProduct(models.Product{Title: "Middle", Price: 1, CreatedAt: "2026-02-01T10:00:00Z"})

	var products []handler.ProductResponse
	w, err := getJSON(r, "/products", &products)
	if err != nil {
		t.Fatal(err)
	}

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	got := make([]string, len(products))
	for i, p := range products {
		got[i] = p.Title
	}
	if want := []string{"New", "Middle", "Old"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected order %v, got %v", want, got)
	}
}

func TestSearchProducts(t *testing.T) {
	r := api.NewRouter()
	clearAllProducts()

	seedProduct(models.Product{Title: "Enamel Mug", Category: "Kitchen", Price: 1, Tags: []string{"camping"}, CreatedAt: "2026-01-01T10:00:00Z"})
	seedProduct(models.Product{Title: "Camping Chair", Category: "Outdoor", Price: 1, CreatedAt: "2026-01-02T10:00:00Z"})
	seedProduct(models.Product{Title: "Desk Lamp", Category: "Office", Price: 1, CreatedAt: "2026-01-03T10:00:00Z"})

	cases := []struct {
		name  string
		path  string
		want  int
		first string
	}{
		{"by title", "/products/search?q=mug", 1, "Enamel Mug"},
		{"by tag", "/products/search?q=camping", 2, "Camping Chair"},
		{"by category filter", "/products/search?category=Office", 1, "Desk Lamp"},
		{"query and category", "/products/search?q=camping&category=Kitchen", 1, "Enamel Mug"},
		{"no match", "/products/search?q=teapot", 0, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var products []handler.ProductResponse
			w, err := getJSON(r, tc.path, &products)
			if err != nil {
				t.Fatal(err)
			}
			if w.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
			}
			if len(products) != tc.want {
				t.Fatalf("expected %d products, got %d", tc.want, len(products))
			}
			if tc.want > 0 && products[0].Title != tc.first {
				t.Errorf("expected first product %q, got %q", tc.first, products[0].Title)
			}
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	r := api.NewRouter()
	clearAllProducts()

	seeded := seedProduct(models.Product{Title: "Mug", Price: 9.99, CreatedAt: "2026-01-01T10:00:00Z"})

	w := updateProduct(r, seeded.ID, map[string]string{
		"title": "Mug",
		"price": "9.99",
	}, nil, []stagedFile{{name: "photo.png", content: "png"}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp handler.ProductResponse
	decodeBody(t, w, &resp)

	if resp.ID != seeded.ID {
		t.Errorf("expected id %q, got %q", seeded.ID, resp.ID)
	}
	if resp.Title != "Mug" || resp.Price != 9.99 {
		t.Errorf("unexpected fields after edit: %+v", resp)
	}
	if len(resp.Images) != 1 {
		t.Errorf("expected exactly one image after the edit, got %d", len(resp.Images))
	}
	if resp.CreatedAt != seeded.CreatedAt {
		t.Errorf("expected creation time to survive the edit, got %q", resp.CreatedAt)
	}
	if products, _ := productRepo.GetAll(); len(products) != 1 {
		t.Errorf("expected an edit, not a new row; repository holds %d products", len(products))
	}
}

func TestUpdateProductKeepsExistingImages(t *testing.T) {
	r := api.NewRouter()
	clearAllProducts()

	seeded := seedProduct(models.Product{
		Title:     "Poster",
		Price:     8,
		Images:    []string{"product-images/1_old.png"},
		CreatedAt: "2026-01-01T10:00:00Z",
	})

	w := updateProduct(r, seeded.ID, map[string]string{
		"title": "Poster",
		"price": "8",
	}, []string{"product-images/1_old.png"}, []stagedFile{{name: "new.png", content: "new"}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp handler.ProductResponse
	decodeBody(t, w, &resp)

	if len(resp.Images) != 2 {
		t.Fatalf("expected kept plus uploaded image, got %v", resp.Images)
	}
	if resp.Images[0] != "product-images/1_old.png" {
		t.Errorf("expected kept image first, got %q", resp.Images[0])
	}
	if !strings.HasSuffix(resp.Images[1], "_new.png") {
		t.Errorf("expected new upload appended, got %q", resp.Images[1])
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	r := api.NewRouter()
	clearAllProducts()

	w := updateProduct(r, "b7a5fbb9-0000-0000-0000-000000000000", map[string]string{
		"title": "Ghost",
		"price": "1",
	}, nil, nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	if products, _ := productRepo.GetAll(); len(products) != 0 {
		t.Errorf("expected no insert on a missing id, found %d products", len(products))
	}
}

func TestDeleteProduct(t *testing.T) {
	r := api.NewRouter()
	clearAllProducts()

	seeded := seedProduct(models.Product{Title: "Mug", Price: 9.99, CreatedAt: "2026-01-01T10:00:00Z"})

	req := httptest.NewRequest(http.MethodDelete, "/products/"+seeded.ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
	if products, _ := productRepo.GetAll(); len(products) != 0 {
		t.Errorf("expected the product to be gone, found %d", len(products))
	}
}

func TestDeleteProductNotFound(t *testing.T) {
	r := api.NewRouter()
	clearAllProducts()

	req := httptest.NewRequest(http.MethodDelete, "/products/b7a5fbb9-0000-0000-0000-000000000000", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestBulkDeleteProducts(t *testing.T) {
	r := api.NewRouter()
	clearAllProducts()

	first := seedProduct(models.Product{Title: "A", Price: 1, CreatedAt: "2026-01-01T10:00:00Z"})
	second := seedProduct(models.Product{Title: "B", Price: 1, CreatedAt: "2026-01-02T10:00:00Z"})
	kept := seedProduct(models.Product{Title: "C", Price: 1, CreatedAt: "2026-01-03T10:00:00Z"})

	w := postJSON(r, "/products/bulk-delete", handler.BulkDeleteRequest{IDs: []string{first.ID, second.ID}}, token)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
	products, _ := productRepo.GetAll()
	if len(products) != 1 || products[0].ID != kept.ID {
		t.Errorf("expected only %q to remain, got %+v", kept.Title, products)
	}
}

func TestBulkDeleteRejectsEmptySelection(t *testing.T) {
	r := api.NewRouter()
	clearAllProducts()

	seedProduct(models.Product{Title: "A", Price: 1, CreatedAt: "2026-01-01T10:00:00Z"})

	w := postJSON(r, "/products/bulk-delete", handler.BulkDeleteRequest{IDs: []string{}}, token)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if products, _ := productRepo.GetAll(); len(products) != 1 {
		t.Errorf("expected the catalog to be untouched, found %d products", len(products))
	}
}

package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/rlourenco/catalog-admin/internal/models"
)

const maxUploadMemory = 32 << 20

// productForm carries the raw multipart fields of the add/edit form. Price
// and stock stay strings until normalization so that "required" can be
// checked before any parsing defaults kick in.
type productForm struct {
	Title       string
	Category    string
	Price       string
	Description string
	Available   string
	SKU         string
	Stock       string
	Tags        string

	// ExistingImages are storage keys already on the draft (edit flow).
	ExistingImages []string
	// Files are the staged uploads, in staged order.
	Files []*multipart.FileHeader
}

func parseProductForm(r *http.Request) (productForm, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return productForm{}, err
	}

	form := productForm{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Price:       r.FormValue("price"),
		Description: r.FormValue("description"),
		Available:   r.FormValue("available"),
		SKU:         r.FormValue("sku"),
		Stock:       r.FormValue("stock"),
		Tags:        r.FormValue("tags"),
	}
	if r.MultipartForm != nil {
		form.ExistingImages = r.MultipartForm.Value["images"]
		form.Files = r.MultipartForm.File["files"]
	}
	return form, nil
}

// normalize builds the persistence payload: price and stock fall back to
// zero on parse failure, tags are split and trimmed, availability is
// coerced to a boolean. Images are set by the caller after uploads.
func (f productForm) normalize() models.Product {
	var sku *string
	if f.SKU != "" {
		s := f.SKU
		sku = &s
	}

	return models.Product{
		Title:       f.Title,
		Category:    f.Category,
		Price:       parsePrice(f.Price),
		Description: f.Description,
		Available:   parseAvailable(f.Available),
		SKU:         sku,
		Stock:       parseStock(f.Stock),
		Tags:        splitTags(f.Tags),
	}
}

func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseStock(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// splitTags turns a comma-separated input into trimmed, non-empty tags.
func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// parseAvailable coerces the form value to a boolean; an absent field
// means available, matching the form's default.
func parseAvailable(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return true
	case "on":
		return true
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return v
}

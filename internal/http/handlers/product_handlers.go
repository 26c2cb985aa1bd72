package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rlourenco/catalog-admin/internal/repo"
	"github.com/rlourenco/catalog-admin/internal/storage"
)

// GetProductsHandler godoc
// @Summary List all products
// @Description Returns every product ordered by creation time descending
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		log.Printf("fetch products: %v", err)
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, toProductResponses(products)); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// SearchProductsHandler godoc
// @Summary Search products
// @Description Case-insensitive substring match of q against title, category, or tags, combined with an exact category filter
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param q query string false "Free-text query"
// @Param category query string false "Exact category"
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products/search [get]
func SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	filter := repo.ProductFilter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}

	products, err := productRepo.Filter(filter)
	if err != nil {
		log.Printf("search products: %v", err)
		http.Error(w, "could not search products", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, toProductResponses(products)); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// uploadStagedFiles uploads the staged files one at a time, in staged
// order, and returns the resulting storage keys. A failure aborts the
// remainder; keys uploaded before the failure are not rolled back (the
// record they would belong to is never written, so they are orphaned).
func uploadStagedFiles(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	keys := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open staged file %q: %w", fh.Filename, err)
		}

		key := storage.ObjectKey(fh.Filename, time.Now())
		stored, err := objectStore.Upload(ctx, key, f, storage.UploadOptions{
			ContentType:  fh.Header.Get("Content-Type"),
			CacheControl: "max-age=3600",
		})
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("upload %q: %w", fh.Filename, err)
		}
		keys = append(keys, stored)
	}
	return keys, nil
}

// CreateProductHandler godoc
// @Summary Create a product
// @Description Accepts the add-product form as multipart/form-data; staged files upload before the row is inserted
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param price formData string true "Price"
// @Param files formData file false "Staged images"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 500 {string} string "Internal error"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	form, err := parseProductForm(r)
	if err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProductForm(form)
	if len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	newKeys, err := uploadStagedFiles(r.Context(), form.Files)
	if err != nil {
		log.Printf("create product: %v", err)
		http.Error(w, "could not upload images", http.StatusInternalServerError)
		return
	}

	product := form.normalize()
	product.ID = uuid.NewString()
	product.Images = append(append([]string{}, form.ExistingImages...), newKeys...)
	product.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	created, err := productRepo.Create(product)
	if err != nil {
		log.Printf("create product: %v", err)
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusCreated, toProductResponse(created)); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Full-field overwrite; newly uploaded keys append after the draft's existing image keys
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "product ID is required", http.StatusBadRequest)
		return
	}

	form, err := parseProductForm(r)
	if err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProductForm(form)
	if len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	newKeys, err := uploadStagedFiles(r.Context(), form.Files)
	if err != nil {
		log.Printf("update product: %v", err)
		http.Error(w, "could not upload images", http.StatusInternalServerError)
		return
	}

	product := form.normalize()
	product.ID = id
	product.Images = append(append([]string{}, form.ExistingImages...), newKeys...)

	updated, err := productRepo.Update(product)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		log.Printf("update product: %v", err)
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, toProductResponse(updated)); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "product ID is required", http.StatusBadRequest)
		return
	}

	if err := productRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		log.Printf("delete product: %v", err)
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkDeleteProductsHandler godoc
// @Summary Delete a selection of products
// @Tags products
// @Accept json
// @Security BearerAuth
// @Param selection body BulkDeleteRequest true "Product IDs to delete"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Empty selection"
// @Failure 500 {string} string "Internal error"
// @Router /products/bulk-delete [post]
func BulkDeleteProductsHandler(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if len(req.IDs) == 0 {
		http.Error(w, "no products selected", http.StatusBadRequest)
		return
	}

	if err := productRepo.DeleteByIDs(req.IDs); err != nil {
		log.Printf("bulk delete: %v", err)
		http.Error(w, "could not delete products", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

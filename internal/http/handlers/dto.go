package handlers

import (
	"github.com/rlourenco/catalog-admin/internal/models"
	"github.com/rlourenco/catalog-admin/internal/storage"
)

type ProductResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	ImageURLs   []string `json:"image_urls"`
	Available   bool     `json:"available"`
	SKU         *string  `json:"sku"`
	Stock       int      `json:"stock"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
}

func toProductResponse(p models.Product) ProductResponse {
	urls := make([]string, len(p.Images))
	for i, key := range p.Images {
		urls[i] = storage.PublicURL(storageBaseURL, key)
	}
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		Images:      p.Images,
		ImageURLs:   urls,
		Available:   p.Available,
		SKU:         p.SKU,
		Stock:       p.Stock,
		Tags:        p.Tags,
		CreatedAt:   p.CreatedAt,
	}
}

func toProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type MagicLinkRequest struct {
	Email string `json:"email"`
}

type CallbackRequest struct {
	Token string `json:"token"`
}

type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type SessionResponse struct {
	User UserResponse `json:"user"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

package handlers

import (
	"github.com/rlourenco/catalog-admin/internal/auth"
	"github.com/rlourenco/catalog-admin/internal/repo"
	"github.com/rlourenco/catalog-admin/internal/storage"
)

var (
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository

	objectStore    storage.Storage
	storageBaseURL string

	magicLink *auth.MagicLinkService
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

// SetObjectStore wires the object-storage backend and the public base URL
// retrieval URLs are derived from.
func SetObjectStore(s storage.Storage, baseURL string) {
	objectStore = s
	storageBaseURL = baseURL
}

func SetMagicLinkService(s *auth.MagicLinkService) {
	magicLink = s
}

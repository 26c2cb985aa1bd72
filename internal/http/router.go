package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rlourenco/catalog-admin/docs"
	"github.com/rlourenco/catalog-admin/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/magic-link", handlers.MagicLinkHandler)
	r.Get("/auth/callback", handlers.MagicLinkCallbackHandler)
	r.Post("/auth/callback", handlers.MagicLinkCallbackHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Get("/auth/session", handlers.SessionHandler)
		r.Post("/auth/logout", handlers.LogoutHandler)

		r.Get("/products", handlers.GetProductsHandler)
		r.Get("/products/search", handlers.SearchProductsHandler)
		r.Get("/products/export", handlers.ExportProductsHandler)
		r.Post("/products", handlers.CreateProductHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)
		r.Post("/products/bulk-delete", handlers.BulkDeleteProductsHandler)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/rlourenco/catalog-admin/internal/models"
)

var csvHeader = []string{"id", "title", "category", "price", "sku", "stock", "available", "tags", "images", "description", "created_at"}

// ExportProductsHandler godoc
// @Summary Export the full product list as CSV
// @Description Exports every product regardless of any active search filter
// @Tags products
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV document"
// @Failure 400 {string} string "No products"
// @Failure 500 {string} string "Internal error"
// @Router /products/export [get]
func ExportProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		log.Printf("export products: %v", err)
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	if len(products) == 0 {
		http.Error(w, "no products to export", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="products_export.csv"`)
	if _, err := w.Write([]byte(buildCSV(products))); err != nil {
		log.Printf("failed to write CSV response: %v", err)
	}
}

// buildCSV renders the export document: a header row followed by one row
// per product, every field double-quoted with embedded quotes doubled.
func buildCSV(products []models.Product) string {
	var sb strings.Builder
	sb.WriteString(csvRow(csvHeader))

	for _, p := range products {
		sku := ""
		if p.SKU != nil {
			sku = *p.SKU
		}
		available := "0"
		if p.Available {
			available = "1"
		}
		sb.WriteString(csvRow([]string{
			p.ID,
			p.Title,
			p.Category,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			sku,
			strconv.Itoa(p.Stock),
			available,
			strings.Join(p.Tags, "|"),
			strings.Join(p.Images, "|"),
			p.Description,
			p.CreatedAt,
		}))
	}
	return sb.String()
}

func csvRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",") + "\n"
}

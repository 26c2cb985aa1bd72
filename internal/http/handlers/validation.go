package handlers

import (
	"strings"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// Title and price must be present before anything is uploaded or persisted.
func validateProductForm(f productForm) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(f.Title) == "" {
		errs = append(errs, ProductValidationError{Field: "Title", Description: "Title is required"})
	}
	if strings.TrimSpace(f.Price) == "" {
		errs = append(errs, ProductValidationError{Field: "Price", Description: "Price is required"})
	}
	return errs
}

package models

// Product represents a catalog entry. Images holds object-storage keys in
// display order; Tags is the normalized form of the comma-separated tags
// input. CreatedAt is assigned at insert time and drives default ordering.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Available   bool     `json:"available"`
	SKU         *string  `json:"sku"`
	Stock       int      `json:"stock"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

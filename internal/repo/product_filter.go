package repo

// ProductFilter narrows a product listing. Query is a case-insensitive
// substring matched against title, category, or the joined tag list;
// Category is an exact match. Both conditions combine with AND.
type ProductFilter struct {
	Query    string
	Category string
}

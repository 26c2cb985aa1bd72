package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rlourenco/catalog-admin/internal/models"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, title, category, price, description, images, available, sku, stock, tags, created_at`

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	query := `INSERT INTO products (id, title, category, price, description, images, available, sku, stock, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	images, err := json.Marshal(p.Images)
	if err != nil {
		return models.Product{}, err
	}
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return models.Product{}, err
	}

	_, err = r.db.ExecContext(ctx, query, p.ID, p.Title, p.Category, p.Price, p.Description, images, p.Available, p.SKU, p.Stock, tags, p.CreatedAt)
	return p, err
}

func (r *PostgresProductRepository) GetAll() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *PostgresProductRepository) GetByID(id string) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	query := `UPDATE products SET title = $1, category = $2, price = $3, description = $4,
		images = $5, available = $6, sku = $7, stock = $8, tags = $9 WHERE id = $10
		RETURNING created_at`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	images, err := json.Marshal(p.Images)
	if err != nil {
		return models.Product{}, err
	}
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return models.Product{}, err
	}

	err = r.db.QueryRowContext(ctx, query, p.Title, p.Category, p.Price, p.Description, images, p.Available, p.SKU, p.Stock, tags, p.ID).Scan(&p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r *PostgresProductRepository) Delete(id string) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) DeleteByIDs(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `DELETE FROM products WHERE id IN (` + strings.Join(placeholders, ", ") + `)`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *PostgresProductRepository) Filter(f ProductFilter) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	argIdx := 1

	if f.Query != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR category ILIKE $%d"+
			" OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) tag WHERE tag ILIKE $%d))", argIdx, argIdx, argIdx)
		args = append(args, "%"+escapeLike(f.Query)+"%")
		argIdx++
	}
	if f.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, f.Category)
		argIdx++
	}
	query += " ORDER BY created_at DESC"

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// escapeLike neutralizes LIKE metacharacters so a search input matches
// literally instead of acting as a pattern.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	var images, tags []byte
	err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Price, &p.Description, &images, &p.Available, &p.SKU, &p.Stock, &tags, &p.CreatedAt)
	if err != nil {
		return models.Product{}, err
	}
	if err := json.Unmarshal(images, &p.Images); err != nil {
		return models.Product{}, err
	}
	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"jewel-studio-api/logger"
	"jewel-studio-api/model"

	"github.com/sirupsen/logrus"
)

// IProductRepository defines the contract for product database operations.
type IProductRepository interface {
	CreateProduct(product *model.Product) error
	DeleteProduct(id int) error
	CountProducts(filter model.ProductFilter) (int, error)
	ListProducts(filter model.ProductFilter, limit, offset int) ([]*model.Product, error)
}

type ProductRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

// buildFilter turns a ProductFilter into a WHERE clause with positional args.
func buildFilter(filter model.ProductFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.Category != "" {
		args = append(args, string(filter.Category))
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Featured {
		clauses = append(clauses, "is_featured = TRUE")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// CreateProduct adds a new product to the database.
func (r *ProductRepository) CreateProduct(product *model.Product) error {
	log := logger.Log.WithFields(logrus.Fields{
		"name":     product.Name,
		"category": product.Category,
	})
	log.Info("Executing query to create a new product")

	query := `INSERT INTO products (name, file_name, image_url, video_url, category, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		product.Name, product.FileName, product.ImageURL, product.VideoURL,
		string(product.Category), product.IsFeatured,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create product query")
		return err
	}
	return nil
}

// DeleteProduct removes a product row. Returns sql.ErrNoRows when no row
// matched, so repeated deletes of the same id stay visible as not-found.
func (r *ProductRepository) DeleteProduct(id int) error {
	log := logger.Log.WithField("product_id", id)
	log.Info("Executing query to delete a product")

	res, err := r.DB.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete product query")
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountProducts returns the number of products matching the filter, ignoring
// pagination.
func (r *ProductRepository) CountProducts(filter model.ProductFilter) (int, error) {
	where, args := buildFilter(filter)

	var total int
	query := `SELECT COUNT(*) FROM products` + where
	if err := r.DB.QueryRow(query, args...).Scan(&total); err != nil {
		logger.Log.WithError(err).Error("Failed to execute count products query")
		return 0, err
	}
	return total, nil
}

// ListProducts returns one page of matching products, newest first. The id
// tie-break keeps pages deterministic for rows sharing a creation timestamp.
func (r *ProductRepository) ListProducts(filter model.ProductFilter, limit, offset int) ([]*model.Product, error) {
	where, args := buildFilter(filter)
	query := `SELECT id, name, image_url, video_url, category, is_featured FROM products` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute list products query")
		return nil, err
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.ImageURL, &p.VideoURL, &p.Category, &p.IsFeatured); err != nil {
			logger.Log.WithError(err).Error("Failed to scan product row")
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

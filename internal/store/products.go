package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/safar/storefront-api/internal/database"
	"github.com/safar/storefront-api/internal/models"
	"github.com/shopspring/decimal"
)

// Sortable columns for catalog search. Anything else in sortBy is
// ignored rather than rejected, keeping the store's natural order.
var searchSortColumns = map[string]string{
	"price":  "price",
	"rating": "rating",
}

const productColumns = "id, title, description, image, price, category, rating, stock"

// SearchProducts matches query as a case-insensitive substring against
// title or description; an empty query returns every product.
func SearchProducts(ctx context.Context, db *sql.DB, query, sortBy, sortOrder string) ([]models.Product, error) {
	sqlQuery := "SELECT " + productColumns + " FROM products"
	var args []interface{}

	if query != "" {
		sqlQuery += " WHERE title ILIKE $1 OR description ILIKE $1"
		args = append(args, "%"+query+"%")
	}

	if column, ok := searchSortColumns[sortBy]; ok {
		direction := strings.ToUpper(sortOrder)
		if direction == "" {
			direction = "ASC"
		}
		if direction == "ASC" || direction == "DESC" {
			sqlQuery += fmt.Sprintf(" ORDER BY %s %s", column, direction)
		}
	}

	rows, err := db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func ListProducts(ctx context.Context, db *sql.DB) ([]models.Product, error) {
	rows, err := db.QueryContext(ctx, "SELECT "+productColumns+" FROM products")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID,
			&product.Title,
			&product.Description,
			&product.Image,
			&product.Price,
			&product.Category,
			&product.Rating,
			&product.Stock,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

func GetProductStock(ctx context.Context, db *sql.DB, productID int64) (int, error) {
	var stock int
	err := db.QueryRowContext(ctx,
		`SELECT stock FROM products WHERE id = $1`,
		productID).Scan(&stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, database.ErrProductNotFound
		}
		return 0, fmt.Errorf("get product stock: %w", err)
	}
	return stock, nil
}

type StockCheckItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type StockCheckResult struct {
	ProductID         int64 `json:"productId"`
	RequestedQuantity int   `json:"requestedQuantity"`
	AvailableStock    int   `json:"availableStock"`
	HasEnoughStock    bool  `json:"hasEnoughStock"`
}

// CheckStock is a read-only availability probe over a batch of line
// items. A product that does not exist counts as zero stock. Results
// come back in input order, one per requested item.
func CheckStock(ctx context.Context, db *sql.DB, items []StockCheckItem) ([]StockCheckResult, error) {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, stock FROM products WHERE id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("check stock: %w", err)
	}
	defer rows.Close()

	stockByID := make(map[int64]int)
	for rows.Next() {
		var id int64
		var stock int
		if err := rows.Scan(&id, &stock); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		stockByID[id] = stock
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	results := make([]StockCheckResult, 0, len(items))
	for _, item := range items {
		available := stockByID[item.ProductID]
		results = append(results, StockCheckResult{
			ProductID:         item.ProductID,
			RequestedQuantity: item.Quantity,
			AvailableStock:    available,
			HasEnoughStock:    available >= item.Quantity,
		})
	}

	return results, nil
}

type CreateProductRequest struct {
	Title       string
	Description *string
	Image       *string
	Price       decimal.Decimal
	Category    *string
	Rating      *decimal.Decimal
	Stock       int
}

func CreateProduct(ctx context.Context, db *sql.DB, req CreateProductRequest) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`INSERT INTO products (title, description, image, price, category, rating, stock)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		req.Title, req.Description, req.Image, req.Price, req.Category, req.Rating, req.Stock).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	return id, nil
}

// ProductPatch is a partial update: nil fields are left untouched.
type ProductPatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Image       *string          `json:"image"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Rating      *decimal.Decimal `json:"rating"`
	Stock       *int             `json:"stock"`
}

func (p ProductPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Image == nil &&
		p.Price == nil && p.Category == nil && p.Rating == nil && p.Stock == nil
}

func (p ProductPatch) assignments() ([]string, []interface{}) {
	var set []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Image != nil {
		add("image", *p.Image)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.Rating != nil {
		add("rating", *p.Rating)
	}
	if p.Stock != nil {
		add("stock", *p.Stock)
	}

	return set, args
}

func UpdateProduct(ctx context.Context, db *sql.DB, id int64, patch ProductPatch) error {
	set, args := patch.assignments()
	if len(set) == 0 {
		return fmt.Errorf("update product: empty patch")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args))

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrProductNotFound
	}

	return nil
}

func DeleteProduct(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrProductNotFound
	}

	return nil
}

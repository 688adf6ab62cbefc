package product

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const productColumns = `"productId", name, description, price, stock, category, subcategory, brand, weight, flavors, image, images, "isOnSale", "salePrice", "isCombo", "isFeatured", tags, "createdAt", "updatedAt"`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var subcategory, brand, weight, createdAt, updatedAt sql.NullString
	var salePrice sql.NullFloat64
	var flavors, images, tags pq.StringArray
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category,
		&subcategory, &brand, &weight, &flavors, &p.Image, &images,
		&p.IsOnSale, &salePrice, &p.IsCombo, &p.IsFeatured, &tags, &createdAt, &updatedAt)
	if err != nil {
		return Product{}, err
	}
	if subcategory.Valid {
		p.Subcategory = &subcategory.String
	}
	if brand.Valid {
		p.Brand = &brand.String
	}
	if weight.Valid {
		p.Weight = &weight.String
	}
	if salePrice.Valid {
		p.SalePrice = &salePrice.Float64
	}
	p.Flavors = flavors
	p.Images = images
	p.Tags = tags
	p.CreatedAt = createdAt.String
	p.UpdatedAt = updatedAt.String
	return p, nil
}

// List pushes filtering, sorting and pagination into the query. Whole-table
// scans filtered in memory do not survive a growing catalog.
func (r *PostgresRepository) List(f Filter) ([]Product, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Category != "" {
		conds = append(conds, "category = "+arg(f.Category))
	}
	if f.Subcategory != "" {
		conds = append(conds, "subcategory = "+arg(f.Subcategory))
	}
	if f.Brand != "" {
		conds = append(conds, "brand = "+arg(f.Brand))
	}
	if f.OnSale != nil {
		conds = append(conds, `"isOnSale" = `+arg(*f.OnSale))
	}
	if f.Featured != nil {
		conds = append(conds, `"isFeatured" = `+arg(*f.Featured))
	}
	if f.Combo != nil {
		conds = append(conds, `"isCombo" = `+arg(*f.Combo))
	}
	if f.Tag != "" {
		conds = append(conds, arg(f.Tag)+" = ANY(tags)")
	}
	if f.Query != "" {
		ph := arg("%" + f.Query + "%")
		conds = append(conds, "(name ILIKE "+ph+" OR description ILIKE "+ph+")")
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY "productId"`
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + arg(f.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE "productId" = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) GetByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
		WHERE "productId" = ANY($1::int[])
		ORDER BY array_position($1::int[], "productId")`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(`INSERT INTO products
		(name, description, price, stock, category, subcategory, brand, weight, flavors, image, images, "isOnSale", "salePrice", "isCombo", "isFeatured", tags, "createdAt", "updatedAt")
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING "productId"`,
		p.Name, p.Description, p.Price, p.Stock, p.Category, p.Subcategory, p.Brand, p.Weight,
		pq.Array(p.Flavors), p.Image, pq.Array(p.Images), p.IsOnSale, p.SalePrice,
		p.IsCombo, p.IsFeatured, pq.Array(p.Tags), p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	res, err := r.db.Exec(`UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, category = $5,
			subcategory = $6, brand = $7, weight = $8, flavors = $9, image = $10,
			images = $11, "isOnSale" = $12, "salePrice" = $13, "isCombo" = $14,
			"isFeatured" = $15, tags = $16, "updatedAt" = $17
		WHERE "productId" = $18`,
		p.Name, p.Description, p.Price, p.Stock, p.Category, p.Subcategory, p.Brand, p.Weight,
		pq.Array(p.Flavors), p.Image, pq.Array(p.Images), p.IsOnSale, p.SalePrice,
		p.IsCombo, p.IsFeatured, pq.Array(p.Tags), p.UpdatedAt, id)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE "productId" = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DecrementStock(id, qty int) error {
	res, err := r.db.Exec(`UPDATE products SET stock = stock - $1 WHERE "productId" = $2 AND stock >= $1`, qty, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// distinguish missing row from depleted stock
		if _, err := r.GetByID(id); err != nil {
			return err
		}
		return ErrInsufficientStock
	}
	return nil
}

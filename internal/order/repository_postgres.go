package order

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

const orderColumns = `id, "userId", "userEmail", items, subtotal, "shippingCost", "totalAmount", "shippingMethod", "paymentMethod", "paymentStatus", "orderStatus", "shippingDetails", "paymentId", "createdAt", "updatedAt"`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	var itemsJSON, detailsJSON []byte
	var paymentID sql.NullString
	err := row.Scan(&o.ID, &o.UserID, &o.UserEmail, &itemsJSON, &o.Subtotal, &o.ShippingCost,
		&o.TotalAmount, &o.ShippingMethod, &o.PaymentMethod, &o.PaymentStatus, &o.OrderStatus,
		&detailsJSON, &paymentID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(detailsJSON, &o.ShippingDetails); err != nil {
		return Order{}, err
	}
	o.PaymentID = paymentID.String
	return o, nil
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}
	detailsJSON, err := json.Marshal(ord.ShippingDetails)
	if err != nil {
		return Order{}, err
	}

	_, err = r.db.Exec(`INSERT INTO orders
		(id, "userId", "userEmail", items, subtotal, "shippingCost", "totalAmount", "shippingMethod", "paymentMethod", "paymentStatus", "orderStatus", "shippingDetails", "createdAt", "updatedAt")
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		ord.ID, ord.UserID, ord.UserEmail, itemsJSON, ord.Subtotal, ord.ShippingCost,
		ord.TotalAmount, ord.ShippingMethod, ord.PaymentMethod, ord.PaymentStatus,
		ord.OrderStatus, detailsJSON, ord.CreatedAt, ord.UpdatedAt)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id string) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders WHERE "userId" = $1 ORDER BY "createdAt" DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListAll pushes the status filter and pagination into the query so the
// back office never pulls the whole table into memory.
func (r *PostgresRepository) ListAll(f AdminFilter) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		query += ` WHERE "orderStatus" = $1`
	}
	query += ` ORDER BY "createdAt" DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]Order, error) {
	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) UpdateOrderStatus(id, status, updatedAt string) (Order, error) {
	res, err := r.db.Exec(`UPDATE orders SET "orderStatus" = $1, "updatedAt" = $2 WHERE id = $3`, status, updatedAt, id)
	if err != nil {
		return Order{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) UpdatePaymentStatus(id, status, paymentID, updatedAt string) (Order, error) {
	res, err := r.db.Exec(`UPDATE orders
		SET "paymentStatus" = $1,
			"paymentId" = COALESCE(NULLIF($2, ''), "paymentId"),
			"updatedAt" = $3
		WHERE id = $4`, status, paymentID, updatedAt, id)
	if err != nil {
		return Order{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(id)
}

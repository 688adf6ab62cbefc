package cart

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(userID int) ([]CartItem, error) {
	var raw []byte
	err := r.db.QueryRow(`SELECT items FROM carts WHERE "userId" = $1`, userID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return []CartItem{}, nil
		}
		return nil, err
	}

	items := make([]CartItem, 0)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *PostgresRepository) Save(userID int, items []CartItem, updatedAt string) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`INSERT INTO carts ("userId", items, "updatedAt")
		VALUES ($1, $2, $3)
		ON CONFLICT ("userId") DO UPDATE SET items = $2, "updatedAt" = $3`,
		userID, raw, updatedAt)
	return err
}

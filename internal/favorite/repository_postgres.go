package favorite

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(userID, productID int, addedAt string) (Favorite, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM favorites WHERE "userId" = $1 AND "productId" = $2)`,
		userID, productID).Scan(&exists)
	if err != nil {
		return Favorite{}, err
	}
	if exists {
		return Favorite{}, ErrAlreadyFavorite
	}

	f := Favorite{UserID: userID, ProductID: productID, AddedAt: addedAt}
	err = r.db.QueryRow(`INSERT INTO favorites ("userId", "productId", "addedAt")
		VALUES ($1, $2, $3)
		RETURNING id`,
		userID, productID, addedAt).Scan(&f.ID)
	if err != nil {
		return Favorite{}, err
	}
	return f, nil
}

func (r *PostgresRepository) Remove(userID, productID int) error {
	res, err := r.db.Exec(`DELETE FROM favorites WHERE "userId" = $1 AND "productId" = $2`, userID, productID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFavorite
	}
	return nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Favorite, error) {
	rows, err := r.db.Query(`SELECT id, "userId", "productId", "addedAt"
		FROM favorites
		WHERE "userId" = $1
		ORDER BY "addedAt" DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Favorite, 0)
	for rows.Next() {
		var f Favorite
		var addedAt sql.NullString
		if err := rows.Scan(&f.ID, &f.UserID, &f.ProductID, &addedAt); err != nil {
			return nil, err
		}
		f.AddedAt = addedAt.String
		out = append(out, f)
	}
	return out, rows.Err()
}

package section

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const sectionColumns = `id, name, slug, description, type, "productIds", "isActive", "sortOrder", "createdAt"`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSection(row rowScanner) (Section, error) {
	var s Section
	var description, createdAt sql.NullString
	var productIDs pq.Int64Array
	if err := row.Scan(&s.ID, &s.Name, &s.Slug, &description, &s.Type, &productIDs, &s.IsActive, &s.SortOrder, &createdAt); err != nil {
		return Section{}, err
	}
	s.Description = description.String
	s.CreatedAt = createdAt.String
	s.ProductIDs = make([]int, 0, len(productIDs))
	for _, id := range productIDs {
		s.ProductIDs = append(s.ProductIDs, int(id))
	}
	return s, nil
}

func int64Array(ids []int) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}

func (r *PostgresRepository) List(activeOnly bool) ([]Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM product_sections`
	if activeOnly {
		query += ` WHERE "isActive"`
	}
	query += ` ORDER BY "sortOrder", id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := make([]Section, 0)
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Section, error) {
	s, err := scanSection(r.db.QueryRow(`SELECT `+sectionColumns+` FROM product_sections WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Section{}, ErrNotFound
		}
		return Section{}, err
	}
	return s, nil
}

func (r *PostgresRepository) Create(s Section) (Section, error) {
	err := r.db.QueryRow(`INSERT INTO product_sections (name, slug, description, type, "productIds", "isActive", "sortOrder", "createdAt")
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id`,
		s.Name, s.Slug, s.Description, s.Type, int64Array(s.ProductIDs), s.IsActive, s.SortOrder, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		return Section{}, err
	}
	return s, nil
}

func (r *PostgresRepository) Update(id int, s Section) (Section, error) {
	res, err := r.db.Exec(`UPDATE product_sections
		SET name = $1, slug = $2, description = $3, type = $4, "productIds" = $5, "isActive" = $6, "sortOrder" = $7
		WHERE id = $8`,
		s.Name, s.Slug, s.Description, s.Type, int64Array(s.ProductIDs), s.IsActive, s.SortOrder, id)
	if err != nil {
		return Section{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Section{}, ErrNotFound
	}
	s.ID = id
	return s, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM product_sections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

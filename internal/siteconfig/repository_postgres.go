package siteconfig

import (
	"database/sql"
	"encoding/json"
)

// The whole document lives in one jsonb column keyed by a fixed id; the
// version column carries the optimistic-concurrency counter.
type PostgresRepository struct {
	db *sql.DB
}

const configKey = "main"

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get() (SiteConfig, error) {
	var raw []byte
	var version int
	var updatedAt sql.NullString
	err := r.db.QueryRow(`SELECT config, version, "updatedAt" FROM site_config WHERE id = $1`, configKey).
		Scan(&raw, &version, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return SiteConfig{}, ErrNotFound
		}
		return SiteConfig{}, err
	}

	var cfg SiteConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return SiteConfig{}, err
	}
	cfg.Version = version
	cfg.UpdatedAt = updatedAt.String
	return cfg, nil
}

func (r *PostgresRepository) Save(cfg SiteConfig, expectedVersion int) (SiteConfig, error) {
	next := cfg
	next.Version = expectedVersion + 1

	raw, err := json.Marshal(next)
	if err != nil {
		return SiteConfig{}, err
	}

	res, err := r.db.Exec(`UPDATE site_config
		SET config = $1, version = $2, "updatedAt" = $3
		WHERE id = $4 AND version = $5`,
		raw, next.Version, next.UpdatedAt, configKey, expectedVersion)
	if err != nil {
		return SiteConfig{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return SiteConfig{}, err
	}
	if n == 0 {
		// either the row is missing or the version moved underneath us
		if _, err := r.Get(); err != nil {
			return SiteConfig{}, err
		}
		return SiteConfig{}, ErrVersionConflict
	}
	return next, nil
}

func (r *PostgresRepository) Init(cfg SiteConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`INSERT INTO site_config (id, config, version, "updatedAt")
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		configKey, raw, cfg.Version, cfg.UpdatedAt)
	return err
}

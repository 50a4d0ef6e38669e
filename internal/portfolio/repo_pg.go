package portfolio

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres. One row per language, whole
// document replaced on every save.
type PGRepo struct {
	DB *sql.DB
}

// Load returns the stored override document for a language.
func (r *PGRepo) Load(ctx context.Context, lang Lang) ([]byte, bool, error) {
	const query = `SELECT doc FROM portfolio_documents WHERE lang = $1`
	var raw []byte
	err := r.DB.QueryRowContext(ctx, query, lang).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// Save upserts the override document for a language.
func (r *PGRepo) Save(ctx context.Context, lang Lang, raw []byte) error {
	const query = `
INSERT INTO portfolio_documents (lang, doc, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (lang) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query, lang, raw)
	return err
}

// Delete removes the override document for a language.
func (r *PGRepo) Delete(ctx context.Context, lang Lang) error {
	const query = `DELETE FROM portfolio_documents WHERE lang = $1`
	_, err := r.DB.ExecContext(ctx, query, lang)
	return err
}

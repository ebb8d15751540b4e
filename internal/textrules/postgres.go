package textrules

import (
	"context"
	"database/sql"
	"fmt"
)

type pgRepo struct {
	db *sql.DB
}

// NewPostgresRepo stores rules in transcript_letter_rules / transcript_word_rules.
func NewPostgresRepo(db *sql.DB) Repo {
	return &pgRepo{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS transcript_letter_rules (
	from_char  TEXT PRIMARY KEY,
	to_char    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS transcript_word_rules (
	from_word  TEXT PRIMARY KEY,
	to_word    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// Migrate creates the rule tables when they are missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("textrules migrate: %w", err)
	}
	return nil
}

func (r *pgRepo) list(ctx context.Context, query string) ([][2]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][2]string
	for rows.Next() {
		var pair [2]string
		if err := rows.Scan(&pair[0], &pair[1]); err != nil {
			return nil, err
		}
		out = append(out, pair)
	}
	return out, rows.Err()
}

// ===== LETTERS =====

func (r *pgRepo) ListLetterRules(ctx context.Context) ([]LetterRule, error) {
	pairs, err := r.list(ctx, `SELECT from_char, to_char FROM transcript_letter_rules ORDER BY created_at, from_char`)
	if err != nil {
		return nil, err
	}
	out := make([]LetterRule, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, LetterRule{From: p[0], To: p[1]})
	}
	return out, nil
}

func (r *pgRepo) AddLetterRule(ctx context.Context, from, to string) error {
	if err := validateLetter(from, to); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transcript_letter_rules (from_char, to_char)
		 VALUES ($1, $2)
		 ON CONFLICT (from_char) DO UPDATE SET to_char = EXCLUDED.to_char`,
		from, to,
	)
	return err
}

func (r *pgRepo) DeleteLetterRule(ctx context.Context, from string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transcript_letter_rules WHERE from_char = $1`, from)
	return err
}

// ===== WORDS =====

func (r *pgRepo) ListWordRules(ctx context.Context) ([]WordRule, error) {
	pairs, err := r.list(ctx, `SELECT from_word, to_word FROM transcript_word_rules ORDER BY created_at, from_word`)
	if err != nil {
		return nil, err
	}
	out := make([]WordRule, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, WordRule{From: p[0], To: p[1]})
	}
	return out, nil
}

func (r *pgRepo) AddWordRule(ctx context.Context, from, to string) error {
	from, err := validateWord(from)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO transcript_word_rules (from_word, to_word)
		 VALUES ($1, $2)
		 ON CONFLICT (from_word) DO UPDATE SET to_word = EXCLUDED.to_word`,
		from, to,
	)
	return err
}

func (r *pgRepo) DeleteWordRule(ctx context.Context, from string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transcript_word_rules WHERE from_word = $1`, normalizeWord(from))
	return err
}

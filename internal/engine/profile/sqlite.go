package profile

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/crimson-sun/polyglot/internal/model"
)

const schema = `CREATE TABLE IF NOT EXISTS profiles (
	lang    TEXT NOT NULL,
	trigram TEXT NOT NULL,
	freq    REAL NOT NULL,
	PRIMARY KEY (lang, trigram)
);`

func openDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("profile: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("profile: connect database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("profile: init schema: %w", err)
	}
	return db, nil
}

// SaveSQLite writes profiles into the SQLite database at path, replacing
// any rows already stored for the same languages.
func SaveSQLite(ctx context.Context, path string, profiles map[model.LanguageCode]model.Profile) error {
	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("profile: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO profiles (lang, trigram, freq) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("profile: prepare: %w", err)
	}
	defer stmt.Close()

	for code, p := range profiles {
		if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE lang = ?`, string(code)); err != nil {
			return fmt.Errorf("profile: clear %s: %w", code, err)
		}
		for gram, freq := range p {
			if _, err := stmt.ExecContext(ctx, string(code), gram, freq); err != nil {
				return fmt.Errorf("profile: insert %s: %w", code, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("profile: commit: %w", err)
	}
	return nil
}

// LoadSQLite loads every language stored in the SQLite database at path.
// A row whose frequency is not numeric rejects that language only.
func LoadSQLite(ctx context.Context, path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT lang, trigram, freq FROM profiles ORDER BY lang`)
	if err != nil {
		return nil, fmt.Errorf("profile: query: %w", err)
	}
	defer rows.Close()

	raw := make(map[model.LanguageCode]map[string]float64)
	bad := make(map[model.LanguageCode]error)
	for rows.Next() {
		var (
			lang, gram string
			freq       any
		)
		if err := rows.Scan(&lang, &gram, &freq); err != nil {
			return nil, fmt.Errorf("profile: scan: %w", err)
		}
		code := model.LanguageCode(lang)
		if _, ok := bad[code]; ok {
			continue
		}
		var f float64
		switch v := freq.(type) {
		case float64:
			f = v
		case int64:
			f = float64(v)
		default:
			bad[code] = &MalformedProfileError{Code: code, Key: gram, Reason: "non-numeric frequency"}
			delete(raw, code)
			continue
		}
		if raw[code] == nil {
			raw[code] = make(map[string]float64)
		}
		raw[code][gram] = f
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("profile: rows: %w", err)
	}

	rejected := make([]error, 0, len(bad))
	for _, err := range bad {
		rejected = append(rejected, err)
	}
	return newStore(raw, rejected)
}

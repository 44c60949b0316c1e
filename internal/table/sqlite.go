package table

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type sqliteFormat struct{}

func (sqliteFormat) CanRead(path string) bool { return hasExt(path, ".db", ".sqlite", ".sqlite3") }

func (sqliteFormat) Read(path string, opt ReadOptions) (*Table, error) {
	return ReadSQLite(path, opt.SQLiteTable)
}

// ReadSQLite loads every row of a table from a SQLite database file.
// An empty name selects the first user table in alphabetical order.
func ReadSQLite(path, name string) (*Table, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()
	if name == "" {
		name, err = firstUserTable(db)
		if err != nil {
			return nil, err
		}
	}
	rows, err := db.Query("SELECT * FROM " + quoteIdent(name))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", name, err)
	}
	t := New(cols)
	t.Name = fmt.Sprintf("%s:%s", filepath.Base(path), name)
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", t.Len()+1, err)
		}
		rec := make([]string, len(cols))
		for j, v := range vals {
			rec[j] = sqlText(v)
		}
		t.AppendRow(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// WriteSQLite replaces the named table with the table's contents in one transaction.
// Every column is stored as TEXT; missing cells become NULL.
func WriteSQLite(path, name string, t *Table) error {
	if name == "" {
		return errors.New("sqlite table name is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	cols := t.Columns()
	defs := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = quoteIdent(c) + " TEXT"
		marks[i] = "?"
	}
	if _, err := tx.Exec("DROP TABLE IF EXISTS " + quoteIdent(name)); err != nil {
		return fmt.Errorf("drop %s: %w", name, err)
	}
	if _, err := tx.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(name), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	args := make([]any, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j, v := range t.Row(i) {
			if IsMissing(v) {
				args[j] = nil
			} else {
				args[j] = v
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

func firstUserTable(db *sql.DB) (string, error) {
	const q = `SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name LIMIT 1`
	var name string
	if err := db.QueryRow(q).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("no user tables found")
		}
		return "", err
	}
	return name, nil
}

func sqlText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

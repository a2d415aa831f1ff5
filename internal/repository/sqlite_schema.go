package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/djouu94/workout-tracker-v2/internal/db"
)

// ColumnInfo describes one table column as reported by SQLite.
type ColumnInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	NotNull    bool   `json:"not_null"`
	PrimaryKey bool   `json:"primary_key"`
}

// TableInfo is one schema table with its columns and current row count.
type TableInfo struct {
	Name    string       `json:"name"`
	Rows    int          `json:"rows"`
	Columns []ColumnInfo `json:"columns"`
}

// TableDump holds raw rows of one table, rendered as text.
type TableDump struct {
	Table   string     `json:"table"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// SQLiteSchemaRepo reads schema metadata and raw rows. It has no write path.
type SQLiteSchemaRepo struct {
	db db.DBTX
}

func NewSQLiteSchemaRepo(db db.DBTX) *SQLiteSchemaRepo {
	return &SQLiteSchemaRepo{db: db}
}

func (r *SQLiteSchemaRepo) Describe(ctx context.Context) ([]TableInfo, error) {
	tables := make([]TableInfo, 0, len(db.Tables))
	for _, name := range db.Tables {
		info := TableInfo{Name: name}
		rows, err := r.db.QueryContext(ctx,
			`SELECT name, type, "notnull", pk FROM pragma_table_info(?) ORDER BY cid`, name)
		if err != nil {
			return nil, fmt.Errorf("describing %s: %w", name, err)
		}
		for rows.Next() {
			var c ColumnInfo
			var notNull, pk int
			if err := rows.Scan(&c.Name, &c.Type, &notNull, &pk); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning %s column: %w", name, err)
			}
			c.NotNull = notNull != 0
			c.PrimaryKey = pk != 0
			info.Columns = append(info.Columns, c)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("iterating %s columns: %w", name, err)
		}

		if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+name).Scan(&info.Rows); err != nil {
			return nil, fmt.Errorf("counting %s: %w", name, err)
		}
		tables = append(tables, info)
	}
	return tables, nil
}

// Dump returns up to limit rows of table, most recently inserted first.
// Only schema tables can be dumped.
func (r *SQLiteSchemaRepo) Dump(ctx context.Context, table string, limit int) (*TableDump, error) {
	if !slices.Contains(db.Tables, table) {
		return nil, fmt.Errorf("table %q: %w", table, ErrNotFound)
	}
	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+table+" ORDER BY rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("dumping %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading %s columns: %w", table, err)
	}
	dump := &TableDump{Table: table, Columns: cols}
	for rows.Next() {
		raw := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		dump.Rows = append(dump.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", table, err)
	}
	return dump, nil
}

package postgres

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"reglookup/domain/lookup"
	"reglookup/internal/errors"
	"reglookup/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// TableConfig names the relation that holds the registration table
type TableConfig struct {
	Table   string // "table" or "schema.table"
	OrderBy string // optional column; database order when empty
	Timeout time.Duration
}

// tableSource reads a whole relation as a raw table: column names form the
// header, every value is rendered as text and NULL becomes "".
type tableSource struct {
	db     *sqlx.DB
	config TableConfig
	query  string
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Connect opens and pings a PostgreSQL connection
func Connect(url string) (*sqlx.DB, error) {
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	return db, nil
}

// NewTableSource creates a table source over db
func NewTableSource(db *sqlx.DB, config TableConfig) (ports.TableSource, error) {
	query, err := buildSelectQuery(config)
	if err != nil {
		return nil, err
	}
	return &tableSource{db: db, config: config, query: query}, nil
}

// Describe names the relation being served
func (s *tableSource) Describe() string {
	return "postgres:" + s.config.Table
}

// Fetch runs the select and collects every row
func (s *tableSource) Fetch(ctx context.Context) (lookup.Table, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := s.db.QueryxContext(ctx, s.query)
	if err != nil {
		return nil, errors.DatabaseError(fmt.Sprintf("failed to query %s", s.config.Table), err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.DatabaseError(fmt.Sprintf("failed to read columns of %s", s.config.Table), err)
	}

	table := lookup.Table{columns}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, errors.DatabaseError(fmt.Sprintf("failed to scan row %d of %s", len(table), s.config.Table), err)
		}
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = cellString(v)
		}
		table = append(table, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError(fmt.Sprintf("failed to iterate %s", s.config.Table), err)
	}

	log.Printf("[PostgresSource] %s read in %.2fms (%d rows)",
		s.config.Table, float64(time.Since(start).Nanoseconds())/1e6, len(table))
	return table, nil
}

func buildSelectQuery(config TableConfig) (string, error) {
	parts := strings.Split(config.Table, ".")
	if len(parts) > 2 {
		return "", errors.ConfigInvalid(fmt.Sprintf("invalid table name %q", config.Table))
	}
	quoted := make([]string, len(parts))
	for i, part := range parts {
		if !identPattern.MatchString(part) {
			return "", errors.ConfigInvalid(fmt.Sprintf("invalid table name %q", config.Table))
		}
		quoted[i] = pq.QuoteIdentifier(part)
	}

	query := "SELECT * FROM " + strings.Join(quoted, ".")
	if config.OrderBy != "" {
		if !identPattern.MatchString(config.OrderBy) {
			return "", errors.ConfigInvalid(fmt.Sprintf("invalid order column %q", config.OrderBy))
		}
		query += " ORDER BY " + pq.QuoteIdentifier(config.OrderBy)
	}
	return query, nil
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(c)
	case string:
		return c
	case time.Time:
		return c.Format(time.RFC3339)
	default:
		return fmt.Sprint(c)
	}
}

package query

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches nothing or the store
	// fails to execute a statement. Handlers map it to 404: the wire
	// contract does not distinguish the two cases.
	ErrNotFound = errors.New("no matching rows")

	// ErrBadStatement flags a structural misconfiguration: a multi-row
	// statement without its paired count statement. Handlers map it to 500.
	ErrBadStatement = errors.New("select statement without count statement")
)

// ResultSet is the uniform container for list responses: the total matching
// the count statement plus the retained window of records. Columns preserves
// the select column order for the tabular export formats.
type ResultSet struct {
	Count   int              `json:"count"`
	Records []map[string]any `json:"records"`
	Columns []string         `json:"-"`
}

// Executor runs statement pairs against the store. One instance is shared by
// all handlers; gorm owns the connection pool underneath.
type Executor struct {
	db *gorm.DB
}

func NewExecutor(db *gorm.DB) *Executor {
	return &Executor{db: db}
}

// Rows executes the pair: the count statement populates the total, then the
// select is streamed with rows below start discarded and iteration stopping
// once start+count rows have passed (count 0 reads to the end). The window
// is applied here rather than as OFFSET/LIMIT so the union-branch statements
// keep their summed counts consistent with the streamed rows.
func (e *Executor) Rows(stmt Statement, start, count int) (*ResultSet, error) {
	if stmt.CountSQL == "" {
		return nil, ErrBadStatement
	}
	total, err := e.scalar(stmt.CountSQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("count statement: %v: %w", err, ErrNotFound)
	}

	rows, err := e.db.Raw(stmt.SelectSQL, stmt.Args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("select statement: %v: %w", err, ErrNotFound)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %v: %w", err, ErrNotFound)
	}

	result := &ResultSet{
		Count:   total,
		Records: []map[string]any{},
		Columns: columns,
	}
	for i := 0; count == 0 || i < start+count; i++ {
		if !rows.Next() {
			break
		}
		if i < start {
			continue
		}
		record, err := scanRecord(rows, columns)
		if err != nil {
			return nil, fmt.Errorf("scan: %v: %w", err, ErrNotFound)
		}
		result.Records = append(result.Records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %v: %w", err, ErrNotFound)
	}
	return result, nil
}

// Row executes a single-row statement and returns the first row, or
// ErrNotFound when nothing matches.
func (e *Executor) Row(stmt Statement) (map[string]any, error) {
	rows, err := e.db.Raw(stmt.SelectSQL, stmt.Args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("select statement: %v: %w", err, ErrNotFound)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %v: %w", err, ErrNotFound)
	}
	if !rows.Next() {
		return nil, ErrNotFound
	}
	return scanRecord(rows, columns)
}

// Exec runs a mutating statement.
func (e *Executor) Exec(sqlText string, args ...any) error {
	return e.db.Exec(sqlText, args...).Error
}

func (e *Executor) scalar(sqlText string, args ...any) (int, error) {
	var value any
	row := e.db.Raw(sqlText, args...).Row()
	if err := row.Scan(&value); err != nil {
		return 0, err
	}
	return Int(value), nil
}

// scanRecord materializes the current row into a column-keyed map. Byte
// slices are copied into strings: drivers reuse the backing array between
// rows, and the JSON encoder would base64 them otherwise.
func scanRecord(rows *sql.Rows, columns []string) (map[string]any, error) {
	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}
	if err := rows.Scan(pointers...); err != nil {
		return nil, err
	}
	record := make(map[string]any, len(columns))
	for i, column := range columns {
		value := values[i]
		if b, ok := value.([]byte); ok {
			value = string(b)
		}
		record[column] = value
	}
	return record, nil
}

// Int coerces the scalar shapes the drivers hand back for COUNT columns.
func Int(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case []byte:
		n, _ := strconv.Atoi(string(v))
		return n
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

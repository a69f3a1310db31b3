package linkpager

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// SQLSource pages a squirrel select over an sqlx database. Rows are scanned
// into T with sqlx struct mapping.
type SQLSource[T any] struct {
	db          *sqlx.DB
	base        sq.SelectBuilder
	key         string
	sort        Orderings
	placeholder sq.PlaceholderFormat
}

// NewSQLSource takes the base select with columns, table and filters. Its
// placeholder format is replaced with the one set by WithPlaceholder.
func NewSQLSource[T any](db *sqlx.DB, base sq.SelectBuilder) *SQLSource[T] {
	return &SQLSource[T]{
		db:          db,
		base:        base,
		key:         DefaultKeyColumn,
		placeholder: sq.Question,
	}
}

func (s *SQLSource[T]) WithKey(column string) *SQLSource[T] {
	s.key = column
	return s
}

func (s *SQLSource[T]) WithSort(orderBy ...OrderBy) *SQLSource[T] {
	s.sort = orderBy
	return s
}

// WithPlaceholder sets the bind style, e.g. sq.Dollar for postgres.
func (s *SQLSource[T]) WithPlaceholder(f sq.PlaceholderFormat) *SQLSource[T] {
	s.placeholder = f
	return s
}

func (s *SQLSource[T]) Count(ctx context.Context) (int64, error) {
	if err := s.validate(); err != nil {
		return 0, err
	}

	query, args, err := sq.Select("COUNT(*)").
		FromSelect(s.base.PlaceholderFormat(sq.Question), "paged").
		PlaceholderFormat(s.placeholder).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error constructing sql: %w", err)
	}

	var total int64
	if err = s.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("cannot count rows: %w", err)
	}

	return total, nil
}

func (s *SQLSource[T]) FetchPage(ctx context.Context, offset int, limit int) ([]T, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	query, args, err := s.window(s.ordered(), offset, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error constructing sql: %w", err)
	}

	items := []T{}
	if err = s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("cannot fetch page rows: %w", err)
	}

	return items, nil
}

func (s *SQLSource[T]) FetchKeys(ctx context.Context, offset int, limit int) ([]any, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	query, args, err := s.window(s.ordered().RemoveColumns().Columns(s.key), offset, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error constructing sql: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch page keys: %w", err)
	}
	defer rows.Close()

	keys := make([]any, 0, limit)
	for rows.Next() {
		var key any
		if err = rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("cannot scan page key: %w", err)
		}
		keys = append(keys, key)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot fetch page keys: %w", err)
	}

	return keys, nil
}

func (s *SQLSource[T]) FetchByKeys(ctx context.Context, keys []any) ([]T, error) {
	if len(keys) == 0 {
		return []T{}, nil
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	query, args, err := s.ordered().Where(sq.Eq{s.key: keys}).PlaceholderFormat(s.placeholder).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error constructing sql: %w", err)
	}

	items := []T{}
	if err = s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("cannot fetch rows by keys: %w", err)
	}

	return items, nil
}

func (s *SQLSource[T]) ordered() sq.SelectBuilder {
	if len(s.sort) == 0 {
		return s.base
	}

	return s.base.OrderBy(s.sort.ToSQLSlice()...)
}

func (s *SQLSource[T]) window(b sq.SelectBuilder, offset int, limit int) sq.SelectBuilder {
	b = b.Limit(uint64(max(limit, 0)))
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}

	return b.PlaceholderFormat(s.placeholder)
}

func (s *SQLSource[T]) validate() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sql source has no db")
	}

	if err := validateColumn(s.key); err != nil {
		return fmt.Errorf("invalid key column: %w", err)
	}

	if err := s.sort.validate(); err != nil {
		return fmt.Errorf("invalid sort: %w", err)
	}

	return nil
}

var _ KeyedSource[struct{}] = (*SQLSource[struct{}])(nil)

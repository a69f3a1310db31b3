package linkpager

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const DefaultKeyColumn = "id"

// GORMSource pages a gorm query. The query passed in carries filters, table and
// selection; the source adds ordering, offset and limit.
type GORMSource[T any] struct {
	db   *gorm.DB
	key  string
	sort Orderings
}

func NewGORMSource[T any](db *gorm.DB) *GORMSource[T] {
	return &GORMSource[T]{db: db, key: DefaultKeyColumn}
}

// WithKey sets the primary key column used by the key prefetch strategy.
func (s *GORMSource[T]) WithKey(column string) *GORMSource[T] {
	if s == nil {
		s = new(GORMSource[T])
	}

	s.key = column

	return s
}

// WithSort sets the dataset ordering. Both fetch strategies apply it, so it
// should end with a unique column to keep pages stable.
func (s *GORMSource[T]) WithSort(orderBy ...OrderBy) *GORMSource[T] {
	if s == nil {
		s = new(GORMSource[T])
	}

	s.sort = orderBy

	return s
}

func (s *GORMSource[T]) Count(ctx context.Context) (int64, error) {
	query, err := s.query(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	if err = query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("cannot count rows: %w", err)
	}

	return total, nil
}

func (s *GORMSource[T]) FetchPage(ctx context.Context, offset int, limit int) ([]T, error) {
	query, err := s.query(ctx)
	if err != nil {
		return nil, err
	}

	var items []T
	if err = s.sort.Apply(query).Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("cannot fetch page rows: %w", err)
	}

	return items, nil
}

func (s *GORMSource[T]) FetchKeys(ctx context.Context, offset int, limit int) ([]any, error) {
	query, err := s.query(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.sort.Apply(query).Select(s.key).Offset(offset).Limit(limit).Rows()
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

func (s *GORMSource[T]) FetchByKeys(ctx context.Context, keys []any) ([]T, error) {
	if len(keys) == 0 {
		return []T{}, nil
	}

	query, err := s.query(ctx)
	if err != nil {
		return nil, err
	}

	var items []T
	err = s.sort.Apply(query).Where(fmt.Sprintf("%s IN ?", s.key), keys).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("cannot fetch rows by keys: %w", err)
	}

	return items, nil
}

// query returns a copy of the base query bound to ctx. Every chained call on it
// clones the statement, so the base query is never mutated.
func (s *GORMSource[T]) query(ctx context.Context) (*gorm.DB, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("gorm source has no db")
	}

	if err := validateColumn(s.key); err != nil {
		return nil, fmt.Errorf("invalid key column: %w", err)
	}

	if err := s.sort.validate(); err != nil {
		return nil, fmt.Errorf("invalid sort: %w", err)
	}

	query := s.db.Session(&gorm.Session{}).WithContext(ctx)
	if query.Statement.Model == nil && query.Statement.Table == "" {
		query = query.Model(new(T))
	}

	return query, nil
}

var _ KeyedSource[struct{}] = (*GORMSource[struct{}])(nil)

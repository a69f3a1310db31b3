package linkpager

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type tUser struct {
	ID   uint
	Name string
}

var sqlMockFnList = []func() (string, *gorm.DB, sqlmock.Sqlmock, error){
	newGORMMySQLMock,
	newGORMPostgresMock,
}

func Test_GORMSource_Count(t *testing.T) {
	for _, sqlMockFn := range sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()
		t.Run(dialect, func(t *testing.T) {
			require.NoError(t, err)

			dbMock.ExpectQuery("^SELECT count\\(\\*\\) FROM [`'\"]users[`'\"] WHERE name = ['\"]lol['\"]$").
				WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(42))

			src := NewGORMSource[tUser](db.Select("*").Table("users").Where("name = 'lol'")).
				WithSort(OrderBy{Column: "id", Direction: DirectionASC})

			total, err := src.Count(context.Background())
			require.NoError(t, err)
			require.Equal(t, int64(42), total)

			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_GORMSource_FetchPage(t *testing.T) {
	tests := []struct {
		name          string
		offset        int
		limit         int
		sort          []OrderBy
		expectedQuery string
	}{
		{
			name:          "first page",
			offset:        0,
			limit:         11,
			sort:          []OrderBy{{Column: "id", Direction: DirectionASC}},
			expectedQuery: "^SELECT \\* FROM [`'\"]users[`'\"] WHERE name = ['\"]lol['\"] ORDER BY id ASC LIMIT 11$",
		},
		{
			name:          "with offset",
			offset:        20,
			limit:         11,
			sort:          []OrderBy{{Column: "name", Direction: DirectionDESC}, {Column: "id", Direction: DirectionASC}},
			expectedQuery: "^SELECT \\* FROM [`'\"]users[`'\"] WHERE name = ['\"]lol['\"] ORDER BY name DESC, id ASC LIMIT 11 OFFSET 20$",
		},
		{
			name:          "unordered",
			offset:        5,
			limit:         3,
			sort:          nil,
			expectedQuery: "^SELECT \\* FROM [`'\"]users[`'\"] WHERE name = ['\"]lol['\"] LIMIT 3 OFFSET 5$",
		},
	}

	for _, sqlMockFn := range sqlMockFnList {
		for _, tt := range tests {
			dialect, db, dbMock, err := sqlMockFn()
			t.Run(fmt.Sprintf("%s %s", dialect, tt.name), func(t *testing.T) {
				require.NoError(t, err)

				dbMock.ExpectQuery(tt.expectedQuery).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "John Doe").AddRow(2, "Jane Doe"))

				src := NewGORMSource[tUser](db.Select("*").Table("users").Where("name = 'lol'")).WithSort(tt.sort...)

				items, err := src.FetchPage(context.Background(), tt.offset, tt.limit)
				require.NoError(t, err)
				require.Equal(t, []tUser{{1, "John Doe"}, {2, "Jane Doe"}}, items)

				assert.NoError(t, dbMock.ExpectationsWereMet())
			})
		}
	}
}

func Test_GORMSource_KeyPrefetch(t *testing.T) {
	for _, sqlMockFn := range sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()
		t.Run(dialect, func(t *testing.T) {
			require.NoError(t, err)

			dbMock.ExpectQuery("^SELECT [`'\"]?id[`'\"]? FROM [`'\"]users[`'\"] WHERE name = ['\"]lol['\"] ORDER BY id ASC LIMIT 3 OFFSET 4$").
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5).AddRow(6).AddRow(7))
			dbMock.ExpectQuery("^SELECT \\* FROM [`'\"]users[`'\"] WHERE name = ['\"]lol['\"] AND id IN \\((\\?|\\$1),(\\?|\\$2),(\\?|\\$3)\\) ORDER BY id ASC$").
				WithArgs([]driver.Value{int64(5), int64(6), int64(7)}...).
				WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(5, "E").AddRow(6, "F").AddRow(7, "G"))

			src := NewGORMSource[tUser](db.Select("*").Table("users").Where("name = 'lol'")).
				WithSort(OrderBy{Column: "id", Direction: DirectionASC})
			p := MustPager(Options{LargePageOptimize: OptimizeOn})

			pg, err := SimplePaginate[tUser](context.Background(), p, src, 2, 3)
			require.NoError(t, err)
			require.Equal(t, []tUser{{5, "E"}, {6, "F"}}, pg.Items)
			require.True(t, pg.HasMorePages())

			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_GORMSource_Paginate(t *testing.T) {
	for _, sqlMockFn := range sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()
		t.Run(dialect, func(t *testing.T) {
			require.NoError(t, err)

			dbMock.ExpectQuery("^SELECT count\\(\\*\\) FROM [`'\"]users[`'\"]").
				WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(5))
			dbMock.ExpectQuery("^SELECT \\* FROM [`'\"]users[`'\"] ORDER BY id ASC LIMIT 2 OFFSET 4$").
				WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(5, "E"))

			src := NewGORMSource[tUser](db.Select("*").Table("users")).
				WithSort(OrderBy{Column: "id", Direction: DirectionASC})

			pg, err := Paginate[tUser](context.Background(), MustPager(Options{}), src, 2, 10)
			require.NoError(t, err)
			require.Equal(t, 3, pg.CurrentPage())
			require.Equal(t, 3, pg.LastPage())
			require.Equal(t, []tUser{{5, "E"}}, pg.Items)

			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_GORMSource_Errors(t *testing.T) {
	errBroken := errors.New("broken pipe")

	for _, sqlMockFn := range sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()
		t.Run(dialect, func(t *testing.T) {
			require.NoError(t, err)

			dbMock.ExpectQuery("^SELECT").WillReturnError(errBroken)

			src := NewGORMSource[tUser](db.Table("users"))
			_, err := src.FetchPage(context.Background(), 0, 10)
			require.ErrorIs(t, err, errBroken)

			_, err = src.WithKey("id; DROP TABLE users").FetchKeys(context.Background(), 0, 10)
			require.Error(t, err)

			_, err = NewGORMSource[tUser](db.Table("users")).
				WithSort(OrderBy{Column: "id", Direction: "sideways"}).
				Count(context.Background())
			require.Error(t, err)

			var nilSrc *GORMSource[tUser]
			_, err = nilSrc.Count(context.Background())
			require.Error(t, err)

			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

package linkpager

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

type tRequest struct {
	url    string
	query  url.Values
	params map[string]string
}

func newRequest(rawURL string, params map[string]string) tRequest {
	u, err := url.Parse(rawURL)
	if err != nil {
		panic(err)
	}

	query := u.Query()
	u.RawQuery = ""

	return tRequest{url: u.String(), query: query, params: params}
}

func (r tRequest) QueryParams() url.Values { return r.query }

func (r tRequest) RouteParam(name string) (string, bool) {
	v, ok := r.params[name]
	return v, ok
}

func (r tRequest) URL() string { return r.url }

// tGenerator maps "a.b" to "/a/b?<params>" and records every call.
type tGenerator struct {
	calls []tGeneratorCall
	err   error
}

type tGeneratorCall struct {
	route    RouteBinding
	params   url.Values
	absolute bool
}

func (g *tGenerator) Resolve(route RouteBinding, params url.Values, absolute bool) (string, error) {
	g.calls = append(g.calls, tGeneratorCall{route: route, params: params, absolute: absolute})
	if g.err != nil {
		return "", g.err
	}

	prefix := "/"
	if absolute {
		prefix = "https://example.com/"
	}

	return fmt.Sprintf("%s%s?%s", prefix, strings.ReplaceAll(route.Name, ".", "/"), params.Encode()), nil
}

func intPtr(i int) *int {
	return &i
}

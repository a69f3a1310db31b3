package linkpager

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Page_Links_Slider(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	p := MustPager(Options{}).WithBaseURL("/users").WithPagesProximity(1)
	pg, err := Make(p, []int{41, 42}, 100, 10, 5)
	require.NoError(t, err)

	html, err := pg.Links(r, "", nil)
	require.NoError(t, err)

	out := string(html)
	require.Contains(t, out, `<a href="/users?page=4" rel="prev">&laquo;</a>`)
	require.Contains(t, out, `<li><a href="/users?page=1">1</a></li><li class="disabled"><span>&hellip;</span></li>`)
	require.Contains(t, out, `<li><a href="/users?page=4">4</a></li><li class="active"><span>5</span></li><li><a href="/users?page=6">6</a></li>`)
	require.Contains(t, out, `<li class="disabled"><span>&hellip;</span></li><li><a href="/users?page=10">10</a></li>`)
	require.Contains(t, out, `<a href="/users?page=6" rel="next">&raquo;</a>`)
	require.NotContains(t, out, `page=3"`)
}

func Test_Page_Links_Edges(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	p := MustPager(Options{}).WithBaseURL("/users")

	single, err := Make(p, []int{1}, 3, 10, 1)
	require.NoError(t, err)
	html, err := single.Links(r, "", nil)
	require.NoError(t, err)
	require.Empty(t, html)

	simple, err := MakeSimple(p, []int{1, 2, 3}, 2, 1)
	require.NoError(t, err)
	html, err = simple.Links(r, "", nil)
	require.NoError(t, err)
	require.Contains(t, string(html), `<li class="disabled"><span>&laquo;</span></li>`)
	require.Contains(t, string(html), `<a href="/users?page=2" rel="next">&raquo;</a>`)
	require.NotContains(t, string(html), "&hellip;")
}

func Test_Page_Links_CustomView(t *testing.T) {
	r, err := NewTemplateRenderer(`{{define "compact"}}{{.Paginator.CurrentPage}}/{{.Paginator.LastPage}} {{.Environment}}{{end}}`)
	require.NoError(t, err)

	pg, err := Make(MustPager(Options{}).WithView("compact"), []int{1}, 100, 10, 5)
	require.NoError(t, err)

	html, err := pg.Links(r, "", "users")
	require.NoError(t, err)
	require.Equal(t, "5/10 users", string(html))

	_, err = pg.Links(r, "missing", "users")
	require.Error(t, err)

	_, err = NewTemplateRenderer(`{{define "broken"}}{{.Paginator`)
	require.Error(t, err)
}

func Test_Page_ViewName(t *testing.T) {
	pg, err := Make(MustPager(Options{}), []int{1}, 1, 10, 1)
	require.NoError(t, err)

	require.Equal(t, DefaultView, pg.ViewName(""))
	require.Equal(t, "simple", pg.ViewName("simple"))
}

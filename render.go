package linkpager

import (
	"bytes"
	"fmt"
	"html/template"
)

// ViewData is handed to a Renderer. Paginator is the *Page[T] being rendered;
// Environment is whatever the caller wants to expose next to it.
type ViewData struct {
	Paginator   any
	Environment any
}

// Renderer turns a page into link markup.
type Renderer interface {
	Render(view string, data ViewData) (string, error)
}

// ViewName returns view, or the configured view when view is empty.
func (p *Page[T]) ViewName(view string) string {
	if view != "" {
		return view
	}

	if p.links.options.View != "" {
		return p.links.options.View
	}

	return DefaultView
}

// Links renders the page links with r.
func (p *Page[T]) Links(r Renderer, view string, environment any) (template.HTML, error) {
	out, err := r.Render(p.ViewName(view), ViewData{Paginator: p, Environment: environment})
	if err != nil {
		return "", fmt.Errorf("cannot render pagination links: %w", err)
	}

	return template.HTML(out), nil
}

const sliderTemplate = `{{define "slider"}}{{with .Paginator}}{{if .HasPages}}<ul class="pagination">
{{- if .OnFirstPage}}<li class="disabled"><span>&laquo;</span></li>{{else}}<li><a href="{{.PreviousPageURL}}" rel="prev">&laquo;</a></li>{{end}}
{{- if .CanShowFirstPage}}<li><a href="{{.URL 1}}">1</a></li><li class="disabled"><span>&hellip;</span></li>{{end}}
{{- $p := .}}{{range .PagesRange}}{{if eq . $p.CurrentPage}}<li class="active"><span>{{.}}</span></li>{{else}}<li><a href="{{$p.URL .}}">{{.}}</a></li>{{end}}{{end}}
{{- if .CanShowLastPage}}<li class="disabled"><span>&hellip;</span></li><li><a href="{{.URL .LastPage}}">{{.LastPage}}</a></li>{{end}}
{{- if .HasMorePages}}<li><a href="{{.NextPageURL}}" rel="next">&raquo;</a></li>{{else}}<li class="disabled"><span>&raquo;</span></li>{{end}}
</ul>{{end}}{{end}}{{end}}`

// TemplateRenderer renders named html/template definitions. The "slider" view
// is always available.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses extra view definitions on top of the built-in
// slider. Each definition is addressed by its {{define}} name.
func NewTemplateRenderer(views ...string) (*TemplateRenderer, error) {
	tmpl, err := template.New("linkpager").Parse(sliderTemplate)
	if err != nil {
		return nil, fmt.Errorf("cannot parse slider view: %w", err)
	}

	for _, view := range views {
		if tmpl, err = tmpl.Parse(view); err != nil {
			return nil, fmt.Errorf("cannot parse view: %w", err)
		}
	}

	return &TemplateRenderer{tmpl: tmpl}, nil
}

func (r *TemplateRenderer) Render(view string, data ViewData) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, view, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

var _ Renderer = (*TemplateRenderer)(nil)

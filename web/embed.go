// Package web holds the embedded page templates for the single page entry
// point. Partials are stitched into index.html through the include template
// function so each concern (styles, client script) stays in its own file.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pages = func() *template.Template {
	t := template.New("pages")
	t.Funcs(template.FuncMap{
		"include": func(name string) (template.HTML, error) {
			var buf bytes.Buffer
			if err := t.ExecuteTemplate(&buf, name, nil); err != nil {
				return "", err
			}
			return template.HTML(buf.String()), nil
		},
	})
	return template.Must(t.ParseFS(templateFiles, "templates/*.html"))
}()

// RenderIndex writes the assembled index page to w.
func RenderIndex(w io.Writer, data any) error {
	return pages.ExecuteTemplate(w, "index.html", data)
}

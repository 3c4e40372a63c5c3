package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

const statusTemplate = "status.html"

var loadTemplates = sync.OnceValues(func() (*template.Template, error) {
	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	return template.New("").ParseFS(subFS, "*.html")
})

// Render writes the status document for page to w. Nothing is written if
// template execution fails.
func Render(w io.Writer, page Page) error {
	tmpl, err := loadTemplates()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, statusTemplate, page); err != nil {
		return fmt.Errorf("render status page: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write status page: %w", err)
	}
	return nil
}

package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"blogicum/models"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var files embed.FS

const (
	layoutFile   = "templates/base.html"
	includesGlob = "templates/includes/*.html"
)

var functions = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02.01.2006 15:04")
	},
	"inputDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format(models.PubDateLayout)
	},
	"truncate": func(s string, n int) string {
		if utf8.RuneCountInString(s) <= n {
			return s
		}
		return string([]rune(s)[:n]) + "…"
	},
	"lines": func(s string) []string {
		return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	},
	"add": func(a, b int) int { return a + b },
	"profileURL": func(username string) string {
		return "/profile/" + url.PathEscape(username) + "/"
	},
}

// Renderer serves pages made of the shared layout, the includes and one page file.
type Renderer struct {
	templates map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	err := fs.WalkDir(files, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == layoutFile || strings.HasPrefix(path, "templates/includes/") {
			return nil
		}

		tmpl, err := template.New("").Funcs(functions).ParseFS(files, layoutFile, includesGlob, path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		r.templates[strings.TrimPrefix(path, "templates/")] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Names lists the page names the renderer knows.
func (r *Renderer) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	return names
}

func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.templates[name]
	if !ok {
		slog.Error("unknown template", "name", name)
		tmpl = template.Must(template.New("base").Parse(`template not found`))
	}
	return render.HTML{Template: tmpl, Name: "base", Data: data}
}

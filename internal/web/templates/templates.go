package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/quartzlab/tipboard/internal/database/types"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"go.uber.org/zap"
)

//go:embed *.html
var files embed.FS

// HomeData carries everything the board view renders.
type HomeData struct {
	// Display name: the account username, or the guest name for
	// anonymous visitors.
	Username      string
	Authenticated bool
	ViewerID      int64
	CanDownvote   bool
	CanDelete     bool
	Tips          []*types.TipListing
}

// AuthData carries the login and registration form state.
type AuthData struct {
	Username string
	Error    string
}

// Renderer executes the embedded HTML templates and minifies the output.
type Renderer struct {
	tmpl   *template.Template
	min    *minify.M
	logger *zap.Logger
}

// NewRenderer parses the embedded templates.
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	tmpl, err := template.ParseFS(files, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	m := minify.New()
	m.AddFunc("text/html", html.Minify)

	return &Renderer{
		tmpl:   tmpl,
		min:    m,
		logger: logger.Named("templates"),
	}, nil
}

// Render executes the named template and writes the minified result.
func (r *Renderer) Render(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer

	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("Failed to execute template",
			zap.String("template", name),
			zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := r.min.Minify("text/html", w, &buf); err != nil {
		return fmt.Errorf("failed to minify template %s: %w", name, err)
	}

	return nil
}

package render

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gofiber/template/html/v2"
	"github.com/valyala/bytebufferpool"
)

//go:embed templates/mail/*.html
var embedFS embed.FS

// Renderer renders named HTML templates. Templates found in an optional
// directory override the embedded ones of the same name.
type Renderer struct {
	globalVars map[string]interface{}
	embedded   *html.Engine
	override   *html.Engine
}

func templateName(name string) string {
	return strings.TrimSuffix(name, ".html")
}

func (r *Renderer) RenderHTML(name string, vars map[string]interface{}) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	mergedVars := make(map[string]interface{})
	for k, v := range r.globalVars {
		mergedVars[k] = v
	}
	for k, v := range vars {
		mergedVars[k] = v
	}

	name = templateName(name)
	if r.override != nil {
		err := r.override.Render(buf, name, mergedVars)
		if err == nil {
			return buf.String(), nil
		}
		slog.Warn("Render template failed, falling back to embedded", "template", name, "error", err)
		buf.Reset()
	}

	if err := r.embedded.Render(buf, name, mergedVars); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func NewRenderer(globalVars map[string]interface{}, templateDir string) (*Renderer, error) {
	templatesFS, err := fs.Sub(embedFS, "templates")
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		globalVars: globalVars,
		embedded:   html.NewFileSystem(http.FS(templatesFS), ".html"),
	}
	if err := r.embedded.Load(); err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}

	if templateDir != "" {
		info, err := os.Stat(templateDir)
		if err != nil {
			return nil, fmt.Errorf("template directory does not exist: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("template path is not a directory: %s", templateDir)
		}
		r.override = html.New(templateDir, ".html")
	}
	return r, nil
}

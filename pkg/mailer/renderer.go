package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// RendererConfig configures the renderer.
type RendererConfig struct {
	TemplateDir string             // Default: "."
	LayoutDir   string             // Default: "layouts"
	Policy      *bluemonday.Policy // Applied to converted markdown. Default: UGCPolicy
}

// RenderResult is a rendered template.
type RenderResult struct {
	Metadata map[string]any
	HTML     string // Layout wrapped, sanitized HTML
	Text     string // Executed markdown before HTML conversion
}

type parsedTemplate struct {
	metadata map[string]any
	body     *texttemplate.Template
}

// Renderer converts markdown templates with YAML frontmatter to HTML.
// Parsed templates and layouts are cached; rendering is safe for concurrent use.
type Renderer struct {
	fs        fs.FS
	md        goldmark.Markdown
	policy    *bluemonday.Policy
	templates map[string]*parsedTemplate
	layouts   map[string]*template.Template
	config    RendererConfig
	mu        sync.Mutex
}

// NewRenderer creates a renderer with the default config.
func NewRenderer(filesystem fs.FS) *Renderer {
	return NewRendererWithConfig(filesystem, RendererConfig{})
}

// NewRendererWithConfig creates a renderer with custom directories or policy.
func NewRendererWithConfig(filesystem fs.FS, cfg RendererConfig) *Renderer {
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "."
	}
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}
	policy := cfg.Policy
	if policy == nil {
		policy = bluemonday.UGCPolicy()
	}

	return &Renderer{
		fs:        filesystem,
		md:        goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough)),
		policy:    policy,
		templates: make(map[string]*parsedTemplate),
		layouts:   make(map[string]*template.Template),
		config:    cfg,
	}
}

// Render executes the named template with data and wraps it in layout.
func (r *Renderer) Render(layout, name string, data any) (*RenderResult, error) {
	tmpl, err := r.template(name)
	if err != nil {
		return nil, err
	}

	var markdown bytes.Buffer
	if err := tmpl.body.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	var converted bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &converted); err != nil {
		return nil, fmt.Errorf("%w: convert markdown: %v", ErrRenderFailed, err)
	}
	content := r.policy.SanitizeBytes(converted.Bytes())

	lt, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var html bytes.Buffer
	err = lt.Execute(&html, map[string]any{
		"Content":  template.HTML(string(content)), //nolint:gosec // sanitized above
		"Metadata": tmpl.metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &RenderResult{
		Metadata: tmpl.metadata,
		HTML:     html.String(),
		Text:     markdown.String(),
	}, nil
}

func (r *Renderer) template(name string) (*parsedTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.templates[name]; ok {
		return t, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.config.TemplateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}

	body, err := texttemplate.New(name).Funcs(TemplateFuncs()).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	t := &parsedTemplate{metadata: parsed.Metadata, body: body}
	r.templates[name] = t
	return t, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.layouts[name]; ok {
		return t, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.config.LayoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	t, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, name, err)
	}
	r.layouts[name] = t
	return t, nil
}

// markdownEscaper backslash-escapes characters with markdown meaning.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`,
	`[`, `\[`, `]`, `\]`, `<`, `\<`, `>`, `\>`,
	`#`, `\#`, `|`, `\|`,
)

// TemplateFuncs returns the functions available inside markdown templates.
//
//	escape: escapes markdown syntax in untrusted text
func TemplateFuncs() texttemplate.FuncMap {
	return texttemplate.FuncMap{
		"escape": markdownEscaper.Replace,
	}
}

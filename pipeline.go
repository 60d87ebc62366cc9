package neur

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/sync/errgroup"

	"github.com/neurhq/neur/internal/frontmatter"
	"github.com/neurhq/neur/internal/markdown"
	"github.com/neurhq/neur/internal/styles"
	"github.com/neurhq/neur/internal/templates"
)

// IgnoreName is the optional exclusion file read from the source root.
// It uses gitignore syntax; matched entries are left out of the build
// entirely, and the file itself is never copied.
const IgnoreName = ".neurignore"

// fileKind is the closed dispatch table for source files.
type fileKind int

const (
	kindAsset fileKind = iota // copied verbatim
	kindStylesheet
	kindMarkup
	kindDocument
)

const (
	extStylesheet = ".css"
	extMarkup     = ".html"
	extDocument   = ".md"
)

func (k fileKind) String() string {
	switch k {
	case kindStylesheet:
		return "stylesheet"
	case kindMarkup:
		return "page"
	case kindDocument:
		return "document"
	default:
		return "asset"
	}
}

// classify routes a filename by extension. Matching is case sensitive; a
// file without an extension classifies as an asset.
func classify(name string) fileKind {
	switch path.Ext(name) {
	case extStylesheet:
		return kindStylesheet
	case extMarkup:
		return kindMarkup
	case extDocument:
		return kindDocument
	}
	return kindAsset
}

// isPartial implements the underscore escaping rule: exactly one leading
// underscore marks a partial; two or more act as a literal-underscore
// escape hatch and put the name back in page territory.
func isPartial(name string) bool {
	return strings.HasPrefix(name, "_") && !strings.HasPrefix(name, "__")
}

// sourceFile is one regular file discovered under the source root.
type sourceFile struct {
	rel  string // slash-separated path relative to the source root
	kind fileKind
}

// layoutSet records which source-relative directories provide a layout.
// It is filled during discovery and read-only during rendering.
type layoutSet map[string]bool

// nearest returns the layout template name for the closest registered
// ancestor of dir (dir itself included), or "" when none exists.
func (s layoutSet) nearest(dir string) string {
	for {
		if s[dir] {
			return path.Join(dir, templates.LayoutName)
		}
		if dir == "." || dir == "/" {
			return ""
		}
		dir = path.Dir(dir)
	}
}

// Result summarizes a completed build.
type Result struct {
	Directories int
	Stylesheets int
	Pages       int
	Documents   int
	Copied      int
	Partials    int
	Skipped     int // ignored entries and non-regular files
}

// Pipeline runs one build. State lives for a single run: discovery fills
// the directory list, file list, and layout registry; rendering only
// reads them, which is what makes the render fan-out safe.
type Pipeline struct {
	cfg      Config
	log      *slog.Logger
	engine   *templates.Engine
	layouts  layoutSet
	ignore   *ignore.GitIgnore
	dirs     []string // source-relative, parents before children
	files    []sourceFile
	partials []string // markup partials; loaded but never rendered to output
	html     *minify.M
	targets  styles.Targets
	res      Result
}

// Build mirrors the source tree into the output tree.
func Build(cfg Config) (*Result, error) {
	return BuildWithLogger(cfg, slog.Default())
}

// BuildWithLogger is Build with a caller-supplied logger.
func BuildWithLogger(cfg Config, log *slog.Logger) (*Result, error) {
	p, err := newPipeline(cfg, log)
	if err != nil {
		return nil, err
	}
	return p.run()
}

func newPipeline(cfg Config, log *slog.Logger) (*Pipeline, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	m := minify.New()
	m.Add("text/html", &mhtml.Minifier{})

	return &Pipeline{
		cfg:     cfg,
		log:     log,
		layouts: layoutSet{},
		html:    m,
		targets: styles.DefaultTargets,
	}, nil
}

func (p *Pipeline) run() (*Result, error) {
	if err := p.discover(); err != nil {
		return nil, err
	}

	engine, err := templates.Load(p.cfg.Source, p.excluded)
	if err != nil {
		return nil, err
	}
	p.engine = engine

	if err := p.render(); err != nil {
		return nil, err
	}

	p.log.Info("site generated",
		"source", p.cfg.Source,
		"output", p.cfg.Output,
		"directories", p.res.Directories,
		"stylesheets", p.res.Stylesheets,
		"pages", p.res.Pages,
		"documents", p.res.Documents,
		"copied", p.res.Copied,
	)
	res := p.res
	return &res, nil
}

// discover walks the source tree once, recording directories, files, and
// layout locations before anything is rendered. Freezing this state
// first removes any dependence on traversal order: a layout is known
// before the documents that need it, wherever either lives.
func (p *Pipeline) discover() error {
	p.ignore = loadIgnore(p.cfg.Source)
	return p.walk(".")
}

// excluded reports whether the ignore file keeps a source-relative path
// out of the build. The template loader consults it too, so a broken
// template in an ignored directory cannot fail the build.
func (p *Pipeline) excluded(rel string) bool {
	return p.ignore != nil && p.ignore.MatchesPath(rel)
}

func (p *Pipeline) walk(dir string) error {
	p.dirs = append(p.dirs, dir)
	p.res.Directories++

	entries, err := os.ReadDir(p.src(dir))
	if err != nil {
		return err
	}

	for _, entry := range entries {
		rel := path.Join(dir, entry.Name())
		if dir == "." && entry.Name() == IgnoreName {
			p.res.Skipped++
			continue
		}
		if p.excluded(rel) {
			p.log.Debug("ignored", "path", rel)
			p.res.Skipped++
			continue
		}

		switch {
		case entry.IsDir():
			if err := p.walk(rel); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			p.record(rel)
		default:
			// Symlinks and special files sit outside the walk's contract.
			p.log.Debug("skipping non-regular entry", "path", rel)
			p.res.Skipped++
		}
	}
	return nil
}

func (p *Pipeline) record(rel string) {
	kind := classify(rel)

	if kind == kindMarkup && isPartial(path.Base(rel)) {
		p.res.Partials++
		p.partials = append(p.partials, rel)
		if path.Base(rel) == templates.LayoutName {
			p.layouts[path.Dir(rel)] = true
		}
		return
	}

	switch kind {
	case kindStylesheet:
		p.res.Stylesheets++
	case kindMarkup:
		p.res.Pages++
	case kindDocument:
		p.res.Documents++
	default:
		p.res.Copied++
	}
	p.files = append(p.files, sourceFile{rel: rel, kind: kind})
}

func loadIgnore(source string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(source, IgnoreName))
	if err != nil {
		// An absent or unreadable ignore file disables exclusion.
		return nil
	}
	return gi
}

// render mirrors the directory structure, then fans the files out over a
// bounded worker pool. The first error cancels the run.
func (p *Pipeline) render() error {
	for _, dir := range p.dirs {
		if err := os.MkdirAll(p.dest(dir), 0o755); err != nil {
			return err
		}
	}

	workers := p.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for _, f := range p.files {
		f := f
		g.Go(func() error {
			p.log.Debug("processing", "path", f.rel, "kind", f.kind.String())
			return p.file(f)
		})
	}
	return g.Wait()
}

// file dispatches one source file to its transform.
func (p *Pipeline) file(f sourceFile) error {
	switch f.kind {
	case kindStylesheet:
		return p.stylesheet(f.rel)
	case kindMarkup:
		return p.page(f.rel)
	case kindDocument:
		return p.document(f.rel)
	default:
		return p.copy(f.rel)
	}
}

// src and dest map a source-relative slash path to its absolute source
// and mirrored output locations.
func (p *Pipeline) src(rel string) string {
	return filepath.Join(p.cfg.Source, filepath.FromSlash(rel))
}

func (p *Pipeline) dest(rel string) string {
	return filepath.Join(p.cfg.Output, filepath.FromSlash(rel))
}

func (p *Pipeline) stylesheet(rel string) error {
	src, err := os.ReadFile(p.src(rel))
	if err != nil {
		return err
	}
	out, err := styles.Transform(src, p.cfg.Minify, p.targets)
	if err != nil {
		return &StyleError{Path: p.src(rel), Err: err}
	}
	return os.WriteFile(p.dest(rel), out, 0o644)
}

func (p *Pipeline) page(rel string) error {
	var buf bytes.Buffer
	if err := p.engine.Render(&buf, rel, nil); err != nil {
		return &TemplateError{Name: rel, Err: err}
	}
	return p.writeHTML(p.dest(rel), buf.Bytes())
}

func (p *Pipeline) document(rel string) error {
	src, err := os.ReadFile(p.src(rel))
	if err != nil {
		return err
	}

	fields, body, _, err := frontmatter.Split(src)
	if err != nil {
		return &FrontMatterError{Path: p.src(rel), Err: err}
	}

	rendered, err := markdown.Render(body)
	if err != nil {
		return err
	}
	ctx := templates.Context(rendered, fields)

	var buf bytes.Buffer
	if layout := p.layouts.nearest(path.Dir(rel)); layout != "" {
		if err := p.engine.Render(&buf, layout, ctx); err != nil {
			return &TemplateError{Name: layout, Err: err}
		}
	} else if err := p.engine.RenderFallback(&buf, ctx); err != nil {
		return &TemplateError{Name: "fallback", Err: err}
	}

	dest := strings.TrimSuffix(p.dest(rel), extDocument) + extMarkup
	return p.writeHTML(dest, buf.Bytes())
}

// writeHTML writes rendered markup, compacting it first when the build
// asks for minified output.
func (p *Pipeline) writeHTML(dest string, b []byte) error {
	if p.cfg.Minify {
		out, err := p.html.Bytes("text/html", b)
		if err != nil {
			return err
		}
		b = out
	}
	return os.WriteFile(dest, b, 0o644)
}

// copy streams an asset byte for byte to its mirrored path.
func (p *Pipeline) copy(rel string) error {
	in, err := os.Open(p.src(rel))
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(p.dest(rel))
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

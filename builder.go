package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

type logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// builder renders every post under root and then the site index. A build
// stops at the first error; pages already written are left in place.
type builder struct {
	logger    logger
	cfg       config
	fsys      fs.FS
	templates *templateSet
	minifier  *minifier

	// createdTime reads the creation time of a file given its OS path.
	createdTime func(path string) (uint64, error)
}

func newBuilder(logger logger, cfg config) (*builder, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Join(cfg.Root, cfg.Templates.Dir)
	logger.Debug("loading templates", "dir", dir, "pattern", cfg.Templates.Pattern)
	templates, err := loadTemplates(dir, cfg.Templates.Pattern)
	if err != nil {
		return nil, err
	}
	if _, ok := templates.templates[cfg.Templates.Post]; !ok {
		return nil, &TemplateError{Op: "load", Name: cfg.Templates.Post, Err: fs.ErrNotExist}
	}
	logger.Debug("templates loaded", "names", templates.Names())

	return &builder{
		logger:      logger,
		cfg:         cfg,
		fsys:        os.DirFS(cfg.Root),
		templates:   templates,
		minifier:    newMinifier(),
		createdTime: creationTime,
	}, nil
}

// Build runs the whole pipeline once and returns the posts in discovery order.
func (b *builder) Build() ([]Post, error) {
	sources, err := b.discover()
	if err != nil {
		return nil, err
	}
	b.logger.Info("discovered posts", "pattern", b.cfg.Posts, "count", len(sources))

	var posts registry
	for _, source := range sources {
		post, err := b.buildPost(source)
		if err != nil {
			return nil, err
		}
		posts.add(post)
	}

	if err := b.buildIndex(posts.Posts()); err != nil {
		return nil, err
	}

	b.logger.Info("build finished", "posts", len(posts.posts), "index", b.cfg.IndexOutput)
	return posts.Posts(), nil
}

func (b *builder) discover() ([]string, error) {
	if !doublestar.ValidatePattern(b.cfg.Posts) {
		return nil, &DiscoveryError{Pattern: b.cfg.Posts, Err: doublestar.ErrBadPattern}
	}

	sources, err := doublestar.Glob(b.fsys, b.cfg.Posts)
	if err != nil {
		return nil, &DiscoveryError{Pattern: b.cfg.Posts, Err: err}
	}
	return sources, nil
}

func (b *builder) buildPost(source string) (Post, error) {
	doc, err := loadDocument(b.fsys, source)
	if err != nil {
		return Post{}, err
	}

	title := doc.Title()
	contents := doc.Render()

	created, err := b.createdTime(b.osPath(source))
	if err != nil {
		return Post{}, err
	}

	page, err := b.templates.RenderNamed(b.cfg.Templates.Post, pageContext{
		Title:       title,
		Contents:    contents,
		CreatedTime: created,
	})
	if err != nil {
		return Post{}, err
	}

	out := outputPath(source, b.cfg.PageName)
	if err := b.write(out, b.minifier.HTML(page)); err != nil {
		return Post{}, err
	}
	b.logger.Info("wrote post", "source", source, "output", out, "title", title)

	return Post{Title: title, URL: out, CreatedTime: created}, nil
}

func (b *builder) buildIndex(posts []Post) error {
	name := b.cfg.Templates.Index
	source, err := fs.ReadFile(b.fsys, name)
	if err != nil {
		return &IOError{Op: "read", Path: name, Err: err}
	}

	page, err := b.templates.RenderString(name, string(source), indexContext{Posts: posts})
	if err != nil {
		return err
	}

	return b.write(b.cfg.IndexOutput, b.minifier.HTML(page))
}

func (b *builder) write(name, contents string) error {
	if err := os.WriteFile(b.osPath(name), []byte(contents), 0o644); err != nil {
		return &IOError{Op: "write", Path: name, Err: err}
	}
	return nil
}

func (b *builder) osPath(name string) string {
	return filepath.Join(b.cfg.Root, filepath.FromSlash(name))
}

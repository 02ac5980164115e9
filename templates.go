package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/flosch/pongo2/v6"
)

// templateSet holds every page template compiled at start up. It is not
// modified after loadTemplates returns.
type templateSet struct {
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// loadTemplates compiles every file under dir matching pattern. Templates are
// named by their path relative to dir, so templates/blog.html is "blog.html".
func loadTemplates(dir, pattern string) (*templateSet, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, &TemplateError{Op: "load", Name: dir, Err: err}
	}

	loader, err := pongo2.NewLocalFileSystemLoader(dir)
	if err != nil {
		return nil, &TemplateError{Op: "load", Name: dir, Err: err}
	}

	names, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, &TemplateError{Op: "load", Name: filepath.Join(dir, pattern), Err: err}
	}

	ts := &templateSet{
		set:       pongo2.NewSet(filepath.Base(dir), loader),
		templates: make(map[string]*pongo2.Template, len(names)),
	}
	for _, name := range names {
		tpl, err := ts.set.FromFile(name)
		if err != nil {
			return nil, &TemplateError{Op: "load", Name: name, Err: err}
		}
		ts.templates[name] = tpl
	}

	return ts, nil
}

// Names lists the loaded template names.
func (ts *templateSet) Names() []string {
	names := make([]string, 0, len(ts.templates))
	for name := range ts.templates {
		names = append(names, name)
	}
	return names
}

func (ts *templateSet) RenderNamed(name string, ctx renderContext) (string, error) {
	tpl, ok := ts.templates[name]
	if !ok {
		return "", &TemplateError{Op: "render", Name: name, Err: fmt.Errorf("template not found")}
	}

	out, err := tpl.Execute(ctx.values())
	if err != nil {
		return "", &TemplateError{Op: "render", Name: name, Err: err}
	}
	return out, nil
}

// RenderString compiles source and renders it. name only identifies the
// template in errors. The source may extend or include templates of the set.
func (ts *templateSet) RenderString(name, source string, ctx renderContext) (string, error) {
	tpl, err := ts.set.FromString(source)
	if err != nil {
		return "", &TemplateError{Op: "render", Name: name, Err: err}
	}

	out, err := tpl.Execute(ctx.values())
	if err != nil {
		return "", &TemplateError{Op: "render", Name: name, Err: err}
	}
	return out, nil
}

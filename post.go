package main

import (
	"path"
	"slices"

	"github.com/flosch/pongo2/v6"
)

// Post is one published page as listed on the site index.
type Post struct {
	Title       string
	URL         string
	CreatedTime uint64 // seconds since the Unix epoch
}

func (p Post) values() pongo2.Context {
	return pongo2.Context{
		"title":        p.Title,
		"url":          p.URL,
		"created_time": p.CreatedTime,
	}
}

// registry collects posts in the order their sources were discovered.
type registry struct {
	posts []Post
}

func (r *registry) add(p Post) {
	r.posts = append(r.posts, p)
}

func (r *registry) Posts() []Post {
	return slices.Clone(r.posts)
}

// renderContext is the data bound to a template. The concrete types are
// pageContext and indexContext.
type renderContext interface {
	values() pongo2.Context
}

type pageContext struct {
	Title       string
	Contents    string
	CreatedTime uint64
}

func (c pageContext) values() pongo2.Context {
	return pongo2.Context{
		"title":        c.Title,
		"contents":     pongo2.AsSafeValue(c.Contents),
		"created_time": c.CreatedTime,
	}
}

type indexContext struct {
	Posts []Post
}

func (c indexContext) values() pongo2.Context {
	posts := make([]pongo2.Context, 0, len(c.Posts))
	for _, p := range c.Posts {
		posts = append(posts, p.values())
	}
	return pongo2.Context{"posts": posts}
}

// outputPath replaces the file name of a source path with name, keeping the
// directory: blog/my-slug/post.md -> blog/my-slug/index.html.
func outputPath(source, name string) string {
	return path.Join(path.Dir(source), name)
}

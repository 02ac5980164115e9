package main

import (
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

type minifier struct {
	m *minify.M
}

func newMinifier() *minifier {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return &minifier{m: m}
}

// HTML compacts a rendered page. Input the minifier cannot handle is
// returned unchanged.
func (mf *minifier) HTML(s string) string {
	out, err := mf.m.String("text/html", s)
	if err != nil {
		return s
	}
	return out
}

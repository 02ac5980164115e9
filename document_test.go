package main

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestDocumentTitle(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "plain heading",
			markdown: "# Hello\n\nWorld\n",
			want:     "Hello",
		},
		{
			name:     "no level one heading",
			markdown: "## Section\n\nJust a paragraph.\n",
			want:     "",
		},
		{
			name:     "empty document",
			markdown: "",
			want:     "",
		},
		{
			// Only the last text run inside the heading is kept.
			name:     "heading with emphasis keeps last run",
			markdown: "# A *B* C\n",
			want:     " C",
		},
		{
			name:     "first level one heading wins",
			markdown: "# First\n\n# Second\n",
			want:     "First",
		},
		{
			name:     "level one after level two",
			markdown: "## Intro\n\nText\n\n# Title\n",
			want:     "Title",
		},
		{
			name:     "underscores inside words",
			markdown: "# my_cool_title\n",
			want:     "my_cool_title",
		},
		{
			name:     "several snake case words",
			markdown: "# snake_case and more_stuff here\n",
			want:     "snake_case and more_stuff here",
		},
		{
			name:     "hash without space is not a heading",
			markdown: "#hashtag\n\n# Real\n",
			want:     "Real",
		},
		{
			name:     "setext heading",
			markdown: "Underlined\n==========\n\nBody\n",
			want:     "Underlined",
		},
		{
			name:     "paragraph text before heading is ignored",
			markdown: "Preface\n\n# Real Title\n",
			want:     "Real Title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &document{path: "blog/x/post.md", contents: []byte(tt.markdown)}
			if got := d.Title(); got != tt.want {
				t.Fatalf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentRender(t *testing.T) {
	d := &document{contents: []byte("# Hello\n\nSome ~~old~~ text\n")}
	got := d.Render()

	for _, want := range []string{"<h1", "Hello</h1>", "<p>Some <del>old</del> text</p>"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() = %q, missing %q", got, want)
		}
	}

	if again := d.Render(); again != got {
		t.Fatalf("Render() is not deterministic: %q != %q", again, got)
	}
}

func TestDocumentRenderCommonMark(t *testing.T) {
	d := &document{contents: []byte("#hashtag\n\n# my_cool_title\n\nsome snake_case text\n")}
	got := d.Render()

	for _, want := range []string{"<p>#hashtag</p>", "my_cool_title</h1>", "<p>some snake_case text</p>"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() = %q, missing %q", got, want)
		}
	}
	for _, unwanted := range []string{"<em>", "hashtag</h1>"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("Render() = %q, unexpected %q", got, unwanted)
		}
	}
}

func TestDocumentRenderWithoutTables(t *testing.T) {
	d := &document{contents: []byte("| a | b |\n|---|---|\n| 1 | 2 |\n")}
	if got := d.Render(); strings.Contains(got, "<table") {
		t.Fatalf("Render() produced a table: %q", got)
	}
}

func TestLoadDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"blog/a/post.md":   &fstest.MapFile{Data: []byte("# Hello\n")},
		"blog/bad/post.md": &fstest.MapFile{Data: []byte{'#', ' ', 0xff, 0xfe}},
	}

	d, err := loadDocument(fsys, "blog/a/post.md")
	if err != nil {
		t.Fatalf("loadDocument returned error: %v", err)
	}
	if string(d.contents) != "# Hello\n" {
		t.Fatalf("unexpected contents %q", d.contents)
	}

	_, err = loadDocument(fsys, "blog/missing/post.md")
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	if ioErr.Path != "blog/missing/post.md" || ioErr.Op != "read" {
		t.Fatalf("unexpected IOError %+v", ioErr)
	}

	_, err = loadDocument(fsys, "blog/bad/post.md")
	if !errors.As(err, &ioErr) || !errors.Is(err, errInvalidUTF8) {
		t.Fatalf("expected IOError for invalid UTF-8, got %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"blog/my-slug/post.md", "blog/my-slug/index.html"},
		{"notes/2024/entry.md", "notes/2024/index.html"},
		{"post.md", "index.html"},
	}

	for _, tt := range tests {
		if got := outputPath(tt.source, "index.html"); got != tt.want {
			t.Errorf("outputPath(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

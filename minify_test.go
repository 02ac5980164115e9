package main

import "testing"

func TestMinifierHTML(t *testing.T) {
	mf := newMinifier()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "whitespace between blocks",
			in:   "<div>\n  <p>Hello</p>\n  <p>World</p>\n</div>\n",
			want: "<div><p>Hello</p><p>World</p></div>",
		},
		{
			name: "inline spacing kept",
			in:   "<p>Hello   <em>big</em>   world</p>",
			want: "<p>Hello <em>big</em> world</p>",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mf.HTML(tt.in); got != tt.want {
				t.Fatalf("HTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMinifierKeepsUnknownMarkup(t *testing.T) {
	mf := newMinifier()
	in := "<custom-tag data-x=\"1\">text</custom-tag>"
	if got := mf.HTML(in); got != in {
		t.Fatalf("HTML(%q) = %q", in, got)
	}
}

package seo

import (
	"reflect"
	"testing"
)

func TestStripHTML(t *testing.T) {
	got := StripHTML("<p>Hello <b>world</b></p>")
	if got != "Hello world" {
		t.Fatalf("got %q", got)
	}
}

func TestStripHTMLSeparatesAdjacentTags(t *testing.T) {
	// Words split only by markup must not run together.
	got := StripHTML("<h1>Title</h1><p>Body</p>")
	if got != "Title Body" {
		t.Fatalf("got %q", got)
	}
}

func TestWordCountIgnoresMarkup(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"one two three", 3},
		{"<h1>Title</h1><p>Body text here</p>", 4},
		{"  spaced   out  ", 2},
	}
	for _, tc := range cases {
		if got := WordCount(tc.in); got != tc.want {
			t.Errorf("WordCount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags("summer, sale , ,new")
	want := []string{"summer", "sale", "new"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if SplitTags("  ") != nil {
		t.Fatal("expected nil for blank input")
	}
}

func TestJoinTagsUsesCommaSpaceForm(t *testing.T) {
	if got := JoinTags([]string{"summer", "sale", "new"}); got != "summer, sale, new" {
		t.Fatalf("got %q", got)
	}
}

func TestJoinTagsRoundTrip(t *testing.T) {
	tags := []string{"summer", "sale", "new"}
	if got := SplitTags(JoinTags(tags)); !reflect.DeepEqual(got, tags) {
		t.Fatalf("round trip produced %v", got)
	}
}

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"hello world", "Hello World"},
		{"widget |durable", "Widget |Durable"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := TitleCase(tc.in); got != tc.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

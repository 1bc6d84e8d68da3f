package htmlfrag

import (
	"testing"

	"github.com/mohae/stachec/tree"
)

func parseAll(t *testing.T, input string) tree.List {
	t.Helper()
	list, end, err := ParseFragment(input, 0, Options{})
	if err != nil {
		t.Fatalf("ParseFragment(%q): %v", input, err)
	}
	if end != len(input) {
		t.Fatalf("ParseFragment(%q) consumed %d of %d bytes", input, end, len(input))
	}
	return list
}

func TestPlainText(t *testing.T) {
	list := parseAll(t, "hello world")
	if len(list) != 1 {
		t.Fatalf("list = %v", list)
	}
	s, ok := list[0].(tree.String)
	if !ok || string(s) != "hello world" {
		t.Fatalf("list[0] = %v", list[0])
	}
}

func TestSimpleTag(t *testing.T) {
	list := parseAll(t, "<p>hi</p>")
	if len(list) != 1 {
		t.Fatalf("list = %v", list)
	}
	tag, ok := list[0].(*tree.Tag)
	if !ok || tag.TagName != "p" {
		t.Fatalf("list[0] = %v", list[0])
	}
	if len(tag.Children) != 1 || tag.Children[0].(tree.String) != "hi" {
		t.Fatalf("children = %v", tag.Children)
	}
}

func TestVoidElement(t *testing.T) {
	list := parseAll(t, "<br><img src=\"x.png\">")
	if len(list) != 2 {
		t.Fatalf("list = %v", list)
	}
	br := list[0].(*tree.Tag)
	if br.TagName != "br" || br.Children != nil {
		t.Fatalf("br = %+v", br)
	}
	img := list[1].(*tree.Tag)
	if img.Attrs["src"] != tree.String("x.png") {
		t.Fatalf("img attrs = %v", img.Attrs)
	}
}

func TestSelfClosing(t *testing.T) {
	list := parseAll(t, `<input type="text" />`)
	tag := list[0].(*tree.Tag)
	if tag.TagName != "input" || tag.Attrs["type"] != tree.String("text") {
		t.Fatalf("tag = %+v", tag)
	}
}

func TestBooleanAttribute(t *testing.T) {
	list := parseAll(t, "<input disabled>")
	tag := list[0].(*tree.Tag)
	if tag.Attrs["disabled"] != tree.String("") {
		t.Fatalf("attrs = %v", tag.Attrs)
	}
}

func TestCharRef(t *testing.T) {
	list := parseAll(t, "a &amp; b")
	if len(list) != 3 {
		t.Fatalf("list = %v", list)
	}
	ref, ok := list[1].(*tree.CharRef)
	if !ok || ref.Str != "&" || ref.HTML != "&amp;" {
		t.Fatalf("list[1] = %v", list[1])
	}
}

func TestComment(t *testing.T) {
	list := parseAll(t, "<!-- note -->")
	c, ok := list[0].(*tree.Comment)
	if !ok || c.Text != " note " {
		t.Fatalf("list[0] = %v", list[0])
	}
}

func TestNestedTags(t *testing.T) {
	list := parseAll(t, "<div><span>x</span></div>")
	div := list[0].(*tree.Tag)
	if div.TagName != "div" || len(div.Children) != 1 {
		t.Fatalf("div = %+v", div)
	}
	span := div.Children[0].(*tree.Tag)
	if span.TagName != "span" {
		t.Fatalf("span = %+v", span)
	}
}

func TestRCDATADoesNotParseNestedTags(t *testing.T) {
	list := parseAll(t, "<textarea><b>not a tag</b></textarea>")
	ta := list[0].(*tree.Tag)
	if ta.TagName != "textarea" {
		t.Fatalf("tag = %+v", ta)
	}
	if len(ta.Children) != 1 {
		t.Fatalf("children = %v", ta.Children)
	}
	s, ok := ta.Children[0].(tree.String)
	if !ok || string(s) != "<b>not a tag</b>" {
		t.Fatalf("children[0] = %v", ta.Children[0])
	}
}

func TestGetSpecialProducesSpecialNode(t *testing.T) {
	input := "hi {{name}} bye"
	opts := Options{
		GetSpecial: func(input string, pos int) (tree.Node, int, error) {
			if input[pos:pos+2] != "{{" {
				return nil, 0, nil
			}
			end := pos + len("{{name}}")
			return tree.String("SPECIAL"), end - pos, nil
		},
	}
	list, end, err := ParseFragment(input, 0, opts)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if end != len(input) {
		t.Fatalf("end = %d, want %d", end, len(input))
	}
	if len(list) != 3 {
		t.Fatalf("list = %v", list)
	}
	if list[1] != tree.String("SPECIAL") {
		t.Fatalf("list[1] = %v", list[1])
	}
}

func TestShouldStopBoundsContent(t *testing.T) {
	input := "abc{{/x}}"
	opts := Options{
		ShouldStop: func(input string, pos int) bool {
			return pos+2 <= len(input) && input[pos:pos+2] == "{{"
		},
	}
	list, end, err := ParseFragment(input, 0, opts)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if end != 3 {
		t.Fatalf("end = %d, want 3", end)
	}
	if len(list) != 1 || list[0] != tree.String("abc") {
		t.Fatalf("list = %v", list)
	}
}

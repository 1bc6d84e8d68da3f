package optimizer

import (
	"testing"

	"github.com/mohae/stachec/stachetag"
	"github.com/mohae/stachec/tree"
)

func TestOptimizeTreeAllStatic(t *testing.T) {
	root := tree.List{
		tree.String("Hello "),
		&tree.Tag{TagName: "b", Children: tree.List{tree.String("world")}},
	}
	got := OptimizeTree(root)
	raw, ok := got.(*tree.Raw)
	if !ok {
		t.Fatalf("got %T, want *tree.Raw", got)
	}
	if raw.HTML != "Hello <b>world</b>" {
		t.Fatalf("got %q", raw.HTML)
	}
}

func TestOptimizeTreeWithAmpersandStaysRaw(t *testing.T) {
	root := tree.List{tree.String("a & b")}
	got := OptimizeTree(root)
	raw, ok := got.(*tree.Raw)
	if !ok {
		t.Fatalf("got %T, want *tree.Raw", got)
	}
	if raw.HTML != "a &amp; b" {
		t.Fatalf("got %q", raw.HTML)
	}
}

func TestOptimizePreservesSpecial(t *testing.T) {
	sp := &tree.Special{Tag: &stachetag.StacheTag{Kind: stachetag.DOUBLE, Path: []string{"name"}}}
	root := tree.List{tree.String("Hi "), sp}
	got := Optimize(root)
	list, ok := got.(tree.List)
	if !ok {
		t.Fatalf("got %T, want tree.List", got)
	}
	if len(list) != 2 {
		t.Fatalf("list = %v", list)
	}
	if s, ok := list[0].(tree.String); !ok || string(s) != "Hi " {
		t.Fatalf("list[0] = %v", list[0])
	}
	if list[1] != sp {
		t.Fatalf("list[1] = %v, want %v", list[1], sp)
	}
}

func TestOptimizeTagWithDynamicAttrKeepsChildrenExamined(t *testing.T) {
	sp := &tree.Special{Tag: &stachetag.StacheTag{Kind: stachetag.DOUBLE, Path: []string{"cls"}}}
	tag := &tree.Tag{
		TagName: "div",
		Attrs:   tree.Attrs{"class": sp},
		Children: tree.List{
			tree.String("static text"),
		},
	}
	got := Optimize(tag)
	outTag, ok := got.(*tree.Tag)
	if !ok {
		t.Fatalf("got %T, want *tree.Tag", got)
	}
	if len(outTag.Children) != 1 {
		t.Fatalf("children = %v", outTag.Children)
	}
	// "static text" has no '&' or '<', so the pure-chars demotion rule
	// (spec.md §4.3) turns the coalesced Raw into a plain string.
	s, ok := outTag.Children[0].(tree.String)
	if !ok || string(s) != "static text" {
		t.Fatalf("children[0] = %v", outTag.Children[0])
	}
}

func TestOptimizeTextareaUntouched(t *testing.T) {
	tag := &tree.Tag{TagName: "textarea", Children: tree.List{tree.String("plain")}}
	got := Optimize(tag)
	if got != tree.Node(tag) {
		t.Fatalf("got %v, want original node unchanged", got)
	}
}

func TestOptimizeMixedStaticAndDynamicChildren(t *testing.T) {
	sp := &tree.Special{Tag: &stachetag.StacheTag{Kind: stachetag.DOUBLE, Path: []string{"name"}}}
	arr := tree.List{
		tree.String("Hello "),
		sp,
		tree.String(" and goodbye"),
	}
	got, found := optimizeArrayParts(arr, false)
	if !found {
		t.Fatal("expected found = true")
	}
	if len(got) != 3 {
		t.Fatalf("got = %v", got)
	}
	if s, ok := got[0].(tree.String); !ok || string(s) != "Hello " {
		t.Fatalf("got[0] = %v", got[0])
	}
	if got[1] != sp {
		t.Fatalf("got[1] = %v", got[1])
	}
	if s, ok := got[2].(tree.String); !ok || string(s) != " and goodbye" {
		t.Fatalf("got[2] = %v", got[2])
	}
}

func TestPushRawHTMLCoalesces(t *testing.T) {
	var buf tree.List
	buf = pushRawHTML(buf, "a")
	buf = pushRawHTML(buf, "b")
	if len(buf) != 1 {
		t.Fatalf("buf = %v", buf)
	}
	raw := buf[0].(*tree.Raw)
	if raw.HTML != "ab" {
		t.Fatalf("raw.HTML = %q", raw.HTML)
	}
}

package tree

import (
	"testing"

	"github.com/mohae/stachec/stachetag"
)

func TestIsPureChars(t *testing.T) {
	cases := []struct {
		html string
		want bool
	}{
		{"hello world", true},
		{"a &amp; b", false},
		{"<b>x</b>", false},
		{"", true},
	}
	for _, c := range cases {
		if got := IsPureChars(c.html); got != c.want {
			t.Errorf("IsPureChars(%q) = %v, want %v", c.html, got, c.want)
		}
	}
}

func TestAttrsSpecials(t *testing.T) {
	sp := &Special{Tag: &stachetag.StacheTag{Kind: stachetag.DOUBLE, Path: []string{"x"}}}
	attrs := Attrs{AttrSpecialsKey: List{sp}}
	got := attrs.Specials()
	if len(got) != 1 || got[0] != sp {
		t.Fatalf("Specials() = %v", got)
	}

	if got := (Attrs{}).Specials(); got != nil {
		t.Fatalf("Specials() on empty attrs = %v, want nil", got)
	}
}

func TestListString(t *testing.T) {
	l := List{String("a"), &Raw{HTML: "<b>"}}
	want := "[a, <b>]"
	if got := l.String(); got != want {
		t.Errorf("List.String() = %q, want %q", got, want)
	}
}

func TestAsContent(t *testing.T) {
	var v any = List{String("x")}
	got := AsContent(v)
	if len(got) != 1 {
		t.Fatalf("AsContent = %v", got)
	}
	if got := AsContent(nil); got != nil {
		t.Fatalf("AsContent(nil) = %v, want nil", got)
	}
}

func TestNodeTypes(t *testing.T) {
	nodes := []Node{
		String("x"),
		&Raw{HTML: "x"},
		&CharRef{HTML: "&amp;", Str: "&"},
		&Comment{Text: "c"},
		&Tag{TagName: "div"},
		&Special{Tag: &stachetag.StacheTag{Path: []string{"x"}}},
		&EmitCode{Source: "1"},
		List{},
	}
	want := []NodeType{NodeString, NodeRaw, NodeCharRef, NodeComment, NodeTag, NodeSpecial, NodeEmitCode, NodeList}
	for i, n := range nodes {
		if n.Type() != want[i] {
			t.Errorf("nodes[%d].Type() = %v, want %v", i, n.Type(), want[i])
		}
	}
}

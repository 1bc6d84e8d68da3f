package templateparser

import (
	"strings"
	"testing"

	"github.com/mohae/stachec/stachetag"
	"github.com/mohae/stachec/tree"
)

func mustParse(t *testing.T, input string) tree.List {
	t.Helper()
	list, err := Parse(input, Options{})
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return list
}

func TestPlainTextTree(t *testing.T) {
	list := mustParse(t, "Hello")
	if len(list) != 1 || list[0] != tree.String("Hello") {
		t.Fatalf("list = %v", list)
	}
}

func TestDoubleMustacheProducesSpecial(t *testing.T) {
	list := mustParse(t, "{{name}}")
	if len(list) != 1 {
		t.Fatalf("list = %v", list)
	}
	sp, ok := list[0].(*tree.Special)
	if !ok || sp.Tag.Kind != stachetag.DOUBLE || sp.Tag.Path[0] != "name" {
		t.Fatalf("list[0] = %v", list[0])
	}
	if sp.Tag.CharPos != 0 || sp.Tag.CharLength != 0 {
		t.Fatalf("bookkeeping not cleared: %+v", sp.Tag)
	}
}

func TestCommentConsumedNoNode(t *testing.T) {
	list := mustParse(t, "a{{! hidden }}b")
	if len(list) != 2 {
		t.Fatalf("list = %v", list)
	}
	if list[0] != tree.String("a") || list[1] != tree.String("b") {
		t.Fatalf("list = %v", list)
	}
}

func TestBlockWithContentAndElse(t *testing.T) {
	list := mustParse(t, "<p>{{#if x}}<b>yes</b>{{else}}no{{/if}}</p>")
	p := list[0].(*tree.Tag)
	if p.TagName != "p" || len(p.Children) != 1 {
		t.Fatalf("p = %+v", p)
	}
	sp := p.Children[0].(*tree.Special)
	if sp.Tag.Kind != stachetag.BLOCKOPEN || sp.Tag.Path[0] != "if" {
		t.Fatalf("sp = %+v", sp.Tag)
	}
	content := tree.AsContent(sp.Tag.Content)
	if len(content) != 1 {
		t.Fatalf("content = %v", content)
	}
	b := content[0].(*tree.Tag)
	if b.TagName != "b" {
		t.Fatalf("content[0] = %v", content[0])
	}
	elseContent := tree.AsContent(sp.Tag.ElseContent)
	if len(elseContent) != 1 || elseContent[0] != tree.String("no") {
		t.Fatalf("elseContent = %v", elseContent)
	}
}

func TestBlockWithoutElse(t *testing.T) {
	list := mustParse(t, "{{#each items}}x{{/each}}")
	sp := list[0].(*tree.Special)
	if sp.Tag.ElseContent != nil {
		t.Fatalf("ElseContent = %v, want nil", sp.Tag.ElseContent)
	}
	content := tree.AsContent(sp.Tag.Content)
	if len(content) != 1 || content[0] != tree.String("x") {
		t.Fatalf("content = %v", content)
	}
}

func TestNestedBlocks(t *testing.T) {
	list := mustParse(t, "{{#a}}{{#b}}x{{/b}}{{/a}}")
	outer := list[0].(*tree.Special)
	if outer.Tag.Path[0] != "a" {
		t.Fatalf("outer = %+v", outer.Tag)
	}
	innerList := tree.AsContent(outer.Tag.Content)
	inner := innerList[0].(*tree.Special)
	if inner.Tag.Path[0] != "b" {
		t.Fatalf("inner = %+v", inner.Tag)
	}
}

func TestElseAtTopLevelIsFatal(t *testing.T) {
	_, err := Parse("{{ else }}", Options{})
	if err == nil || !strings.Contains(err.Error(), "unexpected {{else}}") {
		t.Fatalf("err = %v", err)
	}
}

func TestBlockCloseAtTopLevelIsFatal(t *testing.T) {
	_, err := Parse("{{/x}}", Options{})
	if err == nil || !strings.Contains(err.Error(), "unexpected {{/x}}") {
		t.Fatalf("err = %v", err)
	}
}

func TestMismatchedBlockNames(t *testing.T) {
	_, err := Parse("{{#a}}{{/b}}", Options{})
	if err == nil || !strings.Contains(err.Error(), "mismatched block close") {
		t.Fatalf("err = %v", err)
	}
}

func TestAttributeWithSpecial(t *testing.T) {
	list := mustParse(t, `<a href="{{url}}">link</a>`)
	a := list[0].(*tree.Tag)
	sp, ok := a.Attrs["href"].(*tree.Special)
	if !ok || sp.Tag.Path[0] != "url" {
		t.Fatalf("attrs = %v", a.Attrs)
	}
}

func TestDynamicAttributeSet(t *testing.T) {
	list := mustParse(t, "<div {{attrs}}>x</div>")
	div := list[0].(*tree.Tag)
	specials := div.Attrs.Specials()
	if len(specials) != 1 || specials[0].Tag.Path[0] != "attrs" {
		t.Fatalf("specials = %v", specials)
	}
}

func TestRCDATAPropagationThroughBlock(t *testing.T) {
	list := mustParse(t, "<textarea>{{#if x}}<b>not a tag</b>{{/if}}</textarea>")
	ta := list[0].(*tree.Tag)
	sp := ta.Children[0].(*tree.Special)
	content := tree.AsContent(sp.Tag.Content)
	if len(content) != 1 || content[0] != tree.String("<b>not a tag</b>") {
		t.Fatalf("content = %v", content)
	}
}

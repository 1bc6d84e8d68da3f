package stachec

import (
	"strings"
	"testing"
)

// spec.md §8 scenario 1.
func TestCompilePlainText(t *testing.T) {
	got, err := Compile("Hello", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `return "Hello"`) {
		t.Fatalf("got %q, want return of \"Hello\" literal", got)
	}
	if !strings.Contains(got, "var self = this") {
		t.Fatalf("got %q, want self binding", got)
	}
}

// spec.md §8 scenario 2.
func TestCompileDoubleMustache(t *testing.T) {
	got, err := Compile("{{name}}", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `Spacebars.mustache(self.lookup("name"))`) {
		t.Fatalf("got %q, want a Spacebars.mustache call", got)
	}
}

func TestCompileNonTemplateOmitsContentBindings(t *testing.T) {
	got, err := Compile("x", Options{IsTemplate: false})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "__content") {
		t.Fatalf("got %q, want no __content binding", got)
	}
}

// spec.md §8 scenario 5, exercised through the full pipeline.
func TestCompileIfElseBlock(t *testing.T) {
	got, err := Compile(`<p>{{#if x}}<b>yes</b>{{else}}no{{/if}}</p>`, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"UI.Tag.p(", "Spacebars.include(UI.If", "__content: UI.block(", "__elseContent: UI.block(", `Spacebars.call(self.lookup("x"))`} {
		if !strings.Contains(got, want) {
			t.Fatalf("got %q, want substring %q", got, want)
		}
	}
}

func TestCompileUnclosedTagIsFatalError(t *testing.T) {
	_, err := Compile("{{#if x}}no close", DefaultOptions())
	if err == nil {
		t.Fatal("expected a parse error for an unclosed block")
	}
}

func TestParseThenCodeGenMatchesCompile(t *testing.T) {
	tree, err := Parse("{{name}}", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	code, err := CodeGen(tree, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	direct, err := Compile("{{name}}", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if code != direct {
		t.Fatalf("got %q, want %q", code, direct)
	}
}

func TestParseStacheTagDirect(t *testing.T) {
	tag, err := ParseStacheTag("{{foo}}", 0, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(tag.Path) != 1 || tag.Path[0] != "foo" {
		t.Fatalf("tag.Path = %v", tag.Path)
	}
}

package optimizer

import (
	"fmt"
	"strings"

	"github.com/mohae/stachec/tree"
)

var escapeText = strings.NewReplacer("&", "&amp;", "<", "&lt;")

// renderHTML is the optimizer's stand-in for spec.md's external toHTML
// collaborator: it serializes a subtree already known to be free of
// Special/EmitCode content back into source HTML text.
func renderHTML(n tree.Node) string {
	switch v := n.(type) {
	case nil:
		return ""
	case tree.String:
		return escapeText.Replace(string(v))
	case *tree.Raw:
		return v.HTML
	case *tree.CharRef:
		return v.HTML
	case *tree.Comment:
		return "<!--" + v.Text + "-->"
	case *tree.Tag:
		return renderTagHTML(v)
	case tree.List:
		var b strings.Builder
		for _, child := range v {
			b.WriteString(renderHTML(child))
		}
		return b.String()
	default:
		panic(fmt.Sprintf("optimizer: cannot render %T to static HTML", n))
	}
}

func renderTagHTML(t *tree.Tag) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(t.TagName)
	for key, val := range t.Attrs {
		if key == tree.AttrSpecialsKey || key == tree.AttrDynamicKey {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(renderAttrValueHTML(val))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if isVoidElement(t.TagName) {
		return b.String()
	}
	b.WriteString(renderHTML(t.Children))
	b.WriteString("</")
	b.WriteString(t.TagName)
	b.WriteByte('>')
	return b.String()
}

func renderAttrValueHTML(v tree.Node) string {
	switch n := v.(type) {
	case tree.String:
		return strings.ReplaceAll(escapeText.Replace(string(n)), `"`, "&quot;")
	case *tree.CharRef:
		return n.HTML
	case tree.List:
		var b strings.Builder
		for _, e := range n {
			b.WriteString(renderAttrValueHTML(e))
		}
		return b.String()
	default:
		panic(fmt.Sprintf("optimizer: cannot render attribute value %T to static HTML", n))
	}
}

func isVoidElement(name string) bool {
	switch strings.ToLower(name) {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	default:
		return false
	}
}

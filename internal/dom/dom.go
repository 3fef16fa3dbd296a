/*
Package dom holds the element helpers widgets draw with. Elements are
golang.org/x/net/html nodes, so a widget tree can be rendered to HTML without
a browser.
*/
package dom

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element creates a detached element with the given classes.
func Element(tag string, classes ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, cls := range classes {
		AddClass(n, cls)
	}
	return n
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func RemoveAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

// --- Classes ---------------------------------------------------------------

func classList(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

func setClassList(n *html.Node, classes []string) {
	if len(classes) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(classes, " "))
}

func HasClass(n *html.Node, cls string) bool {
	if n == nil {
		return false
	}
	return slices.Contains(classList(n), cls)
}

func AddClass(n *html.Node, cls string) {
	if n == nil || cls == "" || HasClass(n, cls) {
		return
	}
	setClassList(n, append(classList(n), cls))
}

func RemoveClass(n *html.Node, cls string) {
	if n == nil {
		return
	}
	list := classList(n)
	if i := slices.Index(list, cls); i >= 0 {
		setClassList(n, slices.Delete(list, i, i+1))
	}
}

// ToggleClass adds cls if on is true and removes it otherwise.
func ToggleClass(n *html.Node, cls string, on bool) {
	if on {
		AddClass(n, cls)
	} else {
		RemoveClass(n, cls)
	}
}

// --- Inline styles ---------------------------------------------------------

// Styles parses the inline style attribute of n.
func Styles(n *html.Node) ([]*css.Declaration, error) {
	v, ok := Attr(n, "style")
	if !ok || strings.TrimSpace(v) == "" {
		return nil, nil
	}
	return parser.ParseDeclarations(terminated(v))
}

// terminated ends a declaration list with ";". The parser drops the value of
// an unterminated last declaration.
func terminated(text string) string {
	text = strings.TrimSpace(text)
	if text != "" && !strings.HasSuffix(text, ";") {
		text += ";"
	}
	return text
}

// Style returns the inline value of a property, or "".
func Style(n *html.Node, property string) string {
	decls, err := Styles(n)
	if err != nil {
		return ""
	}
	for _, d := range decls {
		if d.Property == property {
			return d.Value
		}
	}
	return ""
}

// SetStyle sets one inline property. An empty value removes it.
func SetStyle(n *html.Node, property, value string) error {
	return SetStyles(n, [][2]string{{property, value}})
}

// SetStyles sets inline properties in order. Empty values remove properties.
func SetStyles(n *html.Node, props [][2]string) error {
	decls, err := Styles(n)
	if err != nil {
		return fmt.Errorf("parse inline style: %w", err)
	}

	for _, p := range props {
		property, value := strings.TrimSpace(p[0]), strings.TrimSpace(p[1])
		i := slices.IndexFunc(decls, func(d *css.Declaration) bool { return d.Property == property })

		switch {
		case value == "" && i >= 0:
			decls = slices.Delete(decls, i, i+1)
		case value == "":
		case i >= 0:
			decls[i].Value = value
			decls[i].Important = false
		default:
			decls = append(decls, &css.Declaration{Property: property, Value: value})
		}
	}

	writeStyles(n, decls)
	return nil
}

// SetStyleText merges a declaration list such as "width: 10px; color: red"
// into the inline style of n.
func SetStyleText(n *html.Node, text string) error {
	decls, err := parser.ParseDeclarations(terminated(text))
	if err != nil {
		return fmt.Errorf("parse style %q: %w", text, err)
	}

	props := make([][2]string, 0, len(decls))
	for _, d := range decls {
		props = append(props, [2]string{d.Property, d.Value})
	}
	return SetStyles(n, props)
}

func writeStyles(n *html.Node, decls []*css.Declaration) {
	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}

	var b strings.Builder
	for i, d := range decls {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
		if d.Important {
			b.WriteString(" !important")
		}
		b.WriteByte(';')
	}
	SetAttr(n, "style", b.String())
}

// --- Tree ------------------------------------------------------------------

// Append moves child to the end of parent's children.
func Append(parent, child *html.Node) {
	Remove(child)
	parent.AppendChild(child)
}

// InsertBefore moves child in front of ref, which must be a child of parent.
// A nil ref appends.
func InsertBefore(parent, child, ref *html.Node) {
	Remove(child)
	parent.InsertBefore(child, ref)
}

// Remove detaches n from its parent, if any.
func Remove(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Query returns the first element below root matching the CSS selector.
func Query(root *html.Node, selector string) (*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", selector, err)
	}
	return sel.MatchFirst(root), nil
}

// QueryAll returns all elements below root matching the CSS selector.
func QueryAll(root *html.Node, selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", selector, err)
	}
	return sel.MatchAll(root), nil
}

// Render serializes n and its children as HTML.
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

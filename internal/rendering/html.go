package rendering

import (
	_ "embed"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//go:embed assets/base.css
var baseCSS string

// DocumentOptions controls the standalone HTML document around a tree.
type DocumentOptions struct {
	Title string
	// FontHref is an optional stylesheet URL for web fonts.
	FontHref string
	// FrameStyle, when set, wraps the canvas in a preview frame with these
	// declarations (the scale transform for on-screen previews).
	FrameStyle map[string]string
	// CrossOriginImages marks every image for anonymous CORS loading so a
	// rasterizer can read remote photos.
	CrossOriginImages bool
}

var tags = map[Kind]string{
	KindCanvas:     "div",
	KindBox:        "div",
	KindSection:    "section",
	KindHeader:     "header",
	KindTitle:      "h1",
	KindHeading:    "h2",
	KindSubheading: "h3",
	KindText:       "p",
	KindInline:     "span",
	KindImage:      "img",
	KindList:       "ul",
	KindItem:       "li",
	KindBar:        "div",
}

func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag)), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// ClassName is the CSS class a role serializes to ("section.title" -> "cv-section-title").
func ClassName(role string) string {
	return "cv-" + strings.ReplaceAll(role, ".", "-")
}

// ToHTML converts a visual tree into a DOM subtree. Text is escaped by the
// html package at render time; style values are sanitized here.
func ToHTML(n *Node) *html.Node {
	tag, ok := tags[n.Kind]
	if !ok {
		tag = "div"
	}
	out := element(tag)

	if n.Role != "" {
		out.Attr = append(out.Attr,
			html.Attribute{Key: "class", Val: ClassName(n.Role)},
			html.Attribute{Key: "data-role", Val: n.Role},
		)
	}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.Attr = append(out.Attr, html.Attribute{Key: k, Val: n.Attrs[k]})
	}
	if style := StyleString(n.Style); style != "" {
		out.Attr = append(out.Attr, html.Attribute{Key: "style", Val: style})
	}

	if tag == "img" {
		return out
	}
	if n.Text != "" {
		out.AppendChild(textNode(n.Text))
	}
	for _, c := range n.Children {
		out.AppendChild(ToHTML(c))
	}
	return out
}

// NewDocument wraps tree in a complete HTML document with the base stylesheet.
func NewDocument(tree *Node, opts DocumentOptions) (*html.Node, error) {
	if tree == nil {
		return nil, &DocumentError{Message: "nothing to render: tree is nil"}
	}
	title := opts.Title
	if title == "" {
		title = "CV"
	}

	head := element("head")
	head.AppendChild(element("meta", html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(element("meta",
		html.Attribute{Key: "name", Val: "viewport"},
		html.Attribute{Key: "content", Val: "width=device-width, initial-scale=1"},
	))
	titleEl := element("title")
	titleEl.AppendChild(textNode(title))
	head.AppendChild(titleEl)
	if opts.FontHref != "" {
		head.AppendChild(element("link",
			html.Attribute{Key: "rel", Val: "stylesheet"},
			html.Attribute{Key: "href", Val: opts.FontHref},
		))
	}
	style := element("style")
	style.AppendChild(textNode(baseCSS))
	head.AppendChild(style)

	body := element("body")
	canvas := ToHTML(tree)
	if opts.CrossOriginImages {
		markCrossOrigin(canvas)
	}
	if len(opts.FrameStyle) > 0 {
		frame := element("div",
			html.Attribute{Key: "class", Val: "cv-preview-frame"},
			html.Attribute{Key: "style", Val: StyleString(opts.FrameStyle)},
		)
		frame.AppendChild(canvas)
		body.AppendChild(frame)
	} else {
		body.AppendChild(canvas)
	}

	root := element("html", html.Attribute{Key: "lang", Val: "en"})
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)
	return doc, nil
}

func markCrossOrigin(n *html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		n.Attr = append(n.Attr, html.Attribute{Key: "crossorigin", Val: "anonymous"})
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		markCrossOrigin(c)
	}
}

// RenderDocument writes tree as a standalone HTML document.
func RenderDocument(w io.Writer, tree *Node, opts DocumentOptions) error {
	doc, err := NewDocument(tree, opts)
	if err != nil {
		return err
	}
	if err := html.Render(w, doc); err != nil {
		return &DocumentError{Message: "failed to write HTML", Cause: err}
	}
	return nil
}

// DocumentString is RenderDocument into a string.
func DocumentString(tree *Node, opts DocumentOptions) (string, error) {
	var sb strings.Builder
	if err := RenderDocument(&sb, tree, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ImageSources lists the src of every image node in document order.
func ImageSources(tree *Node) []string {
	var out []string
	tree.Walk(func(n *Node) bool {
		if n.Kind == KindImage && n.Attrs["src"] != "" {
			out = append(out, n.Attrs["src"])
		}
		return true
	})
	return out
}

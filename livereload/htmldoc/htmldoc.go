// Package htmldoc implements livereload.Host over an in-memory HTML document.
//
// Nothing is fetched: stylesheet copies stay pending until CompleteLoads or
// FailLoads settles them, and reloading a window only counts the request.
// A Host is not safe for concurrent use; drive it from the client's loop.
package htmldoc

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"plugreload.io/livereload"
)

type Host struct {
	root     *html.Node
	pending  []func()
	failed   int
	reloads  map[string]int
	repaints int
}

var _ livereload.Host = (*Host)(nil)

func Parse(r io.Reader) (*Host, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse document")
	}
	return &Host{root: root, reloads: make(map[string]int)}, nil
}

func (h *Host) Document() livereload.Document {
	return &document{h}
}

// Window accepts any id; reloads are counted per id.
func (h *Host) Window(id string) (livereload.Window, error) {
	return &window{host: h, id: id}, nil
}

func (h *Host) Reloads(id string) int {
	return h.reloads[id]
}

func (h *Host) Repaints() int {
	return h.repaints
}

func (h *Host) PendingLoads() int {
	return len(h.pending)
}

// CompleteLoads settles every inserted stylesheet still waiting for its load
// event and returns how many there were.
func (h *Host) CompleteLoads() int {
	return h.settle()
}

// FailLoads settles every pending stylesheet as if its fetch failed. A failed
// copy stays in the document, like a browser keeps a link whose load errored.
func (h *Host) FailLoads() int {
	n := h.settle()
	h.failed += n
	return n
}

// FailedLoads is the number of stylesheet copies settled by FailLoads.
func (h *Host) FailedLoads() int {
	return h.failed
}

func (h *Host) settle() int {
	pending := h.pending
	h.pending = nil
	for _, settled := range pending {
		settled()
	}
	return len(pending)
}

func (h *Host) Render(w io.Writer) error {
	return html.Render(w, h.root)
}

type window struct {
	host *Host
	id   string
}

func (w *window) Reload() error {
	w.host.reloads[w.id]++
	return nil
}

type document struct {
	host *Host
}

func (d *document) Stylesheets() ([]livereload.Link, error) {
	var links []livereload.Link
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Link && isStylesheet(n) {
			links = append(links, &link{host: d.host, node: n})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.host.root)
	return links, nil
}

func (d *document) Repaint() error {
	d.host.repaints++
	return nil
}

func isStylesheet(n *html.Node) bool {
	rel, ok := attr(n, "rel")
	return ok && strings.EqualFold(strings.TrimSpace(rel), "stylesheet")
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

type link struct {
	host *Host
	node *html.Node
}

func (l *link) Href() string {
	href, _ := attr(l.node, "href")
	return strings.TrimSpace(href)
}

func (l *link) HasAttribute(name string) bool {
	_, ok := attr(l.node, strings.ToLower(name))
	return ok
}

func (l *link) SetAttribute(name, value string) error {
	name = strings.ToLower(name)
	for i, a := range l.node.Attr {
		if a.Namespace == "" && a.Key == name {
			l.node.Attr[i].Val = value
			return nil
		}
	}
	l.node.Attr = append(l.node.Attr, html.Attribute{Key: name, Val: value})
	return nil
}

func (l *link) Attached() bool {
	for n := l.node; n != nil; n = n.Parent {
		if n == l.host.root {
			return true
		}
	}
	return false
}

func (l *link) InsertAfter(href string, settled func()) (livereload.Link, error) {
	if l.node.Parent == nil {
		return nil, errors.New("link is detached")
	}

	n := &html.Node{
		Type:     html.ElementNode,
		Data:     "link",
		DataAtom: atom.Link,
		Attr: []html.Attribute{
			{Key: "rel", Val: "stylesheet"},
			{Key: "type", Val: "text/css"},
			{Key: "href", Val: href},
		},
	}
	l.node.Parent.InsertBefore(n, l.node.NextSibling)
	l.host.pending = append(l.host.pending, settled)

	return &link{host: l.host, node: n}, nil
}

func (l *link) Remove() error {
	if l.node.Parent != nil {
		l.node.Parent.RemoveChild(l.node)
	}
	return nil
}

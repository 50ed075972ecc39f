//go:build js && wasm

package jsdoc

import (
	"syscall/js"

	"github.com/pkg/errors"
	"plugreload.io/livereload"
)

// Host swaps stylesheets of the parent document, so that the client can run
// from an iframe injected into the page it reloads.
type Host struct {
	window js.Value
}

var _ livereload.Host = (*Host)(nil)

func New() *Host {
	return &Host{window: js.Global()}
}

func (h *Host) Document() livereload.Document {
	return &document{value: h.window.Get("parent").Get("document")}
}

// Window looks id up as a property of the global object, like `window[id]`.
func (h *Host) Window(id string) (livereload.Window, error) {
	if id == "" {
		return &window{value: h.window}, nil
	}
	w := h.window.Get(id)
	if w.IsUndefined() || w.IsNull() {
		return nil, errors.Errorf("no window [%s]", id)
	}
	return &window{value: w}, nil
}

type window struct {
	value js.Value
}

func (w *window) Reload() (err error) {
	defer recoverJS(&err)
	w.value.Get("location").Call("reload")
	return nil
}

type document struct {
	value js.Value
}

func (d *document) Stylesheets() (links []livereload.Link, err error) {
	defer recoverJS(&err)
	nodes := d.value.Call("querySelectorAll", "link[rel=stylesheet]")
	for i := 0; i < nodes.Length(); i++ {
		links = append(links, &link{value: nodes.Index(i)})
	}
	return links, nil
}

func (d *document) Repaint() (err error) {
	defer recoverJS(&err)
	if body := d.value.Get("body"); body.Truthy() {
		body.Get("offsetHeight")
	}
	return nil
}

type link struct {
	value js.Value
}

func (l *link) Href() string {
	href := l.value.Get("href")
	if href.Type() != js.TypeString {
		return ""
	}
	return href.String()
}

func (l *link) HasAttribute(name string) bool {
	return l.value.Call("hasAttribute", name).Bool()
}

func (l *link) SetAttribute(name, value string) (err error) {
	defer recoverJS(&err)
	l.value.Call("setAttribute", name, value)
	return nil
}

func (l *link) Attached() bool {
	return l.value.Get("isConnected").Bool()
}

func (l *link) InsertAfter(href string, settled func()) (inserted livereload.Link, err error) {
	defer recoverJS(&err)

	parent := l.value.Get("parentNode")
	if parent.IsNull() {
		return nil, errors.New("link is detached")
	}

	n := l.value.Get("ownerDocument").Call("createElement", "link")

	var onComplete js.Func
	onComplete = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		n.Set("onload", js.Null())
		n.Set("onerror", js.Null())
		onComplete.Release()
		settled()
		return nil
	})
	n.Set("onload", onComplete)
	n.Set("onerror", onComplete)

	n.Call("setAttribute", "rel", "stylesheet")
	n.Call("setAttribute", "type", "text/css")
	n.Call("setAttribute", "href", href)
	parent.Call("insertBefore", n, l.value.Get("nextSibling"))

	return &link{value: n}, nil
}

func (l *link) Remove() (err error) {
	defer recoverJS(&err)
	if parent := l.value.Get("parentNode"); !parent.IsNull() {
		parent.Call("removeChild", l.value)
	}
	return nil
}

// recoverJS turns a thrown JavaScript exception into an error.
func recoverJS(err *error) {
	if r := recover(); r != nil {
		if jsErr, ok := r.(js.Error); ok {
			*err = jsErr
			return
		}
		panic(r)
	}
}

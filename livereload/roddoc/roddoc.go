// Package roddoc implements livereload.Host over a page of a Chrome instance
// driven by go-rod.
package roddoc

import (
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"
	"plugreload.io/livereload"
)

// Launch starts a browser. ROD_BROWSER_BIN selects the Chrome binary; the
// sandbox is disabled in CI and whenever a custom binary is used.
func Launch(headless bool) (*rod.Browser, error) {
	l := launcher.New().Headless(headless)

	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, errors.Wrap(err, "could not launch browser")
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, errors.Wrap(err, "could not connect to browser")
	}
	return browser, nil
}

// Open navigates a new tab to url and waits for it to load.
func Open(browser *rod.Browser, url string) (*rod.Page, error) {
	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, errors.Wrapf(err, "could not open [%s]", url)
	}
	if err := page.WaitLoad(); err != nil {
		page.Close()
		return nil, errors.Wrapf(err, "could not load [%s]", url)
	}
	return page, nil
}

type Host struct {
	page *rod.Page
}

var _ livereload.Host = (*Host)(nil)

func New(page *rod.Page) *Host {
	return &Host{page: page}
}

func (h *Host) Document() livereload.Document {
	return &document{page: h.page}
}

// Window maps `self`, `top`, `parent` and the empty id to the page itself and
// any other id to the iframe of that name.
func (h *Host) Window(id string) (livereload.Window, error) {
	switch id {
	case "", "self", "top", "parent", "window":
		return &window{page: h.page}, nil
	}

	frames, err := h.page.ElementsByJS(rod.Eval(frameByNameJS, id))
	if err != nil {
		return nil, errors.Wrapf(err, "could not look up frame [%s]", id)
	}
	if frames.Empty() {
		return nil, errors.Errorf("no frame named [%s]", id)
	}
	frame, err := frames.First().Frame()
	if err != nil {
		return nil, errors.Wrapf(err, "could not enter frame [%s]", id)
	}
	return &window{page: frame, frame: true}, nil
}

// frameByNameJS finds frames by name without building a selector from it.
const frameByNameJS = `(name) => Array.from(document.getElementsByName(name))
	.filter((el) => el.tagName === 'IFRAME')`

type window struct {
	page  *rod.Page
	frame bool
}

func (w *window) Reload() error {
	if w.frame {
		_, err := w.page.Eval(`() => window.location.reload()`)
		return err
	}
	return w.page.Reload()
}

type document struct {
	page *rod.Page
}

func (d *document) Stylesheets() ([]livereload.Link, error) {
	elements, err := d.page.Elements(`link[rel=stylesheet]`)
	if err != nil {
		return nil, err
	}
	links := make([]livereload.Link, 0, len(elements))
	for _, el := range elements {
		links = append(links, &link{page: d.page, el: el})
	}
	return links, nil
}

func (d *document) Repaint() error {
	_, err := d.page.Eval(`() => document.body && document.body.offsetHeight`)
	return err
}

type link struct {
	page *rod.Page
	el   *rod.Element
}

// Href is the resolved `href` property, as the browser would fetch it.
func (l *link) Href() string {
	href, err := l.el.Property("href")
	if err != nil || href.Nil() {
		return ""
	}
	return href.Str()
}

func (l *link) HasAttribute(name string) bool {
	value, err := l.el.Attribute(name)
	return err == nil && value != nil
}

func (l *link) SetAttribute(name, value string) error {
	_, err := l.el.Eval(`(name, value) => this.setAttribute(name, value)`, name, value)
	return err
}

func (l *link) Attached() bool {
	res, err := l.el.Eval(`() => this.isConnected`)
	return err == nil && res.Value.Bool()
}

const insertAfterJS = `(href) => {
	const link = this.ownerDocument.createElement('link')
	link.__settled = new Promise((resolve) => {
		link.onload = resolve
		link.onerror = resolve
	})
	link.setAttribute('rel', 'stylesheet')
	link.setAttribute('type', 'text/css')
	link.setAttribute('href', href)
	this.parentNode.insertBefore(link, this.nextSibling)
	return link
}`

func (l *link) InsertAfter(href string, settled func()) (livereload.Link, error) {
	obj, err := l.el.Evaluate(rod.Eval(insertAfterJS, href).ByObject())
	if err != nil {
		return nil, err
	}
	inserted, err := l.page.ElementFromObject(obj)
	if err != nil {
		return nil, err
	}

	go func() {
		// An error here means the page went away; the original is gone with it.
		inserted.Evaluate(rod.Eval(`() => this.__settled`).ByPromise())
		settled()
	}()

	return &link{page: l.page, el: inserted}, nil
}

func (l *link) Remove() error {
	if !l.Attached() {
		return nil
	}
	return l.el.Remove()
}

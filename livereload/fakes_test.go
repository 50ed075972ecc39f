package livereload

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

type staticTimeSource time.Time

func (s staticTimeSource) Now() time.Time {
	return time.Time(s)
}

var expectedTime, _ = time.Parse(time.RFC3339, "2018-11-04T23:09:00Z")

type recordingLogger struct {
	infos  []string
	errors []string
}

func (l *recordingLogger) Info(v ...interface{}) {
	l.infos = append(l.infos, fmt.Sprint(v...))
}

func (l *recordingLogger) Infof(format string, v ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Error(v ...interface{}) {
	l.errors = append(l.errors, fmt.Sprint(v...))
}

func (l *recordingLogger) Errorf(format string, v ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

type fakeHost struct {
	document *fakeDocument
	windows  map[string]*fakeWindow
}

func newFakeHost(links ...*fakeLink) *fakeHost {
	h := &fakeHost{
		document: &fakeDocument{},
		windows:  map[string]*fakeWindow{"": {}},
	}
	for _, link := range links {
		link.document = h.document
		h.document.links = append(h.document.links, link)
	}
	return h
}

func (h *fakeHost) Document() Document {
	return h.document
}

func (h *fakeHost) Window(id string) (Window, error) {
	w, ok := h.windows[id]
	if !ok {
		return nil, errors.Errorf("no window [%s]", id)
	}
	return w, nil
}

type fakeWindow struct {
	reloads int
}

func (w *fakeWindow) Reload() error {
	w.reloads++
	return nil
}

type fakeDocument struct {
	links     []*fakeLink
	mutations int
	repaints  int
	listErr   error
}

func (d *fakeDocument) Stylesheets() ([]Link, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	links := make([]Link, 0, len(d.links))
	for _, link := range d.links {
		links = append(links, link)
	}
	return links, nil
}

func (d *fakeDocument) Repaint() error {
	d.repaints++
	return nil
}

func (d *fakeDocument) index(link *fakeLink) int {
	for i, l := range d.links {
		if l == link {
			return i
		}
	}
	return -1
}

func (d *fakeDocument) hrefs() []string {
	var hrefs []string
	for _, link := range d.links {
		hrefs = append(hrefs, link.href)
	}
	return hrefs
}

type fakeLink struct {
	document  *fakeDocument
	href      string
	attrs     map[string]string
	settled   func()
	inserts   int
	insertErr error
}

func newFakeLink(href string, attrs ...string) *fakeLink {
	link := &fakeLink{href: href, attrs: map[string]string{"rel": "stylesheet"}}
	for _, attr := range attrs {
		link.attrs[attr] = ""
	}
	return link
}

func (l *fakeLink) Href() string {
	return l.href
}

func (l *fakeLink) HasAttribute(name string) bool {
	_, ok := l.attrs[name]
	return ok
}

func (l *fakeLink) SetAttribute(name, value string) error {
	l.attrs[name] = value
	l.document.mutations++
	return nil
}

func (l *fakeLink) Attached() bool {
	return l.document.index(l) >= 0
}

func (l *fakeLink) InsertAfter(href string, settled func()) (Link, error) {
	if l.insertErr != nil {
		return nil, l.insertErr
	}
	i := l.document.index(l)
	if i < 0 {
		return nil, errors.New("link detached")
	}

	inserted := newFakeLink(href)
	inserted.attrs["type"] = "text/css"
	inserted.document = l.document
	inserted.settled = settled

	d := l.document
	d.links = append(d.links, nil)
	copy(d.links[i+2:], d.links[i+1:])
	d.links[i+1] = inserted
	d.mutations++
	l.inserts++

	return inserted, nil
}

func (l *fakeLink) Remove() error {
	i := l.document.index(l)
	if i < 0 {
		return nil
	}
	l.document.links = append(l.document.links[:i], l.document.links[i+1:]...)
	l.document.mutations++
	return nil
}

type fakeChannel struct {
	messages []string
	err      error
	closed   chan struct{}
}

func newFakeChannel(err error, messages ...string) *fakeChannel {
	return &fakeChannel{messages: messages, err: err, closed: make(chan struct{})}
}

func (ch *fakeChannel) Receive() (string, error) {
	if len(ch.messages) > 0 {
		m := ch.messages[0]
		ch.messages = ch.messages[1:]
		return m, nil
	}
	if ch.err != nil {
		return "", ch.err
	}
	<-ch.closed
	return "", errors.New("use of closed connection")
}

func (ch *fakeChannel) Close() error {
	select {
	case <-ch.closed:
	default:
		close(ch.closed)
	}
	return nil
}

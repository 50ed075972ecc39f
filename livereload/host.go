package livereload

// Host is the page environment the client acts on.
type Host interface {
	// Document holding the stylesheets to swap.
	Document() Document
	// Window looks up the window to reload by id. Empty id means the current window.
	Window(id string) (Window, error)
}

type Document interface {
	// Stylesheets lists the document's `<link rel="stylesheet">` elements in document order.
	Stylesheets() ([]Link, error)
	// Repaint forces the document's styles to be recomputed.
	Repaint() error
}

type Link interface {
	// Href returns the link's URL, or empty string when it has none.
	Href() string
	HasAttribute(name string) bool
	SetAttribute(name, value string) error
	// Attached reports whether the link is still part of its document.
	Attached() bool
	// InsertAfter creates a stylesheet link pointing to href and inserts it as
	// the next sibling of this link. settled is called once, after the new link
	// either loaded or failed to load, possibly from another goroutine.
	InsertAfter(href string, settled func()) (Link, error)
	// Remove detaches the link from its document. Detached links are left alone.
	Remove() error
}

type Window interface {
	Reload() error
}

package livereload

import (
	"strconv"
	"strings"
)

// RefreshURL drops every numeric `vsn` query parameter from href and appends
// `vsn=<stamp>`. The fragment, if any, is kept at the end.
func RefreshURL(href string, stamp int64) string {
	fragment := ""
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href, fragment = href[:i], href[i:]
	}

	base, query := href, ""
	if i := strings.IndexByte(href, '?'); i >= 0 {
		base, query = href[:i], href[i+1:]
	}

	var params []string
	if query != "" {
		for _, param := range strings.Split(query, "&") {
			if param == "" || isVersionParam(param) {
				continue
			}
			params = append(params, param)
		}
	}
	params = append(params, VersionParam+"="+strconv.FormatInt(stamp, 10))

	return base + "?" + strings.Join(params, "&") + fragment
}

func isVersionParam(param string) bool {
	if !strings.HasPrefix(param, VersionParam+"=") {
		return false
	}
	for _, r := range param[len(VersionParam)+1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// reloadable reports whether link takes part in a stylesheet refresh.
func reloadable(link Link) bool {
	return link.Href() != "" &&
		!link.HasAttribute(NoReloadAttr) &&
		!link.HasAttribute(PendingRemovalAttr)
}

// nextStamp returns the cache-busting value for a refresh pass: the current
// Unix second, bumped past the previous pass when both fall in the same second.
func (c *Client) nextStamp() int64 {
	stamp := c.config.TimeSource.Now().Unix()
	if stamp <= c.lastStamp {
		stamp = c.lastStamp + 1
	}
	c.lastStamp = stamp
	return stamp
}

// refreshStylesheets swaps every reloadable stylesheet of the document for a
// cache-busted copy and returns how many swaps were started.
func (c *Client) refreshStylesheets() int {
	document := c.host.Document()

	links, err := document.Stylesheets()
	if err != nil {
		c.config.Logger.Errorf("could not list stylesheets: %s", err)
		links = nil
	}

	stamp := c.nextStamp()
	swapped := 0

	for _, link := range links {
		if !reloadable(link) {
			continue
		}
		if err := c.swap(link, RefreshURL(link.Href(), stamp)); err != nil {
			c.config.Logger.Errorf("could not refresh stylesheet [%s]: %s", link.Href(), err)
			continue
		}
		swapped++
	}

	c.config.Logger.Info(c.colors.Bold("css:"), " ", swapped, " stylesheet(s) refreshed")

	if c.config.NeedsRepaintWorkaround {
		c.scheduler.AfterFunc(c.config.RepaintDelay, func() {
			if err := document.Repaint(); err != nil {
				c.config.Logger.Errorf("could not repaint: %s", err)
			}
		})
	}

	return swapped
}

func (c *Client) swap(original Link, href string) error {
	settled := func() {
		c.scheduler.Post(func() {
			if !original.Attached() {
				return
			}
			if err := original.Remove(); err != nil {
				c.config.Logger.Errorf("could not remove stale stylesheet: %s", err)
			}
		})
	}

	if _, err := original.InsertAfter(href, settled); err != nil {
		return err
	}

	// settled runs on the loop, never before the marker is set
	return original.SetAttribute(PendingRemovalAttr, "")
}

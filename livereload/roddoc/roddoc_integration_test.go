//go:build integration

package roddoc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"plugreload.io/livereload"
)

const testTimeout = 30 * time.Second

const testPage = `<!DOCTYPE html>
<html>
<head>
<link rel="stylesheet" href="/a.css">
<link rel="stylesheet" href="/b.css" data-no-reload>
</head>
<body><iframe name="preview" src="/frame"></iframe></body>
</html>`

type discardLogger struct{}

func (discardLogger) Info(v ...interface{})                  {}
func (discardLogger) Infof(format string, v ...interface{})  {}
func (discardLogger) Error(v ...interface{})                 {}
func (discardLogger) Errorf(format string, v ...interface{}) {}

func newTestServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, ".css"):
			w.Header().Set("Content-Type", "text/css")
			fmt.Fprint(w, "body { color: black; }")
		case r.URL.Path == "/frame":
			fmt.Fprint(w, "<p>frame</p>")
		default:
			fmt.Fprint(w, testPage)
		}
	}))
}

func hrefs(t *testing.T, host *Host) []string {
	links, err := host.Document().Stylesheets()
	require.NoError(t, err)
	var result []string
	for _, link := range links {
		result = append(result, link.Href())
	}
	return result
}

func TestHost_CSSRefresh(t *testing.T) {
	assert := require.New(t)

	server := newTestServer()
	defer server.Close()

	browser, err := Launch(true)
	assert.NoError(err)
	defer browser.Close()

	page, err := Open(browser, server.URL)
	assert.NoError(err)
	defer page.Close()

	host := New(page)
	loop := livereload.NewLoop()
	client, err := livereload.New(&livereload.Config{
		ServerHost:             strings.TrimPrefix(server.URL, "http://"),
		NeedsRepaintWorkaround: true,
		Logger:                 discardLogger{},
	}, host, loop)
	assert.NoError(err)

	loop.Post(func() {
		client.Execute(livereload.StrategyCSS)
	})

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	// load events arrive from the browser, poll until the stale copy is gone
	var got []string
	for {
		assert.NoError(loop.Drain(ctx))
		if got = hrefs(t, host); len(got) == 2 || ctx.Err() != nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	assert.Len(got, 2)
	assert.Contains(got[0], "/a.css?vsn=")
	assert.Equal(server.URL+"/b.css", got[1])
}

func TestHost_Window(t *testing.T) {
	assert := require.New(t)

	server := newTestServer()
	defer server.Close()

	browser, err := Launch(true)
	assert.NoError(err)
	defer browser.Close()

	page, err := Open(browser, server.URL)
	assert.NoError(err)
	defer page.Close()

	host := New(page)

	w, err := host.Window("preview")
	assert.NoError(err)
	assert.NoError(w.Reload())

	_, err = host.Window("missing")
	assert.Error(err)

	_, err = host.Window(`pre"view\\`)
	assert.Error(err)

	w, err = host.Window("")
	assert.NoError(err)
	assert.NoError(w.Reload())
}

package livereload_test

import (
	"fmt"
	"strings"
	"time"

	"plugreload.io/livereload"
	"plugreload.io/livereload/htmldoc"
	"plugreload.io/livereload/livereloadtest"
)

type fixedTime struct{}

func (fixedTime) Now() time.Time {
	return time.Unix(1541372940, 0)
}

type silent struct{}

func (silent) Info(v ...interface{})                  {}
func (silent) Infof(format string, v ...interface{})  {}
func (silent) Error(v ...interface{})                 {}
func (silent) Errorf(format string, v ...interface{}) {}

func ExampleRefreshURL() {
	fmt.Println(livereload.RefreshURL("style.css?vsn=111", 1541372940))
	fmt.Println(livereload.RefreshURL("style.css?theme=dark&vsn=111", 1541372940))
	// Output:
	// style.css?vsn=1541372940
	// style.css?theme=dark&vsn=1541372940
}

func ExampleClient_Dispatch() {
	host, _ := htmldoc.Parse(strings.NewReader(`<link rel="stylesheet" href="a.css">`))
	scheduler := livereloadtest.NewScheduler()

	client, _ := livereload.New(&livereload.Config{
		ServerHost:    "localhost:4000",
		DispatchDelay: 100 * time.Millisecond,
		Logger:        silent{},
		TimeSource:    fixedTime{},
	}, host, scheduler)

	client.Dispatch("css")
	scheduler.Advance(100 * time.Millisecond)

	links, _ := host.Document().Stylesheets()
	for _, link := range links {
		fmt.Println(link.Href(), link.HasAttribute(livereload.PendingRemovalAttr))
	}

	host.CompleteLoads()
	scheduler.Flush()

	links, _ = host.Document().Stylesheets()
	fmt.Println(len(links), links[0].Href())
	// Output:
	// a.css true
	// a.css?vsn=1541372940 false
	// 1 a.css?vsn=1541372940
}

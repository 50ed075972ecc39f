//go:build js && wasm

// Command plugreload-wasm is the in-browser client. The embedding page defines
// the globals `interval` (dispatch delay in milliseconds) and `targetWindow`
// (name of the window to reload) before loading it, and optionally
// `needsRepaintWorkaround`.
package main

import (
	"context"
	"log"
	"syscall/js"
	"time"

	"plugreload.io/livereload"
	"plugreload.io/livereload/jsdoc"
	"plugreload.io/livereload/stdlogger"
)

func main() {
	global := js.Global()

	config := &livereload.Config{
		ServerHost:             global.Get("location").Get("host").String(),
		Secure:                 global.Get("location").Get("protocol").String() == "https:",
		DispatchDelay:          time.Duration(numberOr(global.Get("interval"), 0)) * time.Millisecond,
		TargetWindow:           stringOr(global.Get("targetWindow"), ""),
		NeedsRepaintWorkaround: global.Get("needsRepaintWorkaround").Truthy(),
		// browser consoles do not render ANSI colors
		NoColors: true,
	}
	config.Logger = stdlogger.New(log.New(consoleWriter{}, "", 0), config.NoColors)

	loop := livereload.NewLoop()
	client, err := livereload.New(config, jsdoc.New(), loop)
	if err != nil {
		config.Logger.Errorf("could not start live reload: %s", err)
		return
	}

	ch, err := jsdoc.Dial(config)
	if err != nil {
		config.Logger.Error(err)
		return
	}

	ctx := context.Background()
	go loop.Run(ctx)

	if err := client.Run(ctx, ch); err != nil {
		config.Logger.Error(err)
	}
}

func numberOr(v js.Value, def int) int {
	if v.Type() != js.TypeNumber {
		return def
	}
	return v.Int()
}

func stringOr(v js.Value, def string) string {
	if v.Type() != js.TypeString {
		return def
	}
	return v.String()
}

type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", string(p))
	return len(p), nil
}

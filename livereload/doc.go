/*
This package is the client half of a development live reload: it keeps a socket open to the development server and,
whenever the server announces a changed asset, either swaps the page's stylesheets in place or reloads the page.

	import (
	    "plugreload.io/livereload"
	)

	func main() {
	    loop := livereload.NewLoop()

	    config := &livereload.Config{
	        ServerHost:    "localhost:4000",       // Server serving `/plug_live_reload/socket`.
	        DispatchDelay: 100 * time.Millisecond, // Give the server time to finish writing assets.
	    }

	    // `host` adapts the page, see packages htmldoc, roddoc and jsdoc.
	    client, err := livereload.New(config, host, loop)
	    if err != nil {
	        panic(err)
	    }

	    ch, err := livereload.Dial(ctx, config)
	    if err != nil {
	        panic(err)
	    }

	    go loop.Run(ctx)

	    if err := client.Run(ctx, ch); err != nil {
	        panic(err)
	    }
	}

# Messages

Every message the server sends is a bare tag. `css` refreshes stylesheets, `page` and anything else reloads the target
window. The client never writes to the socket and never reconnects: once the connection drops, Run returns.

# Stylesheet refresh

Every `<link rel="stylesheet">` with a non-empty href that is marked neither `data-no-reload` nor
`data-pending-removal` gets a copy inserted right after it, with the `vsn` query parameter replaced by a fresh stamp.
The original is marked `data-pending-removal` and removed once the copy loads or fails to load. The stamp is the
current Unix second, bumped so that two refreshes never share one.

# Event loop

All DOM work happens on one goroutine, the one running `Loop.Run`. Socket reads, timers and load notifications only
post callbacks to it.
*/
package livereload

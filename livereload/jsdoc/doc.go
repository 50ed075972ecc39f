// Package jsdoc implements livereload.Host and livereload.Channel inside the
// browser, for clients compiled to WebAssembly (GOOS=js GOARCH=wasm).
package jsdoc

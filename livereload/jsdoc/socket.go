//go:build js && wasm

package jsdoc

import (
	"sync"
	"syscall/js"

	"github.com/pkg/errors"
	"plugreload.io/livereload"
)

type socketChannel struct {
	socket js.Value
	funcs  []js.Func
	ready  chan struct{}
	closed chan struct{}

	mu       sync.Mutex
	messages []string
	err      error
}

var _ livereload.Channel = (*socketChannel)(nil)

// Dial opens a browser WebSocket to the notification endpoint and waits until
// it is open.
func Dial(config *livereload.Config) (livereload.Channel, error) {
	socketURL := config.SocketURL()
	ch := &socketChannel{
		ready:  make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
	opened := make(chan struct{})

	ch.socket = js.Global().Get("WebSocket").New(socketURL)

	// JS callbacks must not block, every handler below returns right away.
	ch.on("open", func(js.Value) {
		close(opened)
	})
	ch.on("message", func(event js.Value) {
		data := event.Get("data")
		if data.Type() != js.TypeString {
			data = js.Global().Get("String").Invoke(data)
		}
		ch.push(data.String())
	})
	ch.on("close", func(event js.Value) {
		ch.fail(errors.Errorf("socket closed with code [%d]", event.Get("code").Int()))
	})
	ch.on("error", func(js.Value) {
		ch.fail(errors.Errorf("socket [%s] failed", socketURL))
	})

	select {
	case <-opened:
		return ch, nil
	case <-ch.closed:
		return nil, errors.Wrapf(ch.err, "could not dial [%s]", socketURL)
	}
}

func (ch *socketChannel) on(event string, handler func(js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		handler(args[0])
		return nil
	})
	ch.funcs = append(ch.funcs, f)
	ch.socket.Call("addEventListener", event, f)
}

func (ch *socketChannel) push(m string) {
	ch.mu.Lock()
	ch.messages = append(ch.messages, m)
	ch.mu.Unlock()

	select {
	case ch.ready <- struct{}{}:
	default:
	}
}

func (ch *socketChannel) fail(err error) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.err != nil {
		return
	}
	ch.err = err
	close(ch.closed)
}

func (ch *socketChannel) Receive() (string, error) {
	for {
		ch.mu.Lock()
		if len(ch.messages) > 0 {
			m := ch.messages[0]
			ch.messages = ch.messages[1:]
			ch.mu.Unlock()
			return m, nil
		}
		ch.mu.Unlock()

		select {
		case <-ch.ready:
		case <-ch.closed:
			ch.mu.Lock()
			defer ch.mu.Unlock()
			return "", ch.err
		}
	}
}

func (ch *socketChannel) Close() error {
	ch.fail(errors.New("socket closed"))
	ch.socket.Call("close")
	ch.release()
	return nil
}

func (ch *socketChannel) release() {
	for _, f := range ch.funcs {
		f.Release()
	}
	ch.funcs = nil
}

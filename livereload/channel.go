package livereload

import (
	"context"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// Channel is the receive side of the notification connection.
type Channel interface {
	// Receive blocks until the next message and returns its payload.
	Receive() (string, error)
	// Close unblocks a pending Receive and releases the connection.
	Close() error
}

type socketChannel struct {
	conn *websocket.Conn
}

// Dial opens the notification socket described by config.
func Dial(ctx context.Context, config *Config) (Channel, error) {
	socketURL := config.SocketURL()
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, socketURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "could not dial [%s]", socketURL)
	}
	return &socketChannel{conn: conn}, nil
}

func (ch *socketChannel) Receive() (string, error) {
	_, data, err := ch.conn.ReadMessage()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (ch *socketChannel) Close() error {
	return ch.conn.Close()
}

package eddn

import (
	"context"
	"fmt"

	"github.com/go-zeromq/zmq4"
)

// FeedSocket is the slice of a subscribe socket the listener needs.
type FeedSocket interface {
	Dial(endpoint string) error
	Recv() ([]byte, error)
	Close() error
}

// subSocket adapts a ZeroMQ SUB socket subscribed to every topic.
type subSocket struct {
	sock zmq4.Socket
}

// NewSubSocket returns a FeedSocket over ZeroMQ. The context bounds the
// socket's lifetime.
func NewSubSocket(ctx context.Context) FeedSocket {
	return &subSocket{sock: zmq4.NewSub(ctx)}
}

func (s *subSocket) Dial(endpoint string) error {
	if err := s.sock.Dial(endpoint); err != nil {
		return fmt.Errorf("dial %s: %w", endpoint, err)
	}

	// No topic filter: the relay publishes every schema on one socket.
	if err := s.sock.SetOption(zmq4.OptionSubscribe, ""); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	return nil
}

func (s *subSocket) Recv() ([]byte, error) {
	msg, err := s.sock.Recv()
	if err != nil {
		return nil, err
	}
	return msg.Bytes(), nil
}

func (s *subSocket) Close() error {
	return s.sock.Close()
}

// Package transport carries encoded wire frames between a predicting client
// and an authoritative server. Transports are frame-oriented and treated as
// plain producers/consumers at the edges of each side's simulation; ordering
// is the transport's responsibility.
package transport

import "github.com/predmove/predmove/perror"

// Transport sends and receives opaque frames.
type Transport interface {
	// WriteFrame sends one frame. The slice is not retained.
	WriteFrame(dat []byte) error
	// ReadFrame blocks until the next frame arrives or the transport closes.
	ReadFrame() ([]byte, error)
	Close() error
}

// ErrClosed is returned by pipe ends once the pipe has been closed.
var ErrClosed = perror.New("transport: closed")

type pipeEnd struct {
	in, out chan []byte
	done    chan struct{}
}

// Pipe returns two connected in-memory transports. Frames written to one end
// are read from the other in order. Useful for tests and same-process
// client/server pairs.
func Pipe(backlog int) (Transport, Transport) {
	a := make(chan []byte, backlog)
	b := make(chan []byte, backlog)
	done := make(chan struct{})
	return &pipeEnd{in: a, out: b, done: done}, &pipeEnd{in: b, out: a, done: done}
}

func (p *pipeEnd) WriteFrame(dat []byte) error {
	cp := append([]byte(nil), dat...)
	select {
	case p.out <- cp:
		return nil
	case <-p.done:
		return ErrClosed
	}
}

func (p *pipeEnd) ReadFrame() ([]byte, error) {
	select {
	case dat := <-p.in:
		return dat, nil
	case <-p.done:
		// Drain anything buffered before reporting closure.
		select {
		case dat := <-p.in:
			return dat, nil
		default:
			return nil, ErrClosed
		}
	}
}

func (p *pipeEnd) Close() error {
	select {
	case <-p.done:
	default:
		close(p.done)
	}
	return nil
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bidi

import (
	"code.hybscloud.com/iox"
)

// conduit is one direction of a pair: a native channel extended with
// the two contracts a bare chan lacks. done is closed by the receiving
// endpoint when it drops, so a pending or later send fails instead of
// blocking forever. Unbounded conduits interpose a pump goroutine
// between in and out; bounded conduits use a single channel as both.
type conduit[T any] struct {
	in   chan T        // send side writes here
	out  chan T        // recv side reads here; == in unless unbounded
	done chan struct{} // closed when the receiving endpoint drops
}

// init sets up a bounded conduit. Capacity 0 is a rendezvous: a send
// completes only while a receive is concurrently in progress.
func (c *conduit[T]) init(capacity int) {
	ch := make(chan T, capacity)
	c.in = ch
	c.out = ch
	c.done = make(chan struct{})
}

// initUnbounded sets up an unbounded conduit backed by a pump.
func (c *conduit[T]) initUnbounded() {
	c.in = make(chan T)
	c.out = make(chan T)
	c.done = make(chan struct{})
	go pump(c.in, c.out, c.done)
}

// unbounded reports whether a pump sits between in and out, so a send
// never waits for buffer space.
func (c *conduit[T]) unbounded() bool {
	return c.in != c.out
}

// pump shuttles values from in to out through an elastic FIFO buffer.
// Once in closes, the buffer is drained into out before out closes, so
// the receiver observes every remaining message ahead of closure. A
// done closure stops the pump at once; nothing reads out past that
// point.
func pump[T any](in <-chan T, out chan<- T, done <-chan struct{}) {
	var buf []T
	for {
		var (
			ready chan<- T
			next  T
		)
		if len(buf) > 0 {
			ready = out
			next = buf[0]
		} else if in == nil {
			close(out)
			return
		}
		select {
		case v, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			buf = append(buf, v)
		case ready <- next:
			var zero T
			buf[0] = zero // release the popped slot for the collector
			buf = buf[1:]
		case <-done:
			return
		}
	}
}

// send blocks until v is accepted or the receiving side is gone.
func (c *conduit[T]) send(v T) error {
	select {
	case <-c.done:
		return &SendError[T]{Value: v}
	default:
	}
	select {
	case c.in <- v:
		return nil
	case <-c.done:
		return &SendError[T]{Value: v}
	}
}

// trySend delivers immediately or reports why it cannot. Unbounded
// conduits accept promptly and never report would-block.
func (c *conduit[T]) trySend(v T) error {
	if c.unbounded() {
		return c.send(v)
	}
	select {
	case <-c.done:
		return &SendError[T]{Value: v}
	default:
	}
	select {
	case c.in <- v:
		return nil
	case <-c.done:
		return &SendError[T]{Value: v}
	default:
		return iox.ErrWouldBlock
	}
}

// recv blocks for the next value; ok is false once the direction is
// closed and drained. Buffered values are delivered ahead of sender
// closure.
func (c *conduit[T]) recv() (T, bool) {
	select {
	case v, ok := <-c.out:
		return v, ok
	case <-c.done:
		var zero T
		return zero, false
	}
}

// tryRecv returns immediately: a delivered value, closed-and-drained,
// or iox.ErrWouldBlock while the direction is empty but still open.
func (c *conduit[T]) tryRecv() (T, bool, error) {
	var zero T
	select {
	case v, ok := <-c.out:
		if !ok {
			return zero, false, nil
		}
		return v, true, nil
	case <-c.done:
		return zero, false, nil
	default:
		return zero, false, iox.ErrWouldBlock
	}
}

// closeSend closes the sending half; the receiver drains any buffered
// messages and then observes closure.
func (c *conduit[T]) closeSend() {
	close(c.in)
}

// closeRecv marks the receiving half gone; pending and later sends
// fail with *SendError.
func (c *conduit[T]) closeRecv() {
	close(c.done)
}

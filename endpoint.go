// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bidi

import (
	"code.hybscloud.com/atomix"
)

// Endpoint is one side of a bidirectional channel pair. It receives
// values of type T and sends values of type U; its peer is the
// mirror-typed Endpoint[U, T]. The two endpoints share no mutable
// state beyond the underlying conduits, which own all coordination.
//
// The intended idiom is one goroutine per endpoint side per
// direction. Close must not race with this same endpoint's Send or
// Recv; this is the native channel contract, inherited unchanged.
type Endpoint[T, U any] struct {
	in     *conduit[T]
	out    *conduit[U]
	closed atomix.Uint32
	serial Serial
}

// pair holds both endpoints and both conduits in a single allocation.
// Conduits are embedded as values; only the channels are separate
// heap objects.
type pair[T, U any] struct {
	left  Endpoint[T, U]
	right Endpoint[U, T]
	lr    conduit[U] // left sends, right receives
	rl    conduit[T] // right sends, left receives
}

// wire cross-threads the conduits into the two endpoints: left's
// outbound conduit is right's inbound conduit and vice versa, for the
// whole lifetime of the pair.
func (p *pair[T, U]) wire() (*Endpoint[T, U], *Endpoint[U, T]) {
	s := nextSerial()
	p.left = Endpoint[T, U]{in: &p.rl, out: &p.lr, serial: s}
	p.right = Endpoint[U, T]{in: &p.lr, out: &p.rl, serial: s}
	return &p.left, &p.right
}

// Bounded creates a connected endpoint pair whose two directions each
// buffer up to capacity messages. The directions are independent:
// backpressure or closure on one never affects the other. Capacity 0
// is legal and yields a rendezvous on both directions. Panics if
// capacity is negative; there are no other construction failures.
//
// No effort is made to prevent a deadlock: with both sides blocked
// sending on a full direction while neither receives, the pair hangs
// indefinitely. Avoiding or recognizing that state is the caller's
// responsibility.
func Bounded[T, U any](capacity int) (*Endpoint[T, U], *Endpoint[U, T]) {
	if capacity < 0 {
		panic("bidi: negative capacity")
	}
	p := &pair[T, U]{}
	p.lr.init(capacity)
	p.rl.init(capacity)
	return p.wire()
}

// Unbounded creates a connected endpoint pair whose two directions
// hold any number of messages. Sends never block waiting for buffer
// space.
func Unbounded[T, U any]() (*Endpoint[T, U], *Endpoint[U, T]) {
	p := &pair[T, U]{}
	p.lr.initUnbounded()
	p.rl.initUnbounded()
	return p.wire()
}

// Serial returns the serial number stamped on this endpoint's pair.
// Both endpoints of a pair report the same serial.
func (ep *Endpoint[T, U]) Serial() Serial {
	return ep.serial
}

// Send delivers v to the peer. It blocks while the outbound direction
// is full (bounded) or until a receive pairs up with it (rendezvous).
// It fails with a *SendError carrying v once the peer's receive side
// is permanently gone, and after Close on this endpoint; the value is
// handed back for reuse, never dropped.
func (ep *Endpoint[T, U]) Send(v U) error {
	if ep.closed.Load() != 0 {
		return &SendError[U]{Value: v}
	}
	return ep.out.send(v)
}

// Recv blocks for the next inbound value. ok is false once the peer's
// send side has been dropped and every buffered message was drained;
// that is the normal end-of-communication signal, not an error.
// Draining always takes priority over reporting closure.
func (ep *Endpoint[T, U]) Recv() (v T, ok bool) {
	if ep.closed.Load() != 0 {
		return v, false
	}
	return ep.in.recv()
}

// TrySend is the non-blocking Send: instead of waiting for buffer
// space or a rendezvous partner it returns iox.ErrWouldBlock.
// Unbounded directions never report would-block.
func (ep *Endpoint[T, U]) TrySend(v U) error {
	if ep.closed.Load() != 0 {
		return &SendError[U]{Value: v}
	}
	return ep.out.trySend(v)
}

// TryRecv is the non-blocking Recv: (v, true, nil) for a delivered
// message, (zero, false, nil) once closed and drained, and
// (zero, false, iox.ErrWouldBlock) while empty but still open.
func (ep *Endpoint[T, U]) TryRecv() (v T, ok bool, err error) {
	if ep.closed.Load() != 0 {
		return v, false, nil
	}
	return ep.in.tryRecv()
}

// Close drops this endpoint. The peer endpoint stays usable: its Recv
// drains buffered messages and then reports closure, and its Send
// fails with a *SendError. Operations on the closed endpoint itself
// are terminal from then on. Close is idempotent and never fails.
func (ep *Endpoint[T, U]) Close() error {
	if ep.closed.Add(1) != 1 {
		return nil
	}
	ep.out.closeSend()
	ep.in.closeRecv()
	return nil
}

// RecvChan exposes the inbound delivery channel, implementing
// Receiver[T]. The channel is owned by the pair: consume it with
// receive operations only. After Close it is a closed channel, so a
// receive branch over a dropped endpoint is immediately ready.
func (ep *Endpoint[T, U]) RecvChan() <-chan T {
	if ep.closed.Load() != 0 {
		ch := make(chan T)
		close(ch)
		return ch
	}
	return ep.in.out
}

// SendChan exposes the outbound channel, implementing Sender[U].
// After Close it is nil, leaving Done alone to decide readiness of a
// send branch.
func (ep *Endpoint[T, U]) SendChan() chan<- U {
	if ep.closed.Load() != 0 {
		return nil
	}
	return ep.out.in
}

// Done reports permanent outbound disconnection: closed once the
// peer's receive side dropped, or immediately after Close on this
// endpoint.
func (ep *Endpoint[T, U]) Done() <-chan struct{} {
	if ep.closed.Load() != 0 {
		return closedchan
	}
	return ep.out.done
}

// sendNeverBlocks reports whether sends on this endpoint always
// complete without waiting, as on an unbounded outbound direction.
// Selection treats such a send operand as permanently ready.
func (ep *Endpoint[T, U]) sendNeverBlocks() bool {
	return ep.out.unbounded()
}

// closedchan is a reusable already-closed channel.
var closedchan = make(chan struct{})

func init() {
	close(closedchan)
}

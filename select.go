// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bidi

import (
	"math/rand/v2"
	"reflect"
	"time"
)

// Receiver is the capability an operand needs to take part in a
// selection as a receive branch. *Endpoint implements it; RecvOf
// adapts a plain channel.
type Receiver[T any] interface {
	// RecvChan exposes the delivery channel. A closed channel marks
	// the exhausted state: the branch becomes ready with ok == false.
	RecvChan() <-chan T
}

// Sender is the capability an operand needs to take part in a
// selection as a send branch. *Endpoint implements it; SendOf adapts
// a plain channel.
type Sender[U any] interface {
	// SendChan exposes the channel sends go to. A nil channel
	// withdraws the delivery branch.
	SendChan() chan<- U

	// Done is closed once delivery can never happen again. A nil
	// channel means no disconnection signal exists.
	Done() <-chan struct{}
}

// eagerSender marks a sender whose delivery can be committed at any
// moment without waiting. Such an operand counts as ready in every
// selection.
type eagerSender[U any] interface {
	Send(v U) error
	sendNeverBlocks() bool
}

// Case is one operand of a Select call, built by Recv, Send, After or
// Default. A Case is single-use: build fresh operands for every
// Select call.
type Case struct {
	entries []caseEntry
}

type caseEntry struct {
	sc     reflect.SelectCase
	fire   func(v reflect.Value, ok bool)
	commit func() // non-nil when the communication can complete at any moment
}

// Recv builds a receive operand on src. When the branch fires, fn
// observes exactly what Recv on an endpoint would have returned: the
// value and true, or zero and false once src is closed and drained.
func Recv[T any](src Receiver[T], fn func(v T, ok bool)) Case {
	return Case{entries: []caseEntry{{
		sc: reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(src.RecvChan()),
		},
		fire: func(rv reflect.Value, ok bool) {
			var v T
			if ok {
				reflect.ValueOf(&v).Elem().Set(rv)
			}
			fn(v, ok)
		},
	}}}
}

// Send builds a send operand delivering v to dst. When the branch
// fires, fn observes exactly what Send on an endpoint would have
// returned: nil on delivery, or a *SendError carrying v back once dst
// is disconnected. A dst already disconnected when the operand is
// built yields only the failure branch, so buffer space left in the
// direction never turns into a silent success. On an unbounded
// direction the operand is permanently ready, since such a send never
// blocks. The operand snapshots dst's channels at build time, so
// closing dst concurrently with the selection is the same caller
// error as closing it concurrently with Send.
func Send[U any](dst Sender[U], v U, fn func(err error)) Case {
	done := dst.Done()
	select {
	case <-done:
		return Case{entries: []caseEntry{{
			sc: reflect.SelectCase{
				Dir:  reflect.SelectRecv,
				Chan: reflect.ValueOf(done),
			},
			fire: func(reflect.Value, bool) {
				fn(&SendError[U]{Value: v})
			},
		}}}
	default:
	}
	var commit func()
	if es, ok := dst.(eagerSender[U]); ok && es.sendNeverBlocks() {
		commit = func() { fn(es.Send(v)) }
	}
	return Case{entries: []caseEntry{
		{
			sc: reflect.SelectCase{
				Dir:  reflect.SelectSend,
				Chan: reflect.ValueOf(dst.SendChan()),
				Send: reflect.ValueOf(&v).Elem(),
			},
			fire: func(reflect.Value, bool) {
				fn(nil)
			},
			commit: commit,
		},
		{
			sc: reflect.SelectCase{
				Dir:  reflect.SelectRecv,
				Chan: reflect.ValueOf(done),
			},
			fire: func(reflect.Value, bool) {
				fn(&SendError[U]{Value: v})
			},
		},
	}}
}

// After builds a timer operand that fires once d has elapsed, counted
// from the moment After is called.
func After(d time.Duration, fn func()) Case {
	return Case{entries: []caseEntry{{
		sc: reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(time.After(d)),
		},
		fire: func(reflect.Value, bool) {
			fn()
		},
	}}}
}

// Default builds the non-blocking escape branch: it fires if and only
// if no other operand is ready at the moment Select runs.
func Default(fn func()) Case {
	return Case{entries: []caseEntry{{
		sc:   reflect.SelectCase{Dir: reflect.SelectDefault},
		fire: func(reflect.Value, bool) { fn() },
	}}}
}

// Select blocks until one of the operands can proceed, executes that
// single operand's communication, and invokes its callback. Exactly
// one callback runs per call. When several operands are ready one of
// them is chosen at random. An operand whose communication can never
// block, such as a send on an unbounded direction, always counts as
// ready, and Default never fires over one. Panics when called with no
// operands, and when more than one Default operand is supplied.
func Select(cases ...Case) {
	n := 0
	for i := range cases {
		n += len(cases[i].entries)
	}
	if n == 0 {
		panic("bidi: select of no cases")
	}
	entries := make([]caseEntry, 0, n)
	for i := range cases {
		entries = append(entries, cases[i].entries...)
	}
	defaults := 0
	var commits []func()
	for i := range entries {
		if entries[i].sc.Dir == reflect.SelectDefault {
			defaults++
		}
		if entries[i].commit != nil {
			commits = append(commits, entries[i].commit)
		}
	}
	if defaults > 1 {
		panic("bidi: multiple default cases")
	}

	if len(commits) == 0 {
		scs := make([]reflect.SelectCase, 0, n)
		fires := make([]func(reflect.Value, bool), 0, n)
		for i := range entries {
			scs = append(scs, entries[i].sc)
			fires = append(fires, entries[i].fire)
		}
		chosen, rv, ok := reflect.Select(scs)
		fires[chosen](rv, ok)
		return
	}

	// A permanently ready operand makes the whole selection
	// non-blocking: poll the channel cases once, then commit one of
	// the permanently ready operands if no channel case was. The
	// caller's Default is unreachable here and stays out of the poll.
	scs := make([]reflect.SelectCase, 0, n+1)
	fires := make([]func(reflect.Value, bool), 0, n)
	for i := range entries {
		if entries[i].sc.Dir == reflect.SelectDefault {
			continue
		}
		scs = append(scs, entries[i].sc)
		fires = append(fires, entries[i].fire)
	}
	scs = append(scs, reflect.SelectCase{Dir: reflect.SelectDefault})
	chosen, rv, ok := reflect.Select(scs)
	if chosen < len(fires) {
		fires[chosen](rv, ok)
		return
	}
	commits[rand.IntN(len(commits))]()
}

// RecvOf adapts a plain receive channel into a Receiver so it can mix
// with endpoint operands in one Select.
func RecvOf[T any](ch <-chan T) Receiver[T] {
	return recvChan[T](ch)
}

// SendOf adapts a plain send channel into a Sender. A plain channel
// carries no disconnection signal, so the operand can never fail with
// a *SendError; sending on it after close panics, as it would in a
// native select.
func SendOf[U any](ch chan<- U) Sender[U] {
	return sendChan[U](ch)
}

type recvChan[T any] <-chan T

func (c recvChan[T]) RecvChan() <-chan T { return (<-chan T)(c) }

type sendChan[U any] chan<- U

func (c sendChan[U]) SendChan() chan<- U    { return (chan<- U)(c) }
func (c sendChan[U]) Done() <-chan struct{} { return nil }

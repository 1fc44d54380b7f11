// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bidi

import (
	"code.hybscloud.com/kont"
)

// Run creates an unbounded endpoint pair, runs both procedures against
// opposite ends, and returns both results. The right procedure runs on
// its own goroutine; the left procedure runs on the calling goroutine.
// Each endpoint is closed the moment its procedure returns, so a side
// that outlives its peer observes closure instead of hanging on a
// vanished partner.
func Run[T, U, A, B any](left func(*Endpoint[T, U]) A, right func(*Endpoint[U, T]) B) (A, B) {
	epL, epR := Unbounded[T, U]()
	var b B
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer epR.Close()
		b = right(epR)
	}()
	a := func() A {
		defer epL.Close()
		return left(epL)
	}()
	<-done
	return a, b
}

// RunError creates an unbounded endpoint pair, runs both fallible
// procedures against opposite ends, and returns both results as Either
// values: Right on success, Left carrying the returned error. The two
// sides fail independently; one side erroring out only ever surfaces
// to the other as endpoint closure.
func RunError[T, U, A, B any](left func(*Endpoint[T, U]) (A, error), right func(*Endpoint[U, T]) (B, error)) (kont.Either[error, A], kont.Either[error, B]) {
	return Run(
		func(ep *Endpoint[T, U]) kont.Either[error, A] {
			a, err := left(ep)
			if err != nil {
				return kont.Left[error, A](err)
			}
			return kont.Right[error](a)
		},
		func(ep *Endpoint[U, T]) kont.Either[error, B] {
			b, err := right(ep)
			if err != nil {
				return kont.Left[error, B](err)
			}
			return kont.Right[error](b)
		},
	)
}

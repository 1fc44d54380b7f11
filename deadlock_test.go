// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bidi_test

import (
	"testing"

	"code.hybscloud.com/bidi"
)

func TestFullDuplexRendezvous(t *testing.T) {
	// Both sides drive both directions of a rendezvous pair; the
	// cross-wired directions hand over without mutual blocking.
	left, right := bidi.Bounded[int, int](0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			if err := right.Send(i); err != nil {
				t.Errorf("right send %d: %v", i, err)
				return
			}
		}
		for i := 0; i < 100; i++ {
			if n, ok := right.Recv(); !ok || n != i {
				t.Errorf("right got (%d, %v), want (%d, true)", n, ok, i)
				return
			}
		}
	}()

	for i := 0; i < 100; i++ {
		if n, ok := left.Recv(); !ok || n != i {
			t.Fatalf("left got (%d, %v), want (%d, true)", n, ok, i)
		}
	}
	for i := 0; i < 100; i++ {
		if err := left.Send(i); err != nil {
			t.Fatalf("left send %d: %v", i, err)
		}
	}
	<-done
}

func TestPingPongBounded(t *testing.T) {
	// A strict request/response loop across both directions never
	// stalls with capacity 1.
	left, right := bidi.Bounded[int, int](1)

	go func() {
		for {
			n, ok := right.Recv()
			if !ok {
				return
			}
			right.Send(n + 1)
		}
	}()

	v := 0
	for i := 0; i < 1000; i++ {
		if err := left.Send(v); err != nil {
			t.Fatalf("send: %v", err)
		}
		r, ok := left.Recv()
		if !ok {
			t.Fatal("reply direction closed early")
		}
		v = r
	}
	left.Close()

	if v != 1000 {
		t.Fatalf("got %d, want 1000", v)
	}
}

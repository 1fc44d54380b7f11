// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bidi_test

import (
	"testing"

	"code.hybscloud.com/bidi"
)

func TestDelegAcceptRoundtrip(t *testing.T) {
	// A delegates a sub-pair endpoint to B.
	// B uses the delegated endpoint to communicate with C.
	subA, subB := bidi.Unbounded[struct{}, string]()

	// C: receives on subB, closes (separate goroutine, third party)
	done := make(chan string)
	go func() {
		s, _ := subB.Recv()
		subB.Close()
		done <- s
	}()

	aResult, bResult := bidi.Run(
		// A delegates subA to B, then returns
		func(ep *bidi.Endpoint[struct{}, *bidi.Endpoint[struct{}, string]]) string {
			if err := ep.Send(subA); err != nil {
				return "send failed"
			}
			return "delegated"
		},
		// B accepts the endpoint, sends "hello" on it, then closes it
		func(ep *bidi.Endpoint[*bidi.Endpoint[struct{}, string], struct{}]) string {
			sub, ok := ep.Recv()
			if !ok {
				return "no endpoint"
			}
			if err := sub.Send("hello"); err != nil {
				return "sub send failed"
			}
			sub.Close()
			return "accepted"
		},
	)
	cResult := <-done

	if aResult != "delegated" {
		t.Fatalf("A got %q, want %q", aResult, "delegated")
	}
	if bResult != "accepted" {
		t.Fatalf("B got %q, want %q", bResult, "accepted")
	}
	if cResult != "hello" {
		t.Fatalf("C got %q, want %q", cResult, "hello")
	}
}

func TestDelegThreePartyChain(t *testing.T) {
	// A delegates to B, B uses the delegated endpoint to talk to C
	// A ─(deleg)→ B ─(via delegated ep)→ C
	subA, subC := bidi.Unbounded[int, int]()

	// C: receives int, sends back doubled, closes
	cDone := make(chan int)
	go func() {
		n, _ := subC.Recv()
		subC.Send(n * 2)
		subC.Close()
		cDone <- n
	}()

	mainL, mainR := bidi.Bounded[struct{}, *bidi.Endpoint[int, int]](1)

	// B: accepts the endpoint, sends 21 on it, receives doubled
	bDone := make(chan int)
	go func() {
		sub, ok := mainR.Recv()
		if !ok {
			bDone <- -1
			return
		}
		sub.Send(21)
		doubled, _ := sub.Recv()
		sub.Close()
		mainR.Close()
		bDone <- doubled
	}()

	// A: delegates subA, then closes
	if err := mainL.Send(subA); err != nil {
		t.Fatalf("delegation send: %v", err)
	}
	mainL.Close()

	if bResult := <-bDone; bResult != 42 {
		t.Fatalf("B got %d, want 42", bResult)
	}
	if cResult := <-cDone; cResult != 21 {
		t.Fatalf("C got %d, want 21", cResult)
	}
}

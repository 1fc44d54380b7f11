// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bidi provides typed bidirectional channel pairs with asymmetric
// directions.
//
// A pair is two connected endpoints: one side receives T and sends U, its
// peer receives U and sends T. The two directions are independent except
// for connectedness itself.
//
// # Architecture
//
//   - Transport: Two buffered directions per pair, cross-wired so each endpoint's outbound buffer is its peer's inbound buffer. [Bounded] and [Unbounded] create an [Endpoint] pair.
//   - Blocking: [Endpoint.Send] and [Endpoint.Recv] wait out backpressure and rendezvous; [Endpoint.TrySend] and [Endpoint.TryRecv] return [code.hybscloud.com/iox.ErrWouldBlock] instead.
//   - Disconnection: A send that can never be received hands its message back inside [SendError]; a receive past the last message reports ok == false, after draining everything buffered.
//   - Error Handling: [RunError] collects both sides' fallible results as [code.hybscloud.com/kont.Either].
//
// # API Topologies
//
//   - Operations: [Endpoint.Send], [Endpoint.Recv], [Endpoint.TrySend], [Endpoint.TryRecv], [Endpoint.Close]. Endpoint delegation is Send/Recv of an endpoint-typed message.
//   - Selection: [Select] blocks over [Recv], [Send], [After] and [Default] operands; [RecvOf] and [SendOf] admit plain channels into the same call.
//   - Orchestration: [Run] and [RunError] connect two procedures over a fresh unbounded pair and collect both results.
//
// # Integration
//
//   - Capabilities: [Receiver] and [Sender] are the operand contracts; anything exposing the right channels participates in [Select] next to endpoints.
//   - Goroutines: One goroutine per endpoint side is the intended shape. Pairs add no locking of their own; an unbounded pair's internal goroutines exit once both ends close, or earlier once a closed end's remaining messages are drained.
//
// # Example
//
//	left, right := bidi.Bounded[string, int](1)
//	go func() {
//		n, _ := right.Recv()
//		right.Send(strconv.Itoa(n))
//		right.Close()
//	}()
//	left.Send(42)
//	s, ok := left.Recv() // "42", true
package bidi

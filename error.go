// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bidi

import "errors"

// ErrDisconnected reports a send whose receiving side has been
// permanently dropped. Every *SendError matches it under errors.Is.
var ErrDisconnected = errors.New("bidi: send on disconnected channel")

// SendError is the failure returned by Send and TrySend once the
// peer's receive side is gone. It carries the undelivered value back
// to the caller; a failed send never drops the message.
type SendError[T any] struct {
	Value T
}

// Error implements error.
func (e *SendError[T]) Error() string {
	return "bidi: send on disconnected channel"
}

// Unwrap yields ErrDisconnected so callers can match any SendError
// instantiation without knowing its type argument.
func (e *SendError[T]) Unwrap() error {
	return ErrDisconnected
}

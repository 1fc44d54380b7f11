// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bidi_test

import (
	"testing"

	"code.hybscloud.com/bidi"
)

// drain receives on ep until it reports closure, returning every
// delivered value in order.
func drain[T, U any](ep *bidi.Endpoint[T, U]) []T {
	var out []T
	for {
		v, ok := ep.Recv()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// sendAll delivers every value in vs on ep, failing the test on the
// first send error.
func sendAll[T, U any](t *testing.T, ep *bidi.Endpoint[T, U], vs []U) {
	t.Helper()
	for _, v := range vs {
		if err := ep.Send(v); err != nil {
			t.Fatalf("send %v: %v", v, err)
		}
	}
}

package service

import "time"

// simulateLatency imitates the network round trip of a real backend call.
// No cancellation: once invoked, an operation always resolves with a
// result or a failure.
func simulateLatency(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

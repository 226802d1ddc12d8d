/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitynet

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/suparena/entitynet/netclient/mock"
)

// A cancel registered after Disconnect snapshots the active set must fire
// immediately rather than outlive the client.
func TestTrackUnsubscribeAfterDisconnect(t *testing.T) {
	c := newClient(mock.New(), nil, zerolog.Nop())
	c.Disconnect()

	calls := 0
	cancel := c.trackUnsubscribe(func() { calls++ })
	if calls != 1 {
		t.Fatalf("expected cancel to fire immediately on closed client, got %d calls", calls)
	}

	c.mu.Lock()
	pending := len(c.unsubs)
	c.mu.Unlock()
	if pending != 0 {
		t.Fatalf("expected no tracked cancels on closed client, got %d", pending)
	}

	// Returned cancel is a no-op and safe to call repeatedly.
	cancel()
	cancel()
	if calls != 1 {
		t.Fatalf("expected exactly one cancel call, got %d", calls)
	}
}

func TestTrackUnsubscribeCancelDeregisters(t *testing.T) {
	c := newClient(mock.New(), nil, zerolog.Nop())
	defer c.Disconnect()

	calls := 0
	cancel := c.trackUnsubscribe(func() { calls++ })

	c.mu.Lock()
	pending := len(c.unsubs)
	c.mu.Unlock()
	if pending != 1 {
		t.Fatalf("expected one tracked cancel, got %d", pending)
	}

	cancel()
	cancel()
	if calls != 1 {
		t.Fatalf("expected exactly one cancel call, got %d", calls)
	}

	c.mu.Lock()
	pending = len(c.unsubs)
	c.mu.Unlock()
	if pending != 0 {
		t.Fatalf("expected cancel to deregister itself, got %d tracked", pending)
	}
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitynet

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/suparena/entitynet/netclient"
	"github.com/suparena/entitynet/netclient/rpc"
)

// Client is the single object callers construct to talk to the entity
// network. Its capability is fixed at construction: a client built without
// a private key can query, fetch and subscribe; one built with a key can
// additionally create, update and delete entities.
//
// A Client is safe for concurrent use. Calls are independent; the client
// imposes no serialization, and concurrent writes to the same entity race
// at the store (last accepted write wins).
type Client struct {
	read  netclient.ReadClient
	write netclient.WriteClient // nil in read-only mode
	log   zerolog.Logger

	mu     sync.Mutex
	closed bool
	unsubs map[uint64]netclient.Unsubscribe
	nextID uint64
}

// New connects a Client using the given configuration. Omitted endpoints
// resolve to the public testnet defaults; a present PrivateKey selects the
// read/write capability.
func New(ctx context.Context, cfg Config) (*Client, error) {
	cfg = cfg.resolve()
	log := cfg.logger()
	opts := rpc.Options{
		RPCURL:     cfg.RPCURL,
		WSURL:      cfg.WSURL,
		PrivateKey: cfg.PrivateKey,
		Logger:     &log,
	}

	if cfg.PrivateKey != "" {
		signer, err := rpc.DialSigner(ctx, opts)
		if err != nil {
			return nil, err
		}
		return newClient(signer, signer, log), nil
	}

	read, err := rpc.Dial(ctx, opts)
	if err != nil {
		return nil, err
	}
	return newClient(read, nil, log), nil
}

// NewWithNetClient wires a Client to caller-supplied transports (e.g. the
// mock package). Pass a nil write client for read-only behavior.
func NewWithNetClient(read netclient.ReadClient, write netclient.WriteClient) *Client {
	return newClient(read, write, zerolog.Nop())
}

func newClient(read netclient.ReadClient, write netclient.WriteClient, log zerolog.Logger) *Client {
	return &Client{
		read:   read,
		write:  write,
		log:    log,
		unsubs: make(map[uint64]netclient.Unsubscribe),
	}
}

// CanWrite reports whether this client was constructed with a signing
// credential.
func (c *Client) CanWrite() bool {
	return c.write != nil
}

// Disconnect cancels any open subscriptions and releases the underlying
// connections. It is idempotent, never panics and never returns an error;
// calling it on a client that did nothing is a valid no-op. After
// Disconnect, reads fail with ErrClosed and writes return a failed Result.
func (c *Client) Disconnect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	unsubs := make([]netclient.Unsubscribe, 0, len(c.unsubs))
	for _, u := range c.unsubs {
		unsubs = append(unsubs, u)
	}
	c.unsubs = make(map[uint64]netclient.Unsubscribe)
	c.mu.Unlock()

	for _, u := range unsubs {
		u()
	}

	_ = c.read.Close()
	if c.write != nil {
		// The signer shares the read transport; Close is idempotent either way.
		_ = c.write.Close()
	}
	c.log.Debug().Msg("entitynet client disconnected")
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// trackUnsubscribe registers a subscription cancel so Disconnect can tear it
// down, returning an idempotent cancel that also deregisters itself. The
// closed flag is re-checked under the lock: a Subscribe racing Disconnect
// may land here after the teardown snapshot was taken, in which case the
// subscription is cancelled on the spot instead of outliving Disconnect.
func (c *Client) trackUnsubscribe(unsub netclient.Unsubscribe) netclient.Unsubscribe {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		unsub()
		return func() {}
	}
	c.nextID++
	id := c.nextID
	c.unsubs[id] = unsub
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.unsubs, id)
			c.mu.Unlock()
			unsub()
		})
	}
}

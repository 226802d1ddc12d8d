/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package rpc

import (
	"context"
	"sync"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"

	"github.com/suparena/entitynet/errors"
	"github.com/suparena/entitynet/netclient"
)

// JSON-RPC method names exposed by entity network nodes.
const (
	methodGetEntity    = "entitynet_getEntity"
	methodQuery        = "entitynet_queryEntities"
	methodCreateEntity = "entitynet_createEntity"
	methodUpdateEntity = "entitynet_updateEntity"
	methodDeleteEntity = "entitynet_deleteEntity"
	methodSubscribe    = "entitynet_subscribe"
	methodUnsubscribe  = "entitynet_unsubscribe"
	methodNotification = "entitynet_subscription"
)

// Options configures a connection to an entity network node.
type Options struct {
	// RPCURL is the HTTP JSON-RPC endpoint for request/response calls.
	RPCURL string

	// WSURL is the WebSocket endpoint used for live subscriptions. The
	// socket is dialed lazily on the first Subscribe call.
	WSURL string

	// PrivateKey is the 0x-prefixed hex signing key. Only consulted by
	// DialSigner; presence is the only validation done up front, a
	// malformed key fails at write time.
	PrivateKey string

	// Logger defaults to a no-op logger when nil.
	Logger *zerolog.Logger
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return zerolog.Nop()
}

// Client implements netclient.ReadClient over JSON-RPC plus a WebSocket
// subscription channel.
type Client struct {
	rpc   *gethrpc.Client
	wsURL string
	log   zerolog.Logger

	sessMu sync.Mutex
	sess   *wsSession

	closeOnce sync.Once
}

var _ netclient.ReadClient = (*Client)(nil)

// Dial connects a read-only client to the given endpoints.
func Dial(ctx context.Context, opts Options) (*Client, error) {
	rc, err := gethrpc.DialContext(ctx, opts.RPCURL)
	if err != nil {
		return nil, errors.NewTransportError("dial", err)
	}
	log := opts.logger()
	log.Debug().Str("rpc", opts.RPCURL).Str("ws", opts.WSURL).Msg("entitynet rpc client connected")
	return &Client{
		rpc:   rc,
		wsURL: opts.WSURL,
		log:   log,
	}, nil
}

// GetEntity fetches a single entity by key. A missing key comes back as
// (nil, nil); the node returns JSON null for unknown keys.
func (c *Client) GetEntity(ctx context.Context, entityKey string) (*netclient.RawEntity, error) {
	var raw *netclient.RawEntity
	if err := c.rpc.CallContext(ctx, &raw, methodGetEntity, entityKey); err != nil {
		return nil, errors.NewTransportError("getEntity", err)
	}
	return raw, nil
}

// Subscribe opens (or reuses) the WebSocket session and registers cb for new
// entity notifications.
func (c *Client) Subscribe(ctx context.Context, cb func(netclient.RawEntity)) (netclient.Unsubscribe, error) {
	sess, err := c.session(ctx)
	if err != nil {
		return nil, err
	}
	return sess.subscribe(ctx, cb)
}

// Close tears down the RPC connection and any open WebSocket session.
// Idempotent and never returns an error.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.sessMu.Lock()
		if c.sess != nil {
			c.sess.close()
			c.sess = nil
		}
		c.sessMu.Unlock()
		c.rpc.Close()
		c.log.Debug().Msg("entitynet rpc client closed")
	})
	return nil
}

// session returns the shared WebSocket session, dialing it on first use. A
// session that died (socket dropped) is replaced on the next call.
func (c *Client) session(ctx context.Context) (*wsSession, error) {
	c.sessMu.Lock()
	defer c.sessMu.Unlock()

	if c.sess != nil && !c.sess.closedNow() {
		return c.sess, nil
	}
	sess, err := dialSession(ctx, c.wsURL, c.log)
	if err != nil {
		return nil, err
	}
	c.sess = sess
	return sess, nil
}

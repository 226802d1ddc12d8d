/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/suparena/entitynet/errors"
	"github.com/suparena/entitynet/netclient"
)

const wsHandshakeTimeout = 10 * time.Second

// wsMessage is a JSON-RPC frame on the subscription socket: either a reply
// to a subscribe/unsubscribe request (ID set) or a notification (Method set).
type wsMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *wsError        `json:"error,omitempty"`
}

type wsError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *wsError) Error() string {
	return fmt.Sprintf("ws rpc error %d: %s", e.Code, e.Message)
}

type wsNotification struct {
	Subscription string              `json:"subscription"`
	Result       netclient.RawEntity `json:"result"`
}

// wsSession owns one WebSocket connection and multiplexes any number of
// entity subscriptions over it.
type wsSession struct {
	conn *websocket.Conn
	log  zerolog.Logger

	writeMu sync.Mutex // gorilla allows one concurrent writer

	mu      sync.Mutex
	subs    map[string]func(netclient.RawEntity)
	pending map[uint64]chan *wsMessage
	nextID  uint64
	closed  bool

	closeCh   chan struct{}
	closeOnce sync.Once
}

func dialSession(ctx context.Context, wsURL string, log zerolog.Logger) (*wsSession, error) {
	dialer := websocket.Dialer{HandshakeTimeout: wsHandshakeTimeout}
	conn, resp, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, errors.NewTransportError("subscribe", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	sess := &wsSession{
		conn:    conn,
		log:     log,
		subs:    make(map[string]func(netclient.RawEntity)),
		pending: make(map[uint64]chan *wsMessage),
		closeCh: make(chan struct{}),
	}
	go sess.readLoop()
	log.Debug().Str("ws", wsURL).Msg("entitynet subscription socket open")
	return sess, nil
}

// subscribe registers cb for new-entity notifications and returns the
// idempotent cancel function.
func (s *wsSession) subscribe(ctx context.Context, cb func(netclient.RawEntity)) (netclient.Unsubscribe, error) {
	reply, err := s.call(ctx, methodSubscribe, []any{"newEntities"})
	if err != nil {
		return nil, err
	}

	var subID string
	if err := json.Unmarshal(reply.Result, &subID); err != nil {
		return nil, errors.NewTransportError("subscribe", err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, errors.NewTransportError("subscribe", fmt.Errorf("session closed"))
	}
	s.subs[subID] = cb
	s.mu.Unlock()

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, subID)
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return
			}
			// Best effort; the server also drops the subscription when the
			// socket goes away.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if _, err := s.call(ctx, methodUnsubscribe, []any{subID}); err != nil {
				s.log.Debug().Err(err).Str("sub", subID).Msg("unsubscribe call failed")
			}
		})
	}
	return unsub, nil
}

// call sends one request frame and waits for its matching reply.
func (s *wsSession) call(ctx context.Context, method string, params []any) (*wsMessage, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, errors.NewTransportError(method, fmt.Errorf("session closed"))
	}
	s.nextID++
	id := s.nextID
	ch := make(chan *wsMessage, 1)
	s.pending[id] = ch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}()

	req := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	}
	s.writeMu.Lock()
	err := s.conn.WriteJSON(req)
	s.writeMu.Unlock()
	if err != nil {
		return nil, errors.NewTransportError(method, err)
	}

	select {
	case reply, ok := <-ch:
		if !ok {
			return nil, errors.NewTransportError(method, fmt.Errorf("connection closed"))
		}
		if reply.Error != nil {
			return nil, errors.NewTransportError(method, reply.Error)
		}
		return reply, nil
	case <-ctx.Done():
		return nil, errors.NewTransportError(method, ctx.Err())
	case <-s.closeCh:
		return nil, errors.NewTransportError(method, fmt.Errorf("connection closed"))
	}
}

// readLoop dispatches incoming frames until the socket dies.
func (s *wsSession) readLoop() {
	defer s.teardown()

	for {
		var msg wsMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			select {
			case <-s.closeCh:
			default:
				s.log.Warn().Err(err).Msg("entitynet subscription socket read failed")
			}
			return
		}

		switch {
		case msg.ID != 0:
			s.mu.Lock()
			ch, ok := s.pending[msg.ID]
			s.mu.Unlock()
			if ok {
				ch <- &msg
			}
		case msg.Method == methodNotification:
			var note wsNotification
			if err := json.Unmarshal(msg.Params, &note); err != nil {
				s.log.Warn().Err(err).Msg("bad subscription notification")
				continue
			}
			s.mu.Lock()
			cb, ok := s.subs[note.Subscription]
			s.mu.Unlock()
			if ok {
				// Deliver asynchronously so a slow callback cannot stall the
				// read loop.
				go cb(note.Result)
			}
		}
	}
}

func (s *wsSession) close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
		_ = s.conn.Close()
	})
}

func (s *wsSession) closedNow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *wsSession) teardown() {
	s.close()
	s.mu.Lock()
	s.closed = true
	for id, ch := range s.pending {
		close(ch)
		delete(s.pending, id)
	}
	s.subs = make(map[string]func(netclient.RawEntity))
	s.mu.Unlock()
}

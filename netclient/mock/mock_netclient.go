/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the netclient
// interfaces for testing
package mock

import (
	"context"
	"encoding/hex"
	"strconv"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/entitynet/errors"
	"github.com/suparena/entitynet/models"
	"github.com/suparena/entitynet/netclient"
)

// NetClient is an in-memory entity network implementing both
// netclient.ReadClient and netclient.WriteClient. Creation order is
// preserved for queries, and subscribers are notified asynchronously on
// every create, matching the live network's at-least-once, unordered
// delivery contract.
type NetClient struct {
	mu       sync.RWMutex
	entities map[string]netclient.RawEntity
	order    []string

	subs      map[uint64]func(netclient.RawEntity)
	nextSubID uint64

	createErr    error
	updateErr    error
	deleteErr    error
	queryErr     error
	getErr       error
	subscribeErr error

	calls map[string]int

	closed bool
}

var (
	_ netclient.ReadClient  = (*NetClient)(nil)
	_ netclient.WriteClient = (*NetClient)(nil)
)

// New creates a new mock NetClient
func New() *NetClient {
	return &NetClient{
		entities: make(map[string]netclient.RawEntity),
		subs:     make(map[uint64]func(netclient.RawEntity)),
		calls:    make(map[string]int),
	}
}

// WithCreateError makes CreateEntity return an error
func (m *NetClient) WithCreateError(err error) *NetClient {
	m.createErr = err
	return m
}

// WithUpdateError makes UpdateEntity return an error
func (m *NetClient) WithUpdateError(err error) *NetClient {
	m.updateErr = err
	return m
}

// WithDeleteError makes DeleteEntity return an error
func (m *NetClient) WithDeleteError(err error) *NetClient {
	m.deleteErr = err
	return m
}

// WithQueryError makes query fetches return an error
func (m *NetClient) WithQueryError(err error) *NetClient {
	m.queryErr = err
	return m
}

// WithGetError makes GetEntity return an error
func (m *NetClient) WithGetError(err error) *NetClient {
	m.getErr = err
	return m
}

// WithSubscribeError makes Subscribe return an error
func (m *NetClient) WithSubscribeError(err error) *NetClient {
	m.subscribeErr = err
	return m
}

// CallCount reports how many times the named operation was invoked.
func (m *NetClient) CallCount(op string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[op]
}

func (m *NetClient) record(op string) {
	m.calls[op]++
}

func newHexID() string {
	id := uuid.New()
	return "0x" + hex.EncodeToString(id[:])
}

// CreateEntity stores a new entity under a fresh network-assigned key and
// notifies subscribers.
func (m *NetClient) CreateEntity(ctx context.Context, rec netclient.WriteRecord) (*netclient.WriteReceipt, error) {
	m.mu.Lock()
	m.record("createEntity")
	if m.createErr != nil {
		m.mu.Unlock()
		return nil, m.createErr
	}

	raw := rawFromRecord(rec)
	raw.EntityKey = newHexID()
	m.entities[raw.EntityKey] = raw
	m.order = append(m.order, raw.EntityKey)

	subs := make([]func(netclient.RawEntity), 0, len(m.subs))
	for _, cb := range m.subs {
		subs = append(subs, cb)
	}
	m.mu.Unlock()

	for _, cb := range subs {
		go cb(raw)
	}

	return &netclient.WriteReceipt{EntityKey: raw.EntityKey, TxHash: newHexID()}, nil
}

// UpdateEntity replaces the stored entity wholesale, keeping its key and
// creation time.
func (m *NetClient) UpdateEntity(ctx context.Context, rec netclient.WriteRecord) (*netclient.WriteReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("updateEntity")
	if m.updateErr != nil {
		return nil, m.updateErr
	}

	existing, ok := m.entities[rec.EntityKey]
	if !ok {
		return nil, errors.NewNotFoundError(rec.EntityKey)
	}

	raw := rawFromRecord(rec)
	raw.EntityKey = existing.EntityKey
	raw.CreatedAt = existing.CreatedAt
	m.entities[raw.EntityKey] = raw

	return &netclient.WriteReceipt{EntityKey: raw.EntityKey, TxHash: newHexID()}, nil
}

// DeleteEntity removes an entity; deleting an unknown key is an error, as on
// the live network.
func (m *NetClient) DeleteEntity(ctx context.Context, entityKey string) (*netclient.WriteReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("deleteEntity")
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}

	if _, ok := m.entities[entityKey]; !ok {
		return nil, errors.NewNotFoundError(entityKey)
	}
	delete(m.entities, entityKey)
	for i, k := range m.order {
		if k == entityKey {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	return &netclient.WriteReceipt{EntityKey: entityKey, TxHash: newHexID()}, nil
}

// GetEntity returns the stored entity or (nil, nil) when absent.
func (m *NetClient) GetEntity(ctx context.Context, entityKey string) (*netclient.RawEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("getEntity")
	if m.getErr != nil {
		return nil, m.getErr
	}
	raw, ok := m.entities[entityKey]
	if !ok {
		return nil, nil
	}
	return &raw, nil
}

// Subscribe registers cb for future creates.
func (m *NetClient) Subscribe(ctx context.Context, cb func(netclient.RawEntity)) (netclient.Unsubscribe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("subscribe")
	if m.subscribeErr != nil {
		return nil, m.subscribeErr
	}
	if m.closed {
		return nil, errors.ErrClosed
	}

	m.nextSubID++
	id := m.nextSubID
	m.subs[id] = cb

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}, nil
}

// Close drops all subscriptions. Idempotent.
func (m *NetClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.subs = make(map[uint64]func(netclient.RawEntity))
	return nil
}

func rawFromRecord(rec netclient.WriteRecord) netclient.RawEntity {
	contentType := rec.ContentType
	if contentType == "" {
		contentType = models.DefaultContentType
	}
	raw := netclient.RawEntity{
		Payload:     rec.Payload,
		ContentType: contentType,
		Attributes:  append([]models.Attribute(nil), rec.Attributes...),
		CreatedAt:   strfmt.DateTime(time.Now().UTC()),
	}
	if rec.ExpiresAt != nil {
		dt := strfmt.DateTime(rec.ExpiresAt.UTC())
		raw.ExpiresAt = &dt
	}
	return raw
}

// matchFilter reports whether any attribute on the entity satisfies the
// predicate. Values compare numerically when both sides parse as numbers,
// lexicographically otherwise.
func matchFilter(raw netclient.RawEntity, f wireFilter) bool {
	for _, attr := range raw.Attributes {
		if attr.Key != f.Key {
			continue
		}
		if compareValues(attr.Value, f.Value, f.Operator) {
			return true
		}
	}
	return false
}

func compareValues(have, want string, op models.Operator) bool {
	switch op.Normalize() {
	case models.OpEq:
		return have == want
	case models.OpNe, models.OpNeq:
		return have != want
	}

	cmp := compareOrdered(have, want)
	switch op {
	case models.OpGt:
		return cmp > 0
	case models.OpLt:
		return cmp < 0
	case models.OpGte:
		return cmp >= 0
	case models.OpLte:
		return cmp <= 0
	}
	return false
}

func compareOrdered(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

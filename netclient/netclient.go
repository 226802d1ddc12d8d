/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package netclient

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/entitynet/models"
)

// RawEntity is the wire shape of an entity as returned by the network.
// Payload stays as raw bytes; decoding to a domain value happens above this
// boundary.
type RawEntity struct {
	EntityKey   string             `json:"entityKey"`
	Payload     hexutil.Bytes      `json:"payload,omitempty"`
	ContentType string             `json:"contentType,omitempty"`
	Attributes  []models.Attribute `json:"attributes,omitempty"`
	ExpiresAt   *strfmt.DateTime   `json:"expiresAt,omitempty"`
	CreatedAt   strfmt.DateTime    `json:"createdAt"`
}

// WriteRecord carries one create or update to the network. EntityKey is
// empty for creates; for updates it targets the record being replaced.
type WriteRecord struct {
	EntityKey   string
	Payload     []byte
	ContentType string
	Attributes  []models.Attribute
	ExpiresAt   *time.Time
}

// WriteReceipt is the network's acknowledgement of an accepted write.
type WriteReceipt struct {
	EntityKey string `json:"entityKey"`
	TxHash    string `json:"txHash"`
}

// Unsubscribe cancels a live subscription. Implementations must make it safe
// to call more than once.
type Unsubscribe func()

// ReadClient is the always-present read capability of the entity network.
type ReadClient interface {
	// GetEntity fetches a single entity by key. Returns (nil, nil) when the
	// key does not exist; transport failures come back as errors.
	GetEntity(ctx context.Context, entityKey string) (*RawEntity, error)

	// Query starts a new query builder.
	Query() QueryBuilder

	// Subscribe opens a live channel invoking cb for every entity created
	// after the subscription starts. Delivery is at-least-once with no
	// ordering guarantee.
	Subscribe(ctx context.Context, cb func(RawEntity)) (Unsubscribe, error)

	// Close releases the underlying connections. Idempotent.
	Close() error
}

// WriteClient is the write capability, present only when the client was
// constructed with a signing credential.
type WriteClient interface {
	CreateEntity(ctx context.Context, rec WriteRecord) (*WriteReceipt, error)
	UpdateEntity(ctx context.Context, rec WriteRecord) (*WriteReceipt, error)
	DeleteEntity(ctx context.Context, entityKey string) (*WriteReceipt, error)

	// Close releases the underlying connections. Idempotent.
	Close() error
}

// QueryBuilder accumulates predicates and execution flags, then fetches the
// first page. Builders are single-use and not safe for concurrent mutation.
type QueryBuilder interface {
	// Where appends one attribute predicate. Predicates are conjunctive and
	// issued to the store in the order given.
	Where(key string, op models.Operator, value string) QueryBuilder

	// WithAttributes includes attributes on returned entities.
	WithAttributes(include bool) QueryBuilder

	// WithPayload includes payload bytes on returned entities.
	WithPayload(include bool) QueryBuilder

	// Limit caps the page size. Zero or negative leaves the store default.
	Limit(n int) QueryBuilder

	// Fetch executes the query and returns the first page.
	Fetch(ctx context.Context) (EntityPage, error)
}

// EntityPage is one page of query results plus its pagination cursor.
// Next returns the following page, or (nil, nil) when the cursor is
// exhausted.
type EntityPage interface {
	Entities() []RawEntity
	HasNextPage() bool
	Next(ctx context.Context) (EntityPage, error)
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitynet

import (
	"context"

	"github.com/suparena/entitynet/errors"
	"github.com/suparena/entitynet/models"
	"github.com/suparena/entitynet/netclient"
)

// Query returns the first page of entities matching opts. Filters are
// passed through to the store unmodified and in caller order; a nil opts or
// empty filter list requests an unfiltered page. The client never paginates
// past the first page — callers needing more results raise Limit.
//
// Unlike writes, read failures are returned as errors: there is no safe
// domain value to substitute for a failed query.
func (c *Client) Query(ctx context.Context, opts *models.QueryOptions) ([]models.Entity, error) {
	if c.isClosed() {
		return nil, errors.ErrClosed
	}
	if opts == nil {
		opts = &models.QueryOptions{}
	}

	b := c.read.Query()
	for _, f := range opts.Filters {
		b = b.Where(f.Key, f.Operator, f.Value)
	}
	b = b.WithAttributes(opts.WithAttributes).WithPayload(opts.WithPayload)
	if opts.Limit > 0 {
		b = b.Limit(opts.Limit)
	}

	page, err := b.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	raws := page.Entities()
	entities := make([]models.Entity, 0, len(raws))
	for _, raw := range raws {
		entities = append(entities, normalizeEntity(raw))
	}
	c.log.Debug().Int("entities", len(entities)).Msg("query returned")
	return entities, nil
}

// GetEntity fetches a single entity by key. A key the store does not know
// yields (nil, nil); hard transport failures are returned as errors.
func (c *Client) GetEntity(ctx context.Context, entityKey string) (*models.Entity, error) {
	if c.isClosed() {
		return nil, errors.ErrClosed
	}

	raw, err := c.read.GetEntity(ctx, entityKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	entity := normalizeEntity(*raw)
	return &entity, nil
}

// Subscribe invokes cb with every entity created after the subscription
// starts, decoded the same way as query results. Delivery is asynchronous
// and at-least-once, with no ordering guarantee. The returned function
// cancels the subscription; it is idempotent, and Disconnect invokes it for
// any subscription still open.
func (c *Client) Subscribe(ctx context.Context, cb func(models.Entity)) (func(), error) {
	if c.isClosed() {
		return nil, errors.ErrClosed
	}

	unsub, err := c.read.Subscribe(ctx, func(raw netclient.RawEntity) {
		cb(normalizeEntity(raw))
	})
	if err != nil {
		return nil, err
	}
	return c.trackUnsubscribe(unsub), nil
}

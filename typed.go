/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitynet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/suparena/entitynet/models"
)

// GetEntityAs fetches an entity and decodes its payload into T. Returns
// (nil, nil) when the key does not exist, matching GetEntity.
func GetEntityAs[T any](ctx context.Context, c *Client, entityKey string) (*T, error) {
	entity, err := c.GetEntity(ctx, entityKey)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, nil
	}
	return decodePayloadInto[T](entity.Payload)
}

// QueryAs runs a query with payloads included and decodes each payload into
// T. Entities whose payload does not fit T fail the whole call; use Query
// for shape-tolerant reads.
func QueryAs[T any](ctx context.Context, c *Client, opts *models.QueryOptions) ([]T, error) {
	if opts == nil {
		opts = &models.QueryOptions{}
	}
	withPayload := *opts
	withPayload.WithPayload = true

	entities, err := c.Query(ctx, &withPayload)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(entities))
	for _, entity := range entities {
		v, err := decodePayloadInto[T](entity.Payload)
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", entity.EntityKey, err)
		}
		out = append(out, *v)
	}
	return out, nil
}

// decodePayloadInto goes through JSON to map the generically decoded payload
// onto the caller's type.
func decodePayloadInto[T any](payload any) (*T, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &v, nil
}

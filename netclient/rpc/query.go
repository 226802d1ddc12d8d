/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package rpc

import (
	"context"

	"github.com/suparena/entitynet/errors"
	"github.com/suparena/entitynet/models"
	"github.com/suparena/entitynet/netclient"
)

// wireFilter is one predicate as issued to the node. Order of filters in
// queryArgs is significant and preserved.
type wireFilter struct {
	Key      string          `json:"key"`
	Value    string          `json:"value"`
	Operator models.Operator `json:"operator"`
}

type queryArgs struct {
	Filters        []wireFilter `json:"filters"`
	WithAttributes bool         `json:"withAttributes"`
	WithPayload    bool         `json:"withPayload"`
	Limit          int          `json:"limit,omitempty"`
	Cursor         string       `json:"cursor,omitempty"`
}

type queryResponse struct {
	Entities   []netclient.RawEntity `json:"entities"`
	NextCursor string                `json:"nextCursor,omitempty"`
}

type queryBuilder struct {
	c    *Client
	args queryArgs
}

// Query starts a new query builder.
func (c *Client) Query() netclient.QueryBuilder {
	return &queryBuilder{
		c:    c,
		args: queryArgs{Filters: []wireFilter{}},
	}
}

func (b *queryBuilder) Where(key string, op models.Operator, value string) netclient.QueryBuilder {
	b.args.Filters = append(b.args.Filters, wireFilter{
		Key:      key,
		Value:    value,
		Operator: op.Normalize(),
	})
	return b
}

func (b *queryBuilder) WithAttributes(include bool) netclient.QueryBuilder {
	b.args.WithAttributes = include
	return b
}

func (b *queryBuilder) WithPayload(include bool) netclient.QueryBuilder {
	b.args.WithPayload = include
	return b
}

func (b *queryBuilder) Limit(n int) netclient.QueryBuilder {
	if n > 0 {
		b.args.Limit = n
	}
	return b
}

func (b *queryBuilder) Fetch(ctx context.Context) (netclient.EntityPage, error) {
	return b.c.fetchPage(ctx, b.args)
}

func (c *Client) fetchPage(ctx context.Context, args queryArgs) (netclient.EntityPage, error) {
	var resp queryResponse
	if err := c.rpc.CallContext(ctx, &resp, methodQuery, args); err != nil {
		return nil, errors.NewTransportError("query", err)
	}
	c.log.Debug().
		Int("entities", len(resp.Entities)).
		Bool("hasNext", resp.NextCursor != "").
		Msg("entitynet query page fetched")
	return &entityPage{c: c, args: args, resp: resp}, nil
}

type entityPage struct {
	c    *Client
	args queryArgs
	resp queryResponse
}

func (p *entityPage) Entities() []netclient.RawEntity {
	return p.resp.Entities
}

func (p *entityPage) HasNextPage() bool {
	return p.resp.NextCursor != ""
}

func (p *entityPage) Next(ctx context.Context) (netclient.EntityPage, error) {
	if !p.HasNextPage() {
		return nil, nil
	}
	args := p.args
	args.Cursor = p.resp.NextCursor
	return p.c.fetchPage(ctx, args)
}

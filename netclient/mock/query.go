/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"

	"github.com/suparena/entitynet/models"
	"github.com/suparena/entitynet/netclient"
)

const defaultPageSize = 100

type wireFilter struct {
	Key      string
	Value    string
	Operator models.Operator
}

type queryBuilder struct {
	m              *NetClient
	filters        []wireFilter
	withAttributes bool
	withPayload    bool
	limit          int
}

// Query starts a new in-memory query builder.
func (m *NetClient) Query() netclient.QueryBuilder {
	return &queryBuilder{m: m}
}

func (b *queryBuilder) Where(key string, op models.Operator, value string) netclient.QueryBuilder {
	b.filters = append(b.filters, wireFilter{Key: key, Value: value, Operator: op.Normalize()})
	return b
}

func (b *queryBuilder) WithAttributes(include bool) netclient.QueryBuilder {
	b.withAttributes = include
	return b
}

func (b *queryBuilder) WithPayload(include bool) netclient.QueryBuilder {
	b.withPayload = include
	return b
}

func (b *queryBuilder) Limit(n int) netclient.QueryBuilder {
	if n > 0 {
		b.limit = n
	}
	return b
}

func (b *queryBuilder) Fetch(ctx context.Context) (netclient.EntityPage, error) {
	b.m.mu.Lock()
	b.m.record("query")
	b.m.mu.Unlock()

	b.m.mu.RLock()
	defer b.m.mu.RUnlock()

	if b.m.queryErr != nil {
		return nil, b.m.queryErr
	}

	// Conjunctive filters over creation-ordered entities.
	var matched []netclient.RawEntity
	for _, key := range b.m.order {
		raw := b.m.entities[key]
		ok := true
		for _, f := range b.filters {
			if !matchFilter(raw, f) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, b.project(raw))
		}
	}

	return b.page(matched, 0), nil
}

// project applies the inclusion flags the way the live store does: excluded
// sections simply come back empty.
func (b *queryBuilder) project(raw netclient.RawEntity) netclient.RawEntity {
	out := raw
	if !b.withPayload {
		out.Payload = nil
	}
	if !b.withAttributes {
		out.Attributes = nil
	}
	return out
}

func (b *queryBuilder) page(matched []netclient.RawEntity, offset int) netclient.EntityPage {
	size := b.limit
	if size <= 0 {
		size = defaultPageSize
	}
	end := offset + size
	if end > len(matched) {
		end = len(matched)
	}
	return &entityPage{
		builder: b,
		matched: matched,
		window:  matched[offset:end],
		next:    end,
	}
}

type entityPage struct {
	builder *queryBuilder
	matched []netclient.RawEntity
	window  []netclient.RawEntity
	next    int
}

func (p *entityPage) Entities() []netclient.RawEntity {
	return p.window
}

func (p *entityPage) HasNextPage() bool {
	return p.next < len(p.matched)
}

func (p *entityPage) Next(ctx context.Context) (netclient.EntityPage, error) {
	if !p.HasNextPage() {
		return nil, nil
	}
	return p.builder.page(p.matched, p.next), nil
}

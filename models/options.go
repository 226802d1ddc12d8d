/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

// Operator is a filter comparison operator. The zero value means equality.
type Operator string

const (
	OpEq  Operator = "eq"
	OpNe  Operator = "ne"
	OpNeq Operator = "neq" // alias accepted by the store, kept verbatim
	OpGt  Operator = "gt"
	OpLt  Operator = "lt"
	OpGte Operator = "gte"
	OpLte Operator = "lte"
)

// Normalize returns the operator the client will put on the wire, mapping
// the empty operator to OpEq. Anything else passes through untouched; the
// store owns operator validation.
func (o Operator) Normalize() Operator {
	if o == "" {
		return OpEq
	}
	return o
}

// QueryFilter narrows a query by one attribute predicate. A sequence of
// filters is conjunctive and is issued to the store in caller order.
type QueryFilter struct {
	Key      string   `json:"key"`
	Value    string   `json:"value"`
	Operator Operator `json:"operator,omitempty"`
}

// QueryOptions configures a Query call. The zero value requests a single
// unfiltered page with the store's default page size.
type QueryOptions struct {
	// Filters are applied in order with AND semantics.
	Filters []QueryFilter

	// WithAttributes asks the store to include attributes on each result.
	WithAttributes bool

	// WithPayload asks the store to include payload bytes on each result.
	WithPayload bool

	// Limit caps the size of the single returned page. Zero means the
	// store's default.
	Limit int
}

// CreateOptions describes a new entity to be written.
type CreateOptions struct {
	// Payload is any JSON-serializable value.
	Payload any

	// ContentType defaults to DefaultContentType when empty.
	ContentType string

	// Attributes to attach for filtering.
	Attributes []Attribute

	// ExpiresInMinutes, when positive, sets an expiration that many minutes
	// from issuance. Converted to an absolute timestamp before dispatch.
	ExpiresInMinutes int
}

// UpdateOptions replaces an existing entity's payload, attributes and
// expiration wholesale. The previous attribute set is superseded, not merged.
type UpdateOptions struct {
	// EntityKey identifies the entity to replace.
	EntityKey string

	Payload          any
	ContentType      string
	Attributes       []Attribute
	ExpiresInMinutes int
}

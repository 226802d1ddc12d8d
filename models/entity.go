/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"github.com/go-openapi/strfmt"
)

// DefaultContentType is used when an entity is created without an explicit
// content type.
const DefaultContentType = "application/json"

// Entity is an immutable snapshot of a record stored in the entity network.
// The key is assigned by the network and never changes for the lifetime of
// the record.
type Entity struct {
	// EntityKey is the opaque, 0x-prefixed content identifier.
	EntityKey string `json:"entityKey"`

	// Payload is the decoded payload value. For JSON content types this is
	// the parsed value; for anything else (or undecodable JSON) it is the
	// raw payload as a string. Nil when the query excluded payloads.
	Payload any `json:"payload,omitempty"`

	// ContentType describes the payload. Metadata only; the store does not
	// enforce it.
	ContentType string `json:"contentType"`

	// Attributes is the filterable key/value set attached to the entity.
	// Order is preserved as issued; keys may repeat.
	Attributes []Attribute `json:"attributes"`

	// ExpiresAt is the absolute expiration time, if the entity expires.
	ExpiresAt *strfmt.DateTime `json:"expiresAt,omitempty"`

	// CreatedAt is the time the network accepted the entity.
	CreatedAt strfmt.DateTime `json:"createdAt"`
}

// Attribute is a key/value pair attached to an entity for filtering. It
// plays no part in identity or ownership.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

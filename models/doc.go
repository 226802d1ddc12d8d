/*
Package models defines the data structures used throughout the EntityNet
client.

Key Types:

Entity:
An immutable snapshot of a stored record:

	type Entity struct {
	    EntityKey   string           // opaque 0x-prefixed key, network-assigned
	    Payload     any              // decoded payload (raw string fallback)
	    ContentType string
	    Attributes  []Attribute
	    ExpiresAt   *strfmt.DateTime
	    CreatedAt   strfmt.DateTime
	}

QueryOptions:
Parameters for a single-page query:

	opts := &models.QueryOptions{
	    Filters: []models.QueryFilter{
	        {Key: "type", Value: "profile"},
	        {Key: "score", Value: "10", Operator: models.OpGte},
	    },
	    WithAttributes: true,
	    WithPayload:    true,
	    Limit:          25,
	}

Result:
The discriminated outcome of a write. Use OkResult/ErrResult to construct;
they keep the success and error fields mutually exclusive:

	res := client.CreateEntity(ctx, opts)
	if !res.Success {
	    log.Println(res.Error)
	}

These types are transport-agnostic; the netclient package defines their raw
wire counterparts.
*/
package models

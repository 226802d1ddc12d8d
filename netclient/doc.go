/*
Package netclient defines the boundary between the EntityNet facade and the
underlying network transport.

The facade consumes the network only through two capability interfaces:

	type ReadClient interface {
	    GetEntity(ctx context.Context, entityKey string) (*RawEntity, error)
	    Query() QueryBuilder
	    Subscribe(ctx context.Context, cb func(RawEntity)) (Unsubscribe, error)
	    Close() error
	}

	type WriteClient interface {
	    CreateEntity(ctx context.Context, rec WriteRecord) (*WriteReceipt, error)
	    UpdateEntity(ctx context.Context, rec WriteRecord) (*WriteReceipt, error)
	    DeleteEntity(ctx context.Context, entityKey string) (*WriteReceipt, error)
	    Close() error
	}

Implementations:
  - rpc: JSON-RPC over HTTP for request/response calls plus a WebSocket
    subscription channel against a live entity network
  - mock: in-memory implementation for testing

Entities cross this boundary in their raw wire shape (RawEntity, payload as
bytes); decoding and result normalization are the facade's job.
*/
package netclient

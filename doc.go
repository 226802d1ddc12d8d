/*
Package entitynet is a Go client for the entity network: a remote,
content-addressable, attribute-queryable entity store.

A Client is constructed in one of two capability modes, selected by the
presence of a signing credential:

	// Read-only: query, fetch and subscribe
	client, err := entitynet.New(ctx, entitynet.Config{})

	// Read/write: additionally create, update and delete
	client, err := entitynet.New(ctx, entitynet.Config{PrivateKey: key})

Omitted endpoints resolve to the public testnet; see Config for env and
YAML-file loading.

Writes never return Go errors. Every create, update and delete resolves to
a discriminated Result — a write attempted without a credential fails with
"Wallet client not initialized" before any network traffic:

	res := client.CreateEntity(ctx, models.CreateOptions{
	    Payload:          map[string]any{"name": "ada"},
	    Attributes:       []models.Attribute{{Key: "type", Value: "profile"}},
	    ExpiresInMinutes: 60,
	})
	if !res.Success {
	    log.Println(res.Error)
	}

Reads return errors, since there is no safe substitute value:

	entities, err := client.Query(ctx, &models.QueryOptions{
	    Filters:     []models.QueryFilter{{Key: "type", Value: "profile"}},
	    WithPayload: true,
	    Limit:       25,
	})

Live subscriptions deliver newly created entities until cancelled:

	unsub, err := client.Subscribe(ctx, func(e models.Entity) { ... })
	defer unsub()

Disconnect releases sockets and open subscriptions; it is idempotent and
safe on a client that did nothing.

For testing, NewWithNetClient accepts the in-memory transport from
netclient/mock.
*/
package entitynet

/*
Package rpc implements the netclient interfaces against a live entity
network node.

Request/response calls (CRUD, query, single-key fetch) go over JSON-RPC via
go-ethereum's rpc client; live subscriptions ride a dedicated WebSocket
connection carrying JSON-RPC subscription frames, multiplexing all
subscriptions of one client over a single socket.

Writes are signed: the record digest (Keccak-256 over the record fields) is
signed with the supplied secp256k1 private key and the node recovers the
sender from the signature. The key's format is only checked when a write is
attempted, so a malformed key behaves like any other per-call transport
failure.

	read, err := rpc.Dial(ctx, rpc.Options{RPCURL: rpcURL, WSURL: wsURL})
	rw, err := rpc.DialSigner(ctx, rpc.Options{RPCURL: rpcURL, WSURL: wsURL, PrivateKey: key})
*/
package rpc

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package rpc

import (
	"context"
	"encoding/binary"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/entitynet/errors"
	"github.com/suparena/entitynet/models"
	"github.com/suparena/entitynet/netclient"
)

// writeArgs is the wire shape of a create/update/delete call. The node
// recovers the sender from the signature over the record digest.
type writeArgs struct {
	EntityKey   string             `json:"entityKey,omitempty"`
	Payload     hexutil.Bytes      `json:"payload,omitempty"`
	ContentType string             `json:"contentType,omitempty"`
	Attributes  []models.Attribute `json:"attributes,omitempty"`
	ExpiresAt   *strfmt.DateTime   `json:"expiresAt,omitempty"`
	From        common.Address     `json:"from"`
	Signature   hexutil.Bytes      `json:"signature"`
}

// SignerClient adds the write capability on top of Client. The private key
// is held as supplied and parsed per write, so a malformed key surfaces as a
// per-call transport failure rather than a construction error.
type SignerClient struct {
	*Client
	privateKey string
}

var _ netclient.WriteClient = (*SignerClient)(nil)

// DialSigner connects a read/write client. Opts.PrivateKey must be present;
// its format is not checked here.
func DialSigner(ctx context.Context, opts Options) (*SignerClient, error) {
	if opts.PrivateKey == "" {
		return nil, errors.NewValidationError("privateKey", "must not be empty")
	}
	c, err := Dial(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &SignerClient{Client: c, privateKey: opts.PrivateKey}, nil
}

// CreateEntity submits a new entity and returns the network's receipt.
func (s *SignerClient) CreateEntity(ctx context.Context, rec netclient.WriteRecord) (*netclient.WriteReceipt, error) {
	args, err := s.signedArgs(rec)
	if err != nil {
		return nil, errors.NewTransportError("createEntity", err)
	}
	var receipt netclient.WriteReceipt
	if err := s.rpc.CallContext(ctx, &receipt, methodCreateEntity, args); err != nil {
		return nil, errors.NewTransportError("createEntity", err)
	}
	s.log.Debug().Str("entityKey", receipt.EntityKey).Str("tx", receipt.TxHash).Msg("entity created")
	return &receipt, nil
}

// UpdateEntity replaces an existing entity wholesale.
func (s *SignerClient) UpdateEntity(ctx context.Context, rec netclient.WriteRecord) (*netclient.WriteReceipt, error) {
	args, err := s.signedArgs(rec)
	if err != nil {
		return nil, errors.NewTransportError("updateEntity", err)
	}
	var receipt netclient.WriteReceipt
	if err := s.rpc.CallContext(ctx, &receipt, methodUpdateEntity, args); err != nil {
		return nil, errors.NewTransportError("updateEntity", err)
	}
	s.log.Debug().Str("entityKey", receipt.EntityKey).Str("tx", receipt.TxHash).Msg("entity updated")
	return &receipt, nil
}

// DeleteEntity removes an entity by key. Deleting an unknown key is rejected
// by the node and surfaces as a transport error.
func (s *SignerClient) DeleteEntity(ctx context.Context, entityKey string) (*netclient.WriteReceipt, error) {
	args, err := s.signedArgs(netclient.WriteRecord{EntityKey: entityKey})
	if err != nil {
		return nil, errors.NewTransportError("deleteEntity", err)
	}
	var receipt netclient.WriteReceipt
	if err := s.rpc.CallContext(ctx, &receipt, methodDeleteEntity, args); err != nil {
		return nil, errors.NewTransportError("deleteEntity", err)
	}
	s.log.Debug().Str("entityKey", receipt.EntityKey).Str("tx", receipt.TxHash).Msg("entity deleted")
	return &receipt, nil
}

// signedArgs builds the wire arguments for rec and signs their digest.
func (s *SignerClient) signedArgs(rec netclient.WriteRecord) (*writeArgs, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(s.privateKey, "0x"))
	if err != nil {
		return nil, err
	}

	args := &writeArgs{
		EntityKey:   rec.EntityKey,
		Payload:     rec.Payload,
		ContentType: rec.ContentType,
		Attributes:  rec.Attributes,
		From:        crypto.PubkeyToAddress(key.PublicKey),
	}
	if rec.ExpiresAt != nil {
		dt := strfmt.DateTime(rec.ExpiresAt.UTC())
		args.ExpiresAt = &dt
	}

	sig, err := crypto.Sign(recordDigest(rec), key)
	if err != nil {
		return nil, err
	}
	args.Signature = sig
	return args, nil
}

// recordDigest hashes the record fields the node verifies. Field order is
// fixed by the node's verification rules, and every chunk is length-prefixed
// so that no two distinct records can serialize to the same byte stream.
func recordDigest(rec netclient.WriteRecord) []byte {
	chunks := [][]byte{
		[]byte(rec.EntityKey),
		rec.Payload,
		[]byte(rec.ContentType),
	}
	for _, attr := range rec.Attributes {
		chunks = append(chunks, []byte(attr.Key), []byte(attr.Value))
	}
	if rec.ExpiresAt != nil {
		chunks = append(chunks, []byte(rec.ExpiresAt.UTC().Format(time.RFC3339Nano)))
	}

	framed := make([][]byte, 0, 2*len(chunks))
	for _, chunk := range chunks {
		var length [4]byte
		binary.BigEndian.PutUint32(length[:], uint32(len(chunk)))
		framed = append(framed, length[:], chunk)
	}
	return crypto.Keccak256(framed...)
}

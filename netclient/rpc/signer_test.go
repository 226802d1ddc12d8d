/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package rpc

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entitynet/models"
	"github.com/suparena/entitynet/netclient"
)

func testSigner(t *testing.T) *SignerClient {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return &SignerClient{
		Client:     &Client{},
		privateKey: hexutil.Encode(crypto.FromECDSA(key)),
	}
}

func TestSignedArgs(t *testing.T) {
	s := testSigner(t)
	expires := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rec := netclient.WriteRecord{
		EntityKey:   "0xabc",
		Payload:     []byte(`{"a":1}`),
		ContentType: "application/json",
		Attributes:  []models.Attribute{{Key: "type", Value: "profile"}},
		ExpiresAt:   &expires,
	}

	args, err := s.signedArgs(rec)
	require.NoError(t, err)

	assert.Equal(t, "0xabc", args.EntityKey)
	assert.Equal(t, rec.Payload, []byte(args.Payload))
	assert.Equal(t, "application/json", args.ContentType)
	assert.Equal(t, rec.Attributes, args.Attributes)
	require.NotNil(t, args.ExpiresAt)
	assert.Len(t, args.Signature, 65, "secp256k1 recoverable signature")
	assert.NotZero(t, args.From)
}

func TestSignedArgsMalformedKey(t *testing.T) {
	s := &SignerClient{Client: &Client{}, privateKey: "0xnothex"}
	_, err := s.signedArgs(netclient.WriteRecord{Payload: []byte("x")})
	require.Error(t, err)
}

func TestRecordDigestDeterministic(t *testing.T) {
	rec := netclient.WriteRecord{
		Payload:     []byte("payload"),
		ContentType: "application/json",
		Attributes:  []models.Attribute{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}},
	}
	assert.Equal(t, recordDigest(rec), recordDigest(rec))
}

func TestRecordDigestSensitivity(t *testing.T) {
	base := netclient.WriteRecord{
		Payload:     []byte("payload"),
		ContentType: "application/json",
		Attributes:  []models.Attribute{{Key: "a", Value: "1"}},
	}

	variants := []netclient.WriteRecord{
		{Payload: []byte("payload2"), ContentType: base.ContentType, Attributes: base.Attributes},
		{Payload: base.Payload, ContentType: "text/plain", Attributes: base.Attributes},
		{Payload: base.Payload, ContentType: base.ContentType, Attributes: []models.Attribute{{Key: "a", Value: "2"}}},
		{EntityKey: "0x1", Payload: base.Payload, ContentType: base.ContentType, Attributes: base.Attributes},
	}

	baseDigest := recordDigest(base)
	for i, v := range variants {
		assert.NotEqual(t, baseDigest, recordDigest(v), "variant %d should change the digest", i)
	}
}

func TestRecordDigestFieldBoundaries(t *testing.T) {
	// Records whose concatenated field bytes are identical must still hash
	// differently: one signature may never authorize another record.
	pairs := []struct {
		name string
		a, b netclient.WriteRecord
	}{
		{
			name: "AttributeKeyValueSplit",
			a:    netclient.WriteRecord{Attributes: []models.Attribute{{Key: "ab", Value: "c"}}},
			b:    netclient.WriteRecord{Attributes: []models.Attribute{{Key: "a", Value: "bc"}}},
		},
		{
			name: "AttributePairSplit",
			a:    netclient.WriteRecord{Attributes: []models.Attribute{{Key: "a", Value: "b"}, {Key: "c", Value: "d"}}},
			b:    netclient.WriteRecord{Attributes: []models.Attribute{{Key: "a", Value: "bc"}, {Key: "", Value: "d"}}},
		},
		{
			name: "PayloadContentTypeSplit",
			a:    netclient.WriteRecord{Payload: []byte("xy"), ContentType: "z"},
			b:    netclient.WriteRecord{Payload: []byte("x"), ContentType: "yz"},
		},
		{
			name: "KeyPayloadSplit",
			a:    netclient.WriteRecord{EntityKey: "0xab", Payload: []byte("cd")},
			b:    netclient.WriteRecord{EntityKey: "0xabc", Payload: []byte("d")},
		},
		{
			name: "PayloadAbsorbsAttribute",
			a:    netclient.WriteRecord{Payload: []byte("pqr")},
			b:    netclient.WriteRecord{Payload: []byte("p"), Attributes: []models.Attribute{{Key: "q", Value: "r"}}},
		},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, recordDigest(tt.a), recordDigest(tt.b))
		})
	}
}

func TestQueryBuilderAccumulation(t *testing.T) {
	c := &Client{}
	b := c.Query().
		Where("type", "", "profile").
		Where("score", models.OpGte, "10").
		WithAttributes(true).
		WithPayload(true).
		Limit(5)

	qb, ok := b.(*queryBuilder)
	require.True(t, ok)

	require.Len(t, qb.args.Filters, 2)
	assert.Equal(t, wireFilter{Key: "type", Value: "profile", Operator: models.OpEq}, qb.args.Filters[0])
	assert.Equal(t, wireFilter{Key: "score", Value: "10", Operator: models.OpGte}, qb.args.Filters[1])
	assert.True(t, qb.args.WithAttributes)
	assert.True(t, qb.args.WithPayload)
	assert.Equal(t, 5, qb.args.Limit)
}

func TestQueryBuilderIgnoresNonPositiveLimit(t *testing.T) {
	c := &Client{}
	qb := c.Query().Limit(0).(*queryBuilder)
	assert.Zero(t, qb.args.Limit)
	qb = c.Query().Limit(-3).(*queryBuilder)
	assert.Zero(t, qb.args.Limit)
}

func TestWSNotificationParsing(t *testing.T) {
	frame := []byte(`{
		"jsonrpc": "2.0",
		"method": "entitynet_subscription",
		"params": {
			"subscription": "0xsub1",
			"result": {
				"entityKey": "0xfeed",
				"payload": "0x7b2261223a317d",
				"contentType": "application/json",
				"attributes": [{"key": "type", "value": "profile"}],
				"createdAt": "2026-01-02T15:04:05.000Z"
			}
		}
	}`)

	var msg wsMessage
	require.NoError(t, json.Unmarshal(frame, &msg))
	assert.Equal(t, methodNotification, msg.Method)

	var note wsNotification
	require.NoError(t, json.Unmarshal(msg.Params, &note))
	assert.Equal(t, "0xsub1", note.Subscription)
	assert.Equal(t, "0xfeed", note.Result.EntityKey)
	assert.Equal(t, `{"a":1}`, string(note.Result.Payload))
	require.Len(t, note.Result.Attributes, 1)
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitynet

import (
	"github.com/suparena/entitynet/codec"
	"github.com/suparena/entitynet/models"
	"github.com/suparena/entitynet/netclient"
)

// normalizeEntity maps a raw wire entity to its domain shape, decoding the
// payload per its content type. An absent payload (excluded by the query)
// stays nil.
func normalizeEntity(raw netclient.RawEntity) models.Entity {
	contentType := raw.ContentType
	if contentType == "" {
		contentType = models.DefaultContentType
	}
	return models.Entity{
		EntityKey:   raw.EntityKey,
		Payload:     codec.Decode(raw.Payload, contentType),
		ContentType: contentType,
		Attributes:  raw.Attributes,
		ExpiresAt:   raw.ExpiresAt,
		CreatedAt:   raw.CreatedAt,
	}
}

// writeResult folds the transport's receipt-or-error shape into the write
// Result sum type. Exactly one side of the sum is ever populated.
func writeResult(receipt *netclient.WriteReceipt, err error) models.Result {
	if err != nil {
		return models.ErrResult(err.Error())
	}
	if receipt == nil {
		return models.ErrResult("network returned no receipt")
	}
	return models.OkResult(receipt.EntityKey, receipt.TxHash)
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitynet

import (
	"context"
	"time"

	"github.com/suparena/entitynet/codec"
	"github.com/suparena/entitynet/errors"
	"github.com/suparena/entitynet/models"
	"github.com/suparena/entitynet/netclient"
)

// CreateEntity submits a new entity. The outcome is always a Result, never
// an error: a client without a write capability fails immediately with
// "Wallet client not initialized" and no network call, and transport
// failures come back as a failed Result with their message.
func (c *Client) CreateEntity(ctx context.Context, opts models.CreateOptions) models.Result {
	if res, ok := c.writeGate(); !ok {
		return res
	}

	rec, err := buildRecord("", opts.Payload, opts.ContentType, opts.Attributes, opts.ExpiresInMinutes)
	if err != nil {
		return models.ErrResult(err.Error())
	}

	return writeResult(c.write.CreateEntity(ctx, rec))
}

// UpdateEntity replaces an existing entity wholesale: payload, attributes
// and expiration are superseded, whatever the previous values were. The
// entity key never changes.
func (c *Client) UpdateEntity(ctx context.Context, opts models.UpdateOptions) models.Result {
	if res, ok := c.writeGate(); !ok {
		return res
	}
	if opts.EntityKey == "" {
		return models.ErrResult(errors.NewValidationError("entityKey", "must not be empty").Error())
	}

	rec, err := buildRecord(opts.EntityKey, opts.Payload, opts.ContentType, opts.Attributes, opts.ExpiresInMinutes)
	if err != nil {
		return models.ErrResult(err.Error())
	}

	return writeResult(c.write.UpdateEntity(ctx, rec))
}

// DeleteEntity removes an entity by key. Deleting a key the store does not
// know is a transport-level failure and surfaces as a failed Result.
func (c *Client) DeleteEntity(ctx context.Context, entityKey string) models.Result {
	if res, ok := c.writeGate(); !ok {
		return res
	}
	if entityKey == "" {
		return models.ErrResult(errors.NewValidationError("entityKey", "must not be empty").Error())
	}

	return writeResult(c.write.DeleteEntity(ctx, entityKey))
}

// writeGate checks the write capability, then liveness. The capability is
// evaluated per call rather than cached anywhere else.
func (c *Client) writeGate() (models.Result, bool) {
	if c.write == nil {
		return models.ErrResult(errors.ErrWalletNotInitialized.Error()), false
	}
	if c.isClosed() {
		return models.ErrResult(errors.ErrClosed.Error()), false
	}
	return models.Result{}, true
}

// buildRecord encodes the payload and converts a relative expiration into
// the absolute timestamp the network expects.
func buildRecord(entityKey string, payload any, contentType string, attributes []models.Attribute, expiresInMinutes int) (netclient.WriteRecord, error) {
	data, err := codec.Encode(payload)
	if err != nil {
		return netclient.WriteRecord{}, err
	}
	if contentType == "" {
		contentType = models.DefaultContentType
	}

	rec := netclient.WriteRecord{
		EntityKey:   entityKey,
		Payload:     data,
		ContentType: contentType,
		Attributes:  attributes,
	}
	if expiresInMinutes > 0 {
		expires := time.Now().Add(time.Duration(expiresInMinutes) * time.Minute).UTC()
		rec.ExpiresAt = &expires
	}
	return rec, nil
}

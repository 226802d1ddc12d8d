/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrWalletNotInitialized is returned when a write operation is attempted
	// on a client constructed without a signing credential. The message is
	// part of the public contract and must not change.
	ErrWalletNotInitialized = errors.New("Wallet client not initialized")

	// ErrClosed is returned when an operation is attempted after Disconnect
	ErrClosed = errors.New("client is closed")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransport is returned when the entity network rejects an operation
	ErrTransport = errors.New("transport failure")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entity with key %q not found", e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// TransportError wraps a failure reported by the entity network or the
// connection to it. Op names the client operation that failed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// DecodeError represents a payload that could not be decoded for the
// declared content type. The read path degrades to the raw string instead of
// failing, so this type mostly shows up in logs.
type DecodeError struct {
	ContentType string
	Err         error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode payload (%s): %v", e.ContentType, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(key string) error {
	return &NotFoundError{Key: key}
}

// NewTransportError creates a new TransportError
func NewTransportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransport checks if an error is a transport failure
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsClosed checks if an error was caused by operating on a closed client
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

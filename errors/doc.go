/*
Package errors provides semantic error types for the EntityNet client.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound             = errors.New("entity not found")
	    ErrWalletNotInitialized = errors.New("Wallet client not initialized")
	    ErrClosed               = errors.New("client is closed")
	    ErrInvalidInput         = errors.New("invalid input")
	    ErrTransport            = errors.New("transport failure")
	)

Usage:

	// Check error type
	entity, err := client.GetEntity(ctx, key)
	if err != nil {
	    if errors.IsTransport(err) {
	        // Retry or surface the network failure
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("0xabc...")
	err := errors.NewTransportError("createEntity", cause)

Note that write operations on the client never return these errors directly;
they are folded into the models.Result sum type. The read path returns them
as ordinary Go errors.
*/
package errors

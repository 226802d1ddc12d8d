/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

// Result is the outcome of a write operation. It is a closed sum: exactly
// one of the success fields (EntityKey, TxHash) or Error is populated, and
// Success:false always carries a non-empty Error. Writes never surface as
// Go errors; callers branch on Success.
type Result struct {
	Success   bool   `json:"success"`
	EntityKey string `json:"entityKey,omitempty"`
	TxHash    string `json:"txHash,omitempty"`
	Error     string `json:"error,omitempty"`
}

// OkResult builds a successful write Result.
func OkResult(entityKey, txHash string) Result {
	return Result{
		Success:   true,
		EntityKey: entityKey,
		TxHash:    txHash,
	}
}

// ErrResult builds a failed write Result. An empty message is replaced so
// the Success:false ⇒ non-empty Error invariant holds even for degenerate
// transport errors.
func ErrResult(message string) Result {
	if message == "" {
		message = "unknown error"
	}
	return Result{
		Success: false,
		Error:   message,
	}
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"fmt"
	"strings"
	"sync"
)

// DecodeFunc turns raw payload bytes into a decoded value.
type DecodeFunc func(data []byte) (any, error)

var (
	mu              sync.RWMutex
	decoderRegistry = make(map[string]DecodeFunc)
)

// RegisterDecoder installs a custom decoder for a content type, overriding
// the built-in JSON/raw-string handling for that type. Registering the same
// content type twice panics to prevent accidental overrides.
func RegisterDecoder(contentType string, fn DecodeFunc) {
	key := normalizeContentType(contentType)

	mu.Lock()
	defer mu.Unlock()
	if _, exists := decoderRegistry[key]; exists {
		panic(fmt.Sprintf("codec: decoder for content type %q already registered", contentType))
	}
	decoderRegistry[key] = fn
}

func lookupDecoder(contentType string) (DecodeFunc, bool) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := decoderRegistry[normalizeContentType(contentType)]
	return fn, ok
}

func normalizeContentType(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

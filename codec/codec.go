/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"bytes"
	"encoding/json"
	"mime"
	"strings"
)

// Encode JSON-serializes a payload value to bytes for transport. The
// declared content type is metadata only and is deliberately not consulted:
// the network stores opaque bytes, and callers who want a non-JSON payload
// pass it as a string or []byte-backed value.
func Encode(payload any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode maps raw payload bytes back to a value according to the content
// type. JSON content types (and the empty default) are parsed; parse
// failures degrade to the raw UTF-8 string rather than erroring, keeping the
// read path robust against junk payloads. Non-JSON content types return the
// raw string unless a decoder was registered for them.
func Decode(data []byte, contentType string) any {
	if len(data) == 0 {
		return nil
	}

	if fn, ok := lookupDecoder(contentType); ok {
		if v, err := fn(data); err == nil {
			return v
		}
		return string(data)
	}

	if !isJSON(contentType) {
		return string(data)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return v
}

// isJSON reports whether the content type calls for JSON parsing. The empty
// content type defaults to JSON.
func isJSON(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

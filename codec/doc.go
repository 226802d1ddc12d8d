/*
Package codec encodes entity payloads to transportable bytes and decodes
them back.

Encoding always JSON-serializes the value; the content type attached to an
entity is descriptive metadata, never an encoding switch. Decoding honors
the content type: JSON types are parsed, everything else comes back as the
raw string, and a JSON payload that fails to parse degrades to the raw
string instead of returning an error.

Custom content types can install their own decoder:

	codec.RegisterDecoder("application/msgpack", func(data []byte) (any, error) {
	    var v map[string]any
	    err := msgpack.Unmarshal(data, &v)
	    return v, err
	})

For JSON payloads the round-trip law holds: Decode(Encode(p)) equals p up to
encoding/json's generic mapping (objects to map[string]any, numbers to
float64).
*/
package codec

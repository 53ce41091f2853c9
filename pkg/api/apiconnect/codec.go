// Package apiconnect wires the santa.v1 services to connectrpc.com/connect.
//
// Messages are plain Go structs from package api, so handlers and clients are
// built with a JSON codec instead of the protobuf codecs connect uses by default.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// JSONCodec marshals messages with encoding/json. It registers under the
// "json" name, so Connect clients send Content-Type application/json.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// handlerOptions appends the JSON codec so it replaces connect's protojson codec.
func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	out := make([]connect.HandlerOption, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, connect.WithCodec(JSONCodec{}))
}

// clientOptions makes the JSON codec the one the client sends with.
func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	out := make([]connect.ClientOption, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, connect.WithCodec(JSONCodec{}))
}

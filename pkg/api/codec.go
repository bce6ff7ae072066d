package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// ErrorKindHeader carries the failure kind of a rejected operation in Connect
// error metadata, e.g. "TableNotAvailable".
const ErrorKindHeader = "Kitchenpos-Error-Kind"

// JSONCodec marshals plain Go structs. It registers under the name "json" and
// replaces Connect's protobuf-only JSON codec.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("invalid JSON message: %w", err)
	}
	return nil
}

// WithJSON selects JSONCodec on a client or handler.
func WithJSON() connect.Option {
	return connect.WithCodec(JSONCodec{})
}

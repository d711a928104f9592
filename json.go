// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lspclient

import (
	"bytes"
	"encoding/json"
	"fmt"

	rpc "github.com/gorilla/rpc/v2/json2"
)

// Err returns the JSON-RPC error carried by the response as *json2.Error,
// or nil when the error member is absent or null.
func (r *Response) Err() error {
	if !r.HasError() {
		return nil
	}
	rpcErr := &rpc.Error{}
	if err := json.Unmarshal(r.Error, rpcErr); err != nil {
		return &rpc.Error{
			Code:    rpc.E_SERVER,
			Message: string(r.Error),
		}
	}
	return rpcErr
}

// DecodeResult decodes the result member into reply. An error response is
// returned as *json2.Error. A missing or null result is a successful answer
// (shutdown, an empty hover) and leaves reply untouched.
func (r *Response) DecodeResult(reply interface{}) error {
	if r.HasError() || reply == nil {
		return r.Err()
	}
	if !isPresent(r.Result) {
		return nil
	}
	// The id is already matched by the caller; json2 only sees the payload.
	data, err := json.Marshal(Response{Result: r.Result, Error: r.Error})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return rpc.DecodeClientResponse(bytes.NewReader(data), reply)
}

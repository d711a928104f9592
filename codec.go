// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lspclient

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Codec turns envelopes into frame bodies and frame bodies back into
// responses. A Decode error is reported to the caller as a
// *MalformedBodyError carrying the raw body.
type Codec interface {
	Encode(msg Message) ([]byte, error)
	Decode(body []byte, resp *Response) error
}

var errNotObject = errors.New("body is not a JSON object")

// JSONCodec encodes envelopes with encoding/json. Decode accepts only a
// single JSON object; arrays (batches) and scalars are rejected.
type JSONCodec struct{}

func (JSONCodec) Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Decode(body []byte, resp *Response) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotObject
	}
	return json.Unmarshal(trimmed, resp)
}

var defaultCodec Codec = JSONCodec{}

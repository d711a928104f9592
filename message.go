// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lspclient

import (
	"bytes"
	"encoding/json"
	"math/big"
)

// Version is the JSON-RPC protocol version carried by every message.
const Version = "2.0"

// Message is one JSON-RPC envelope: a Request, Response or Notification.
type Message interface {
	isMessage()
}

// Request is a JSON-RPC request. ID must be a non-null JSON value.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// Response is a JSON-RPC response. The members are kept raw so that an
// absent id (nil) can be told apart from an explicit null.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

// Notification is a JSON-RPC notification. It never carries an id.
type Notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

func (Request) isMessage()      {}
func (Response) isMessage()     {}
func (Notification) isMessage() {}

// NewRequest builds a request envelope.
func NewRequest(id any, method string, params any) *Request {
	return &Request{JSONRPC: Version, ID: id, Method: method, Params: params}
}

// NewNotification builds a notification envelope.
func NewNotification(method string, params any) *Notification {
	return &Notification{JSONRPC: Version, Method: method, Params: params}
}

func (r Request) MarshalJSON() ([]byte, error) {
	type wire Request
	w := wire(r)
	w.JSONRPC = Version
	return json.Marshal(w)
}

func (r Response) MarshalJSON() ([]byte, error) {
	type wire Response
	w := wire(r)
	w.JSONRPC = Version
	return json.Marshal(w)
}

func (n Notification) MarshalJSON() ([]byte, error) {
	type wire Notification
	w := wire(n)
	w.JSONRPC = Version
	return json.Marshal(w)
}

// HasID reports whether the response carries a non-null id.
func (r *Response) HasID() bool {
	return isPresent(r.ID)
}

// HasError reports whether the response carries a non-null error member.
func (r *Response) HasError() bool {
	return isPresent(r.Error)
}

// IDEquals reports whether the response id encodes to the same JSON as id.
// Numeric ids compare by value, so 1, 1.0 and 1e0 are equal.
func (r *Response) IDEquals(id any) bool {
	if !r.HasID() {
		return false
	}
	want, err := json.Marshal(id)
	if err != nil {
		return false
	}
	var got bytes.Buffer
	if err := json.Compact(&got, r.ID); err != nil {
		return false
	}
	if a, ok := jsonNumber(got.Bytes()); ok {
		b, ok := jsonNumber(want)
		return ok && a.Cmp(b) == 0
	}
	return bytes.Equal(got.Bytes(), want)
}

func jsonNumber(raw []byte) (*big.Rat, bool) {
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return nil, false
	}
	return new(big.Rat).SetString(string(raw))
}

func isPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

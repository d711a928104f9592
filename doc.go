// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lspclient provides a minimal client-side transport for the
// Language Server Protocol.
//
// # Transport Selection
//
// Addresses name their transport with a scheme prefix:
//
//	tcp:localhost:9257          # stream socket
//	unix:/tmp/gopls.sock        # local domain socket
//
// Anything else is rejected with ErrInvalidAddress before any network call.
//
// # Usage
//
//	client, err := lspclient.Dial(ctx, "tcp:127.0.0.1:9257")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	params := lspclient.NewInitializeParams(os.Getpid(), "file:///src/app", "myclient", "1.0.0", nil)
//	result, err := client.Initialize(ctx, params)
//
//	// Structured call
//	var hover json.RawMessage
//	err = client.Call(ctx, "textDocument/hover", hoverParams, &hover)
//
//	// Low level: one frame out, first id-bearing frame back
//	err = client.Send(ctx, lspclient.NewRequest(7, "shutdown", nil))
//	resp, err := client.ReceiveResponse(ctx)
//
// # Wire Format
//
// Each message is framed as
//
//	Content-Length: <N>\r\n
//	\r\n
//	<N bytes of JSON>
//
// Other header fields are ignored. Header blocks are capped at
// DefaultMaxHeaderBytes and bodies at DefaultMaxBodyBytes unless changed
// with WithMaxHeaderBytes and WithMaxBodyBytes.
//
// # Correlation
//
// A Client has at most one request in flight. ReceiveResponse returns the
// first message with a non-null id and drops notifications read before it.
// Call checks that id against the one it sent.
//
// # Errors
//
// Every failure is returned to the caller and nothing is retried. After a
// stream failure the framing position is unknown and the Client returns
// ErrBroken; dial a new one.
//
// # Architecture
//
//   - client.go: Client, DialOption and the send/receive loop
//   - frame.go: Content-Length framing
//   - dial.go: address parsing and Dial
//   - transport.go: scheme registry (tcp, unix)
//   - message.go, initialize.go: JSON-RPC envelopes and the initialize payload
//   - json.go: result and error decoding
//   - config.go: TOML session config
package lspclient

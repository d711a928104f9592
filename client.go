// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lspclient

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tliron/commonlog"
)

// Client owns one duplex stream to a language server. It supports a single
// outstanding request: the first incoming message with a non-null id is
// taken as the answer to the last request sent.
//
// Calls are serialized by an internal lock, but callers must still not
// send a second request before the first response has been received.
type Client struct {
	mu     sync.Mutex
	stream Stream
	w      *bufio.Writer
	frames *frameReader
	codec  Codec
	log    commonlog.Logger
	policy DiscardPolicy

	nextID int64
	closed atomic.Bool
	broken error
}

// DiscardPolicy decides what ReceiveResponse does with messages that carry
// no id (or a null id).
type DiscardPolicy int

const (
	// DiscardIDless drops every message without a non-null id.
	DiscardIDless DiscardPolicy = iota
	// SurfaceIDlessErrors returns id-less messages that carry an error
	// member, such as a server's answer to an unparseable request.
	SurfaceIDlessErrors
)

func (p DiscardPolicy) String() string {
	switch p {
	case DiscardIDless:
		return "discard"
	case SurfaceIDlessErrors:
		return "surface-errors"
	default:
		return fmt.Sprintf("DiscardPolicy(%d)", int(p))
	}
}

// ParseDiscardPolicy is the inverse of DiscardPolicy.String. The empty
// string selects DiscardIDless.
func ParseDiscardPolicy(s string) (DiscardPolicy, error) {
	switch s {
	case "", "discard":
		return DiscardIDless, nil
	case "surface-errors":
		return SurfaceIDlessErrors, nil
	default:
		return 0, fmt.Errorf("unknown discard policy %q", s)
	}
}

// DialOption configures client connections
type DialOption func(*dialOptions)

type dialOptions struct {
	codec       Codec
	logger      commonlog.Logger
	dialTimeout time.Duration
	maxHeader   int
	maxBody     int
	policy      DiscardPolicy
}

func newDialOptions(opts []DialOption) *dialOptions {
	o := &dialOptions{
		codec:     defaultCodec,
		logger:    commonlog.GetLogger("lspclient"),
		maxHeader: DefaultMaxHeaderBytes,
		maxBody:   DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithCodec replaces the JSON codec used for frame bodies
func WithCodec(c Codec) DialOption {
	return func(o *dialOptions) { o.codec = c }
}

// WithLogger sets the logger used for wire tracing
func WithLogger(l commonlog.Logger) DialOption {
	return func(o *dialOptions) { o.logger = l }
}

// WithDialTimeout bounds the connection attempt made by Dial
func WithDialTimeout(d time.Duration) DialOption {
	return func(o *dialOptions) { o.dialTimeout = d }
}

// WithMaxHeaderBytes caps the size of a frame header block. Zero or a
// negative value removes the cap.
func WithMaxHeaderBytes(n int) DialOption {
	return func(o *dialOptions) { o.maxHeader = n }
}

// WithMaxBodyBytes caps the declared Content-Length. Zero or a negative
// value removes the cap.
func WithMaxBodyBytes(n int) DialOption {
	return func(o *dialOptions) { o.maxBody = n }
}

// WithDiscardPolicy sets how id-less messages are handled
func WithDiscardPolicy(p DiscardPolicy) DialOption {
	return func(o *dialOptions) { o.policy = p }
}

// NewClient wraps an already connected stream. If stream is an io.Closer,
// Close closes it.
func NewClient(stream Stream, opts ...DialOption) *Client {
	return newClient(stream, newDialOptions(opts))
}

func newClient(stream Stream, o *dialOptions) *Client {
	return &Client{
		stream: stream,
		w:      bufio.NewWriter(stream),
		frames: newFrameReader(stream, o.maxHeader, o.maxBody),
		codec:  o.codec,
		log:    o.logger,
		policy: o.policy,
	}
}

// Send serializes msg, frames it and flushes it to the stream.
func (c *Client) Send(ctx context.Context, msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.send(ctx, msg)
}

// ReceiveResponse blocks until a message with a non-null id arrives and
// returns it. Messages without an id are consumed and dropped according to
// the client's DiscardPolicy.
func (c *Client) ReceiveResponse(ctx context.Context) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.receive(ctx)
}

// Call sends a request with the next integer id and waits for its response.
// The result member is decoded into reply when reply is non-nil; a JSON-RPC
// error response is returned as *json2.Error.
func (c *Client) Call(ctx context.Context, method string, params, reply interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	if err := c.send(ctx, NewRequest(id, method, params)); err != nil {
		return err
	}
	resp, err := c.receive(ctx)
	if err != nil {
		return err
	}
	if !resp.HasID() {
		return resp.Err()
	}
	if !resp.IDEquals(id) {
		return fmt.Errorf("%w: sent %d, got %s", ErrUnexpectedID, id, resp.ID)
	}
	return resp.DecodeResult(reply)
}

// Notify sends a one-way notification (no response expected)
func (c *Client) Notify(ctx context.Context, method string, params interface{}) error {
	return c.Send(ctx, NewNotification(method, params))
}

// Initialize performs the LSP handshake: an initialize request followed by
// the initialized notification. It returns the raw InitializeResult.
func (c *Client) Initialize(ctx context.Context, params InitializeParams) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.Call(ctx, MethodInitialize, params, &result); err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	if err := c.Send(ctx, NewInitializedNotification()); err != nil {
		return nil, fmt.Errorf("initialized: %w", err)
	}
	c.log.Infof("initialized session as %s %s", params.ClientInfo.Name, params.ClientInfo.Version)
	return result, nil
}

// Close closes the underlying stream if it can be closed. It does not wait
// for an in-flight call; a blocked read returns once the stream is closed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if closer, ok := c.stream.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Client) usable() error {
	if c.closed.Load() {
		return ErrClosed
	}
	if c.broken != nil {
		return fmt.Errorf("%w: %w", ErrBroken, c.broken)
	}
	return nil
}

// fail records err as fatal when it leaves the stream at an unknown position.
func (c *Client) fail(err error) {
	if errors.Is(err, ErrIO) || errors.Is(err, ErrHeaderTooLarge) || errors.Is(err, ErrBodyTooLarge) ||
		errors.Is(err, ErrMissingContentLength) || errors.Is(err, ErrMalformedHeader) {
		c.broken = err
	}
}

func (c *Client) send(ctx context.Context, msg Message) error {
	if err := c.usable(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkEnvelope(msg); err != nil {
		return err
	}

	body, err := c.codec.Encode(msg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	c.log.Debugf("send: %s", body)

	defer c.writeDeadline(ctx)()
	if err := writeFrame(c.w, body); err != nil {
		c.fail(err)
		return err
	}
	return nil
}

func (c *Client) receive(ctx context.Context) (*Response, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}
	defer c.readDeadline(ctx)()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, err := c.frames.readFrame()
		if err != nil {
			if c.closed.Load() {
				return nil, fmt.Errorf("%w: %w", ErrClosed, err)
			}
			c.fail(err)
			return nil, err
		}
		c.log.Debugf("receive: %s", body)

		var resp Response
		if err := c.codec.Decode(body, &resp); err != nil {
			return nil, &MalformedBodyError{Body: body, Err: err}
		}
		if resp.HasID() {
			return &resp, nil
		}
		if c.policy == SurfaceIDlessErrors && resp.HasError() {
			return &resp, nil
		}
		c.log.Debugf("discarding message without id")
	}
}

func checkEnvelope(msg Message) error {
	switch m := msg.(type) {
	case nil:
		return fmt.Errorf("%w: nil message", ErrSerialization)
	case *Request:
		if m == nil || m.ID == nil {
			return fmt.Errorf("%w: request without id", ErrSerialization)
		}
	case Request:
		if m.ID == nil {
			return fmt.Errorf("%w: request without id", ErrSerialization)
		}
	case *Response:
		if m == nil {
			return fmt.Errorf("%w: nil response", ErrSerialization)
		}
	case *Notification:
		if m == nil {
			return fmt.Errorf("%w: nil notification", ErrSerialization)
		}
	}
	return nil
}

type readDeadliner interface {
	SetReadDeadline(t time.Time) error
}

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// readDeadline applies the context deadline to the stream and returns a
// func that clears it.
func (c *Client) readDeadline(ctx context.Context) func() {
	d, ok := c.stream.(readDeadliner)
	deadline, has := ctx.Deadline()
	if !ok || !has {
		return func() {}
	}
	_ = d.SetReadDeadline(deadline)
	return func() { _ = d.SetReadDeadline(time.Time{}) }
}

func (c *Client) writeDeadline(ctx context.Context) func() {
	d, ok := c.stream.(writeDeadliner)
	deadline, has := ctx.Deadline()
	if !ok || !has {
		return func() {}
	}
	_ = d.SetWriteDeadline(deadline)
	return func() { _ = d.SetWriteDeadline(time.Time{}) }
}

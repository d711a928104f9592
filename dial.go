// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lspclient

import (
	"context"
	"fmt"
	"net"
	"strings"
)

// Address is a parsed connection string of the form <scheme>:<target>.
type Address struct {
	Scheme string
	Target string
}

func (a Address) String() string {
	return a.Scheme + ":" + a.Target
}

// ParseAddress splits addr on its first colon and validates the target for
// the scheme. It never performs I/O.
//
//	tcp:localhost:9257
//	unix:/run/user/1000/gopls.sock
func ParseAddress(addr string) (Address, error) {
	name, target, ok := strings.Cut(addr, ":")
	if !ok {
		return Address{}, fmt.Errorf("%w: %q: expected <scheme>:<address>", ErrInvalidAddress, addr)
	}
	s, ok := lookupScheme(name)
	if !ok {
		return Address{}, fmt.Errorf("%w: unsupported scheme %q, use one of %v", ErrInvalidAddress, name, AvailableSchemes())
	}
	if err := s.validate(target); err != nil {
		return Address{}, fmt.Errorf("%w: %s: %v", ErrInvalidAddress, name, err)
	}
	return Address{Scheme: name, Target: target}, nil
}

func validateHostPort(target string) error {
	_, port, err := net.SplitHostPort(target)
	if err != nil {
		return err
	}
	if port == "" {
		return fmt.Errorf("missing port in %q", target)
	}
	return nil
}

func validatePath(target string) error {
	if target == "" {
		return fmt.Errorf("empty socket path")
	}
	return nil
}

// Dial parses addr, makes a single connection attempt and returns a Client
// owning the connection. There is no retry.
func Dial(ctx context.Context, addr string, opts ...DialOption) (*Client, error) {
	o := newDialOptions(opts)

	a, err := ParseAddress(addr)
	if err != nil {
		return nil, err
	}
	s, _ := lookupScheme(a.Scheme)

	d := &net.Dialer{Timeout: o.dialTimeout}
	o.logger.Debugf("dialing %s", a)
	conn, err := s.connect(ctx, d, a.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConnect, a, err)
	}
	return newClient(conn, o), nil
}

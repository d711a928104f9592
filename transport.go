// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lspclient

import (
	"context"
	"net"
	"sort"
	"sync"
)

// Address schemes
const (
	SchemeTCP  = "tcp"  // host:port
	SchemeUnix = "unix" // filesystem path
)

// Stream is the duplex byte stream a Client owns. Sockets returned by Dial
// satisfy it; tests may pass any reader/writer pair.
type Stream interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

type connectFunc func(ctx context.Context, d *net.Dialer, target string) (net.Conn, error)

type scheme struct {
	connect  connectFunc
	validate func(target string) error
}

var (
	schemesMu sync.RWMutex
	schemes   = make(map[string]scheme)
)

func init() {
	registerScheme(SchemeTCP, scheme{connect: netConnect("tcp"), validate: validateHostPort})
	registerScheme(SchemeUnix, scheme{connect: netConnect("unix"), validate: validatePath})
}

func netConnect(network string) connectFunc {
	return func(ctx context.Context, d *net.Dialer, target string) (net.Conn, error) {
		return d.DialContext(ctx, network, target)
	}
}

// registerScheme registers a new address scheme
func registerScheme(name string, s scheme) {
	schemesMu.Lock()
	defer schemesMu.Unlock()
	schemes[name] = s
}

func lookupScheme(name string) (scheme, bool) {
	schemesMu.RLock()
	defer schemesMu.RUnlock()
	s, ok := schemes[name]
	return s, ok
}

// AvailableSchemes returns the registered address schemes in sorted order
func AvailableSchemes() []string {
	schemesMu.RLock()
	defer schemesMu.RUnlock()
	result := make([]string, 0, len(schemes))
	for name := range schemes {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// HasScheme checks if a scheme is available
func HasScheme(name string) bool {
	_, ok := lookupScheme(name)
	return ok
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lspclient

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Frame limits
const (
	DefaultMaxHeaderBytes = 8 << 10  // 8KB
	DefaultMaxBodyBytes   = 64 << 20 // 64MB
)

const contentLengthHeader = "Content-Length"

var headerTerminator = []byte("\r\n\r\n")

// encodeFrame prefixes body with its Content-Length header.
func encodeFrame(body []byte) []byte {
	header := contentLengthHeader + ": " + strconv.Itoa(len(body)) + "\r\n\r\n"
	buf := make([]byte, 0, len(header)+len(body))
	buf = append(buf, header...)
	return append(buf, body...)
}

// writeFrame writes header and body as one write and flushes.
func writeFrame(w *bufio.Writer, body []byte) error {
	if _, err := w.Write(encodeFrame(body)); err != nil {
		return fmt.Errorf("%w: write frame: %w", ErrIO, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %w", ErrIO, err)
	}
	return nil
}

// frameReader deframes Content-Length framed messages. It reads the header
// one byte at a time and the body with a single ReadFull, so it never
// consumes bytes past the end of the current frame.
type frameReader struct {
	r         io.Reader
	maxHeader int
	maxBody   int

	one    [1]byte
	header []byte
}

func newFrameReader(r io.Reader, maxHeader, maxBody int) *frameReader {
	return &frameReader{r: r, maxHeader: maxHeader, maxBody: maxBody}
}

// readFrame returns the body of the next frame.
func (f *frameReader) readFrame() ([]byte, error) {
	header, err := f.readHeader()
	if err != nil {
		return nil, err
	}
	n, err := parseContentLength(header)
	if err != nil {
		return nil, err
	}
	if f.maxBody > 0 && n > f.maxBody {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrBodyTooLarge, n, f.maxBody)
	}
	return f.readBody(n)
}

func (f *frameReader) readHeader() ([]byte, error) {
	f.header = f.header[:0]
	for !bytes.HasSuffix(f.header, headerTerminator) {
		if f.maxHeader > 0 && len(f.header) >= f.maxHeader {
			return nil, fmt.Errorf("%w: no terminator within %d bytes", ErrHeaderTooLarge, f.maxHeader)
		}
		if _, err := io.ReadFull(f.r, f.one[:]); err != nil {
			return nil, fmt.Errorf("%w: read header: %w", ErrIO, err)
		}
		f.header = append(f.header, f.one[0])
	}
	return f.header, nil
}

func (f *frameReader) readBody(n int) ([]byte, error) {
	body := make([]byte, n)
	if _, err := io.ReadFull(f.r, body); err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrIO, err)
	}
	return body, nil
}

// parseContentLength finds the first Content-Length line in a header block.
// Other header fields are ignored.
func parseContentLength(header []byte) (int, error) {
	for _, line := range strings.Split(string(header), "\n") {
		line = strings.TrimRight(line, "\r")
		key, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(key, contentLengthHeader) {
			continue
		}
		value = strings.TrimSpace(value)
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: Content-Length %q", ErrMalformedHeader, value)
		}
		return n, nil
	}
	return 0, ErrMissingContentLength
}

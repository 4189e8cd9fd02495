package server

import (
	"bufio"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/staticd/core/logger"
)

// guardBufferSize bounds the lines the guard inspects. Longer lines are
// forwarded unchecked and left to net/http's own limits.
const guardBufferSize = 16 << 10

// guardListener wraps accepted connections with a request-line rewriter.
type guardListener struct {
	net.Listener
	target string
	logger *slog.Logger
}

func (l *guardListener) Accept() (net.Conn, error) {
	c, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return &guardConn{
		Conn:   c,
		br:     bufio.NewReaderSize(c, guardBufferSize),
		target: l.target,
		logger: l.logger,
	}, nil
}

type guardState int

const (
	stateRequestLine guardState = iota
	stateHeaders
	stateBody
	statePassthrough
)

// guardConn tracks HTTP/1.x framing on the read side of a connection and
// replaces request targets that url.ParseRequestURI rejects. Requests whose
// body length is not given by Content-Length switch the connection to
// passthrough for the rest of its life.
type guardConn struct {
	net.Conn
	br     *bufio.Reader
	target string
	logger *slog.Logger

	state    guardState
	line     []byte // partial line kept across failed reads
	out      []byte // processed bytes not yet handed to the reader
	longLine bool
	bodyLeft int64
	opaque   bool
}

func (c *guardConn) Read(p []byte) (int, error) {
	for len(c.out) == 0 {
		switch c.state {
		case statePassthrough:
			return c.br.Read(p)
		case stateBody:
			if int64(len(p)) > c.bodyLeft {
				p = p[:c.bodyLeft]
			}
			n, err := c.br.Read(p)
			c.bodyLeft -= int64(n)
			if c.bodyLeft == 0 {
				c.state = stateRequestLine
			}
			return n, err
		default:
			if err := c.nextLine(); err != nil {
				return 0, err
			}
		}
	}

	n := copy(p, c.out)
	c.out = c.out[n:]
	return n, nil
}

// CloseWrite keeps half-close available to net/http when the underlying
// connection supports it.
func (c *guardConn) CloseWrite() error {
	if cw, ok := c.Conn.(interface{ CloseWrite() error }); ok {
		return cw.CloseWrite()
	}
	return nil
}

func (c *guardConn) nextLine() error {
	chunk, err := c.br.ReadSlice('\n')
	switch {
	case err == nil:
	case errors.Is(err, bufio.ErrBufferFull):
		c.out = append(c.line, chunk...)
		c.line = nil
		c.longLine = true
		return nil
	default:
		c.line = append(c.line, chunk...)
		return err
	}

	line := append(c.line, chunk...)
	c.line = nil
	c.out = line

	if c.longLine {
		c.longLine = false
		if c.state == stateRequestLine {
			c.beginRequest()
		}
		return nil
	}

	switch c.state {
	case stateRequestLine:
		c.out = c.requestLine(line)
	case stateHeaders:
		c.header(line)
	}
	return nil
}

func (c *guardConn) beginRequest() {
	c.state = stateHeaders
	c.bodyLeft = 0
	c.opaque = false
}

func (c *guardConn) requestLine(line []byte) []byte {
	text := strings.TrimRight(string(line), "\r\n")
	if text == "" {
		return line
	}
	c.beginRequest()

	method, rest, ok := strings.Cut(text, " ")
	if !ok || method == http.MethodConnect {
		return line
	}
	target, proto, ok := strings.Cut(rest, " ")
	if !ok {
		return line
	}
	if _, err := url.ParseRequestURI(target); err == nil {
		return line
	}

	c.logger.Debug("rewrote malformed request target",
		logger.Method(method),
		logger.Path(target),
		logger.RemoteAddr(c.RemoteAddr().String()),
	)
	return []byte(method + " " + c.target + " " + proto + string(line[len(text):]))
}

func (c *guardConn) header(line []byte) {
	text := strings.TrimRight(string(line), "\r\n")
	if text == "" {
		switch {
		case c.opaque:
			c.state = statePassthrough
		case c.bodyLeft > 0:
			c.state = stateBody
		default:
			c.state = stateRequestLine
		}
		return
	}

	name, value, ok := strings.Cut(text, ":")
	if !ok {
		return
	}
	value = strings.TrimSpace(value)

	switch {
	case strings.EqualFold(name, "Content-Length"):
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 {
			c.opaque = true
			return
		}
		c.bodyLeft = n
	case strings.EqualFold(name, "Transfer-Encoding"):
		c.opaque = true
	}
}

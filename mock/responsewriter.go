// Package mock supplies stand-ins for the query-path interfaces so server tests can
// drive ServeDNS directly and inspect what would have gone on the wire.
package mock

import (
	"net"

	"github.com/miekg/dns"
)

var (
	local  = &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 53}
	remote = &net.UDPAddr{IP: net.ParseIP("127.0.0.2"), Port: 4056}
)

// ResponseWriter captures the response message rather than writing it anywhere. The
// remote address is a real *net.UDPAddr as the server digs the client IP out of it.
type ResponseWriter struct {
	m *dns.Msg // Saved by WriteMsg
}

func (t *ResponseWriter) Reset() {
	t.m = nil
}

// Get returns the last response, if any, then clears it ready for the next exchange.
func (t *ResponseWriter) Get() *dns.Msg {
	m := t.m
	t.m = nil

	return m
}

func (t *ResponseWriter) LocalAddr() net.Addr {
	return local
}

func (t *ResponseWriter) RemoteAddr() net.Addr {
	return remote
}

func (t *ResponseWriter) WriteMsg(m *dns.Msg) error {
	t.m = m

	return nil
}

func (t *ResponseWriter) Write(b []byte) (int, error) {
	panic("mock.ResponseWriter does not expect Write() calls")
}

func (t *ResponseWriter) Close() error {
	return nil
}

func (t *ResponseWriter) TsigStatus() error {
	return nil
}

func (t *ResponseWriter) TsigTimersOnly(bool) {
}

func (t *ResponseWriter) Hijack() {
}

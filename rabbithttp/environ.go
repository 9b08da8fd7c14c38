// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// The keys of an Environ.  These follow CGI (RFC 3875) spelling, plus
// the WSGI convention for the url scheme.
const (
	EnvRequestMethod = "REQUEST_METHOD"
	EnvScriptName    = "SCRIPT_NAME"
	EnvQueryString   = "QUERY_STRING"
	EnvServerName    = "SERVER_NAME"
	EnvServerPort    = "SERVER_PORT"
	EnvContentType   = "CONTENT_TYPE"
	EnvContentLength = "CONTENT_LENGTH"
	EnvServerProto   = "SERVER_PROTOCOL"
	EnvRemoteAddr    = "REMOTE_ADDR"
	EnvURLScheme     = "wsgi.url_scheme"
	EnvHTTPS         = "HTTPS"

	// EnvPathInfo holds the path as it appeared on the wire, percent-encoding
	// intact.  Routing decodes each segment exactly once.
	EnvPathInfo = "PATH_INFO"

	// EnvHeaderPrefix is the prefix of every key that carries a request header
	EnvHeaderPrefix = "HTTP_"
)

// Environ is the key/value snapshot of an inbound request supplied by
// the hosting transport.  It is the only place where the spelling of
// transport keys is known.
type Environ map[string]string

// Clone returns a distinct copy of this Environ
func (e Environ) Clone() Environ {
	clone := make(Environ, len(e))
	for k, v := range e {
		clone[k] = v
	}

	return clone
}

type scriptNameKey struct{}

// WithScriptName returns a context carrying the path prefix under which
// the application is mounted.  NewEnviron reports it as SCRIPT_NAME.
func WithScriptName(ctx context.Context, scriptName string) context.Context {
	return context.WithValue(ctx, scriptNameKey{}, scriptName)
}

// ScriptName returns the mount prefix carried by the context, if any
func ScriptName(ctx context.Context) string {
	s, _ := ctx.Value(scriptNameKey{}).(string)
	return s
}

// NewEnviron adapts a net/http request into an Environ.  This is the single
// place where net/http is translated into environment keys.
func NewEnviron(r *http.Request) Environ {
	e := Environ{
		EnvRequestMethod: r.Method,
		EnvScriptName:    ScriptName(r.Context()),
		EnvPathInfo:      r.URL.EscapedPath(),
		EnvQueryString:   r.URL.RawQuery,
		EnvServerProto:   r.Proto,
		EnvRemoteAddr:    r.RemoteAddr,
		EnvURLScheme:     "http",
	}

	if r.TLS != nil {
		e[EnvURLScheme] = "https"
		e[EnvHTTPS] = "on"
	}

	host, port, err := net.SplitHostPort(r.Host)
	if err != nil {
		host = r.Host
		port = "80"
		if r.TLS != nil {
			port = "443"
		}
	}

	e[EnvServerName] = host
	e[EnvServerPort] = port

	for name, values := range r.Header {
		key := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		switch key {
		case EnvContentType, EnvContentLength:
			e[key] = strings.Join(values, ", ")

		default:
			e[EnvHeaderPrefix+key] = strings.Join(values, ", ")
		}
	}

	// net/http removes Host from the header map
	if len(r.Host) > 0 {
		e[EnvHeaderPrefix+"HOST"] = r.Host
	}

	return e
}

// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// RequestOption supplies data to a Request that does not come from the Environ.
type RequestOption func(*Request)

// WithBody sets the body stream of a request.  The stream remains owned by
// the transport and is only read on demand, e.g. by MultipartForm.
func WithBody(body io.Reader) RequestOption {
	return func(r *Request) {
		r.body = body
	}
}

// WithContext sets the context of a request
func WithContext(ctx context.Context) RequestOption {
	return func(r *Request) {
		r.ctx = ctx
	}
}

// Request is a snapshot of an inbound HTTP request.  It is created once
// per request by NewRequest and is read-only afterwards.
type Request struct {
	ctx     context.Context
	environ Environ
	body    io.Reader

	urlScheme  string
	method     string
	scriptName string
	pathInfo   string
	serverName string
	serverPort string

	query   url.Values
	cookies map[string]string
	header  *Header
}

// NewRequest builds a Request from an Environ.  Missing or malformed keys
// leave the corresponding field at its zero value.
func NewRequest(e Environ, opts ...RequestOption) *Request {
	r := &Request{
		ctx:        context.Background(),
		environ:    e.Clone(),
		urlScheme:  urlScheme(e),
		method:     strings.ToUpper(e[EnvRequestMethod]),
		scriptName: e[EnvScriptName],
		pathInfo:   e[EnvPathInfo],
		serverName: e[EnvServerName],
		serverPort: e[EnvServerPort],
		query:      parseQuery(e[EnvQueryString]),
		header:     NewHeader(),
	}

	// environ iteration order is random, so collect the header keys first
	headers := make(map[string][]string)
	for key, value := range e {
		if strings.HasPrefix(key, EnvHeaderPrefix) && len(key) > len(EnvHeaderPrefix) {
			name := key[len(EnvHeaderPrefix):]
			headers[name] = append(headers[name], value)
		}
	}

	// the unprefixed keys follow any HTTP_ spelling of the same header
	for _, key := range []string{EnvContentType, EnvContentLength} {
		if value, ok := e[key]; ok {
			headers[key] = append(headers[key], value)
		}
	}

	r.header.AddAll(headers)
	r.cookies = parseCookies(r.header.Values("cookie"))

	for _, o := range opts {
		o(r)
	}

	return r
}

func urlScheme(e Environ) string {
	if s := e[EnvURLScheme]; len(s) > 0 {
		return strings.ToLower(s)
	}

	if strings.EqualFold(e[EnvHTTPS], "on") {
		return "https"
	}

	return "http"
}

// parseQuery keeps whatever pairs could be decoded.  url.ParseQuery
// only reports the first bad pair, having already stored the good ones.
func parseQuery(raw string) url.Values {
	values, _ := url.ParseQuery(raw)
	if values == nil {
		values = make(url.Values)
	}

	return values
}

func parseCookies(lines []string) map[string]string {
	cookies := make(map[string]string)
	if len(lines) == 0 {
		return cookies
	}

	hr := http.Request{Header: http.Header{"Cookie": lines}}
	for _, c := range hr.Cookies() {
		cookies[c.Name] = c.Value
	}

	return cookies
}

// Context returns the context of this request, which is never nil
func (r *Request) Context() context.Context {
	return r.ctx
}

// URLScheme is either http or https
func (r *Request) URLScheme() string { return r.urlScheme }

// Method is the uppercased request method
func (r *Request) Method() string { return r.method }

// MethodIs tests this request's method
func (r *Request) MethodIs(m Method) bool { return r.method == string(m) }

// ScriptName is the path prefix under which the application is mounted
func (r *Request) ScriptName() string { return r.scriptName }

// PathInfo is the remainder of the path that the application routes on
func (r *Request) PathInfo() string { return r.pathInfo }

// ServerName is the host the request was addressed to, without the port
func (r *Request) ServerName() string { return r.serverName }

// ServerPort is the port the request was addressed to
func (r *Request) ServerPort() string { return r.serverPort }

// Header returns the request's headers.  Callers must not modify it.
func (r *Request) Header() *Header { return r.header }

// Body returns the body stream, which may be nil
func (r *Request) Body() io.Reader { return r.body }

// Environ returns a copy of the environment this request was built from
func (r *Request) Environ() Environ { return r.environ.Clone() }

// Query returns a copy of the parsed query string
func (r *Request) Query() url.Values {
	clone := make(url.Values, len(r.query))
	for k, v := range r.query {
		clone[k] = append([]string{}, v...)
	}

	return clone
}

// QueryValue returns the first value of a query parameter
func (r *Request) QueryValue(name string) string {
	return r.query.Get(name)
}

// Cookies returns a copy of the request cookies
func (r *Request) Cookies() map[string]string {
	clone := make(map[string]string, len(r.cookies))
	for k, v := range r.cookies {
		clone[k] = v
	}

	return clone
}

// Cookie returns the value of a cookie along with whether it was sent
func (r *Request) Cookie(name string) (string, bool) {
	v, ok := r.cookies[name]
	return v, ok
}

// FullURL reconstructs the absolute URL of this request.  The host is taken
// from X-Forwarded-Host when present, otherwise from the server name and port.
// The path is percent-encoded while the query string is passed through as is.
func (r *Request) FullURL() string {
	var o strings.Builder
	o.WriteString(r.urlScheme)
	o.WriteString("://")

	if fh := r.header.Get("x-forwarded-host"); len(fh) > 0 {
		// a proxy chain appends hosts, and the first one is the client's
		if i := strings.IndexByte(fh, ','); i >= 0 {
			fh = fh[:i]
		}

		o.WriteString(strings.TrimSpace(fh))
	} else {
		o.WriteString(r.serverName)
		if !isDefaultPort(r.urlScheme, r.serverPort) {
			o.WriteByte(':')
			o.WriteString(r.serverPort)
		}
	}

	o.WriteString(escapePath(r.scriptName + r.pathInfo))
	if qs := r.environ[EnvQueryString]; len(qs) > 0 {
		o.WriteByte('?')
		o.WriteString(qs)
	}

	return o.String()
}

// escapePath percent-encodes a path that may already be partially encoded.
// Valid escapes are kept as they are, so an encoded path is never encoded twice.
func escapePath(p string) string {
	decoded, err := url.PathUnescape(p)
	if err != nil {
		return (&url.URL{Path: p}).EscapedPath()
	}

	return (&url.URL{Path: decoded, RawPath: p}).EscapedPath()
}

func isDefaultPort(scheme, port string) bool {
	switch {
	case len(port) == 0:
		return true

	case scheme == "https":
		return port == "443"

	default:
		return port == "80"
	}
}

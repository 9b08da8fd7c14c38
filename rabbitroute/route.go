// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbitroute

import (
	"strings"
	"sync"

	"go.uber.org/multierr"
)

// Params holds the values captured from a request path, keyed by token name
type Params map[string]string

// Get returns a captured value, or the empty string if no such token was captured
func (p Params) Get(name string) string {
	return p[name]
}

// Option tailors a Route as it is registered
type Option func(*Route) error

// StrictMode overrides the table's trailing slash policy for one route.  In strict
// mode, the request path must end in a slash exactly when the pattern does.
func StrictMode(strict bool) Option {
	return func(r *Route) error {
		r.strict = &strict
		return nil
	}
}

// Token supplies the expression that the named capture must match instead of DefaultToken
func Token(name, expr string) Option {
	return func(r *Route) error {
		e, err := NewExpr(expr)
		if err == nil {
			r.exprs[name] = e
		}

		return err
	}
}

// TokenExpr is like Token, but with an already compiled expression.
// An unset Expr is ignored.
func TokenExpr(name string, e Expr) Option {
	return func(r *Route) error {
		if e.IsSet() {
			r.exprs[name] = e
		}

		return nil
	}
}

// Methods restricts a route to the given request methods.  A route without
// methods accepts any method.
func Methods(methods ...string) Option {
	return func(r *Route) error {
		for _, m := range methods {
			if m = strings.ToUpper(strings.TrimSpace(m)); len(m) > 0 {
				r.methods = append(r.methods, m)
			}
		}

		return nil
	}
}

// Route is a registered pattern together with the identifier of the handler
// that serves it.  A Route is immutable once registered.
type Route struct {
	pattern string
	handler string
	methods []string
	strict  *bool
	exprs   map[string]Expr

	parsed path
	tokens []string

	compile sync.Once
	matcher *matcher
}

// NewRoute parses a pattern and applies options.  Errors from every option are
// reported.  A Route compiles against the defaults of the first Table that
// matches with it, so a Route should only be added to one Table.
func NewRoute(pattern, handler string, opts ...Option) (*Route, error) {
	r := &Route{
		pattern: pattern,
		handler: handler,
		exprs:   make(map[string]Expr),
	}

	var err error
	r.parsed, r.tokens, err = parsePattern(pattern)
	for _, o := range opts {
		err = multierr.Append(err, o(r))
	}

	if err != nil {
		return nil, err
	}

	for name := range r.exprs {
		if !r.hasToken(name) {
			err = multierr.Append(err, &UnknownTokenError{Pattern: pattern, Name: name})
		}
	}

	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Route) hasToken(name string) bool {
	for _, t := range r.tokens {
		if t == name {
			return true
		}
	}

	return false
}

// Pattern returns the pattern this route was registered with
func (r *Route) Pattern() string { return r.pattern }

// Handler returns the identifier of the handler for this route
func (r *Route) Handler() string { return r.handler }

// Tokens returns the capture names of this route, in pattern order
func (r *Route) Tokens() []string { return append([]string(nil), r.tokens...) }

// Methods returns the methods this route is restricted to.  An empty
// result means any method is allowed.
func (r *Route) Methods() []string { return append([]string(nil), r.methods...) }

// AllowsMethod tests if this route accepts the given method
func (r *Route) AllowsMethod(method string) bool {
	if len(r.methods) == 0 {
		return true
	}

	for _, m := range r.methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}

	return false
}

// match compiles this route on first use and tests the path.  strict and
// def are the table's defaults, which never change after the first match.
func (r *Route) match(requestPath string, strict bool, def Expr) (Params, bool) {
	r.compile.Do(func() {
		if r.strict != nil {
			strict = *r.strict
		}

		r.matcher = newMatcher(r.parsed, strict, r.exprs, def)
	})

	return r.matcher.match(requestPath)
}

// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbitroute

import (
	"errors"
	"sync"
)

var (
	// ErrTableFrozen is returned when a route is registered after the table has served a lookup
	ErrTableFrozen = errors.New("routes cannot be registered once the table is in use")

	// ErrNilRoute is returned when a nil route is added to a table
	ErrNilRoute = errors.New("the route cannot be nil")
)

// Request is the part of an inbound request that routing needs
type Request interface {
	// PathInfo is the path to resolve, relative to where the application is mounted
	PathInfo() string

	// Method is the request method
	Method() string
}

// Outcome describes the result of a lookup
type Outcome int

const (
	// NotFound means no route accepted the path
	NotFound Outcome = iota

	// Found means a route accepted both the path and the method
	Found

	// MethodNotAllowed means at least one route accepted the path, but none
	// accepted the method
	MethodNotAllowed
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"

	case MethodNotAllowed:
		return "method not allowed"

	default:
		return "not found"
	}
}

// Match is the result of a lookup
type Match struct {
	Outcome Outcome

	// Route is the matching route when Outcome is Found
	Route *Route

	// Params holds the captured values when Outcome is Found
	Params Params

	// Allowed holds the methods that would have been accepted when
	// Outcome is MethodNotAllowed
	Allowed []string
}

// TableOption tailors a Table
type TableOption func(*Table) error

// DefaultStrictMode sets the trailing slash policy for routes that do not set their own
func DefaultStrictMode(strict bool) TableOption {
	return func(t *Table) error {
		t.strict = strict
		return nil
	}
}

// DefaultTokenExpr replaces DefaultToken as the expression for captures without an override
func DefaultTokenExpr(expr string) TableOption {
	return func(t *Table) (err error) {
		t.def, err = NewExpr(expr)
		return
	}
}

// Table is an ordered set of routes.  Routes are registered during startup;
// the first lookup freezes the table, after which it is safe for concurrent use.
type Table struct {
	lock   sync.Mutex
	freeze sync.Once
	frozen bool

	strict bool
	def    Expr
	routes []*Route
}

// NewTable creates an empty, non-strict Table that uses DefaultToken
func NewTable(opts ...TableOption) (*Table, error) {
	t := &Table{
		def: defaultExpr,
	}

	for _, o := range opts {
		if err := o(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Register adds a route.  The handler is an opaque identifier that the caller
// later resolves to actual application code.
func (t *Table) Register(pattern, handler string, opts ...Option) error {
	r, err := NewRoute(pattern, handler, opts...)
	if err != nil {
		return err
	}

	return t.Add(r)
}

// Add appends a route created with NewRoute
func (t *Table) Add(r *Route) error {
	if r == nil {
		return ErrNilRoute
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	if t.frozen {
		return ErrTableFrozen
	}

	t.routes = append(t.routes, r)
	return nil
}

// Len returns the number of registered routes
func (t *Table) Len() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return len(t.routes)
}

// Routes returns the registered routes in registration order
func (t *Table) Routes() []*Route {
	t.lock.Lock()
	defer t.lock.Unlock()
	return append([]*Route(nil), t.routes...)
}

// Lookup resolves a request.  Routes are tried in registration order and the
// first route accepting both path and method wins.
func (t *Table) Lookup(r Request) Match {
	t.freeze.Do(func() {
		t.lock.Lock()
		t.frozen = true
		t.lock.Unlock()
	})

	var (
		allowed     []string
		seen        = make(map[string]bool)
		pathMatched bool
		method      = r.Method()
	)

	for _, route := range t.routes {
		params, ok := route.match(r.PathInfo(), t.strict, t.def)
		if !ok {
			continue
		}

		if route.AllowsMethod(method) {
			return Match{
				Outcome: Found,
				Route:   route,
				Params:  params,
			}
		}

		pathMatched = true
		for _, m := range route.methods {
			if !seen[m] {
				seen[m] = true
				allowed = append(allowed, m)
			}
		}
	}

	if pathMatched {
		return Match{
			Outcome: MethodNotAllowed,
			Allowed: allowed,
		}
	}

	return Match{Outcome: NotFound}
}

// Match is like Lookup, but only reports whether a route was found
func (t *Table) Match(r Request) (Match, bool) {
	m := t.Lookup(r)
	return m, m.Outcome == Found
}

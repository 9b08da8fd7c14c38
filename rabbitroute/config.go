// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbitroute

import (
	"fmt"

	"go.uber.org/multierr"
)

// RouteConfig is the unmarshaled form of a single route
type RouteConfig struct {
	// Pattern is the route pattern, e.g. /user/{id}
	Pattern string

	// Handler is the identifier of the handler that serves this route
	Handler string

	// Methods optionally restricts the route to these request methods
	Methods []string

	// StrictMode optionally overrides Config.StrictMode for this route
	StrictMode *bool

	// Tokens supplies expressions for captures, keyed by token name.
	// Each value decodes from a string via encoding.TextUnmarshaler.
	Tokens map[string]Expr
}

// Options converts this configuration into the equivalent registration options
func (rc RouteConfig) Options() (opts []Option) {
	if len(rc.Methods) > 0 {
		opts = append(opts, Methods(rc.Methods...))
	}

	if rc.StrictMode != nil {
		opts = append(opts, StrictMode(*rc.StrictMode))
	}

	for name, e := range rc.Tokens {
		opts = append(opts, TokenExpr(name, e))
	}

	return
}

// Config is the unmarshaled form of a route table.  It can be read via viper,
// which allows routes to be declared in external configuration:
//
//	routes:
//	  strictMode: false
//	  defaultToken: "[a-z]+"
//	  routes:
//	    - pattern: /user/{id}
//	      handler: user
//	      methods: [GET]
//	      tokens:
//	        id: "[0-9]+"
type Config struct {
	// StrictMode is the trailing slash policy for routes that do not set their own
	StrictMode bool

	// DefaultToken optionally replaces DefaultToken
	DefaultToken Expr

	// Routes are registered in the order given
	Routes []RouteConfig
}

// NewTable builds a Table from this configuration.  All invalid routes are
// reported together, and no table is returned if any route is invalid.
func (c Config) NewTable() (*Table, error) {
	t, err := NewTable(DefaultStrictMode(c.StrictMode))
	if err != nil {
		return nil, err
	}

	if c.DefaultToken.IsSet() {
		t.def = c.DefaultToken
	}

	for i, rc := range c.Routes {
		if regErr := t.Register(rc.Pattern, rc.Handler, rc.Options()...); regErr != nil {
			err = multierr.Append(err, fmt.Errorf("route %d: %w", i, regErr))
		}
	}

	if err != nil {
		return nil, err
	}

	return t, nil
}

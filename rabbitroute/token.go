// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbitroute

import (
	"fmt"
	"regexp"
)

// DefaultToken is the expression a captured segment must match when its route
// supplies no override:  letters, digits, underscore, CJK ideographs, hyphen, and dot.
const DefaultToken = `[-._0-9a-zA-Z\x{4e00}-\x{9fa5}]+`

var tokenName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Expr is a token expression.  It implements encoding.TextUnmarshaler so that
// it can be decoded directly from configuration.
//
// The zero value is an unset expression.
type Expr struct {
	re *regexp.Regexp
}

// NewExpr compiles a token expression.  The expression always applies to
// an entire path segment, so it must not be anchored by the caller.
func NewExpr(v string) (Expr, error) {
	re, err := regexp.Compile(`^(?:` + v + `)$`)
	if err != nil {
		return Expr{}, fmt.Errorf("invalid token expression [%s]: %w", v, err)
	}

	return Expr{re: re}, nil
}

// MustExpr is like NewExpr, but panics on an invalid expression
func MustExpr(v string) Expr {
	e, err := NewExpr(v)
	if err != nil {
		panic(err)
	}

	return e
}

// IsSet tests if this expression was compiled
func (e Expr) IsSet() bool {
	return e.re != nil
}

// MatchString tests a whole segment against this expression
func (e Expr) MatchString(v string) bool {
	return e.re != nil && e.re.MatchString(v)
}

// String returns the anchored source of this expression
func (e Expr) String() string {
	if e.re == nil {
		return ""
	}

	return e.re.String()
}

// UnmarshalText compiles the given text as an expression
func (e *Expr) UnmarshalText(text []byte) (err error) {
	*e, err = NewExpr(string(text))
	return
}

var defaultExpr = MustExpr(DefaultToken)

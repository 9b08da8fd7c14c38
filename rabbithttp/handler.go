// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import "github.com/xmidt-org/rabbit/rabbitroute"

// Handler is application code that serves a matched route
type Handler interface {
	// Handle produces the response for a request.  params holds the values
	// captured by the route pattern.  A returned error is reported with the
	// status given by StatusFor, and any returned response is discarded.
	Handle(r *Request, params rabbitroute.Params) (*Response, error)
}

// HandlerFunc is a closure type that implements Handler
type HandlerFunc func(*Request, rabbitroute.Params) (*Response, error)

// Handle implements Handler
func (hf HandlerFunc) Handle(r *Request, params rabbitroute.Params) (*Response, error) {
	return hf(r, params)
}

// NamedHandler associates a handler with the identifier routes use to refer to it
type NamedHandler struct {
	Name    string
	Handler Handler
}

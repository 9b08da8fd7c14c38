// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/xmidt-org/rabbit/rabbitroute"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	// ErrNilTable is returned when a Kernel is created without a route table
	ErrNilTable = errors.New("the route table cannot be nil")

	// ErrDuplicateHandler is returned when two handlers share an identifier
	ErrDuplicateHandler = errors.New("a handler with that identifier is already registered")
)

// WithHandler registers a handler under the identifier routes refer to it by
func WithHandler(name string, h Handler) Option[Kernel] {
	return OptionFunc[Kernel](func(k *Kernel) error {
		if _, exists := k.handlers[name]; exists {
			return &ConfigurationError{Handler: name, Err: ErrDuplicateHandler}
		}

		k.handlers[name] = h
		return nil
	})
}

// WithLogger sets the kernel's logger.  A nil logger is ignored.
func WithLogger(l *zap.Logger) Option[Kernel] {
	return OptionFunc[Kernel](func(k *Kernel) error {
		if l != nil {
			k.logger = l
		}

		return nil
	})
}

// WithMiddleware decorates every handler.  Middleware executes in the order given.
func WithMiddleware(m ...HandlerMiddleware) Option[Kernel] {
	return OptionFunc[Kernel](func(k *Kernel) error {
		k.middleware = append(k.middleware, m...)
		return nil
	})
}

// WithErrorStatuser sets the strategy for mapping handler errors to statuses
func WithErrorStatuser(es ErrorStatuser) Option[Kernel] {
	return OptionFunc[Kernel](func(k *Kernel) error {
		k.statuser = es
		return nil
	})
}

// Kernel ties the request flow together:  environment to Request, Request to
// route, route to Handler, and Handler to Response.
//
// A Kernel is safe for concurrent use once created.
type Kernel struct {
	table      *rabbitroute.Table
	handlers   map[string]Handler
	middleware []HandlerMiddleware
	statuser   ErrorStatuser
	logger     *zap.Logger
}

// NewKernel creates a Kernel that routes with the given table
func NewKernel(table *rabbitroute.Table, opts ...Option[Kernel]) (*Kernel, error) {
	if table == nil {
		return nil, ErrNilTable
	}

	k := &Kernel{
		table:    table,
		handlers: make(map[string]Handler),
		logger:   zap.NewNop(),
	}

	if _, err := ApplyOptions(k, opts...); err != nil {
		return nil, err
	}

	return k, nil
}

// Handle runs the request flow for one request and always produces a
// response to send.  The returned error describes why the response is not
// the handler's own:  ErrNotFound, ErrMethodNotAllowed, a *ConfigurationError,
// or a *HandlerError.
func (k *Kernel) Handle(r *Request) (*Response, error) {
	m := k.table.Lookup(r)
	switch m.Outcome {
	case rabbitroute.NotFound:
		return errorResponse(StatusNotFound), ErrNotFound

	case rabbitroute.MethodNotAllowed:
		response := errorResponse(StatusMethodNotAllowed)
		response.Header().Set("allow", strings.Join(m.Allowed, ", "))
		return response, ErrMethodNotAllowed
	}

	name := m.Route.Handler()
	h, ok := k.handlers[name]
	if !ok {
		err := &ConfigurationError{Handler: name, Err: ErrMissingHandler}
		return errorResponse(StatusFor(err, nil)), err
	}

	h = ApplyMiddleware[Handler, HandlerMiddleware](h, k.middleware...)
	response, err := h.Handle(r, m.Params)
	switch {
	case err != nil:
		err = &HandlerError{Handler: name, Err: err}
		return errorResponse(StatusFor(err, k.statuser)), err

	case response == nil:
		response = NewResponse()
		_ = response.SetStatus(StatusNoContent)
	}

	return response, nil
}

// ServeHTTP adapts the Kernel to net/http
func (k *Kernel) ServeHTTP(rw http.ResponseWriter, hr *http.Request) {
	r := NewRequest(
		NewEnviron(hr),
		WithBody(hr.Body),
		WithContext(hr.Context()),
	)

	response, err := k.Handle(r)
	logger := k.logger.With(
		zap.String("method", r.Method()),
		zap.String("scriptName", r.ScriptName()),
		zap.String("pathInfo", r.PathInfo()),
		zap.Int("status", response.Status().Code()),
	)

	var ce *ConfigurationError
	var he *HandlerError
	switch {
	case errors.As(err, &ce):
		logger.Error("kernel misconfigured", zap.Error(err))

	case errors.As(err, &he):
		logger.Error("handler failed", zap.Error(err))

	default:
		logger.Debug("request served", zap.NamedError("outcome", err))
	}

	if writeErr := response.Write(rw); writeErr != nil {
		logger.Error("unable to write response", zap.Error(writeErr))
	}
}

func errorResponse(s Status) *Response {
	r := NewResponse()
	_ = r.SetStatus(s)
	r.Header().Set("content-type", "text/plain; charset=utf-8")
	r.SetString(s.String())
	return r
}

// KernelIn is the set of dependencies for creating a Kernel within an fx.App
type KernelIn struct {
	fx.In

	// Table is the required route table
	Table *rabbitroute.Table

	// Handlers are the application handlers, usually supplied via ProvideHandler
	Handlers []NamedHandler `group:"rabbit.handlers"`

	// Middleware optionally decorates every handler
	Middleware []HandlerMiddleware `optional:"true"`

	// Logger is the optional logger for the kernel
	Logger *zap.Logger `optional:"true"`
}

// NewKernelIn is an fx constructor for a Kernel
func NewKernelIn(in KernelIn) (*Kernel, error) {
	opts := []Option[Kernel]{
		WithLogger(in.Logger),
		WithMiddleware(in.Middleware...),
	}

	for _, nh := range in.Handlers {
		opts = append(opts, WithHandler(nh.Name, nh.Handler))
	}

	return NewKernel(in.Table, opts...)
}

// ProvideHandler contributes a handler to the Kernel of the enclosing fx.App
func ProvideHandler(name string, h Handler) fx.Option {
	return fx.Provide(
		fx.Annotated{
			Group: "rabbit.handlers",
			Target: func() NamedHandler {
				return NamedHandler{Name: name, Handler: h}
			},
		},
	)
}

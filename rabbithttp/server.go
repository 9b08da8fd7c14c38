// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/xmidt-org/httpaux"
	"github.com/xmidt-org/rabbit"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	// ErrNilKernel is returned when a server is provided without a Kernel
	ErrNilKernel = errors.New("the kernel cannot be nil")
)

// ServerConfig holds the unmarshaled configuration for the http.Server that
// hosts a Kernel.
type ServerConfig struct {
	// Network is the tcp network to listen on.  The default is "tcp".
	Network string

	// Address is the bind address of the server.  If unset, the server binds to
	// the first port available.
	Address string

	// ReadTimeout corresponds to http.Server.ReadTimeout
	ReadTimeout time.Duration

	// ReadHeaderTimeout corresponds to http.Server.ReadHeaderTimeout
	ReadHeaderTimeout time.Duration

	// WriteTimeout corresponds to http.Server.WriteTimeout
	WriteTimeout time.Duration

	// IdleTimeout corresponds to http.Server.IdleTimeout
	IdleTimeout time.Duration

	// MaxHeaderBytes corresponds to http.Server.MaxHeaderBytes
	MaxHeaderBytes int

	// KeepAlive corresponds to net.ListenConfig.KeepAlive
	KeepAlive time.Duration

	// Header supplies HTTP headers to emit on every response from this server
	Header http.Header

	// MountPath is the path prefix under which the Kernel is served.  Requests
	// see it as their script name, and their path info is what follows it.
	MountPath string
}

// NewServer creates the http.Server for this configuration.  Each constructor
// decorates h, in the order given, and the configured headers are applied
// outside of all of them.
func (sc ServerConfig) NewServer(h http.Handler, c ...alice.Constructor) *http.Server {
	return &http.Server{
		Addr:              sc.Address,
		Handler:           alice.New(SetHeader(httpaux.NewHeader(sc.Header))).Append(c...).Then(h),
		ReadTimeout:       sc.ReadTimeout,
		ReadHeaderTimeout: sc.ReadHeaderTimeout,
		WriteTimeout:      sc.WriteTimeout,
		IdleTimeout:       sc.IdleTimeout,
		MaxHeaderBytes:    sc.MaxHeaderBytes,
	}
}

// SetHeader is server middleware that writes the given headers to every response
// before the decorated handler runs.  An empty header leaves handlers undecorated.
func SetHeader(header httpaux.Header) alice.Constructor {
	return func(next http.Handler) http.Handler {
		if header.Len() == 0 {
			return next
		}

		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			header.SetTo(rw.Header())
			next.ServeHTTP(rw, r)
		})
	}
}

// Listen creates the net.Listener for the given server
func (sc ServerConfig) Listen(ctx context.Context, s *http.Server) (net.Listener, error) {
	network := sc.Network
	if len(network) == 0 {
		network = "tcp"
	}

	lc := net.ListenConfig{
		KeepAlive: sc.KeepAlive,
	}

	return lc.Listen(ctx, network, s.Addr)
}

// Listen is a strategy for creating the net.Listener for a server
type Listen func(context.Context, *http.Server) (net.Listener, error)

// ListenerConstructor decorates the net.Listener a server accepts on
type ListenerConstructor func(net.Listener) net.Listener

// Decorate returns a Listen that applies the constructors, in order, to
// the listener created by l
func Decorate(l Listen, c ...ListenerConstructor) Listen {
	if len(c) == 0 {
		return l
	}

	return func(ctx context.Context, s *http.Server) (net.Listener, error) {
		listener, err := l(ctx, s)
		if err != nil {
			return nil, err
		}

		for i := len(c) - 1; i >= 0; i-- {
			listener = c[i](listener)
		}

		return listener, nil
	}
}

// CaptureListenAddress sends the actual bind address of a listener to a channel.
// This is mostly useful in tests, when a server binds to ":0".
func CaptureListenAddress(ch chan<- net.Addr) ListenerConstructor {
	return func(l net.Listener) net.Listener {
		ch <- l.Addr()
		return l
	}
}

// ServerExit is a callback run when a server exits its accept loop
type ServerExit func()

// ShutdownOnExit stops the enclosing fx.App when a server exits its accept loop
func ShutdownOnExit(shutdowner fx.Shutdowner, opts ...fx.ShutdownOption) ServerExit {
	return func() {
		shutdowner.Shutdown(opts...)
	}
}

// Serve runs the server's accept loop, calling each onExit when it finishes.
// This function can be run as a goroutine.
func Serve(s *http.Server, l net.Listener, onExit ...ServerExit) error {
	defer func() {
		for _, f := range onExit {
			f()
		}
	}()

	return s.Serve(l)
}

// ServerOnStart returns an fx.Hook.OnStart closure that starts the server's accept loop
func ServerOnStart(s *http.Server, l Listen, onExit ...ServerExit) func(context.Context) error {
	return func(ctx context.Context) error {
		listener, err := l(ctx, s)
		if err != nil {
			return err
		}

		go Serve(s, listener, onExit...) //nolint:errcheck
		return nil
	}
}

// LogRequests is server middleware that writes a debug entry for each request
func LogRequests(l *zap.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(rw, r)
			l.Debug(
				"http request",
				zap.String("method", r.Method),
				zap.String("uri", r.RequestURI),
				zap.String("remoteAddr", r.RemoteAddr),
				zap.Duration("elapsed", time.Since(start)),
			)
		})
	}
}

// Mount routes every request under prefix to h.  The prefix is removed from
// the request path and made available as the script name.  An empty or "/"
// prefix mounts h at the root.
func Mount(router *mux.Router, prefix string, h http.Handler) {
	prefix = strings.TrimRight(prefix, "/")
	if len(prefix) > 0 && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	scripted := http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(
			rw,
			r.WithContext(WithScriptName(r.Context(), prefix)),
		)
	})

	if len(prefix) == 0 {
		router.PathPrefix("/").Handler(scripted)
		return
	}

	stripped := http.StripPrefix(prefix, scripted)
	router.Path(prefix).Handler(stripped)
	router.PathPrefix(prefix + "/").Handler(stripped)
}

// ServerIn is the set of dependencies for a Kernel's server
type ServerIn struct {
	fx.In

	// Unmarshaler is the required configuration strategy
	Unmarshaler rabbit.Unmarshaler

	// Kernel is the required request flow that the server hosts
	Kernel *Kernel

	// Middleware optionally decorates the server's handler
	Middleware []alice.Constructor `optional:"true"`

	// Logger is the optional logger for the server
	Logger *zap.Logger `optional:"true"`

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
}

// NewServerIn unmarshals a ServerConfig from key and binds the resulting server
// to the fx.App lifecycle.  The Kernel is mounted on the returned router.
func NewServerIn(key string, lc ...ListenerConstructor) func(ServerIn) (*mux.Router, error) {
	return func(in ServerIn) (*mux.Router, error) {
		if in.Kernel == nil {
			return nil, ErrNilKernel
		}

		var sc ServerConfig
		if err := in.Unmarshaler.UnmarshalKey(key, &sc); err != nil {
			return nil, err
		}

		logger := in.Logger
		if logger == nil {
			logger = zap.NewNop()
		}

		logger = logger.With(zap.String("server", key))
		router := mux.NewRouter()
		Mount(router, sc.MountPath, in.Kernel)

		server := sc.NewServer(
			router,
			append([]alice.Constructor{LogRequests(logger)}, in.Middleware...)...,
		)

		in.Lifecycle.Append(fx.Hook{
			OnStart: ServerOnStart(
				server,
				Decorate(sc.Listen, lc...),
				ShutdownOnExit(in.Shutdowner),
			),
			OnStop: server.Shutdown,
		})

		logger.Info(
			"server configured",
			zap.String("address", sc.Address),
			zap.String("mountPath", sc.MountPath),
		)

		return router, nil
	}
}

// ProvideServer provides the *mux.Router for a server configured under key.
// The server starts and stops with the fx.App.
func ProvideServer(key string, lc ...ListenerConstructor) fx.Option {
	return fx.Options(
		fx.Provide(NewServerIn(key, lc...)),
		fx.Invoke(func(*mux.Router) {}),
	)
}

// ProvideKernel provides a *Kernel assembled by NewKernelIn
func ProvideKernel() fx.Option {
	return fx.Provide(NewKernelIn)
}

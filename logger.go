// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbit

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// Logger sets the given zap logger as the uber/fx event logger and, in addition,
// makes it available as a global, unnamed *zap.Logger component.  Code in this
// module uses that component for its own output.
func Logger(l *zap.Logger) fx.Option {
	return fx.Options(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l}
		}),
		fx.Supply(l),
	)
}

// t is implemented by both *testing.T and *testing.B
type t interface {
	zaptest.TestingT
	Name() string
}

// TestLogger uses Logger to establish a *testing.T or *testing.B as the
// sink for uber/fx and application logging
func TestLogger(t t) fx.Option {
	return Logger(
		zaptest.NewLogger(t).Named(t.Name()),
	)
}

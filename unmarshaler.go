// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbit

import (
	"errors"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	// ErrNilViper is returned to the fx.App when the externally supplied Viper
	// instance is nil
	ErrNilViper = errors.New("the viper instance cannot be nil")
)

// Unmarshaler is the strategy used to unmarshal configuration into objects.
// An unnamed fx.App component that implements this interface is required by
// UnmarshalKey and by the rabbithttp server.
type Unmarshaler interface {
	// Unmarshal reads configuration data into the given struct
	Unmarshal(value interface{}) error

	// UnmarshalKey reads configuration data from a key into the given struct
	UnmarshalKey(key string, value interface{}) error
}

// ViperUnmarshaler is the standard Unmarshaler implementation.
// It couples a Viper instance together with zero or more decoder options.
type ViperUnmarshaler struct {
	// Viper is the required Viper instance to which all unmarshal operations are delegated
	Viper *viper.Viper

	// Options is the optional slice of viper.DecoderConfigOptions passed to all
	// unmarshal calls
	Options []viper.DecoderConfigOption

	// Logger receives a debug entry for each unmarshal.  If nil, nothing is logged.
	Logger *zap.Logger
}

func (vu ViperUnmarshaler) logger() *zap.Logger {
	if vu.Logger != nil {
		return vu.Logger
	}

	return zap.NewNop()
}

// Unmarshal implements Unmarshaler
func (vu ViperUnmarshaler) Unmarshal(value interface{}) error {
	vu.logger().Debug("unmarshal", zap.String("type", typeName(value)))
	return vu.Viper.Unmarshal(value, vu.Options...)
}

// UnmarshalKey implements Unmarshaler
func (vu ViperUnmarshaler) UnmarshalKey(key string, value interface{}) error {
	vu.logger().Debug("unmarshal key", zap.String("key", key), zap.String("type", typeName(value)))
	return vu.Viper.UnmarshalKey(key, value, vu.Options...)
}

// ViperUnmarshalerIn is the set of dependencies required to build a ViperUnmarshaler
type ViperUnmarshalerIn struct {
	fx.In

	// Viper is the required viper instance
	Viper *viper.Viper

	// Options is the optional slice of viper.DecoderConfigOption that will be
	// applied to every unmarshal or unmarshal key operation
	Options []viper.DecoderConfigOption `optional:"true"`

	// Logger is the optional logger for unmarshal operations
	Logger *zap.Logger `optional:"true"`
}

// ForViper supplies an externally created Viper instance to the enclosing fx.App.
// This function also creates an Unmarshaler component backed by this Viper instance.
//
// The decoder options used are DefaultDecodeHooks, then the options supplied to
// this function, then an optional []viper.DecoderConfigOption component.
func ForViper(v *viper.Viper, o ...viper.DecoderConfigOption) fx.Option {
	if v == nil {
		return fx.Error(ErrNilViper)
	}

	return fx.Options(
		fx.Supply(v),
		fx.Provide(
			func(in ViperUnmarshalerIn) Unmarshaler {
				return ViperUnmarshaler{
					Viper: in.Viper,
					Options: append(
						append([]viper.DecoderConfigOption{DefaultDecodeHooks}, o...),
						in.Options...,
					),
					Logger: in.Logger,
				}
			},
		),
	)
}

// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbit

import (
	"encoding"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Exact sets the DecoderConfig.ErrorUnused flag, so that configuration keys
// without a matching field are reported as errors.
func Exact(dc *mapstructure.DecoderConfig) {
	dc.ErrorUnused = true
}

// Merge takes any number of slices of decoder options and merges them
// into a single option, applied in order.
func Merge(opts ...[]viper.DecoderConfigOption) viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		for _, group := range opts {
			for _, o := range group {
				o(dc)
			}
		}
	}
}

// DefaultDecodeHooks is a viper option that sets the decode hooks to the ones
// viper uses by default plus TextUnmarshalerHookFunc.
//
// See https://pkg.go.dev/github.com/spf13/viper#DecodeHook
func DefaultDecodeHooks(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		TextUnmarshalerHookFunc,
	)
}

// ComposeDecodeHooks appends decode hook functions to any that are already configured.
//
// See https://pkg.go.dev/github.com/mitchellh/mapstructure#ComposeDecodeHookFunc
func ComposeDecodeHooks(fs ...mapstructure.DecodeHookFunc) viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		if dc.DecodeHook != nil {
			fs = append([]mapstructure.DecodeHookFunc{dc.DecodeHook}, fs...)
		}

		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(fs...)
	}
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// TextUnmarshalerHookFunc is a mapstructure.DecodeHookFunc that converts strings
// through the destination type's encoding.TextUnmarshaler implementation.
//
// The destination may be a value type whose pointer implements encoding.TextUnmarshaler,
// such as rabbitroute.Expr, or a single-level pointer to such a type.  Anything
// else is returned unchanged.
func TextUnmarshalerHookFunc(_, to reflect.Type, src interface{}) (interface{}, error) {
	text, ok := src.(string)
	if !ok {
		return src, nil
	}

	switch {
	case to.Kind() != reflect.Ptr && reflect.PtrTo(to).Implements(textUnmarshalerType):
		ptr := reflect.New(to)
		err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text))
		return ptr.Elem().Interface(), err

	case to.Kind() == reflect.Ptr && to.Elem().Kind() != reflect.Ptr && to.Implements(textUnmarshalerType):
		ptr := reflect.New(to.Elem())
		err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text))
		return ptr.Interface(), err

	default:
		return src, nil
	}
}

// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbit

import (
	"fmt"

	"go.uber.org/fx"
)

func typeName(v interface{}) string {
	return fmt.Sprintf("%T", v)
}

// UnmarshalIn is the set of dependencies for the Unmarshal functions in this package
type UnmarshalIn struct {
	fx.In

	// Unmarshaler is the required configuration strategy, usually supplied by ForViper
	Unmarshaler Unmarshaler
}

// Unmarshal returns an fx constructor that produces a T unmarshaled from the
// root of the configuration.  The prototype supplies default values.
func Unmarshal[T any](prototype T) func(UnmarshalIn) (T, error) {
	return func(in UnmarshalIn) (T, error) {
		target := prototype
		err := in.Unmarshaler.Unmarshal(&target)
		return target, err
	}
}

// UnmarshalKey returns an fx constructor that produces a T unmarshaled from the
// given configuration key.  The prototype supplies default values.
//
// For example:
//
//	fx.Provide(
//	  rabbit.UnmarshalKey("routes", rabbitroute.Config{}),
//	)
func UnmarshalKey[T any](key string, prototype T) func(UnmarshalIn) (T, error) {
	return func(in UnmarshalIn) (T, error) {
		target := prototype
		err := in.Unmarshaler.UnmarshalKey(key, &target)
		return target, err
	}
}

// UnmarshalNamed is syntactic sugar for unmarshaling a component from a key
// and naming that component the same as the key.
func UnmarshalNamed[T any](keyAndName string, prototype T) fx.Annotated {
	return fx.Annotated{
		Name:   keyAndName,
		Target: UnmarshalKey(keyAndName, prototype),
	}
}

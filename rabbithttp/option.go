// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import "go.uber.org/multierr"

// Option represents something that can modify a target object.
type Option[T any] interface {
	Apply(*T) error
}

// OptionFunc is a closure type that can act as an Option.
type OptionFunc[T any] func(*T) error

func (of OptionFunc[T]) Apply(t *T) error {
	return of(t)
}

// Options is an aggregate Option that allows several options to
// be grouped together.
type Options[T any] []Option[T]

// Apply applies all the options in this slice, returning an
// aggregate error if any errors occurred.
func (o Options[T]) Apply(t *T) (err error) {
	for _, opt := range o {
		err = multierr.Append(err, opt.Apply(t))
	}

	return
}

// ApplyOptions applies several options to a target, returning that target.
func ApplyOptions[T any](t *T, opts ...Option[T]) (result *T, err error) {
	result = t
	err = Options[T](opts).Apply(result)
	return
}

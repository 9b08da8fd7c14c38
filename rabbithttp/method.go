// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import "strings"

// Method is an HTTP request method
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
)

// ParseMethod normalizes a method name.  The second return is false
// if the method is not one of the known constants.
func ParseMethod(v string) (Method, bool) {
	m := Method(strings.ToUpper(strings.TrimSpace(v)))
	switch m {
	case MethodGet, MethodHead, MethodPost, MethodPut, MethodPatch, MethodDelete, MethodOptions:
		return m, true

	default:
		return m, false
	}
}

func (m Method) String() string {
	return string(m)
}

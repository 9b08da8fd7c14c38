// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbitroute

// testRequest is a simple Request for lookups
type testRequest struct {
	method   string
	pathInfo string
}

func (tr testRequest) Method() string   { return tr.method }
func (tr testRequest) PathInfo() string { return tr.pathInfo }

func get(pathInfo string) Request {
	return testRequest{method: "GET", pathInfo: pathInfo}
}

// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package rabbithttp models HTTP requests and responses built from a server
environment, and ties them to route resolution through a Kernel.

A Request is always built from an Environ, the CGI-style key/value snapshot of
an inbound request.  NewEnviron adapts a net/http request into one.  Handlers
produce a Response, whose Header keeps the Cache-Control header and its
parsed directives in sync.

A Kernel is an http.Handler.  ProvideKernel and ProvideServer bind a Kernel,
its route table, and an http.Server into an uber/fx application.
*/
package rabbithttp

// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package rabbitroute resolves request paths against a table of route patterns.

A pattern is a sequence of '/'-separated segments.  A segment written as {name}
captures the corresponding path segment under that name; every other segment is
a literal.  Captures are validated against DefaultToken unless the route supplies
its own expression for that name:

	t, _ := rabbitroute.NewTable()
	err := t.Register("/user/{id}/post/{slug}", "post",
		rabbitroute.Token("id", `[0-9]+`),
		rabbitroute.Methods("GET"),
	)

Routes are tried in registration order and the first one that accepts the request
wins, even when a later route would have been a more specific match.
*/
package rabbitroute

// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package rabbittest has test helpers for applications built on the rabbit packages.
*/
package rabbittest

// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package rabbit holds the application-level plumbing shared by the rabbit
// packages:
//
// Configuration
//
// Components such as servers and route tables are unmarshaled from a viper
// instance through the Unmarshaler component.  UnmarshalKey produces uber/fx
// constructors for unmarshaled components.
//
// Logging
//
// Logger installs a *zap.Logger both as the uber/fx event logger and as a
// component for everything else in the application.
//
// The actual HTTP message model lives in rabbithttp, and route resolution
// lives in rabbitroute.
package rabbit

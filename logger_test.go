// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func TestLoggerComponent(t *testing.T) {
	var (
		assert   = assert.New(t)
		expected = zap.NewNop()
		actual   *zap.Logger
	)

	app := fxtest.New(
		t,
		Logger(expected),
		fx.Populate(&actual),
	)

	app.RequireStart()
	app.RequireStop()
	assert.Same(expected, actual)
}

func TestTestLogger(t *testing.T) {
	var actual *zap.Logger
	fxtest.New(
		t,
		TestLogger(t),
		fx.Populate(&actual),
	)

	assert.NotNil(t, actual)
}

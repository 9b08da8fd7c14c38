// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbittest

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/rabbit"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

// DefaultTimeout is the time allowed for an application to start or stop
const DefaultTimeout = 5 * time.Second

// Startable is implemented by *fx.App and *fxtest.App
type Startable interface {
	Start(context.Context) error
}

// Stoppable is implemented by *fx.App and *fxtest.App
type Stoppable interface {
	Stop(context.Context) error
}

// Suite is an embeddable type that makes viper and uber/fx tests simpler.
// Embed this type in testify/suite-style test types.
type Suite struct {
	suite.Suite

	viper *viper.Viper
}

var _ suite.SetupTestSuite = (*Suite)(nil)

// SetupTest initializes a new viper instance for each test
func (suite *Suite) SetupTest() {
	suite.ResetViper()
}

// ResetViper replaces the current viper instance with a new one, which is
// also returned.  Subtests may use this to start from empty configuration.
func (suite *Suite) ResetViper() *viper.Viper {
	suite.viper = viper.New()
	return suite.viper
}

// Viper returns the viper instance for the current test
func (suite *Suite) Viper() *viper.Viper {
	return suite.viper
}

func (suite *Suite) read(configType, v string) {
	suite.viper.SetConfigType(configType)
	suite.Require().NoError(
		suite.viper.ReadConfig(strings.NewReader(v)),
	)
}

// YAML bootstraps the current viper instance with YAML configuration
func (suite *Suite) YAML(v string) {
	suite.read("yaml", v)
}

// JSON bootstraps the current viper instance with JSON configuration
func (suite *Suite) JSON(v string) {
	suite.read("json", v)
}

func (suite *Suite) options(more []fx.Option) []fx.Option {
	return append(
		[]fx.Option{
			rabbit.TestLogger(suite.T()),
			rabbit.ForViper(suite.viper),
		},
		more...,
	)
}

// Fxtest is a convenience for fxtest.New with the current viper instance,
// test logging, and the additional options
func (suite *Suite) Fxtest(more ...fx.Option) *fxtest.App {
	return fxtest.New(suite.T(), suite.options(more)...)
}

// Fx is like Fxtest, but creates a regular *fx.App.  Use this when a test
// expects the application to fail.
func (suite *Suite) Fx(more ...fx.Option) *fx.App {
	return fx.New(suite.options(more)...)
}

// RequireStart starts the application within DefaultTimeout, halting the test on failure
func (suite *Suite) RequireStart(s Startable) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()
	suite.Require().NoError(s.Start(ctx))
}

// RequireStop stops the application within DefaultTimeout, halting the test on failure
func (suite *Suite) RequireStop(s Stoppable) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()
	suite.Require().NoError(s.Stop(ctx))
}

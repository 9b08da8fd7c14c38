// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xmidt-org/rabbit"
	"github.com/xmidt-org/rabbit/rabbithttp"
	"github.com/xmidt-org/rabbit/rabbitroute"
	"go.uber.org/dig"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const applicationName = "rabbit"

// defaultConfig is used when no configuration file is given
const defaultConfig = `
server:
  address: ":8080"
  mountPath: /
  readHeaderTimeout: 5s
  header:
    X-Server: [rabbit]
routes:
  strictMode: false
  routes:
    - pattern: /
      handler: hello
      methods: [GET, HEAD]
    - pattern: /greet/{name}
      handler: greet
      methods: [GET]
    - pattern: /user/{id}/post/{slug}
      handler: post
      methods: [GET]
      tokens:
        id: "[0-9]+"
    - pattern: /echo
      handler: echo
`

func newViper(args []string) (*viper.Viper, error) {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.StringP("config", "f", "", "the configuration file to use")
	fs.BoolP("dev", "d", false, "use development logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(applicationName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); len(file) > 0 {
		v.SetConfigFile(file)
		return v, v.ReadInConfig()
	}

	v.SetConfigType("yaml")
	return v, v.ReadConfig(strings.NewReader(defaultConfig))
}

func newLogger(v *viper.Viper) (*zap.Logger, error) {
	if v.GetBool("dev") {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func newApp(v *viper.Viper, l *zap.Logger, more ...fx.Option) *fx.App {
	return fx.New(
		append(
			[]fx.Option{
				rabbit.Logger(l),
				rabbit.ForViper(v),
				fx.Provide(
					rabbit.UnmarshalKey("routes", rabbitroute.Config{}),
					func(c rabbitroute.Config) (*rabbitroute.Table, error) {
						return c.NewTable()
					},
				),
				rabbithttp.ProvideHandler("hello", rabbithttp.HandlerFunc(hello)),
				rabbithttp.ProvideHandler("greet", rabbithttp.HandlerFunc(greet)),
				rabbithttp.ProvideHandler("post", rabbithttp.HandlerFunc(post)),
				rabbithttp.ProvideHandler("echo", rabbithttp.HandlerFunc(echo)),
				rabbithttp.ProvideKernel(),
			},
			more...,
		)...,
	)
}

func run(args []string) error {
	v, err := newViper(args)
	if err != nil {
		return err
	}

	l, err := newLogger(v)
	if err != nil {
		return err
	}

	defer l.Sync() //nolint:errcheck
	app := newApp(v, l, rabbithttp.ProvideServer("server"))
	if err := app.Err(); err != nil {
		return dig.RootCause(err)
	}

	app.Run()
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}

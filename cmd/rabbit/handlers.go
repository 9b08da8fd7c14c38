// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"

	"github.com/xmidt-org/rabbit/rabbithttp"
	"github.com/xmidt-org/rabbit/rabbitroute"
)

func text(content string) *rabbithttp.Response {
	response := rabbithttp.NewResponse()
	response.Header().Set("content-type", "text/plain; charset=utf-8")
	response.SetString(content)
	return response
}

func jsonResponse(v interface{}) (*rabbithttp.Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	response := rabbithttp.NewJSONResponse()
	response.SetJSON(data)
	return response, nil
}

func hello(r *rabbithttp.Request, _ rabbitroute.Params) (*rabbithttp.Response, error) {
	response := text("Hello, world!\n")
	response.Header().AddCacheControlDirective("max-age", "3600")
	response.Header().AddCacheControlFlag("public")
	if r.MethodIs(rabbithttp.MethodHead) {
		response.SetContent(nil)
	}

	return response, nil
}

func greet(_ *rabbithttp.Request, p rabbitroute.Params) (*rabbithttp.Response, error) {
	return text(fmt.Sprintf("Hello, %s!\n", p.Get("name"))), nil
}

type postBody struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

func post(_ *rabbithttp.Request, p rabbitroute.Params) (*rabbithttp.Response, error) {
	response, err := jsonResponse(postBody{
		ID:   p.Get("id"),
		Slug: p.Get("slug"),
	})

	if err == nil {
		response.Header().AddCacheControlDirective("max-age", "60")
	}

	return response, err
}

type echoBody struct {
	Method     string              `json:"method"`
	URL        string              `json:"url"`
	ScriptName string              `json:"scriptName"`
	PathInfo   string              `json:"pathInfo"`
	Query      map[string][]string `json:"query"`
	Cookies    map[string]string   `json:"cookies"`
	Headers    []rabbithttp.Field  `json:"headers"`
}

func echo(r *rabbithttp.Request, _ rabbitroute.Params) (*rabbithttp.Response, error) {
	response, err := jsonResponse(echoBody{
		Method:     r.Method(),
		URL:        r.FullURL(),
		ScriptName: r.ScriptName(),
		PathInfo:   r.PathInfo(),
		Query:      r.Query(),
		Cookies:    r.Cookies(),
		Headers:    r.Header().Fields(),
	})

	if err == nil {
		response.Header().AddCacheControlFlag("no-store")
	}

	return response, err
}

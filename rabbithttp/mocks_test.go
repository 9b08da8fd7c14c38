// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import (
	"github.com/stretchr/testify/mock"
	"github.com/xmidt-org/rabbit/rabbitroute"
)

type mockHandler struct {
	mock.Mock
}

func (m *mockHandler) Handle(r *Request, p rabbitroute.Params) (*Response, error) {
	args := m.Called(r, p)
	response, _ := args.Get(0).(*Response)
	return response, args.Error(1)
}

func (m *mockHandler) ExpectHandle(p rabbitroute.Params, response *Response, err error) *mock.Call {
	return m.On("Handle", mock.AnythingOfType("*rabbithttp.Request"), p).Return(response, err)
}

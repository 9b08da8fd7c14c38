// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import (
	"fmt"
	"strconv"
)

// Status is one of the response statuses this package can emit
type Status int

const (
	StatusOK                  Status = 200
	StatusCreated             Status = 201
	StatusNoContent           Status = 204
	StatusBadRequest          Status = 400
	StatusUnauthorized        Status = 401
	StatusForbidden           Status = 403
	StatusNotFound            Status = 404
	StatusMethodNotAllowed    Status = 405
	StatusInternalServerError Status = 500
)

var reasons = map[Status]string{
	StatusOK:                  "OK",
	StatusCreated:             "Created",
	StatusNoContent:           "No Content",
	StatusBadRequest:          "Bad Request",
	StatusUnauthorized:        "Unauthorized",
	StatusForbidden:           "Forbidden",
	StatusNotFound:            "Not Found",
	StatusMethodNotAllowed:    "Method Not Allowed",
	StatusInternalServerError: "Internal Server Error",
}

// UnsupportedStatusError indicates a status code outside the enumerated set
type UnsupportedStatusError struct {
	Code int
}

func (use *UnsupportedStatusError) Error() string {
	return fmt.Sprintf("unsupported status code: %d", use.Code)
}

// ParseStatus converts a numeric code into a Status
func ParseStatus(code int) (Status, error) {
	if s := Status(code); s.Valid() {
		return s, nil
	}

	return 0, &UnsupportedStatusError{Code: code}
}

// Valid tests if this is one of the enumerated statuses
func (s Status) Valid() bool {
	_, ok := reasons[s]
	return ok
}

// Code returns the numeric status code
func (s Status) Code() int {
	return int(s)
}

// Reason returns the canonical reason phrase
func (s Status) Reason() string {
	return reasons[s]
}

// String returns the status line text, e.g. "404 Not Found"
func (s Status) String() string {
	return strconv.Itoa(int(s)) + " " + s.Reason()
}

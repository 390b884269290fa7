// Package webutil implements the wire envelope shared by every endpoint.
//
// All responses, success and failure alike, are serialized as
//
//	{ "data": ..., "message": ..., "code": 200|400 }
//
// with the HTTP status itself always 200. The code field in the body, not
// the HTTP status, is what existing clients inspect, so this shape is an
// explicit compatibility contract and must not be "fixed" to proper status
// codes.
package webutil

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the fixed response wrapper.
type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// OK writes a success envelope (code 200) and logs the message.
func OK(c echo.Context, data any, message string) error {
	log.Printf("%s", message)
	return c.JSON(http.StatusOK, Envelope{Data: data, Message: message, Code: 200})
}

// Fail writes a failure envelope (code 400 in the body, HTTP status still
// 200) and logs the message at error level. data distinguishes the empty
// object from the empty list so clients keep their expected zero value.
func Fail(c echo.Context, data any, message string) error {
	log.Printf("ERROR: %s", message)
	if data == nil {
		data = map[string]any{}
	}
	return c.JSON(http.StatusOK, Envelope{Data: data, Message: message, Code: 400})
}

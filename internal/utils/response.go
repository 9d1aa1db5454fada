package utils

import "net/http"

// Response is the JSON envelope of every /api/v1 reply. Status repeats the
// HTTP status code and Data is null when the request failed.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func NewResponse(status int, message string, data interface{}) Response {
	return Response{Status: status, Message: message, Data: data}
}

func NewSuccessResponse(message string, data interface{}) Response {
	return NewResponse(http.StatusOK, message, data)
}

// NewErrorResponse carries the error text in Message.
func NewErrorResponse(status int, message string) Response {
	return NewResponse(status, message, nil)
}

package dto

// Response is the envelope wrapping every API payload.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data"`
	Errors  []string `json:"errors"`
}

// OK builds a success envelope.
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope.
func Fail(message string, errs ...string) Response {
	return Response{Success: false, Message: message, Errors: errs}
}

package utils

import "multivend-settlement-api/internal/constant"

// Response is the uniform JSON envelope.
type Response struct {
	Code    int         `json:"code"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

func Success(data interface{}) Response {
	return Response{
		Code: constant.CodeSuccess,
		Msg:  "success",
		Data: data,
	}
}

// Error builds an envelope from a registry code.
func Error(code int) Response {
	if msg, exists := constant.GetErrorMessage(code); exists {
		return Response{Code: code, Msg: msg}
	}
	return Response{Code: code, Msg: "unknown error"}
}

// ErrorFrom builds an envelope from a business error, keeping its
// detail message.
func ErrorFrom(err constant.Error) Response {
	return Response{Code: err.Code(), Msg: err.Message()}
}

// CustomError builds an envelope with an ad-hoc message.
func CustomError(code int, message string) Response {
	return Response{Code: code, Msg: message}
}

// PageData wraps a paginated list.
type PageData struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

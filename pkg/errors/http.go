package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse는 HTTP 에러 응답 본문입니다
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToHTTPStatus는 에러 코드를 HTTP 상태 코드로 변환합니다
func ToHTTPStatus(code string) int {
	httpStatus, _ := GetCodeMapping(code)
	return httpStatus
}

// ToErrorResponse는 에러를 HTTP 상태 코드와 응답 본문으로 변환합니다.
// AppError는 코드 매핑을 따르고, Echo 에러는 상태 코드에서 코드를 역산합니다.
// 내부 에러 메시지는 5xx 응답에 노출하지 않습니다.
func ToErrorResponse(err error) (int, ErrorResponse) {
	var appErr *AppError
	if As(err, &appErr) {
		return ToHTTPStatus(appErr.Code()), ErrorResponse{Error: appErr.Message(), Code: appErr.Code()}
	}

	var echoErr *echo.HTTPError
	if As(err, &echoErr) {
		msg := http.StatusText(echoErr.Code)
		if m, ok := echoErr.Message.(string); ok && m != "" {
			msg = m
		}
		return echoErr.Code, ErrorResponse{Error: msg, Code: httpStatusToCode(echoErr.Code)}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Error: http.StatusText(http.StatusInternalServerError),
		Code:  ErrInternal,
	}
}

// httpStatusToCode는 HTTP 상태 코드를 내부 에러 코드로 변환합니다
func httpStatusToCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return ErrInvalidArgument
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity:
		return ErrPaymentRejected
	case http.StatusGatewayTimeout:
		return ErrTimeout
	case http.StatusNotImplemented:
		return ErrNotImplemented
	default:
		return ErrInternal
	}
}

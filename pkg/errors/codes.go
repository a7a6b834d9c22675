package errors

// 공통 에러 코드 정의
const (
	// 일반적인 에러 코드
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrConflict        = "CONFLICT"
	ErrTimeout         = "TIMEOUT"
	ErrNotImplemented  = "NOT_IMPLEMENTED"

	// 외부 서비스 에러 코드
	ErrPaymentRejected = "PAYMENT_REJECTED" // 결제 플랫폼이 요청 자체를 거부 (잘못된 price 등)
	ErrUpstreamAuth    = "UPSTREAM_AUTH"    // 인증 백엔드 장애
	ErrUpstreamPayment = "UPSTREAM_PAYMENT" // 결제 플랫폼 장애, 네트워크 오류, rate limit
	ErrUpstreamStorage = "UPSTREAM_STORAGE" // 파일 스토리지 업로드 실패
)

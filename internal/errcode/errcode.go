package errcode

import "fmt"

// Error represents an expected business failure. It carries a stable reason
// code plus a message suitable for direct display, and is returned (never
// panicked) by every service operation.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("errcode: %s, message: %s", e.Code, e.Message)
}

// New creates a new error with code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches an underlying cause while keeping the reason code, so
// errors.Is against the sentinel still matches.
func (e *Error) Wrap(err error) *Error {
	if err == nil {
		return e
	}
	return &Error{
		Code:    e.Code,
		Message: fmt.Sprintf("%s: %v", e.Message, err),
	}
}

// Is matches by reason code, making wrapped values equal to their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Inquiry error codes
var (
	ErrAuthenticationRequired = New("authentication_required", "로그인이 필요합니다.")
	ErrNotFound               = New("not_found", "요청하신 내용을 찾을 수 없습니다.")
	ErrSelfInquiry            = New("self_inquiry", "자신의 상품에는 문의할 수 없습니다.")
	ErrEmptyContent           = New("empty_content", "메시지 내용을 입력해주세요.")
	ErrContentTooLong         = New("content_too_long", "메시지는 1000자 이내로 입력해주세요.")
	ErrPermissionDenied       = New("permission_denied", "이 문의에 접근할 권한이 없습니다.")
	ErrInvalidState           = New("invalid_state", "종료된 문의에는 메시지를 보낼 수 없습니다.")
	ErrInvalidStateTransition = New("invalid_state_transition", "문의 상태를 변경할 수 없습니다.")
	ErrStorageFailure         = New("storage_failure", "일시적인 오류가 발생했습니다. 잠시 후 다시 시도해주세요.")
)

// Account error codes
var (
	ErrEmailTaken      = New("email_taken", "이미 사용 중인 이메일입니다.")
	ErrLoginFailed     = New("login_failed", "이메일 또는 비밀번호가 올바르지 않습니다.")
	ErrInvalidParam    = New("invalid_param", "요청 형식이 올바르지 않습니다.")
	ErrListingNotOwned = New("listing_not_owned", "본인의 상품만 수정할 수 있습니다.")
)

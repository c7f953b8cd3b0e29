package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/SanteonNL/welfare/cmd/welfare/client"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeInfo    NoticeKind = "info"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is the user-visible message that accompanies a rendered state.
type Notice struct {
	Kind   NoticeKind
	Text   string
	Detail string
}

// NoticeFor describes the outcome of the last action on s.
func NoticeFor(s State) Notice {
	if s.Err == nil {
		return Notice{
			Kind: NoticeSuccess,
			Text: fmt.Sprintf("검색 결과: %d건 (%d페이지)", len(s.Records), s.Page()),
		}
	}

	var exhausted *client.TransportExhaustedError
	switch {
	case errors.As(s.Err, &exhausted) && exhausted.NoResults():
		return Notice{Kind: NoticeInfo, Text: "검색 결과가 없습니다."}
	case errors.As(s.Err, &exhausted):
		return Notice{
			Kind:   NoticeError,
			Text:   "모든 전송 방식으로 API 요청에 실패했습니다. 네트워크와 방화벽 설정을 확인하고, 잠시 후 다시 시도하거나 다른 네트워크에서 시도해 주세요.",
			Detail: s.Err.Error(),
		}
	case errors.Is(s.Err, context.Canceled), errors.Is(s.Err, context.DeadlineExceeded):
		return Notice{Kind: NoticeWarning, Text: "요청이 취소되었습니다.", Detail: s.Err.Error()}
	default:
		return Notice{Kind: NoticeError, Text: "검색 중 오류가 발생했습니다.", Detail: s.Err.Error()}
	}
}

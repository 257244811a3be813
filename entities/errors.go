package entities

import "errors"

// ErrorKind 引擎动作失败的分类，调用方据此给用户
// 区分「不是你的回合」和「资源不够」这类提示。
type ErrorKind string

const (
	ErrPrecondition     ErrorKind = "precondition_failed"
	ErrInsufficientRes  ErrorKind = "insufficient_resources"
	ErrInvalidPosition  ErrorKind = "invalid_position"
	ErrDeckExhausted    ErrorKind = "deck_exhausted"
	ErrCapacityExceeded ErrorKind = "capacity_exceeded"
)

// GameError 引擎动作的类型化失败。动作失败时对局状态保证不变。
type GameError struct {
	Kind ErrorKind
	Msg  string
}

func (e *GameError) Error() string {
	return e.Msg
}

// NewGameError 构造一个带分类的动作失败。
func NewGameError(kind ErrorKind, msg string) *GameError {
	return &GameError{Kind: kind, Msg: msg}
}

// KindOf 取出错误的分类，不是 GameError 时返回空串。
func KindOf(err error) ErrorKind {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}

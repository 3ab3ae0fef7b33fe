package apperrors

import (
	"github.com/remi-game/remi/internal/protocol"
)

// GameError 规则错误（所有校验失败都以此返回，状态保持不变）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

func newErr(code int) *GameError {
	return &GameError{Code: code, Message: protocol.ErrorMessages[code]}
}

// 预定义错误
var (
	ErrInvalidMsg = newErr(protocol.ErrCodeInvalidMsg)

	ErrNotInLobby    = newErr(protocol.ErrCodeNotInLobby)
	ErrTableFull     = newErr(protocol.ErrCodeTableFull)
	ErrAlreadyJoined = newErr(protocol.ErrCodeAlreadyJoined)
	ErrPlayerCount   = newErr(protocol.ErrCodePlayerCount)
	ErrUnknownPlayer = newErr(protocol.ErrCodeUnknownPlayer)

	ErrNotPlaying       = newErr(protocol.ErrCodeNotPlaying)
	ErrNotYourTurn      = newErr(protocol.ErrCodeNotYourTurn)
	ErrAlreadyDrawn     = newErr(protocol.ErrCodeAlreadyDrawn)
	ErrAlreadyDiscarded = newErr(protocol.ErrCodeAlreadyDiscarded)
	ErrDeckEmpty        = newErr(protocol.ErrCodeDeckEmpty)
	ErrDiscardEmpty     = newErr(protocol.ErrCodeDiscardEmpty)
	ErrEmptySlot        = newErr(protocol.ErrCodeEmptySlot)
	ErrHandTooBig       = newErr(protocol.ErrCodeHandTooBig)
	ErrNothingToUndo    = newErr(protocol.ErrCodeNothingToUndo)
	ErrNotYourUndo      = newErr(protocol.ErrCodeNotYourUndo)
	ErrConfirmEndTurn   = newErr(protocol.ErrCodeConfirmEndTurn)
	ErrHostOnly         = newErr(protocol.ErrCodeHostOnly)

	ErrNoTrump        = newErr(protocol.ErrCodeNoTrump)
	ErrTrumpPending   = newErr(protocol.ErrCodeTrumpPending)
	ErrAlreadyViewer  = newErr(protocol.ErrCodeAlreadyViewer)
	ErrNotApprover    = newErr(protocol.ErrCodeNotApprover)
	ErrNoTrumpRequest = newErr(protocol.ErrCodeNoTrumpRequest)

	ErrNoSnapshot = newErr(protocol.ErrCodeNoSnapshot)
)

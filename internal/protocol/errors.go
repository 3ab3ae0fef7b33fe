package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001

	ErrCodeNotInLobby    = 2001
	ErrCodeTableFull     = 2002
	ErrCodeAlreadyJoined = 2003
	ErrCodePlayerCount   = 2004
	ErrCodeUnknownPlayer = 2005

	ErrCodeNotPlaying       = 3001
	ErrCodeNotYourTurn      = 3002
	ErrCodeAlreadyDrawn     = 3003
	ErrCodeAlreadyDiscarded = 3004
	ErrCodeDeckEmpty        = 3005
	ErrCodeDiscardEmpty     = 3006
	ErrCodeEmptySlot        = 3007
	ErrCodeHandTooBig       = 3008
	ErrCodeNothingToUndo    = 3009
	ErrCodeNotYourUndo      = 3010
	ErrCodeConfirmEndTurn   = 3011
	ErrCodeHostOnly         = 3012

	ErrCodeNoTrump        = 4001
	ErrCodeTrumpPending   = 4002
	ErrCodeAlreadyViewer  = 4003
	ErrCodeNotApprover    = 4004
	ErrCodeNoTrumpRequest = 4005

	ErrCodeNoSnapshot = 5001
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:    "unknown error",
	ErrCodeInvalidMsg: "invalid message format",

	ErrCodeNotInLobby:    "game already started",
	ErrCodeTableFull:     "table is full",
	ErrCodeAlreadyJoined: "player already at the table",
	ErrCodePlayerCount:   "need 2 to 5 players",
	ErrCodeUnknownPlayer: "no such player",

	ErrCodeNotPlaying:       "game is not in progress",
	ErrCodeNotYourTurn:      "not your turn",
	ErrCodeAlreadyDrawn:     "already drew a card this turn",
	ErrCodeAlreadyDiscarded: "already discarded this turn",
	ErrCodeDeckEmpty:        "deck is empty",
	ErrCodeDiscardEmpty:     "discard pile is empty",
	ErrCodeEmptySlot:        "no card in that slot",
	ErrCodeHandTooBig:       "more than 21 cards left",
	ErrCodeNothingToUndo:    "nothing to undo",
	ErrCodeNotYourUndo:      "only the owner can undo that",
	ErrCodeConfirmEndTurn:   "ending turn without a discard",
	ErrCodeHostOnly:         "only the host can do that",

	ErrCodeNoTrump:        "no trump card in play",
	ErrCodeTrumpPending:   "a trump request is already pending",
	ErrCodeAlreadyViewer:  "you already saw the trump card",
	ErrCodeNotApprover:    "you are not the approver",
	ErrCodeNoTrumpRequest: "no pending trump request",

	ErrCodeNoSnapshot: "no peer answered the state request",
}

package api

import (
	"github.com/bitmark-inc/schisto-api/store"
	"github.com/bitmark-inc/schisto-api/wizard"
)

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1001: "invalid authorization format",
		1003: "invalid token",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1100: store.ErrSessionNotFound.Error(),
		1101: wizard.ErrInvalidTransition.Error(),
		1102: wizard.ErrLocationInProgress.Error(),
		1103: "the request token is outdated",
		1104: wizard.ErrInvalidAge.Error(),
		1105: wizard.ErrInvalidOccupation.Error(),
		1106: wizard.ErrInvalidActivity.Error(),
		1107: "the assessment has no result yet",
		1108: "a snail image is required",
		1109: "the snail image is too large",

		1200: store.ErrProfileNotFound.Error(),
		1201: store.ErrInvalidPlan.Error(),
		1202: "free prompt limit reached",
		1203: "chat service is unavailable",
		1204: "the chat attachment is too large",
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorSessionNotFound    = errorJSON(1100)
	errorInvalidTransition  = errorJSON(1101)
	errorLocationInProgress = errorJSON(1102)
	errorOutdatedToken      = errorJSON(1103)
	errorInvalidAge         = errorJSON(1104)
	errorInvalidOccupation  = errorJSON(1105)
	errorInvalidActivity    = errorJSON(1106)
	errorResultNotReady     = errorJSON(1107)
	errorSnailImageMissing  = errorJSON(1108)
	errorSnailImageTooLarge = errorJSON(1109)

	errorProfileNotFound     = errorJSON(1200)
	errorInvalidPlan         = errorJSON(1201)
	errorPromptQuotaExceeded = errorJSON(1202)
	errorChatUnavailable     = errorJSON(1203)
	errorAttachmentTooLarge  = errorJSON(1204)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// withMessage returns a copy of an error object with a message for users
func (e ErrorResponse) withMessage(message string) ErrorResponse {
	e.Message = message
	return e
}

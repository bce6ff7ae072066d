package service

import (
	"log/slog"

	"connectrpc.com/connect"

	"github.com/lxxjn0/jwp-refactoring/internal/apperr"
	"github.com/lxxjn0/jwp-refactoring/pkg/api"
)

// codes maps each engine failure kind onto a Connect code.
var codes = map[apperr.Kind]connect.Code{
	apperr.KindReferenceNotFound: connect.CodeNotFound,

	apperr.KindInvalidProductPrice:     connect.CodeInvalidArgument,
	apperr.KindInvalidMenuPrice:        connect.CodeInvalidArgument,
	apperr.KindEmptyMenuLines:          connect.CodeInvalidArgument,
	apperr.KindInvalidQuantity:         connect.CodeInvalidArgument,
	apperr.KindInvalidGuestCount:       connect.CodeInvalidArgument,
	apperr.KindInvalidGroupSize:        connect.CodeInvalidArgument,
	apperr.KindEmptyOrderLines:         connect.CodeInvalidArgument,
	apperr.KindInvalidStatusTransition: connect.CodeInvalidArgument,

	apperr.KindTableIsEmpty:          connect.CodeFailedPrecondition,
	apperr.KindTableGrouped:          connect.CodeFailedPrecondition,
	apperr.KindTableHasActiveOrder:   connect.CodeFailedPrecondition,
	apperr.KindTableNotAvailable:     connect.CodeFailedPrecondition,
	apperr.KindGroupHasActiveOrder:   connect.CodeFailedPrecondition,
	apperr.KindOrderAlreadyCompleted: connect.CodeFailedPrecondition,

	apperr.KindConflict: connect.CodeAborted,
}

// toConnectError converts an engine error into a Connect error. The failure kind
// travels in the api.ErrorKindHeader metadata. Errors without a kind are internal.
func toConnectError(op string, err error) error {
	kind := apperr.KindOf(err)
	code, ok := codes[kind]
	if !ok {
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}

	slog.Info(op+" rejected", "kind", kind, "error", err)
	connectErr := connect.NewError(code, err)
	connectErr.Meta().Set(api.ErrorKindHeader, string(kind))
	return connectErr
}

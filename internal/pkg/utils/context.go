package utils

import (
	"context"
	"smartrx-service/internal/pkg/constvars"
)

func GetRequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}

func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(constvars.CONTEXT_SESSION_ID_KEY).(string)
	return sessionID, ok && sessionID != ""
}

func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_SESSION_ID_KEY, sessionID)
}

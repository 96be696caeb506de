package api

import (
	"context"
)

type keyType string

const (
	usernameKey    keyType = "username"
	requestInfoKey keyType = "requestInfo"
)

// requestInfo is filled in by inner middleware and read back by the request
// logger after the handler returns
type requestInfo struct {
	username string
}

func ctxWithRequestInfo(ctx context.Context) (context.Context, *requestInfo) {
	info := &requestInfo{}
	return context.WithValue(ctx, requestInfoKey, info), info
}

// ctxWithUsername adds the authenticated admin's name to the context
func ctxWithUsername(ctx context.Context, username string) context.Context {
	if info, ok := ctx.Value(requestInfoKey).(*requestInfo); ok {
		info.username = username
	}
	return context.WithValue(ctx, usernameKey, username)
}

// ctxGetUsername returns the authenticated admin's name, or "" for public requests
func ctxGetUsername(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}

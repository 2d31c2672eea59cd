// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyRequester ctxKey = "requester"

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithRequester annotates context with the caller identity used for audit attribution
func WithRequester(ctx context.Context, requester string) context.Context {
	if requester != "" {
		ctx = context.WithValue(ctx, keyRequester, requester)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// Requester returns the caller identity on the context if present
func Requester(ctx context.Context) string {
	if v, ok := ctx.Value(keyRequester).(string); ok {
		return v
	}
	return ""
}

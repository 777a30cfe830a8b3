package ctxutil

import "context"

type requestDataKey struct{}

// RequestData identifies the authenticated portal user for a request.
type RequestData struct {
	TokenString string
	UserID      uint
	IsAdmin     bool
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey{})
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}

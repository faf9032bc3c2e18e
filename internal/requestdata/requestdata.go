package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKeyType struct{}

var requestDataKey = requestDataKeyType{}

// RequestData is the session identity attached to every authenticated
// request by the auth middleware.
type RequestData struct {
	TokenString string
	AdminID     uuid.UUID
	Role        string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) (*RequestData, bool) {
	rd, ok := ctx.Value(requestDataKey).(*RequestData)
	if !ok || rd == nil {
		return nil, false
	}
	return rd, true
}

package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/arganhr/backoffice/internal/requestdata"
)

// requestAdmin returns the acting admin's id when the request carries a
// session, nil otherwise.
func requestAdmin(ctx context.Context) *uuid.UUID {
	rd, ok := requestdata.GetRequestData(ctx)
	if !ok || rd.AdminID == uuid.Nil {
		return nil
	}
	id := rd.AdminID
	return &id
}

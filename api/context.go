package api

import (
	"context"

	"github.com/pdmitriev/recipebook-backend/models"
)

type keyType string

const viewerKey keyType = "viewer"

// ctxWithViewer attaches the authenticated caller to the context
func ctxWithViewer(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, viewerKey, user)
}

// viewerFrom retrieves the authenticated caller; nil means anonymous (guest
// role). Handlers branch on nil instead of consulting any global state.
func viewerFrom(ctx context.Context) *models.User {
	if user, ok := ctx.Value(viewerKey).(*models.User); ok {
		return user
	}
	return nil
}

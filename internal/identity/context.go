package identity

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
)

type principalKeyType string

const principalKey principalKeyType = "authenticatedPrincipal"

// WithPrincipal attaches the signed-in user to ctx.
func WithPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the signed-in user, or nil when nobody is logged in.
func PrincipalFrom(ctx context.Context) *domain.Principal {
	p, _ := ctx.Value(principalKey).(*domain.Principal)
	return p
}

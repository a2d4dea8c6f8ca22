package httpx

import "context"

type ctxKey string

const (
	// CtxKeySubject holds the authenticated caller's subject (sub claim).
	CtxKeySubject ctxKey = "subject"
	// CtxKeyScopes holds the caller's granted scopes.
	CtxKeyScopes ctxKey = "scopes"
	// CtxKeyClaims holds the full authx.Claims for handlers that need more.
	CtxKeyClaims ctxKey = "claims"
)

// SubjectFromCtx returns the authenticated subject, or "" when the request
// was not authenticated.
func SubjectFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}

func scopesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rifas-online/rifas-api/internal/api/handler/v1/response"
	"github.com/rifas-online/rifas-api/internal/pkg/jwthelper"
)

// Context keys under which the verified admin identity is stored.
const (
	CtxKeyAdminID  = "adminID"
	CtxKeyUsername = "adminUsername"
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT gates a route group on a valid bearer token. Missing,
// malformed, expired and badly signed tokens are indistinguishable to
// the caller.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			response.RenderErr(ctx, response.ErrUnauthorized())
			ctx.Abort()

			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			response.RenderErr(ctx, response.ErrUnauthorized())
			ctx.Abort()

			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, tokenString)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized())
			ctx.Abort()

			return
		}

		ctx.Set(CtxKeyAdminID, claims.AdminID)
		ctx.Set(CtxKeyUsername, claims.Username)
		ctx.Next()
	}
}

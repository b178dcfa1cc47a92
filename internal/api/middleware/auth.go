package middleware

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/festival-benevoles/api/internal/api/handler/v1/response"
	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/pkg/jwthelper"
)

const (
	// UserIDKey holds the authenticated user id set by VerifyJWT.
	UserIDKey = "userID"
	// UserKey holds the user loaded by RequireRole.
	UserKey = "user"
)

var (
	errMissingToken  = errors.New("missing bearer token")
	errForbiddenRole = errors.New("insufficient role")
	errBannedUser    = errors.New("user is banned")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		userID, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(UserIDKey, userID)
		ctx.Next()
	}
}

type UserLoader interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// RequireRole loads the authenticated user and lets the request through when the user
// holds one of roles. It must run after VerifyJWT.
func RequireRole(loader UserLoader, roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetUint(UserIDKey)

		user, err := loader.GetUser(ctx.Request.Context(), userID)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}
		if user.Disabled {
			response.RenderErr(ctx, response.ErrPermissionDenied(errBannedUser))
			return
		}
		if !slices.ContainsFunc(roles, user.HasRole) {
			response.RenderErr(ctx, response.ErrPermissionDenied(errForbiddenRole))
			return
		}

		ctx.Set(UserKey, user)
		ctx.Next()
	}
}

package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/festival-benevoles/api/internal/api/handler/v1/response"
	"github.com/festival-benevoles/api/internal/api/middleware"
	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/service"
)

const activeFestivalParam = "active"

var errMissingUser = errors.New("no authenticated user")

type UserGetter interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

type ActiveFestivalGetter interface {
	Active(ctx context.Context) (domain.Festival, error)
}

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         health
// @Produce      json
// @Success      200      {object}   response.Message
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.Message{Message: "ok"})
}

// getUserFromContext returns the user RequireRole already loaded, or loads the
// one VerifyJWT authenticated.
func getUserFromContext(ctx *gin.Context, uSvc UserGetter) (domain.User, *response.Err) {
	if v, ok := ctx.Get(middleware.UserKey); ok {
		if user, ok := v.(domain.User); ok {
			return user, nil
		}
	}

	userID := ctx.GetUint(middleware.UserIDKey)
	if userID == 0 {
		return domain.User{}, response.ErrUnauthorized(errMissingUser)
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(service.ErrUserNotFound)
		}

		err = fmt.Errorf("getUserFromContext -> uSvc.GetUser -> %w", err)
		return domain.User{}, response.ErrInternalServerError(err)
	}
	if user.Disabled {
		return domain.User{}, response.ErrPermissionDenied(service.ErrUserDisabled)
	}

	return user, nil
}

func idFromPath(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s: %q", name, ctx.Param(name)))
	}

	return uint(id), nil
}

// festivalIDFromPath reads :festivalID, where "active" names the active festival.
func festivalIDFromPath(ctx *gin.Context, fSvc ActiveFestivalGetter) (uint, *response.Err) {
	if ctx.Param("festivalID") != activeFestivalParam {
		return idFromPath(ctx, "festivalID")
	}

	festival, err := fSvc.Active(ctx.Request.Context())
	if err != nil {
		return 0, serviceErr("festivalIDFromPath -> fSvc.Active", err)
	}

	return festival.ID, nil
}

func pageFromQuery(ctx *gin.Context) (int, int, *response.Err) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil {
		return 0, 0, response.ErrBadRequest(fmt.Errorf("invalid page: %w", err))
	}
	size, err := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	if err != nil {
		return 0, 0, response.ErrBadRequest(fmt.Errorf("invalid page_size: %w", err))
	}
	return page, size, nil
}

var serviceErrs = []struct {
	target error
	render func(error) *response.Err
}{
	{service.ErrFestivalNotFound, response.ErrNotFound},
	{service.ErrNoActiveFestival, response.ErrNotFound},
	{service.ErrPosteNotFound, response.ErrNotFound},
	{service.ErrUserNotFound, response.ErrNotFound},
	{service.ErrGameNotFound, response.ErrNotFound},
	{service.ErrReferentNotFound, response.ErrNotFound},
	{service.ErrMessageNotFound, response.ErrNotFound},
	{service.ErrFestivalNameExists, response.ErrConflict},
	{service.ErrPosteNameExists, response.ErrConflict},
	{service.ErrUsernameExists, response.ErrConflict},
	{service.ErrUserEmailExists, response.ErrConflict},
	{service.ErrFestivalActivationConflict, response.ErrConflict},
	{service.ErrUnknownJour, response.ErrBadRequest},
	{service.ErrUnknownCreneau, response.ErrBadRequest},
	{service.ErrNotAZoneSignup, response.ErrBadRequest},
	{service.ErrInvalidCatalog, response.ErrBadRequest},
	{service.ErrWrongPassword, response.ErrBadRequest},
	{service.ErrReservedPoste, response.ErrPermissionDenied},
}

// serviceErr renders known sentinels with their own status and message. Anything
// else is an internal error carrying where it came from.
func serviceErr(where string, err error) *response.Err {
	for _, e := range serviceErrs {
		if errors.Is(err, e.target) {
			return e.render(e.target)
		}
	}

	return response.ErrInternalServerError(fmt.Errorf("%s -> %w", where, err))
}

package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festival-benevoles/api/internal/api/handler/v1/request"
	"github.com/festival-benevoles/api/internal/api/handler/v1/response"
	"github.com/festival-benevoles/api/internal/domain"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	ListUsers(ctx context.Context, page, pageSize int) ([]domain.User, error)
	SearchUsers(ctx context.Context, query string, page, pageSize int) ([]domain.User, error)
	UpdateInfo(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error)
	ChangePassword(ctx context.Context, id uint, current, next string) error
	Ban(ctx context.Context, id uint) error
	DeleteAccount(ctx context.Context, id uint) error
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetMe godoc
// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Success      200      {object}   domain.User
// @Failure      401      {object}   response.Err
// @Router       /users/me [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetMe(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleUpdateMe godoc
// @Summary      Update the authenticated user's information
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request   body      request.UpdateUserRequest true "request body"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/me [put]
// @Security BearerAuth
func (h *UserHandler) HandleUpdateMe(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateInfo(ctx.Request.Context(), user.ID, req.ToUpdate())
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleUpdateMe -> h.svc.UpdateInfo", err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleChangePassword godoc
// @Summary      Change the authenticated user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request   body      request.ChangePasswordRequest true "request body"
// @Success      200      {object}   response.Message
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/me/password [put]
// @Security BearerAuth
func (h *UserHandler) HandleChangePassword(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.ChangePassword(ctx.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		response.RenderErr(ctx, serviceErr("HandleChangePassword -> h.svc.ChangePassword", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// HandleDeleteMe godoc
// @Summary      Delete the authenticated user and all of their data
// @Tags         users
// @Produce      json
// @Success      200      {object}   response.Message
// @Failure      500      {object}   response.Err
// @Router       /users/me [delete]
// @Security BearerAuth
func (h *UserHandler) HandleDeleteMe(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteAccount(ctx.Request.Context(), user.ID); err != nil {
		response.RenderErr(ctx, serviceErr("HandleDeleteMe -> h.svc.DeleteAccount", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// HandleListUsers godoc
// @Summary      List users, or search them by username when q is set
// @Tags         users
// @Produce      json
// @Param        q          query     string  false  "username fragment"
// @Param        page       query     int     false  "page, from 1"
// @Param        page_size  query     int     false  "page size"
// @Success      200      {array}    domain.User
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users [get]
// @Security BearerAuth
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	page, size, respErr := pageFromQuery(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var (
		users []domain.User
		err   error
	)
	if q := ctx.Query("q"); q != "" {
		users, err = h.svc.SearchUsers(ctx.Request.Context(), q, page, size)
	} else {
		users, err = h.svc.ListUsers(ctx.Request.Context(), page, size)
	}
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleListUsers -> h.svc.ListUsers", err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleBanUser godoc
// @Summary      Ban a user
// @Tags         users
// @Produce      json
// @Param        userID   path      int  true  "user id"
// @Success      200      {object}   response.Message
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /users/{userID}/ban [post]
// @Security BearerAuth
func (h *UserHandler) HandleBanUser(ctx *gin.Context) {
	userID, respErr := idFromPath(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Ban(ctx.Request.Context(), userID); err != nil {
		response.RenderErr(ctx, serviceErr("HandleBanUser -> h.svc.Ban", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "user banned"})
}

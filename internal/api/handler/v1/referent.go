package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festival-benevoles/api/internal/api/handler/v1/response"
	"github.com/festival-benevoles/api/internal/domain"
)

type ReferentService interface {
	Assign(ctx context.Context, userID, posteID uint) (domain.Referent, error)
	Unassign(ctx context.Context, userID, posteID uint) error
	ListByPoste(ctx context.Context, posteID uint) ([]domain.ReferentUser, error)
	MyPostes(ctx context.Context, userID, festivalID uint) ([]domain.Poste, error)
	MyVolunteers(ctx context.Context, userID, festivalID uint) ([]domain.PosteVolunteers, error)
}

type ReferentHandler struct {
	svc  ReferentService
	uSvc UserGetter
	fSvc ActiveFestivalGetter
}

func NewReferentHandler(svc ReferentService, uSvc UserGetter, fSvc ActiveFestivalGetter) *ReferentHandler {
	return &ReferentHandler{
		svc:  svc,
		uSvc: uSvc,
		fSvc: fSvc,
	}
}

func posteAndUserFromPath(ctx *gin.Context) (uint, uint, *response.Err) {
	posteID, respErr := idFromPath(ctx, "posteID")
	if respErr != nil {
		return 0, 0, respErr
	}

	userID, respErr := idFromPath(ctx, "userID")
	if respErr != nil {
		return 0, 0, respErr
	}

	return posteID, userID, nil
}

// HandleAssignReferent godoc
// @Summary      Make a user referent of a poste
// @Tags         referents
// @Produce      json
// @Param        posteID   path      int  true  "poste id"
// @Param        userID    path      int  true  "user id"
// @Success      200      {object}   domain.Referent
// @Failure      404      {object}   response.Err
// @Router       /postes/{posteID}/referents/{userID} [post]
// @Security BearerAuth
func (h *ReferentHandler) HandleAssignReferent(ctx *gin.Context) {
	posteID, userID, respErr := posteAndUserFromPath(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ref, err := h.svc.Assign(ctx.Request.Context(), userID, posteID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleAssignReferent -> h.svc.Assign", err))
		return
	}

	ctx.JSON(http.StatusOK, ref)
}

// HandleUnassignReferent godoc
// @Summary      Remove a user from the referents of a poste
// @Tags         referents
// @Produce      json
// @Param        posteID   path      int  true  "poste id"
// @Param        userID    path      int  true  "user id"
// @Success      200      {object}   response.Message
// @Failure      404      {object}   response.Err
// @Router       /postes/{posteID}/referents/{userID} [delete]
// @Security BearerAuth
func (h *ReferentHandler) HandleUnassignReferent(ctx *gin.Context) {
	posteID, userID, respErr := posteAndUserFromPath(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Unassign(ctx.Request.Context(), userID, posteID); err != nil {
		response.RenderErr(ctx, serviceErr("HandleUnassignReferent -> h.svc.Unassign", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "referent removed"})
}

// HandleListReferents godoc
// @Summary      List the referents of a poste
// @Tags         referents
// @Produce      json
// @Param        posteID   path      int  true  "poste id"
// @Success      200      {array}    domain.ReferentUser
// @Router       /postes/{posteID}/referents [get]
// @Security BearerAuth
func (h *ReferentHandler) HandleListReferents(ctx *gin.Context) {
	posteID, respErr := idFromPath(ctx, "posteID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	users, err := h.svc.ListByPoste(ctx.Request.Context(), posteID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleListReferents -> h.svc.ListByPoste", err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleMyPostes godoc
// @Summary      List the postes the caller is referent of
// @Tags         referents
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Success      200      {array}    domain.Poste
// @Router       /festivals/{festivalID}/referents/me/postes [get]
// @Security BearerAuth
func (h *ReferentHandler) HandleMyPostes(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	festivalID, respErr := festivalIDFromPath(ctx, h.fSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	postes, err := h.svc.MyPostes(ctx.Request.Context(), user.ID, festivalID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleMyPostes -> h.svc.MyPostes", err))
		return
	}

	ctx.JSON(http.StatusOK, postes)
}

// HandleMyVolunteers godoc
// @Summary      List the volunteers signed up under the caller's postes
// @Tags         referents
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Success      200      {array}    domain.PosteVolunteers
// @Router       /festivals/{festivalID}/referents/me/volunteers [get]
// @Security BearerAuth
func (h *ReferentHandler) HandleMyVolunteers(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	festivalID, respErr := festivalIDFromPath(ctx, h.fSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	volunteers, err := h.svc.MyVolunteers(ctx.Request.Context(), user.ID, festivalID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleMyVolunteers -> h.svc.MyVolunteers", err))
		return
	}

	ctx.JSON(http.StatusOK, volunteers)
}

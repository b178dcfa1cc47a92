package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festival-benevoles/api/internal/api/handler/v1/request"
	"github.com/festival-benevoles/api/internal/api/handler/v1/response"
	"github.com/festival-benevoles/api/internal/domain"
)

type PosteService interface {
	Create(ctx context.Context, poste domain.Poste) (domain.Poste, error)
	List(ctx context.Context, festivalID uint) ([]domain.PosteWithReferents, error)
	Get(ctx context.Context, id uint) (domain.Poste, error)
	Update(ctx context.Context, id uint, description string, maxCapacity int) (domain.Poste, error)
	Delete(ctx context.Context, id uint) error
}

type PosteHandler struct {
	svc  PosteService
	fSvc ActiveFestivalGetter
}

func NewPosteHandler(svc PosteService, fSvc ActiveFestivalGetter) *PosteHandler {
	return &PosteHandler{
		svc:  svc,
		fSvc: fSvc,
	}
}

// HandleListPostes godoc
// @Summary      List the postes of a festival with their referents
// @Tags         postes
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Success      200      {array}    domain.PosteWithReferents
// @Failure      404      {object}   response.Err
// @Router       /festivals/{festivalID}/postes [get]
// @Security BearerAuth
func (h *PosteHandler) HandleListPostes(ctx *gin.Context) {
	festivalID, respErr := festivalIDFromPath(ctx, h.fSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	postes, err := h.svc.List(ctx.Request.Context(), festivalID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleListPostes -> h.svc.List", err))
		return
	}

	ctx.JSON(http.StatusOK, postes)
}

// HandleCreatePoste godoc
// @Summary      Create a poste
// @Tags         postes
// @Accept       json
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Param        request   body      request.CreatePosteRequest true "request body"
// @Success      201      {object}   domain.Poste
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Router       /festivals/{festivalID}/postes [post]
// @Security BearerAuth
func (h *PosteHandler) HandleCreatePoste(ctx *gin.Context) {
	festivalID, respErr := festivalIDFromPath(ctx, h.fSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreatePosteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	poste, err := h.svc.Create(ctx.Request.Context(), req.ToPoste(festivalID))
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleCreatePoste -> h.svc.Create", err))
		return
	}

	ctx.JSON(http.StatusCreated, poste)
}

// HandleGetPoste godoc
// @Summary      Get a poste
// @Tags         postes
// @Produce      json
// @Param        posteID   path      int  true  "poste id"
// @Success      200      {object}   domain.Poste
// @Failure      404      {object}   response.Err
// @Router       /postes/{posteID} [get]
// @Security BearerAuth
func (h *PosteHandler) HandleGetPoste(ctx *gin.Context) {
	posteID, respErr := idFromPath(ctx, "posteID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	poste, err := h.svc.Get(ctx.Request.Context(), posteID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleGetPoste -> h.svc.Get", err))
		return
	}

	ctx.JSON(http.StatusOK, poste)
}

// HandleUpdatePoste godoc
// @Summary      Update a poste's description and capacity
// @Tags         postes
// @Accept       json
// @Produce      json
// @Param        posteID   path      int  true  "poste id"
// @Param        request   body      request.UpdatePosteRequest true "request body"
// @Success      200      {object}   domain.Poste
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /postes/{posteID} [put]
// @Security BearerAuth
func (h *PosteHandler) HandleUpdatePoste(ctx *gin.Context) {
	posteID, respErr := idFromPath(ctx, "posteID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdatePosteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	poste, err := h.svc.Update(ctx.Request.Context(), posteID, req.Description, req.MaxCapacity)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleUpdatePoste -> h.svc.Update", err))
		return
	}

	ctx.JSON(http.StatusOK, poste)
}

// HandleDeletePoste godoc
// @Summary      Delete a poste with its sign-ups and referents
// @Tags         postes
// @Produce      json
// @Param        posteID   path      int  true  "poste id"
// @Success      200      {object}   response.Message
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /postes/{posteID} [delete]
// @Security BearerAuth
func (h *PosteHandler) HandleDeletePoste(ctx *gin.Context) {
	posteID, respErr := idFromPath(ctx, "posteID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), posteID); err != nil {
		response.RenderErr(ctx, serviceErr("HandleDeletePoste -> h.svc.Delete", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "poste deleted"})
}

package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festival-benevoles/api/internal/api/handler/v1/request"
	"github.com/festival-benevoles/api/internal/api/handler/v1/response"
	"github.com/festival-benevoles/api/internal/domain"
)

type FestivalService interface {
	Create(ctx context.Context, festival domain.Festival) (domain.Festival, error)
	List(ctx context.Context) ([]domain.Festival, error)
	Get(ctx context.Context, id uint) (domain.Festival, error)
	Active(ctx context.Context) (domain.Festival, error)
	Activate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type FestivalHandler struct {
	svc FestivalService
}

func NewFestivalHandler(svc FestivalService) *FestivalHandler {
	return &FestivalHandler{
		svc: svc,
	}
}

// HandleListFestivals godoc
// @Summary      List festivals
// @Tags         festivals
// @Produce      json
// @Success      200      {array}    domain.Festival
// @Failure      500      {object}   response.Err
// @Router       /festivals [get]
// @Security BearerAuth
func (h *FestivalHandler) HandleListFestivals(ctx *gin.Context) {
	festivals, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleListFestivals -> h.svc.List", err))
		return
	}

	ctx.JSON(http.StatusOK, festivals)
}

// HandleGetFestival godoc
// @Summary      Get a festival; "active" returns the active one
// @Tags         festivals
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Success      200      {object}   domain.Festival
// @Failure      404      {object}   response.Err
// @Router       /festivals/{festivalID} [get]
// @Security BearerAuth
func (h *FestivalHandler) HandleGetFestival(ctx *gin.Context) {
	festivalID, respErr := festivalIDFromPath(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	festival, err := h.svc.Get(ctx.Request.Context(), festivalID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleGetFestival -> h.svc.Get", err))
		return
	}

	ctx.JSON(http.StatusOK, festival)
}

// HandleCreateFestival godoc
// @Summary      Create a festival with its Animation poste
// @Tags         festivals
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateFestivalRequest true "request body"
// @Success      201      {object}   domain.Festival
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Router       /festivals [post]
// @Security BearerAuth
func (h *FestivalHandler) HandleCreateFestival(ctx *gin.Context) {
	var req request.CreateFestivalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	festival, err := h.svc.Create(ctx.Request.Context(), req.ToFestival())
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleCreateFestival -> h.svc.Create", err))
		return
	}

	ctx.JSON(http.StatusCreated, festival)
}

// HandleActivateFestival godoc
// @Summary      Make a festival the only active one
// @Tags         festivals
// @Produce      json
// @Param        festivalID   path      int  true  "festival id"
// @Success      200      {object}   response.Message
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Router       /festivals/{festivalID}/activate [post]
// @Security BearerAuth
func (h *FestivalHandler) HandleActivateFestival(ctx *gin.Context) {
	festivalID, respErr := idFromPath(ctx, "festivalID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Activate(ctx.Request.Context(), festivalID); err != nil {
		response.RenderErr(ctx, serviceErr("HandleActivateFestival -> h.svc.Activate", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "festival activated"})
}

// HandleDeleteFestival godoc
// @Summary      Delete a festival and everything attached to it
// @Tags         festivals
// @Produce      json
// @Param        festivalID   path      int  true  "festival id"
// @Success      200      {object}   response.Message
// @Failure      404      {object}   response.Err
// @Router       /festivals/{festivalID} [delete]
// @Security BearerAuth
func (h *FestivalHandler) HandleDeleteFestival(ctx *gin.Context) {
	festivalID, respErr := idFromPath(ctx, "festivalID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), festivalID); err != nil {
		response.RenderErr(ctx, serviceErr("HandleDeleteFestival -> h.svc.Delete", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "festival deleted"})
}

package v1

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festival-benevoles/api/internal/api/handler/v1/request"
	"github.com/festival-benevoles/api/internal/api/handler/v1/response"
	"github.com/festival-benevoles/api/internal/service"
)

type FlexibleService interface {
	Resolve(ctx context.Context, festivalID uint, withZones bool) (service.ResolutionReport, error)
}

type FlexibleHandler struct {
	svc  FlexibleService
	fSvc ActiveFestivalGetter
}

func NewFlexibleHandler(svc FlexibleService, fSvc ActiveFestivalGetter) *FlexibleHandler {
	return &FlexibleHandler{
		svc:  svc,
		fSvc: fSvc,
	}
}

// HandleResolveFlexibles godoc
// @Summary      Keep one poste, and one zone unless with_zones is false, per volunteer and slot
// @Tags         flexibles
// @Accept       json
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Param        request   body      request.ResolveFlexiblesRequest false "request body"
// @Success      200      {object}   service.ResolutionReport
// @Failure      404      {object}   response.Err
// @Router       /festivals/{festivalID}/flexibles/resolve [post]
// @Security BearerAuth
func (h *FlexibleHandler) HandleResolveFlexibles(ctx *gin.Context) {
	festivalID, respErr := festivalIDFromPath(ctx, h.fSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ResolveFlexiblesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	report, err := h.svc.Resolve(ctx.Request.Context(), festivalID, req.Zones())
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleResolveFlexibles -> h.svc.Resolve", err))
		return
	}

	ctx.JSON(http.StatusOK, report)
}

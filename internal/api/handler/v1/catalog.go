package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/festival-benevoles/api/internal/api/handler/v1/response"
	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/service"
)

const catalogFormField = "file"

type CatalogService interface {
	Import(ctx context.Context, festivalID uint, games []domain.Game) (service.ImportReport, error)
	ListGames(ctx context.Context, festivalID uint) ([]domain.Game, error)
	GetGame(ctx context.Context, festivalID uint, jeuID int) (domain.Game, error)
	ListAnimatableZones(ctx context.Context, festivalID uint) ([]domain.Zone, error)
}

type CatalogHandler struct {
	svc  CatalogService
	fSvc ActiveFestivalGetter
}

func NewCatalogHandler(svc CatalogService, fSvc ActiveFestivalGetter) *CatalogHandler {
	return &CatalogHandler{
		svc:  svc,
		fSvc: fSvc,
	}
}

// HandleImportCatalog godoc
// @Summary      Replace a festival's game catalog and reconcile zone sign-ups
// @Tags         catalog
// @Accept       multipart/form-data
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Param        file         formData  file    true  "semicolon separated catalog"
// @Success      200      {object}   service.ImportReport
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /festivals/{festivalID}/catalog [post]
// @Security BearerAuth
func (h *CatalogHandler) HandleImportCatalog(ctx *gin.Context) {
	festivalID, respErr := festivalIDFromPath(ctx, h.fSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	header, err := ctx.FormFile(catalogFormField)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("missing %q file: %w", catalogFormField, err)))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("HandleImportCatalog -> header.Open -> %w", err)))
		return
	}
	defer file.Close()

	games, err := service.ParseCatalog(file)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	report, err := h.svc.Import(ctx.Request.Context(), festivalID, games)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleImportCatalog -> h.svc.Import", err))
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// HandleListGames godoc
// @Summary      List a festival's games
// @Tags         catalog
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Success      200      {array}    domain.Game
// @Router       /festivals/{festivalID}/games [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleListGames(ctx *gin.Context) {
	festivalID, respErr := festivalIDFromPath(ctx, h.fSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	games, err := h.svc.ListGames(ctx.Request.Context(), festivalID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleListGames -> h.svc.ListGames", err))
		return
	}

	ctx.JSON(http.StatusOK, games)
}

// HandleGetGame godoc
// @Summary      Get one game of a festival's catalog
// @Tags         catalog
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Param        jeuID        path      int     true  "game id"
// @Success      200      {object}   domain.Game
// @Failure      404      {object}   response.Err
// @Router       /festivals/{festivalID}/games/{jeuID} [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleGetGame(ctx *gin.Context) {
	festivalID, respErr := festivalIDFromPath(ctx, h.fSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	jeuID, err := strconv.Atoi(ctx.Param("jeuID"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid jeuID: %q", ctx.Param("jeuID"))))
		return
	}

	game, err := h.svc.GetGame(ctx.Request.Context(), festivalID, jeuID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleGetGame -> h.svc.GetGame", err))
		return
	}

	ctx.JSON(http.StatusOK, game)
}

// HandleListZones godoc
// @Summary      List the zones bénévoles that have games to animate
// @Tags         catalog
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Success      200      {array}    domain.Zone
// @Router       /festivals/{festivalID}/zones [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleListZones(ctx *gin.Context) {
	festivalID, respErr := festivalIDFromPath(ctx, h.fSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	zones, err := h.svc.ListAnimatableZones(ctx.Request.Context(), festivalID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleListZones -> h.svc.ListAnimatableZones", err))
		return
	}

	ctx.JSON(http.StatusOK, zones)
}

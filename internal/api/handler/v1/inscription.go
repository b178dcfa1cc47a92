package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festival-benevoles/api/internal/api/handler/v1/request"
	"github.com/festival-benevoles/api/internal/api/handler/v1/response"
	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/service"
)

type InscriptionService interface {
	Schedule() domain.Schedule
	SignupPoste(ctx context.Context, userID, festivalID uint, poste string, slot domain.Slot) (service.BatchResult, error)
	SignupZone(ctx context.Context, userID, festivalID uint, zone domain.Zone, slot domain.Slot) (service.BatchResult, error)
	WithdrawPoste(ctx context.Context, userID, festivalID uint, poste string, slot domain.Slot) (service.BatchResult, error)
	WithdrawZone(ctx context.Context, userID, festivalID uint, zone domain.Zone, slot domain.Slot) (service.BatchResult, error)
	Batch(ctx context.Context, festivalID uint, signups, withdrawals []domain.Inscription) (service.BatchResult, error)
	PosteOccupancy(ctx context.Context, festivalID uint) ([]domain.PosteOccupancy, error)
	ZoneOccupancy(ctx context.Context, festivalID uint) ([]domain.ZoneOccupancy, error)
	MySignups(ctx context.Context, userID, festivalID uint) ([]domain.Inscription, error)
}

type InscriptionHandler struct {
	svc  InscriptionService
	uSvc UserGetter
	fSvc ActiveFestivalGetter
}

func NewInscriptionHandler(svc InscriptionService, uSvc UserGetter, fSvc ActiveFestivalGetter) *InscriptionHandler {
	return &InscriptionHandler{
		svc:  svc,
		uSvc: uSvc,
		fSvc: fSvc,
	}
}

func batchMessage(message string, res service.BatchResult) gin.H {
	return gin.H{"message": message, "inserted": res.Inserted, "deleted": res.Deleted}
}

// scope resolves the caller and the festival of a sign-up route.
func (h *InscriptionHandler) scope(ctx *gin.Context) (domain.User, uint, *response.Err) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		return domain.User{}, 0, respErr
	}

	festivalID, respErr := festivalIDFromPath(ctx, h.fSvc)
	if respErr != nil {
		return domain.User{}, 0, respErr
	}

	return user, festivalID, nil
}

// HandleGetSchedule godoc
// @Summary      List the jours and créneaux volunteers can sign up for
// @Tags         inscriptions
// @Produce      json
// @Success      200      {object}   response.Schedule
// @Router       /schedule [get]
func (h *InscriptionHandler) HandleGetSchedule(ctx *gin.Context) {
	schedule := h.svc.Schedule()
	ctx.JSON(http.StatusOK, response.Schedule{Jours: schedule.Jours, Creneaux: schedule.Creneaux})
}

// HandleSignupPoste godoc
// @Summary      Sign up for a poste in one slot
// @Tags         inscriptions
// @Accept       json
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Param        request   body      request.PosteSignupRequest true "request body"
// @Success      200      {object}   response.Message
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /festivals/{festivalID}/inscriptions/postes [post]
// @Security BearerAuth
func (h *InscriptionHandler) HandleSignupPoste(ctx *gin.Context) {
	user, festivalID, respErr := h.scope(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PosteSignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	res, err := h.svc.SignupPoste(ctx.Request.Context(), user.ID, festivalID, req.Poste, req.Slot())
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleSignupPoste -> h.svc.SignupPoste", err))
		return
	}

	ctx.JSON(http.StatusOK, batchMessage("signed up", res))
}

// HandleWithdrawPoste godoc
// @Summary      Withdraw from a poste in one slot; withdrawing Animation drops the slot's zones
// @Tags         inscriptions
// @Accept       json
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Param        request   body      request.PosteSignupRequest true "request body"
// @Success      200      {object}   response.Message
// @Failure      400      {object}   response.Err
// @Router       /festivals/{festivalID}/inscriptions/postes [delete]
// @Security BearerAuth
func (h *InscriptionHandler) HandleWithdrawPoste(ctx *gin.Context) {
	user, festivalID, respErr := h.scope(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PosteSignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	res, err := h.svc.WithdrawPoste(ctx.Request.Context(), user.ID, festivalID, req.Poste, req.Slot())
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleWithdrawPoste -> h.svc.WithdrawPoste", err))
		return
	}

	ctx.JSON(http.StatusOK, batchMessage("withdrawn", res))
}

// HandleSignupZone godoc
// @Summary      Sign up for a zone bénévole under Animation in one slot
// @Tags         inscriptions
// @Accept       json
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Param        request   body      request.ZoneSignupRequest true "request body"
// @Success      200      {object}   response.Message
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /festivals/{festivalID}/inscriptions/zones [post]
// @Security BearerAuth
func (h *InscriptionHandler) HandleSignupZone(ctx *gin.Context) {
	user, festivalID, respErr := h.scope(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ZoneSignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	res, err := h.svc.SignupZone(ctx.Request.Context(), user.ID, festivalID, req.Zone(), req.Slot())
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleSignupZone -> h.svc.SignupZone", err))
		return
	}

	ctx.JSON(http.StatusOK, batchMessage("signed up", res))
}

// HandleWithdrawZone godoc
// @Summary      Withdraw from a zone bénévole in one slot
// @Tags         inscriptions
// @Accept       json
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Param        request   body      request.ZoneSignupRequest true "request body"
// @Success      200      {object}   response.Message
// @Failure      400      {object}   response.Err
// @Router       /festivals/{festivalID}/inscriptions/zones [delete]
// @Security BearerAuth
func (h *InscriptionHandler) HandleWithdrawZone(ctx *gin.Context) {
	user, festivalID, respErr := h.scope(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ZoneSignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	res, err := h.svc.WithdrawZone(ctx.Request.Context(), user.ID, festivalID, req.Zone(), req.Slot())
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleWithdrawZone -> h.svc.WithdrawZone", err))
		return
	}

	ctx.JSON(http.StatusOK, batchMessage("withdrawn", res))
}

// HandleBatch godoc
// @Summary      Apply several sign-ups and withdrawals of the caller in one transaction
// @Tags         inscriptions
// @Accept       json
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Param        request   body      request.BatchRequest true "request body"
// @Success      200      {object}   response.Message
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /festivals/{festivalID}/inscriptions/batch [post]
// @Security BearerAuth
func (h *InscriptionHandler) HandleBatch(ctx *gin.Context) {
	user, festivalID, respErr := h.scope(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	h.batch(ctx, user.ID, festivalID)
}

// HandleAssignBatch godoc
// @Summary      Apply sign-ups and withdrawals on behalf of another user
// @Tags         inscriptions
// @Accept       json
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Param        userID       path      int     true  "volunteer id"
// @Param        request   body      request.BatchRequest true "request body"
// @Success      200      {object}   response.Message
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /festivals/{festivalID}/users/{userID}/inscriptions [post]
// @Security BearerAuth
func (h *InscriptionHandler) HandleAssignBatch(ctx *gin.Context) {
	festivalID, respErr := festivalIDFromPath(ctx, h.fSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, respErr := idFromPath(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if _, err := h.uSvc.GetUser(ctx.Request.Context(), userID); err != nil {
		response.RenderErr(ctx, serviceErr("HandleAssignBatch -> h.uSvc.GetUser", err))
		return
	}

	h.batch(ctx, userID, festivalID)
}

func (h *InscriptionHandler) batch(ctx *gin.Context, userID, festivalID uint) {
	var req request.BatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	signups, withdrawals := req.Inscriptions(userID, festivalID)
	res, err := h.svc.Batch(ctx.Request.Context(), festivalID, signups, withdrawals)
	if err != nil {
		response.RenderErr(ctx, serviceErr("batch -> h.svc.Batch", err))
		return
	}

	ctx.JSON(http.StatusOK, batchMessage("batch applied", res))
}

// HandlePosteOccupancy godoc
// @Summary      Sign-up counts of every poste in every slot
// @Tags         inscriptions
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Success      200      {array}    response.PosteOccupancy
// @Router       /festivals/{festivalID}/occupancy/postes [get]
// @Security BearerAuth
func (h *InscriptionHandler) HandlePosteOccupancy(ctx *gin.Context) {
	user, festivalID, respErr := h.scope(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	occupancy, err := h.svc.PosteOccupancy(ctx.Request.Context(), festivalID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandlePosteOccupancy -> h.svc.PosteOccupancy", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewPosteOccupancy(occupancy, user.ID))
}

// HandleZoneOccupancy godoc
// @Summary      Sign-up counts of every animatable zone in every slot
// @Tags         inscriptions
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Success      200      {array}    response.ZoneOccupancy
// @Router       /festivals/{festivalID}/occupancy/zones [get]
// @Security BearerAuth
func (h *InscriptionHandler) HandleZoneOccupancy(ctx *gin.Context) {
	user, festivalID, respErr := h.scope(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	occupancy, err := h.svc.ZoneOccupancy(ctx.Request.Context(), festivalID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleZoneOccupancy -> h.svc.ZoneOccupancy", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewZoneOccupancy(occupancy, user.ID))
}

// HandleMySignups godoc
// @Summary      List the caller's sign-ups
// @Tags         inscriptions
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Success      200      {array}    domain.InscriptionRecord
// @Router       /festivals/{festivalID}/inscriptions/me [get]
// @Security BearerAuth
func (h *InscriptionHandler) HandleMySignups(ctx *gin.Context) {
	user, festivalID, respErr := h.scope(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	signups, err := h.svc.MySignups(ctx.Request.Context(), user.ID, festivalID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleMySignups -> h.svc.MySignups", err))
		return
	}

	ctx.JSON(http.StatusOK, signups)
}

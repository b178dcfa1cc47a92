package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festival-benevoles/api/internal/api/handler/v1/request"
	"github.com/festival-benevoles/api/internal/api/handler/v1/response"
	"github.com/festival-benevoles/api/internal/domain"
)

type MessageService interface {
	SendToUser(ctx context.Context, sender domain.User, festivalID, to uint, text string) (int64, error)
	SendToAll(ctx context.Context, sender domain.User, festivalID uint, text string) (int64, error)
	SendToPoste(ctx context.Context, sender domain.User, festivalID, posteID uint, text string) (int64, error)
	Inbox(ctx context.Context, userID, festivalID uint) ([]domain.Message, error)
	UnreadCount(ctx context.Context, userID, festivalID uint) (int64, error)
	DeleteSent(ctx context.Context, sender, id uint) error
	DeleteInbox(ctx context.Context, userID, festivalID uint) (int64, error)
}

type MessageHandler struct {
	svc  MessageService
	uSvc UserGetter
	fSvc ActiveFestivalGetter
}

func NewMessageHandler(svc MessageService, uSvc UserGetter, fSvc ActiveFestivalGetter) *MessageHandler {
	return &MessageHandler{
		svc:  svc,
		uSvc: uSvc,
		fSvc: fSvc,
	}
}

func (h *MessageHandler) scope(ctx *gin.Context) (domain.User, uint, *response.Err) {
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

// sendWith binds the message body and hands it to send.
func (h *MessageHandler) sendWith(ctx *gin.Context, where string, send func(sender domain.User, festivalID uint, text string) (int64, error)) {
	user, festivalID, respErr := h.scope(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sent, err := send(user, festivalID, req.Msg)
	if err != nil {
		response.RenderErr(ctx, serviceErr(where, err))
		return
	}

	ctx.JSON(http.StatusOK, response.Count{Message: "message sent", Count: sent})
}

// HandleSendToUser godoc
// @Summary      Send a message to one user
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Param        userID       path      int     true  "recipient id"
// @Param        request   body      request.SendMessageRequest true "request body"
// @Success      200      {object}   response.Count
// @Failure      404      {object}   response.Err
// @Router       /festivals/{festivalID}/messages/users/{userID} [post]
// @Security BearerAuth
func (h *MessageHandler) HandleSendToUser(ctx *gin.Context) {
	to, respErr := idFromPath(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	h.sendWith(ctx, "HandleSendToUser -> h.svc.SendToUser", func(sender domain.User, festivalID uint, text string) (int64, error) {
		return h.svc.SendToUser(ctx.Request.Context(), sender, festivalID, to, text)
	})
}

// HandleSendToAll godoc
// @Summary      Send a message to every active user
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Param        request   body      request.SendMessageRequest true "request body"
// @Success      200      {object}   response.Count
// @Failure      403      {object}   response.Err
// @Router       /festivals/{festivalID}/messages/all [post]
// @Security BearerAuth
func (h *MessageHandler) HandleSendToAll(ctx *gin.Context) {
	h.sendWith(ctx, "HandleSendToAll -> h.svc.SendToAll", func(sender domain.User, festivalID uint, text string) (int64, error) {
		return h.svc.SendToAll(ctx.Request.Context(), sender, festivalID, text)
	})
}

// HandleSendToPoste godoc
// @Summary      Send a message to the volunteers signed up for a poste
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Param        posteID      path      int     true  "poste id"
// @Param        request   body      request.SendMessageRequest true "request body"
// @Success      200      {object}   response.Count
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /festivals/{festivalID}/messages/postes/{posteID} [post]
// @Security BearerAuth
func (h *MessageHandler) HandleSendToPoste(ctx *gin.Context) {
	posteID, respErr := idFromPath(ctx, "posteID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	h.sendWith(ctx, "HandleSendToPoste -> h.svc.SendToPoste", func(sender domain.User, festivalID uint, text string) (int64, error) {
		return h.svc.SendToPoste(ctx.Request.Context(), sender, festivalID, posteID, text)
	})
}

// HandleInbox godoc
// @Summary      List the caller's messages, newest first, and mark them read
// @Tags         messages
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Success      200      {array}    domain.Message
// @Router       /festivals/{festivalID}/messages/inbox [get]
// @Security BearerAuth
func (h *MessageHandler) HandleInbox(ctx *gin.Context) {
	user, festivalID, respErr := h.scope(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	messages, err := h.svc.Inbox(ctx.Request.Context(), user.ID, festivalID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleInbox -> h.svc.Inbox", err))
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

// HandleUnreadCount godoc
// @Summary      Count the caller's unread messages
// @Tags         messages
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Success      200      {object}   response.Count
// @Router       /festivals/{festivalID}/messages/unread [get]
// @Security BearerAuth
func (h *MessageHandler) HandleUnreadCount(ctx *gin.Context) {
	user, festivalID, respErr := h.scope(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	count, err := h.svc.UnreadCount(ctx.Request.Context(), user.ID, festivalID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleUnreadCount -> h.svc.UnreadCount", err))
		return
	}

	ctx.JSON(http.StatusOK, response.Count{Count: count})
}

// HandleDeleteInbox godoc
// @Summary      Delete every message of the caller's inbox
// @Tags         messages
// @Produce      json
// @Param        festivalID   path      string  true  "festival id or active"
// @Success      200      {object}   response.Count
// @Router       /festivals/{festivalID}/messages/inbox [delete]
// @Security BearerAuth
func (h *MessageHandler) HandleDeleteInbox(ctx *gin.Context) {
	user, festivalID, respErr := h.scope(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	deleted, err := h.svc.DeleteInbox(ctx.Request.Context(), user.ID, festivalID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleDeleteInbox -> h.svc.DeleteInbox", err))
		return
	}

	ctx.JSON(http.StatusOK, response.Count{Message: "inbox deleted", Count: deleted})
}

// HandleDeleteSent godoc
// @Summary      Delete a message the caller sent
// @Tags         messages
// @Produce      json
// @Param        messageID   path      int  true  "message id"
// @Success      200      {object}   response.Message
// @Failure      404      {object}   response.Err
// @Router       /messages/{messageID} [delete]
// @Security BearerAuth
func (h *MessageHandler) HandleDeleteSent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	messageID, respErr := idFromPath(ctx, "messageID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteSent(ctx.Request.Context(), user.ID, messageID); err != nil {
		response.RenderErr(ctx, serviceErr("HandleDeleteSent -> h.svc.DeleteSent", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}

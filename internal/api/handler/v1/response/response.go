package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festival-benevoles/api/internal/domain"
)

// Err is the JSON body of every error response.
type Err struct {
	Status  int    `json:"status"`
	Message string `json:"error"`

	err error
}

func (e *Err) Error() string {
	return e.Message
}

func (e *Err) Unwrap() error {
	return e.err
}

// RenderErr writes e and aborts the chain. Server errors are logged, never echoed.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.Status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.err),
		)
	}

	ctx.AbortWithStatusJSON(e.Status, e)
}

func newErr(status int, err error) *Err {
	return &Err{Status: status, Message: err.Error(), err: err}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err)
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, err)
}

func ErrWrongCredentials(err error) *Err {
	return &Err{Status: http.StatusUnauthorized, Message: "wrong credentials", err: err}
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err)
}

func ErrNotFound(err error) *Err {
	return newErr(http.StatusNotFound, err)
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, err)
}

func ErrInternalServerError(err error) *Err {
	return &Err{Status: http.StatusInternalServerError, Message: http.StatusText(http.StatusInternalServerError), err: err}
}

type Message struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type Count struct {
	Message string `json:"message,omitempty"`
	Count   int64  `json:"count"`
}

type Schedule struct {
	Jours    []string `json:"jours"`
	Creneaux []string `json:"creneaux"`
}

// SlotCell is one occupancy cell as seen by the requesting user.
type SlotCell struct {
	domain.Slot
	Count      int  `json:"nb_inscriptions"`
	Registered bool `json:"is_registered"`
}

type PosteOccupancy struct {
	PosteID  uint       `json:"poste_id"`
	Poste    string     `json:"poste"`
	Capacity int        `json:"max_capacity"`
	Slots    []SlotCell `json:"slots"`
}

type ZoneOccupancy struct {
	domain.Zone
	Capacity int        `json:"max_capacity"`
	Slots    []SlotCell `json:"slots"`
}

func cells(slots []domain.SlotOccupancy, userID uint) []SlotCell {
	out := make([]SlotCell, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotCell{Slot: s.Slot, Count: s.Count, Registered: s.Registered(userID)})
	}
	return out
}

func NewPosteOccupancy(occupancy []domain.PosteOccupancy, userID uint) []PosteOccupancy {
	out := make([]PosteOccupancy, 0, len(occupancy))
	for _, o := range occupancy {
		out = append(out, PosteOccupancy{
			PosteID:  o.PosteID,
			Poste:    o.Poste,
			Capacity: o.Capacity,
			Slots:    cells(o.Slots, userID),
		})
	}
	return out
}

func NewZoneOccupancy(occupancy []domain.ZoneOccupancy, userID uint) []ZoneOccupancy {
	out := make([]ZoneOccupancy, 0, len(occupancy))
	for _, o := range occupancy {
		out = append(out, ZoneOccupancy{
			Zone:     o.Zone,
			Capacity: o.Capacity,
			Slots:    cells(o.Slots, userID),
		})
	}
	return out
}

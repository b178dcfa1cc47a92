package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SendMessageRequest struct {
	Msg string `json:"msg"`
}

func (req *SendMessageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Msg, validation.Required, validation.Length(1, 4000)),
	)
}

type ResolveFlexiblesRequest struct {
	WithZones *bool `json:"with_zones"`
}

// Zones reports whether the zone pass runs. It does unless with_zones is false.
func (req *ResolveFlexiblesRequest) Zones() bool {
	return req.WithZones == nil || *req.WithZones
}

package dto

import "sales-intel-be/pkg/verticals"

type UpsertVerticalConfigRequest struct {
	Vertical    string           `json:"vertical" validate:"required"`
	SubVertical string           `json:"sub_vertical"`
	Region      string           `json:"region" validate:"required"`
	Config      verticals.Config `json:"config" validate:"required"`
}

type UpsertVerticalConfigResponse struct {
	Key string `json:"key"`
}

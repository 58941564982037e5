package dto

import "sales-intel-be/pkg/command"

type ResolveCommandRequest struct {
	WorkspaceID string `json:"workspace_id" validate:"required"`
	Query       string `json:"query" validate:"required"`
}

type ResolveCommandResponse struct {
	Success        bool                     `json:"success"`
	Classification command.Classification   `json:"classification"`
	Cards          []CardResponse           `json:"cards"`
	Error          *command.ResolutionError `json:"error,omitempty"`
}

type CreateWorkspaceRequest struct {
	Vertical    string `json:"vertical" validate:"required"`
	SubVertical string `json:"sub_vertical"`
	Region      string `json:"region" validate:"required"`
}

type CreateWorkspaceResponse struct {
	WorkspaceID string `json:"workspace_id"`
}

package dto

import "neuranote.app/assistant/internal/model"

type IdentifyBlockersRequest struct {
	Task      string `json:"task" binding:"required,min=1,max=2048"`
	FocusTime string `json:"focus_time" binding:"required,min=1,max=255"`
}

type IdentifyBlockersResponse struct {
	PotentialBlockers []BlockerResponse `json:"potential_blockers"`
}

type BlockerResponse struct {
	Blocker  string `json:"blocker"`
	Solution string `json:"solution"`
}

func ToIdentifyBlockersResponse(blockers []model.Blocker) IdentifyBlockersResponse {
	items := make([]BlockerResponse, len(blockers))
	for i, b := range blockers {
		items[i] = BlockerResponse{Blocker: b.Blocker, Solution: b.Solution}
	}
	return IdentifyBlockersResponse{PotentialBlockers: items}
}

type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required,min=1,max=8192"`
}

type GenerateResponse struct {
	Response string `json:"response"`
}

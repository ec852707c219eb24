package dto

import "ai-coursechat-be/internal/entity"

type CreateSessionRequest struct {
	Course string `json:"course" validate:"required"`
}

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
}

type SessionInfo struct {
	SessionId string `json:"session_id"`
	Title     string `json:"title"`
}

type AskRequest struct {
	Course    string `json:"course" validate:"required"`
	SessionId string `json:"session_id" validate:"required"`
	Question  string `json:"question" validate:"required"`
}

type AskResponse struct {
	Answer  string                  `json:"answer"`
	Context []entity.ContextPassage `json:"context"`
}

type AppendLogRequest struct {
	Course    string `json:"course" validate:"required"`
	SessionId string `json:"session_id" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=user assistant"`
	Message   string `json:"message" validate:"required"`
}

type ChatLogItem struct {
	Role    string                  `json:"role"`
	Message string                  `json:"message"`
	Context []entity.ContextPassage `json:"context,omitempty"`
}

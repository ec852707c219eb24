package mapper

import (
	"encoding/json"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func passagesToJSON(passages []entity.ContextPassage) datatypes.JSON {
	if len(passages) == 0 {
		return nil
	}
	raw, err := json.Marshal(passages)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func passagesFromJSON(raw datatypes.JSON) []entity.ContextPassage {
	if len(raw) == 0 {
		return nil
	}
	var passages []entity.ContextPassage
	if err := json.Unmarshal(raw, &passages); err != nil {
		return nil
	}
	return passages
}

func (m *ChatMapper) LogToEntity(e *model.ChatLog) *entity.ChatLog {
	if e == nil {
		return nil
	}

	return &entity.ChatLog{
		Id:        e.Id,
		Username:  e.Username,
		Course:    e.Course,
		SessionId: e.SessionId,
		Role:      e.Role,
		Message:   e.Message,
		Context:   passagesFromJSON(e.Context),
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChatMapper) LogToModel(e *entity.ChatLog) *model.ChatLog {
	if e == nil {
		return nil
	}

	return &model.ChatLog{
		Id:        e.Id,
		Username:  e.Username,
		Course:    e.Course,
		SessionId: e.SessionId,
		Role:      e.Role,
		Message:   e.Message,
		Context:   passagesToJSON(e.Context),
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChatMapper) LogsToEntities(logs []*model.ChatLog) []*entity.ChatLog {
	entities := make([]*entity.ChatLog, len(logs))
	for i, e := range logs {
		entities[i] = m.LogToEntity(e)
	}
	return entities
}

func (m *ChatMapper) TitleToEntity(e *model.SessionTitle) *entity.SessionTitle {
	if e == nil {
		return nil
	}

	return &entity.SessionTitle{
		Id:        e.Id,
		Username:  e.Username,
		Course:    e.Course,
		SessionId: e.SessionId,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *ChatMapper) TitleToModel(e *entity.SessionTitle) *model.SessionTitle {
	if e == nil {
		return nil
	}

	return &model.SessionTitle{
		Id:        e.Id,
		Username:  e.Username,
		Course:    e.Course,
		SessionId: e.SessionId,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *ChatMapper) TitlesToEntities(titles []*model.SessionTitle) []*entity.SessionTitle {
	entities := make([]*entity.SessionTitle, len(titles))
	for i, e := range titles {
		entities[i] = m.TitleToEntity(e)
	}
	return entities
}

func (m *ChatMapper) CheckpointToEntity(e *model.ConversationCheckpoint) *entity.ConversationCheckpoint {
	if e == nil {
		return nil
	}

	return &entity.ConversationCheckpoint{
		Id:        e.Id,
		ThreadId:  e.ThreadId,
		TurnIndex: e.TurnIndex,
		Input:     e.Input,
		Answer:    e.Answer,
		Context:   passagesFromJSON(e.Context),
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChatMapper) CheckpointToModel(e *entity.ConversationCheckpoint) *model.ConversationCheckpoint {
	if e == nil {
		return nil
	}

	return &model.ConversationCheckpoint{
		Id:        e.Id,
		ThreadId:  e.ThreadId,
		TurnIndex: e.TurnIndex,
		Input:     e.Input,
		Answer:    e.Answer,
		Context:   passagesToJSON(e.Context),
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChatMapper) CheckpointsToEntities(checkpoints []*model.ConversationCheckpoint) []*entity.ConversationCheckpoint {
	entities := make([]*entity.ConversationCheckpoint, len(checkpoints))
	for i, e := range checkpoints {
		entities[i] = m.CheckpointToEntity(e)
	}
	return entities
}

package services

import (
	"rental_crm/internal/redis"
	"rental_crm/pkg/telegram"
	"time"
)

type TelegramService interface {
	SendMessage(chatID int64, text string) error
	StartForm(userID, chatID int64, command, step string) (*redis.FormState, error)
	SaveForm(state *redis.FormState) error
	GetForm(userID int64) (*redis.FormState, error)
	EndForm(userID int64) error
	PingStore() error
}

type telegramService struct {
	client     *telegram.Client
	redis      *redis.Client
	sessionTTL time.Duration
}

func NewTelegramService(client *telegram.Client, redisClient *redis.Client, sessionTTL time.Duration) TelegramService {
	return &telegramService{client: client, redis: redisClient, sessionTTL: sessionTTL}
}

func (s *telegramService) SendMessage(chatID int64, text string) error {
	return s.client.SendTextMessage(chatID, text)
}

func (s *telegramService) StartForm(userID, chatID int64, command, step string) (*redis.FormState, error) {
	state := &redis.FormState{
		UserID:    userID,
		ChatID:    chatID,
		Command:   command,
		Step:      step,
		Data:      make(map[string]interface{}),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.redis.SetFormState(userID, state, s.sessionTTL); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *telegramService) SaveForm(state *redis.FormState) error {
	state.UpdatedAt = time.Now()
	return s.redis.SetFormState(state.UserID, state, s.sessionTTL)
}

func (s *telegramService) GetForm(userID int64) (*redis.FormState, error) {
	return s.redis.GetFormState(userID)
}

func (s *telegramService) EndForm(userID int64) error {
	return s.redis.DeleteFormState(userID)
}

func (s *telegramService) PingStore() error {
	return s.redis.Ping()
}

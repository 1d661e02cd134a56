package service

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hellodash/dashboard-backend/internal/chat/client"
	"github.com/hellodash/dashboard-backend/internal/chat/types"
	"github.com/hellodash/dashboard-backend/internal/pkg/response"
)

type ChatService struct {
	client *client.Client
	logger *zap.Logger
}

func NewChatService(client *client.Client, logger *zap.Logger) *ChatService {
	return &ChatService{
		client: client,
		logger: logger,
	}
}

func (s *ChatService) RegisterRoutes(r *gin.RouterGroup) {
	chat := r.Group("/chat")
	{
		chat.POST("/completions", s.Complete)
		chat.GET("/models", s.ListModels)
		chat.GET("/key", s.KeyStatus)
	}
}

type completionRequest struct {
	Model       string          `json:"model"`
	Messages    []types.Message `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   *int            `json:"max_tokens"`
}

// Complete handles POST /chat/completions with the full conversation
// history in the body.
func (s *ChatService) Complete(c *gin.Context) {
	var req completionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := s.client.Complete(c.Request.Context(), &types.CompletionRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, result)
}

// ListModels handles GET /chat/models.
func (s *ChatService) ListModels(c *gin.Context) {
	models, err := s.client.ListModels(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, gin.H{"models": models})
}

// KeyStatus handles GET /chat/key.
func (s *ChatService) KeyStatus(c *gin.Context) {
	status := s.client.ValidateKey(c.Request.Context())
	response.Success(c, gin.H{"status": status})
}

func (s *ChatService) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrAPIKeyRequired),
		errors.Is(err, types.ErrEmptyMessage),
		errors.Is(err, types.ErrEmptyConversation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, types.ErrInvalidAPIKey):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, types.ErrRateLimited):
		response.TooManyRequests(c, err.Error())
	default:
		s.logger.Error("chat completion failed", zap.Error(err))
		response.BadGateway(c, err.Error())
	}
}

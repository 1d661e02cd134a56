package service

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hellodash/dashboard-backend/internal/movies/client"
	"github.com/hellodash/dashboard-backend/internal/movies/types"
	"github.com/hellodash/dashboard-backend/internal/pkg/response"
)

type MovieService struct {
	client *client.Client
	logger *zap.Logger
}

func NewMovieService(client *client.Client, logger *zap.Logger) *MovieService {
	return &MovieService{
		client: client,
		logger: logger,
	}
}

func (s *MovieService) RegisterRoutes(r *gin.RouterGroup) {
	movies := r.Group("/movies")
	{
		movies.GET("/search", s.Search)
		movies.GET("/key", s.KeyStatus)
	}
}

// Search handles GET /movies/search?query=...&page=N.
func (s *MovieService) Search(c *gin.Context) {
	query := c.Query("query")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := s.client.Search(c.Request.Context(), query, page)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, result)
}

// KeyStatus handles GET /movies/key and reports the tri-state credential
// classification so the frontend can distinguish a wrong key from a broken
// connection.
func (s *MovieService) KeyStatus(c *gin.Context) {
	status := s.client.ValidateKey(c.Request.Context())
	response.Success(c, gin.H{"status": status})
}

func (s *MovieService) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrAPIKeyRequired), errors.Is(err, types.ErrEmptyQuery):
		response.BadRequest(c, err.Error())
	case errors.Is(err, types.ErrInvalidAPIKey):
		response.Unauthorized(c, err.Error())
	default:
		s.logger.Error("movie search failed", zap.Error(err))
		response.BadGateway(c, err.Error())
	}
}

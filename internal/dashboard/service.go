package dashboard

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hellodash/dashboard-backend/internal/pkg/response"
)

type Service struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

func (s *Service) RegisterRoutes(r *gin.RouterGroup) {
	dash := r.Group("/dashboard")
	{
		dash.GET("/overview", s.Overview)
	}
}

// Overview handles GET /dashboard/overview. An optional seed query param
// makes the sample data reproducible.
func (s *Service) Overview(c *gin.Context) {
	seed := time.Now().UnixNano()
	if raw := c.Query("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "seed must be an integer")
			return
		}
		seed = parsed
	}

	response.Success(c, BuildOverview(seed))
}

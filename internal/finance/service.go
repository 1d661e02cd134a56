package finance

import (
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
	finance := r.Group("/finance")
	{
		finance.POST("/compound-interest", s.CompoundInterest)
	}
}

type compoundInterestRequest struct {
	Principal float64 `json:"principal"`
	// AnnualRatePercent mirrors the form input (7 means 7%).
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	Years             float64 `json:"years"`
	Frequency         int     `json:"frequency"`
}

// CompoundInterest handles POST /finance/compound-interest.
func (s *Service) CompoundInterest(c *gin.Context) {
	var req compoundInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := Calculate(Input{
		Principal: req.Principal,
		Rate:      req.AnnualRatePercent / 100,
		Years:     req.Years,
		Frequency: req.Frequency,
	})
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, result)
}

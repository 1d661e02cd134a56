package explorer

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hellodash/dashboard-backend/internal/pkg/response"
)

const defaultMaxUploadBytes = 10 << 20 // 10 MiB

// sampleID is the reserved dataset ID serving the built-in demo data.
const sampleID = "sample"

// sampleCSV backs the explorer page before anything has been uploaded.
const sampleCSV = `Name,Age,City,Salary
Alice,25,New York,50000
Bob,30,London,60000
Charlie,35,Tokyo,70000
Diana,28,Paris,55000
Eve,32,Sydney,65000
`

type Service struct {
	store          *Store
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewService(maxUploadBytes int64, logger *zap.Logger) *Service {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Service{
		store:          NewStore(),
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (s *Service) RegisterRoutes(r *gin.RouterGroup) {
	datasets := r.Group("/datasets")
	{
		datasets.POST("", s.Upload)
		datasets.GET("", s.List)
		datasets.GET("/:id/summary", s.GetSummary)
	}
}

// Upload handles POST /datasets with a multipart "file" field.
func (s *Service) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if header.Size > s.maxUploadBytes {
		response.BadRequest(c, "file too large")
		return
	}

	file, err := header.Open()
	if err != nil {
		s.logger.Error("failed to open upload", zap.Error(err))
		response.InternalError(c, "failed to read file")
		return
	}
	defer file.Close()

	dataset, err := Parse(file, header.Filename)
	if err != nil {
		if errors.Is(err, ErrEmptyFile) || errors.Is(err, ErrHeaderOnly) {
			response.BadRequest(c, err.Error())
			return
		}
		response.BadRequest(c, "failed to parse CSV: "+err.Error())
		return
	}

	id := s.store.Put(dataset)
	s.logger.Info("dataset uploaded",
		zap.String("id", id),
		zap.String("name", dataset.Name),
		zap.Int("rows", len(dataset.Rows)),
	)

	response.Success(c, Summarize(dataset))
}

// List handles GET /datasets.
func (s *Service) List(c *gin.Context) {
	response.Success(c, gin.H{"datasets": s.store.List()})
}

// GetSummary handles GET /datasets/:id/summary. The ID "sample" is reserved
// for the built-in demo dataset, which is never stored.
func (s *Service) GetSummary(c *gin.Context) {
	id := c.Param("id")
	if id == sampleID {
		s.sampleSummary(c)
		return
	}

	dataset, err := s.store.Get(id)
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}
	response.Success(c, Summarize(dataset))
}

func (s *Service) sampleSummary(c *gin.Context) {
	dataset, err := Parse(strings.NewReader(sampleCSV), "sample.csv")
	if err != nil {
		s.logger.Error("failed to parse sample dataset", zap.Error(err))
		response.InternalError(c, "sample dataset unavailable")
		return
	}
	dataset.ID = sampleID
	response.Success(c, Summarize(dataset))
}

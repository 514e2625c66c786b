package ports

import (
	"context"
	"time"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
)

// ProductReport datos del reporte de productos filtrados.
type ProductReport struct {
	GeneratedAt time.Time
	GeneratedBy string
	Filter      dto.ProductFilterRequest
	Products    []dto.ProductResponse
}

// ProductReportGenerator puerto de salida que renderiza el reporte como PDF.
type ProductReportGenerator interface {
	GenerateProductReport(ctx context.Context, report ProductReport) ([]byte, error)
}

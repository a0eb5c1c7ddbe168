package report

import (
	"net/http"
	"time"

	"carrental-service/internal/pkg/response"
	service "carrental-service/internal/service/report"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// dateRange parses ?start=YYYY-MM-DD&end=YYYY-MM-DD, the end date inclusive.
func dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid start date", err)
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid end date", err)
		return time.Time{}, time.Time{}, false
	}
	return start, end.Add(24*time.Hour - time.Second), true
}

func (h *ReportHandler) Summary(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), start, end)
	if err != nil {
		response.FromError(c, "failed to build summary", err)
		return
	}
	response.Success(c, http.StatusOK, "summary report", summary)
}

func (h *ReportHandler) Financial(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.Financial(c.Request.Context(), start, end)
	if err != nil {
		response.FromError(c, "failed to build financial report", err)
		return
	}
	response.Success(c, http.StatusOK, "financial report", report)
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to load dashboard stats", err)
		return
	}
	response.Success(c, http.StatusOK, "dashboard stats", stats)
}

package controllers

import (
	"compress/gzip"
	"encoding/json"
	"net/http"
	"time"

	"github.com/address-extractor/app/requests"
	"github.com/address-extractor/app/responses"
	"github.com/address-extractor/app/services"
	"github.com/address-extractor/helpers/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddressController controller xử lý các request extract địa chỉ
type AddressController struct {
	addressService *services.AddressService
	logger         *zap.Logger
}

// NewAddressController tạo mới AddressController
func NewAddressController(addressService *services.AddressService, logger *zap.Logger) *AddressController {
	return &AddressController{
		addressService: addressService,
		logger:         logger,
	}
}

// ExtractAddress extract địa chỉ đơn lẻ
func (ac *AddressController) ExtractAddress(c *gin.Context) {
	var req requests.ExtractAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_REQUEST",
			Message:   "Request không hợp lệ: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	startTime := time.Now()

	result, cacheHit, err := ac.addressService.Extract(c.Request.Context(), req.Address, req.Options)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "EXTRACT_ERROR",
			Message:   "Lỗi extract địa chỉ: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.ExtractAddressResponse{
		Result:           result,
		GazetteerVersion: ac.addressService.GazetteerVersion(),
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		CacheHit:         cacheHit,
	})
}

// BatchExtract extract hàng loạt địa chỉ qua background job
func (ac *AddressController) BatchExtract(c *gin.Context) {
	var req requests.BatchExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_REQUEST",
			Message:   "Request không hợp lệ: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	if len(req.Addresses) > 20000 {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "TOO_MANY_ADDRESSES",
			Message:   "Số lượng địa chỉ vượt quá giới hạn (20,000)",
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	jobID := utils.NewJobID()
	estimatedTime := ac.addressService.EstimateBatchProcessingTime(len(req.Addresses))

	go ac.addressService.ProcessBatchJob(jobID, req.Addresses, req.Options)

	c.JSON(http.StatusAccepted, responses.BatchExtractResponse{
		JobID:            jobID,
		EstimatedSeconds: estimatedTime,
		TotalAddresses:   len(req.Addresses),
		Message:          "Job đã được tạo và đang xử lý",
	})
}

// GetJobStatus lấy trạng thái job
func (ac *AddressController) GetJobStatus(c *gin.Context) {
	jobID := c.Param("jobID")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "MISSING_JOB_ID",
			Message:   "Thiếu Job ID",
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	status, err := ac.addressService.GetJobStatus(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "JOB_NOT_FOUND",
			Message:   "Không tìm thấy job: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.JobStatusResponse{
		JobID:     jobID,
		Status:    status.Status,
		Progress:  status.Progress,
		Processed: status.Processed,
		Total:     status.Total,
		Message:   status.Message,
	})
}

// GetJobResults lấy kết quả job với hỗ trợ NDJSON + gzip streaming
func (ac *AddressController) GetJobResults(c *gin.Context) {
	jobID := c.Param("jobID")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "MISSING_JOB_ID",
			Message:   "Thiếu Job ID",
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	format := c.Query("format")
	gzipEnabled := c.Query("gzip") == "1"

	if format == "ndjson" {
		ac.streamNDJSONResults(c, jobID, gzipEnabled)
		return
	}

	results, err := ac.addressService.GetJobResults(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "JOB_NOT_FOUND",
			Message:   "Không tìm thấy job: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "Lấy kết quả thành công",
		Data:      results,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// HealthCheck kiểm tra sức khỏe service
func (ac *AddressController) HealthCheck(c *gin.Context) {
	uptime := time.Since(ac.addressService.GetStartTime())

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    uptime.String(),
		Version:   "1.0.0",
		Services: map[string]string{
			"extractor": "healthy",
			"cache":     "healthy",
		},
	})
}

// streamNDJSONResults stream kết quả theo format NDJSON với hỗ trợ gzip
func (ac *AddressController) streamNDJSONResults(c *gin.Context, jobID string, gzipEnabled bool) {
	resultChannel, err := ac.addressService.GetJobResultsStream(jobID)
	if err != nil {
		ac.logger.Error("Lỗi stream job results", zap.Error(err))
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "JOB_NOT_FOUND",
			Message:   "Không tìm thấy job: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.Header("Content-Type", "application/x-ndjson")
	if gzipEnabled {
		c.Header("Content-Encoding", "gzip")
	}

	var writer gin.ResponseWriter = c.Writer
	if gzipEnabled {
		gzWriter := gzip.NewWriter(c.Writer)
		defer gzWriter.Close()
		writer = &gzipResponseWriter{
			ResponseWriter: c.Writer,
			gzWriter:       gzWriter,
		}
	}

	encoder := json.NewEncoder(writer)
	for result := range resultChannel {
		if err := encoder.Encode(result); err != nil {
			ac.logger.Error("Lỗi encode NDJSON", zap.Error(err))
			break
		}

		if flusher, ok := writer.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// gzipResponseWriter wrapper cho gzip writer
type gzipResponseWriter struct {
	gin.ResponseWriter
	gzWriter *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzWriter.Write(data)
}

func (w *gzipResponseWriter) Flush() {
	w.gzWriter.Flush()
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

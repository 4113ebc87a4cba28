package controllers

import (
	"net/http"
	"time"

	"github.com/address-extractor/app/responses"
	"github.com/address-extractor/app/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminController controller xử lý các request vận hành
type AdminController struct {
	addressService *services.AddressService
	cacheService   services.ICacheService
	logger         *zap.Logger
}

// NewAdminController tạo mới AdminController
func NewAdminController(addressService *services.AddressService, cacheService services.ICacheService, logger *zap.Logger) *AdminController {
	return &AdminController{
		addressService: addressService,
		cacheService:   cacheService,
		logger:         logger,
	}
}

// InvalidateCache invalidate cache theo gazetteer version
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	gazetteerVersion := c.Query("gazetteer_version")
	if gazetteerVersion == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "MISSING_VERSION",
			Message:   "Thiếu gazetteer_version",
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	startTime := time.Now()

	err := ac.cacheService.InvalidateByGazetteerVersion(c.Request.Context(), gazetteerVersion)
	if err != nil {
		ac.logger.Error("Lỗi invalidate cache", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "INVALIDATE_ERROR",
			Message:   "Lỗi invalidate cache: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	processingTime := time.Since(startTime)
	ac.logger.Info("Invalidate cache thành công",
		zap.String("version", gazetteerVersion),
		zap.Duration("duration", processingTime))

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Invalidate cache thành công",
		Data: map[string]interface{}{
			"gazetteer_version":  gazetteerVersion,
			"processing_time_ms": processingTime.Milliseconds(),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// ClearCache xóa toàn bộ cache
func (ac *AdminController) ClearCache(c *gin.Context) {
	if err := ac.cacheService.Clear(c.Request.Context()); err != nil {
		ac.logger.Error("Lỗi clear cache", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "CLEAR_ERROR",
			Message:   "Lỗi clear cache: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "Clear cache thành công",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// GetStats lấy thống kê hệ thống: cache, trie và uptime
func (ac *AdminController) GetStats(c *gin.Context) {
	cacheStats, err := ac.cacheService.GetStats(c.Request.Context())
	if err != nil {
		ac.logger.Warn("Lỗi lấy cache stats", zap.Error(err))
		cacheStats = &services.CacheStats{}
	}

	provinces, districts, wards := ac.addressService.TrieSizes()
	uptime := time.Since(ac.addressService.GetStartTime())

	c.JSON(http.StatusOK, responses.AdminStatsResponse{
		CacheHitRate:     cacheStats.HitRate,
		TotalCached:      cacheStats.TotalItems,
		GazetteerVersion: ac.addressService.GazetteerVersion(),
		ProvinceCount:    provinces,
		DistrictCount:    districts,
		WardCount:        wards,
		UptimeSeconds:    int64(uptime.Seconds()),
		LastUpdated:      time.Now().Format(time.RFC3339),
	})
}

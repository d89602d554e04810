package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wellscan/patient-portal/internal/httperr"
	"github.com/wellscan/patient-portal/internal/httpresp"
	"github.com/wellscan/patient-portal/internal/models"
)

const catalogCacheTTL = 5 * time.Minute

type TestHandler struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewTestHandler(db *gorm.DB, cache *redis.Client) *TestHandler {
	return &TestHandler{db: db, cache: cache}
}

// List returns active tests, filterable by category and name search. Pages of
// the unfiltered catalog are cached; filtered queries hit the database.
func (h *TestHandler) List(c *gin.Context) {
	category := c.Query("category")
	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	cacheKey := ""
	if h.cache != nil && category == "" && search == "" {
		cacheKey = fmt.Sprintf("tests:page:%d:limit:%d", page, limit)
		if cached, err := h.cache.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var resp httpresp.PageResponse[models.Test]
			if json.Unmarshal([]byte(cached), &resp) == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	filter := func(tx *gorm.DB) *gorm.DB {
		q := tx.Model(&models.Test{}).Where("active = ?", true)
		if category != "" {
			q = q.Where("category = ?", category)
		}
		if search != "" {
			q = q.Where("name ILIKE ?", "%"+search+"%")
		}
		return q
	}

	var total int64
	if err := filter(h.db).Count(&total).Error; err != nil {
		zap.L().Error("failed to count tests", zap.Error(err))
		httperr.Internal(c, "internal_error", "Could not load tests")
		return
	}

	var tests []models.Test
	err := filter(h.db).
		Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tests).Error
	if err != nil {
		zap.L().Error("failed to list tests", zap.Error(err))
		httperr.Internal(c, "internal_error", "Could not load tests")
		return
	}

	if cacheKey != "" {
		h.cachePage(c.Request.Context(), cacheKey, tests, page, limit, total)
	}

	httpresp.Page(c, tests, page, limit, total)
}

func (h *TestHandler) cachePage(ctx context.Context, key string, tests []models.Test, page, limit int, total int64) {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	resp := httpresp.PageResponse[models.Test]{
		Data: tests,
		Pagination: httpresp.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, key, payload, catalogCacheTTL).Err(); err != nil {
		zap.L().Debug("catalog cache write failed", zap.Error(err))
	}
}

func (h *TestHandler) Categories(c *gin.Context) {
	httpresp.OK(c, gin.H{"categories": models.TestCategories})
}

// GetByID treats an inactive test the same as a missing one.
func (h *TestHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_test_id", "Invalid test id")
		return
	}

	var test models.Test
	if err := h.db.Where("id = ? AND active = ?", uint(id), true).First(&test).Error; err != nil {
		httperr.NotFound(c, httperr.CodeTestNotFound, "Test not found or not available")
		return
	}

	httpresp.OK(c, gin.H{"test": test})
}

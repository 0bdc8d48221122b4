package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"HandSync/internal/config"
	"HandSync/internal/service"
)

type ParseHandler struct {
	parseService *service.ParseService
	logger       *logrus.Logger
}

func NewParseHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *ParseHandler {
	return &ParseHandler{
		parseService: service.NewParseService(db, logger, cfg),
		logger:       logger,
	}
}

// ParseIncremental 增量解析未处理手牌
// @Summary 解析无 hand_players 关联的手牌
// @Param user query string false "用户名（默认1）"
// @Param limit query int false "最多处理手数（缺省处理全部积压）"
// @Success 200 {object} service.ParseSummary
// @Failure 500 {object} map[string]string
// @Router /parse/incremental [post]
func (h *ParseHandler) ParseIncremental(c *gin.Context) {
	username := c.DefaultQuery("user", "1")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	summary, err := h.parseService.ParseIncremental(c.Request.Context(), username, limit)
	if err != nil {
		h.logger.Errorf("增量解析失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Pending 查询未解析积压
// @Router /parse/pending [get]
func (h *ParseHandler) Pending(c *gin.Context) {
	username := c.DefaultQuery("user", "1")

	pending, err := h.parseService.CountPending(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

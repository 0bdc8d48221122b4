package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"HandSync/internal/config"
	"HandSync/internal/service"
)

type ImportHandler struct {
	importService *service.ImportService
	logger        *logrus.Logger
}

func NewImportHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *ImportHandler {
	return &ImportHandler{
		importService: service.NewImportService(db, logger, cfg),
		logger:        logger,
	}
}

// ImportHands 导入一份牌谱
// @Summary 导入原始牌谱（multipart的file字段或请求体原文）
// @Param user query string false "用户名（默认1）"
// @Param name query string false "来源文件标识（用于方言提示与审计）"
// @Success 200 {object} service.ImportSummary
// @Failure 422 {object} map[string]string
// @Router /import/hands [post]
func (h *ImportHandler) ImportHands(c *gin.Context) {
	username := c.DefaultQuery("user", "1")
	sourceName := c.DefaultQuery("name", "upload.txt")

	content, name, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if name != "" {
		sourceName = name
	}

	summary, err := h.importService.ImportContent(c.Request.Context(), username, sourceName, content)
	if err != nil {
		if errors.Is(err, service.ErrUnrecognizedFormat) {
			// 文件级结构失败：零手产出，编排层据此搬入 failed 目录
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.logger.Errorf("导入%s失败: %v", sourceName, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// readUpload 取上传内容：优先 multipart 的 file 字段，否则读请求体原文
func readUpload(c *gin.Context) ([]byte, string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, "", err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		if err != nil {
			return nil, "", err
		}
		return content, fh.Filename, nil
	}

	content, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, "", err
	}
	return content, "", nil
}

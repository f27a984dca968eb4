package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pathnottaken-go/internal/model"
	"pathnottaken-go/internal/report"
)

// ExportHandler 把分析结果导出为PDF
type ExportHandler struct {
	now func() time.Time
}

// NewExportHandler 创建处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{now: time.Now}
}

// PDF 渲染PDF报告
// POST /api/export/pdf
// Body: SimulationResult
func (h *ExportHandler) PDF(c *gin.Context) {
	logger := zerolog.Ctx(c.Request.Context())

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		respondError(c, model.ErrInvalidPayload)
		return
	}

	result, err := model.ValidateResult(json.RawMessage(raw))
	if err != nil {
		logger.Debug().Err(err).Msg("export body is not a simulation result")
		respondError(c, model.ErrInvalidPayload)
		return
	}

	var buf bytes.Buffer
	if err := report.RenderPDF(&buf, result, report.Options{GeneratedAt: h.now(), Compress: true}); err != nil {
		logger.Error().Err(err).Str("component", "export").Msg("pdf render failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to render report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// Schema 返回请求和结果的JSON Schema
// GET /api/schema
func Schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"request": model.RequestSchema(),
		"result":  model.ResultSchema(),
	})
}

// Health 健康检查
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

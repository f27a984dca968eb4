package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pathnottaken-go/internal/model"
)

// 请求体上限，四个文本字段足够用
const maxBodyBytes = 1 << 20

// Simulator 执行反事实分析
type Simulator interface {
	Simulate(ctx context.Context, req *model.SimulationRequest) (json.RawMessage, error)
}

// SimulateHandler 反事实分析HTTP处理器
type SimulateHandler struct {
	service Simulator
}

// NewSimulateHandler 创建处理器
func NewSimulateHandler(svc Simulator) *SimulateHandler {
	return &SimulateHandler{service: svc}
}

// Simulate 处理分析请求
// POST /api/simulate
// Body: {"decision_context": "...", "chosen_path": "...", "paths_not_taken": "...", "time_horizon": "1 year"}
func (h *SimulateHandler) Simulate(c *gin.Context) {
	logger := zerolog.Ctx(c.Request.Context())

	req, err := decodeRequest(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		logger.Debug().Err(err).Msg("undecodable simulation request")
		respondError(c, model.ErrInvalidPayload)
		return
	}

	payload, err := h.service.Simulate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}

// decodeRequest 请求体必须恰好是一个JSON对象，后面不能跟其他内容
func decodeRequest(r io.Reader) (*model.SimulationRequest, error) {
	dec := json.NewDecoder(r)
	var req model.SimulationRequest
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after request object: %v", err)
	}
	return &req, nil
}

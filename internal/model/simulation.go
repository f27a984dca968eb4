package model

import (
	"errors"
)

// ErrInvalidPayload 请求缺少必填字段或无法解析
var ErrInvalidPayload = errors.New("invalid request payload")

// TimeHorizon 反事实推演的时间范围
type TimeHorizon string

const (
	HorizonSixMonths TimeHorizon = "6 months"
	HorizonOneYear   TimeHorizon = "1 year"
	HorizonFiveYears TimeHorizon = "5 years"
)

// AllTimeHorizons 前端可选的时间范围（顺序与表单一致）
var AllTimeHorizons = []TimeHorizon{HorizonSixMonths, HorizonOneYear, HorizonFiveYears}

// Valid 是否为已知的时间范围
func (h TimeHorizon) Valid() bool {
	for _, known := range AllTimeHorizons {
		if h == known {
			return true
		}
	}
	return false
}

// SimulationRequest 前端提交的决策描述
type SimulationRequest struct {
	DecisionContext string      `json:"decision_context" jsonschema:"minLength=1"`
	ChosenPath      string      `json:"chosen_path" jsonschema:"minLength=1"`
	PathsNotTaken   string      `json:"paths_not_taken" jsonschema:"minLength=1"`
	TimeHorizon     TimeHorizon `json:"time_horizon" jsonschema:"enum=6 months,enum=1 year,enum=5 years"`
}

// Validate 只检查四个字段是否存在，不做trim或类型转换
func (r *SimulationRequest) Validate() error {
	if r == nil || r.DecisionContext == "" || r.ChosenPath == "" || r.PathsNotTaken == "" || r.TimeHorizon == "" {
		return ErrInvalidPayload
	}
	return nil
}

// AlternateTimeline 一条未选择路径的推演叙述
type AlternateTimeline struct {
	PathName  string `json:"path_name"`
	Narrative string `json:"narrative"`
}

// SimulationResult 模型返回的反事实分析
type SimulationResult struct {
	AlternateTimelines     []AlternateTimeline `json:"alternate_timelines"`
	AvoidedTradeoffs       []string            `json:"avoided_tradeoffs"`
	HiddenCosts            []string            `json:"hidden_costs"`
	IrreversibilitySignals []string            `json:"irreversibility_signals"`
	ReflectionSummary      string              `json:"reflection_summary"`
}

// ErrorResponse 统一的错误响应体
type ErrorResponse struct {
	Error string `json:"error"`
}

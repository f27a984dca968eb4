package model

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// resultKeys SimulationResult 的必填字段
var resultKeys = []string{
	"alternate_timelines",
	"avoided_tradeoffs",
	"hidden_costs",
	"irreversibility_signals",
	"reflection_summary",
}

var reflector = &jsonschema.Reflector{DoNotReference: true, ExpandedStruct: true}

// RequestSchema SimulationRequest 的JSON Schema
func RequestSchema() *jsonschema.Schema {
	return reflector.Reflect(&SimulationRequest{})
}

// ResultSchema SimulationResult 的JSON Schema
func ResultSchema() *jsonschema.Schema {
	return reflector.Reflect(&SimulationResult{})
}

// ValidateResult 严格模式下校验模型输出的结构
// 必须是对象，五个字段都存在且不为null，类型正确
func ValidateResult(raw json.RawMessage) (*SimulationResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("result is not a JSON object: %w", err)
	}

	for _, key := range resultKeys {
		v, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("result is missing %q", key)
		}
		if string(v) == "null" {
			return nil, fmt.Errorf("result field %q is null", key)
		}
	}

	var result SimulationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("result has wrong field types: %w", err)
	}
	return &result, nil
}

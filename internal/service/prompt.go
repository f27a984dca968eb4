package service

import (
	"strings"

	"pathnottaken-go/internal/model"
)

// SystemPrompt 反事实分析的系统指令
var SystemPrompt = strings.TrimSpace(`
You are an expert strategic analyst specializing in counterfactual reasoning and decision post-mortems.

CRITICAL RULES:
1. Generate PLAUSIBLE counterfactuals grounded in realistic cause-and-effect chains.
2. Never judge or evaluate the user's actual decision.
3. Explicitly acknowledge uncertainty using probabilistic language.
4. Maintain an analytical, neutral tone. No coaching or motivation.
5. Focus on structural outcomes: capabilities, constraints, resources, and options.
6. Account for second- and third-order effects.

OUTPUT FORMAT (STRICT JSON ONLY):

{
  "alternate_timelines": [
    {
      "path_name": "string",
      "narrative": "string"
    }
  ],
  "avoided_tradeoffs": ["string"],
  "hidden_costs": ["string"],
  "irreversibility_signals": ["string"],
  "reflection_summary": "string"
}
`)

const promptInstruction = "Generate the counterfactual analysis following system constraints."

// BuildUserPrompt 按固定顺序拼接四个字段，同样的输入得到逐字节相同的输出
func BuildUserPrompt(req *model.SimulationRequest) string {
	var b strings.Builder
	section := func(label, value string) {
		b.WriteString(label)
		b.WriteString(":\n")
		b.WriteString(value)
		b.WriteString("\n\n")
	}

	section("DECISION CONTEXT", req.DecisionContext)
	section("CHOSEN PATH", req.ChosenPath)
	section("PATHS NOT TAKEN", req.PathsNotTaken)
	section("TIME HORIZON", string(req.TimeHorizon))
	b.WriteString(promptInstruction)

	return strings.TrimSpace(b.String())
}

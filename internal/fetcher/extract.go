package fetcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

// 第一个 ``` 或 ```json 代码块
var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON 从LLM响应中提取JSON（处理markdown代码块）
// 有代码块时只解析第一个代码块的内容，否则解析整段文本
// 不校验结构，返回紧凑格式的原始JSON
func ExtractJSON(text string) (json.RawMessage, error) {
	payload := text
	if matches := fencePattern.FindStringSubmatch(text); len(matches) > 1 {
		payload = matches[1]
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(payload)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModelOutput, err)
	}
	return json.RawMessage(buf.Bytes()), nil
}

package partner

import (
	"bytes"
	"encoding/json"
)

// Envelope — конверт ответа партнёра.
type Envelope[T any] struct {
	Data      T        `json:"data"`
	Message   string   `json:"message,omitempty"`
	Success   bool     `json:"success"`
	Timestamp string   `json:"timestamp,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// unwrapEnvelope возвращает содержимое data, если тело — конверт
// (объект, у которого кроме data есть только служебные поля
// message, success, timestamp, errors),
// иначе тело целиком. Пагинированные ответы {data, pagination} не трогаются.
func unwrapEnvelope(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return body
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return body
	}

	data, ok := obj["data"]
	if !ok || isNull(data) {
		return body
	}

	for k := range obj {
		switch k {
		case "data", "message", "success", "timestamp", "errors":
		default:
			return body
		}
	}

	return data
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

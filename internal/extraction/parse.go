package extraction

import (
	"encoding/json"
	"strings"

	"docsense/pkg/utils"
)

const snippetLen = 200

// parseObject locates the outermost JSON object in raw model output and
// decodes it into a generic map. Anything else is an ExtractionParseError.
func parseObject(raw string) (map[string]interface{}, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, &utils.ExtractionParseError{
			Reason:  "no JSON object in response",
			Snippet: utils.Truncate(strings.TrimSpace(raw), snippetLen),
		}
	}

	body := raw[start : end+1]
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return nil, &utils.ExtractionParseError{
			Reason:  "invalid JSON",
			Snippet: utils.Truncate(body, snippetLen),
			Cause:   err,
		}
	}
	if obj == nil {
		obj = map[string]interface{}{}
	}
	return obj, nil
}

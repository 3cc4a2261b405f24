package extraction

import (
	"strconv"
	"strings"
	"unicode"

	"docsense/pkg/models"
)

var wrapperKeys = []string{"data", "result", "document", "cv", "resume", "jd", "job", "jobDescription"}

type alias struct{ from, to string }

// topLevelAliases are applied in order; when two aliases of one key are both
// present, the earlier one wins
var topLevelAliases = map[models.DocumentType][]alias{
	models.DocumentTypeCV: {
		{"contact", "personalInfo"},
		{"contactInfo", "personalInfo"},
		{"workExperience", "experience"},
		{"employment", "experience"},
		{"profile", "summary"},
	},
	models.DocumentTypeJD: {
		{"title", "jobTitle"},
		{"position", "jobTitle"},
		{"companyName", "company"},
		{"description", "summary"},
	},
}

// contact keys some models put at the top of a CV instead of under personalInfo
var hoistedContactKeys = []string{"name", "email", "phone", "location", "linkedin", "github", "portfolio"}

// repair coerces near-miss model output into the expected shape. It never
// fails; whatever it cannot fix is left for the schema check to reject.
func repair(docType models.DocumentType, obj map[string]interface{}) map[string]interface{} {
	obj = unwrap(obj)
	obj, _ = camelKeys(dropNulls(obj)).(map[string]interface{})
	if obj == nil {
		obj = map[string]interface{}{}
	}

	for _, a := range topLevelAliases[docType] {
		if v, ok := obj[a.from]; ok {
			if _, exists := obj[a.to]; !exists {
				obj[a.to] = v
			}
			delete(obj, a.from)
		}
	}

	switch docType {
	case models.DocumentTypeCV:
		hoistContact(obj)
	case models.DocumentTypeJD:
		if req, ok := obj["requirements"]; ok {
			if _, isObj := req.(map[string]interface{}); !isObj {
				obj["requirements"] = map[string]interface{}{"required": req}
			}
		}
	}

	if skills, ok := obj["skills"]; ok {
		switch v := skills.(type) {
		case []interface{}:
			obj["skills"] = map[string]interface{}{"technical": v}
		case string:
			obj["skills"] = map[string]interface{}{"technical": splitList(v)}
		}
	}

	return coerce(obj, shapeFor(docType)).(map[string]interface{})
}

func unwrap(obj map[string]interface{}) map[string]interface{} {
	if len(obj) != 1 {
		return obj
	}
	for _, k := range wrapperKeys {
		if inner, ok := obj[k].(map[string]interface{}); ok {
			return inner
		}
	}
	return obj
}

func hoistContact(obj map[string]interface{}) {
	info, _ := obj["personalInfo"].(map[string]interface{})
	if info == nil {
		info = map[string]interface{}{}
	}
	moved := false
	for _, k := range hoistedContactKeys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		if _, exists := info[k]; !exists {
			info[k] = v
		}
		delete(obj, k)
		moved = true
	}
	if moved {
		obj["personalInfo"] = info
	}
}

// coerce walks v against f and fixes what it can: scalars become one
// element lists, numbers become strings, numeric strings become numbers.
func coerce(v interface{}, f field) interface{} {
	switch f.kind {
	case kindString:
		switch x := v.(type) {
		case float64:
			return strconv.FormatFloat(x, 'f', -1, 64)
		case []interface{}:
			parts := toStrings(x)
			return strings.Join(parts, ", ")
		}
		return v

	case kindStrings:
		switch x := v.(type) {
		case string:
			return []interface{}{x}
		case float64:
			return []interface{}{strconv.FormatFloat(x, 'f', -1, 64)}
		case []interface{}:
			items := toStrings(x)
			out := make([]interface{}, len(items))
			for i, s := range items {
				out[i] = s
			}
			return out
		}
		return v

	case kindNumber, kindInt:
		n, ok := v.(float64)
		if s, isStr := v.(string); isStr {
			if n, ok = parseAmount(s); !ok {
				return nil
			}
		} else if !ok {
			return v
		}
		if f.kind == kindInt {
			return float64(int(n))
		}
		return n

	case kindObject:
		m, ok := v.(map[string]interface{})
		if !ok {
			return v
		}
		for k, child := range f.fields {
			if val, present := m[k]; present {
				if fixed := coerce(val, child); fixed == nil {
					delete(m, k)
				} else {
					m[k] = fixed
				}
			}
		}
		return m

	case kindObjects:
		var list []interface{}
		switch x := v.(type) {
		case map[string]interface{}:
			list = []interface{}{x}
		case []interface{}:
			list = x
		default:
			return v
		}
		out := make([]interface{}, 0, len(list))
		for _, item := range list {
			if _, ok := item.(map[string]interface{}); !ok {
				// keep it so the schema check reports the shape mismatch
				out = append(out, item)
				continue
			}
			out = append(out, coerce(item, object(f.fields)))
		}
		return out
	}
	return v
}

func toStrings(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch x := it.(type) {
		case string:
			out = append(out, x)
		case float64:
			out = append(out, strconv.FormatFloat(x, 'f', -1, 64))
		case map[string]interface{}:
			// {"name": "Go"} or {"text": "..."} style items
			for _, k := range []string{"name", "text", "value", "title", "description"} {
				if s, ok := x[k].(string); ok {
					out = append(out, s)
					break
				}
			}
		}
	}
	return out
}

// parseAmount reads "120000", "$120,000", "120k" and "1.5M"
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != 'k' && r != 'm'
	})
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	mult := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		mult, s = 1000, strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		mult, s = 1000000, strings.TrimSuffix(s, "m")
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n * mult, true
}

func splitList(s string) []interface{} {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == '\n' })
	out := make([]interface{}, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func dropNulls(v interface{}) interface{} {
	switch x := v.(type) {
	case map[string]interface{}:
		for k, val := range x {
			if val == nil {
				delete(x, k)
				continue
			}
			x[k] = dropNulls(val)
		}
		return x
	case []interface{}:
		out := x[:0]
		for _, val := range x {
			if val != nil {
				out = append(out, dropNulls(val))
			}
		}
		return out
	}
	return v
}

// camelKeys rewrites snake_case keys: job_title -> jobTitle
func camelKeys(v interface{}) interface{} {
	switch x := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, val := range x {
			key := snakeToCamel(k)
			if _, exists := out[key]; exists && key != k {
				continue
			}
			out[key] = camelKeys(val)
		}
		return out
	case []interface{}:
		for i := range x {
			x[i] = camelKeys(x[i])
		}
		return x
	}
	return v
}

func snakeToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	parts := strings.Split(strings.Trim(s, "_"), "_")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			b.WriteString(strings.ToLower(p))
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + strings.ToLower(p[1:]))
	}
	return b.String()
}

package content

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// AuditList is an audit bullet list. Rows written by different scoring runs
// store it as a bare JSON array, as {"items":[...]}, or as a JSON string
// holding either; Scan resolves all of them to one []string.
type AuditList []string

func (a *AuditList) Scan(value interface{}) error {
	if value == nil {
		*a = AuditList{}
		return nil
	}
	var raw datatypes.JSON
	if err := raw.Scan(value); err != nil {
		return err
	}
	*a = ParseAuditList(string(raw))
	return nil
}

func (a AuditList) Value() (driver.Value, error) {
	b, err := json.Marshal(a.orEmpty())
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b).Value()
}

func (a AuditList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(a.orEmpty()))
}

func (a *AuditList) UnmarshalJSON(b []byte) error {
	*a = ParseAuditList(string(b))
	return nil
}

func (AuditList) GormDataType() string { return "json" }

func (AuditList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return datatypes.JSON{}.GormDBDataType(db, field)
}

func (a AuditList) orEmpty() AuditList {
	if a == nil {
		return AuditList{}
	}
	return a
}

const maxAuditNesting = 3

// ParseAuditList normalises a stored audit value. Plain text that is not
// JSON becomes a one element list; blank or null becomes empty.
func ParseAuditList(raw string) AuditList {
	return parseAudit(raw, 0)
}

func parseAudit(raw string, depth int) AuditList {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" {
		return AuditList{}
	}
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return AuditList{s}
	}
	return fromDecoded(v, s, depth)
}

func fromDecoded(v interface{}, raw string, depth int) AuditList {
	switch t := v.(type) {
	case nil:
		return AuditList{}
	case []interface{}:
		return fromSlice(t)
	case map[string]interface{}:
		if items, ok := t["items"].([]interface{}); ok {
			return fromSlice(items)
		}
		return AuditList{raw}
	case string:
		if depth >= maxAuditNesting {
			return nonBlank(t)
		}
		return parseAudit(t, depth+1)
	default:
		return AuditList{stringify(t)}
	}
}

func fromSlice(items []interface{}) AuditList {
	out := make(AuditList, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		s := strings.TrimSpace(stringify(it))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64, bool:
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func nonBlank(s string) AuditList {
	if strings.TrimSpace(s) == "" {
		return AuditList{}
	}
	return AuditList{strings.TrimSpace(s)}
}

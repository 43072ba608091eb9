package services

import (
	"encoding/json"
	"strconv"
)

// fieldString renders a present JSON value as text. Strings pass through,
// numbers use their shortest form and anything else keeps its JSON encoding.
// Absent values (null, "", 0, false) report ok == false.
func fieldString(v interface{}) (string, bool) {
	if isAbsent(v) {
		return "", false
	}

	switch value := v.(type) {
	case string:
		return value, true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case json.Number:
		return value.String(), true
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", false
		}
		return string(encoded), true
	}
}

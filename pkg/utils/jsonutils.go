package utils

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// FormatJSON formats a value as JSON with indentation
func FormatJSON(data interface{}) (string, error) {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting JSON: %w", err)
	}
	return string(bytes), nil
}

// PrettyJSONString re-indents a JSON document held in a string. Input that
// is not valid JSON is returned unchanged.
func PrettyJSONString(doc string) string {
	var v interface{}
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		return doc
	}
	out, err := FormatJSON(v)
	if err != nil {
		return doc
	}
	return out
}

// DecodePolicyDocument URL-decodes an IAM policy document and re-indents it
func DecodePolicyDocument(doc string) string {
	decoded, err := url.QueryUnescape(doc)
	if err != nil {
		decoded = doc
	}
	return PrettyJSONString(decoded)
}

package validation

import "strings"

// Policy is the content deny-list, split into named categories because the
// two lists serve different intents: security phrases guard the LLM prompt
// against abuse, topic phrases keep out unsupported project subjects.
type Policy struct {
	categories map[string][]string
}

func NewPolicy(security, topics []string) Policy {
	return Policy{categories: map[string][]string{
		"security": lowerAll(security),
		"topics":   lowerAll(topics),
	}}
}

// Violates walks every string value in the payload, descending through
// nested maps and lists, and reports whether any deny-listed phrase occurs
// as a case-insensitive substring.
func (p Policy) Violates(value interface{}) bool {
	switch v := value.(type) {
	case map[string]interface{}:
		for _, item := range v {
			if p.Violates(item) {
				return true
			}
		}
	case []interface{}:
		for _, item := range v {
			if p.Violates(item) {
				return true
			}
		}
	case string:
		lower := strings.ToLower(v)
		for _, phrases := range p.categories {
			for _, phrase := range phrases {
				if phrase != "" && strings.Contains(lower, phrase) {
					return true
				}
			}
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}

package wcbplot

import (
	"fmt"
	"strings"
)

// LabelFlags collects repeated token=label flag values into label rules.
type LabelFlags struct {
	Rules []LabelRule
}

func (f *LabelFlags) Set(valueStr string) error {
	token, label, ok := strings.Cut(valueStr, "=")
	token = strings.TrimSpace(token)
	label = strings.TrimSpace(label)
	if !ok || token == "" || label == "" {
		return fmt.Errorf("expected token=label, got %q", valueStr)
	}

	f.Rules = append(f.Rules, LabelRule{Token: token, Label: label})
	return nil
}

func (f *LabelFlags) String() string {
	parts := make([]string, len(f.Rules))
	for i, r := range f.Rules {
		parts[i] = r.Token + "=" + r.Label
	}
	return strings.Join(parts, ",")
}

func (f *LabelFlags) Type() string {
	return "token=label"
}

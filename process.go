package wcbplot

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrAmbiguousToken is returned when a label table could match a single
// file name through more than one token.
var ErrAmbiguousToken = errors.New("ambiguous process token")

// SignalLabel is the label of the signal process.
const SignalLabel = "Wcb"

// LabelRule maps a file-name token to a display label.
type LabelRule struct {
	Token string `toml:"token" yaml:"token"`
	Label string `toml:"label" yaml:"label"`
}

// DefaultLabelRules is the analysis process table, in match order.
func DefaultLabelRules() []LabelRule {
	return []LabelRule{
		{Token: "Wcb", Label: SignalLabel},
		{Token: "ttLF", Label: "tt+LF"},
		{Token: "ttbb", Label: "tt+bb"},
		{Token: "ttbj", Label: "tt+bj"},
		{Token: "ttcc", Label: "tt+cc"},
		{Token: "ttcj", Label: "tt+cj"},
		{Token: "diboson", Label: "VV+tWZ"},
		{Token: "singletop", Label: "single t"},
		{Token: "ttH", Label: "ttH+ttV"},
		{Token: "wjets", Label: "W+jets"},
	}
}

// Resolver assigns process labels to input file names. Tokens are matched
// case-insensitively, in order.
type Resolver struct {
	rules []LabelRule
}

// NewResolver checks that no token contains another, so that the first
// match is the only match.
func NewResolver(rules ...LabelRule) (*Resolver, error) {
	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		tok := strings.ToLower(r.Token)
		if tok == "" {
			return nil, errors.Errorf("label rule %d: empty token", i)
		}
		if r.Label == "" {
			return nil, errors.Errorf("label rule %q: empty label", r.Token)
		}
		if seen[tok] {
			return nil, errors.Wrapf(ErrAmbiguousToken, "duplicate token %q", r.Token)
		}
		seen[tok] = true
		for _, o := range rules[:i] {
			otok := strings.ToLower(o.Token)
			if strings.Contains(tok, otok) || strings.Contains(otok, tok) {
				return nil, errors.Wrapf(ErrAmbiguousToken, "%q and %q overlap", o.Token, r.Token)
			}
		}
	}
	return &Resolver{rules: append([]LabelRule(nil), rules...)}, nil
}

// Rules returns a copy of the label table.
func (r *Resolver) Rules() []LabelRule {
	return append([]LabelRule(nil), r.rules...)
}

// Clean strips the directory, the .root suffix and the h_ prefix from path.
func Clean(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".root")
	return strings.TrimPrefix(name, "h_")
}

// Resolve returns the label of the first token found in the cleaned file
// name. If nothing matches, the cleaned name is returned with ok false.
func (r *Resolver) Resolve(path string) (label string, ok bool) {
	name := Clean(path)
	lower := strings.ToLower(name)
	for _, rule := range r.rules {
		if strings.Contains(lower, strings.ToLower(rule.Token)) {
			return rule.Label, true
		}
	}
	return name, false
}

// Beautify returns the label registered for an exact token.
func (r *Resolver) Beautify(token string) (string, error) {
	for _, rule := range r.rules {
		if rule.Token == token {
			return rule.Label, nil
		}
	}
	return "", errors.Errorf("unknown process %q", token)
}

// IsData reports whether path holds observed data. Like process tokens,
// the match ignores case.
func IsData(path string) bool {
	return strings.Contains(strings.ToLower(filepath.Base(path)), "data")
}

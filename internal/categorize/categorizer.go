// Package categorize assigns a materialized category path to a product by
// weighted keyword scoring against a fixed rule table. The function is pure:
// identical input text always yields identical output. Path-to-id resolution
// against the category store happens in the ingest service, so a rule path
// that is ahead of the seeded tree still gets recorded.
package categorize

import (
	"regexp"
	"strings"
)

const (
	wholeWordPoints = 4
	substringPoints = 1
)

// Input is the text material one product offers for categorization
type Input struct {
	Title        string
	CategoryText string
	Description  string
	Brand        string
}

// Match is the categorization verdict. An empty Path means uncategorized;
// Legacy is always set (flat fallback bucket, "other" at worst).
type Match struct {
	Path   []string
	Legacy string
}

// Rule scores one candidate category path
type Rule struct {
	Path     []string `yaml:"path"`
	Keywords []string `yaml:"keywords"`
	Weight   int      `yaml:"weight"`
}

type compiledKeyword struct {
	text string
	word *regexp.Regexp
}

type compiledRule struct {
	rule     Rule
	keywords []compiledKeyword
}

// Categorizer matches product text against its rule table
type Categorizer struct {
	rules []compiledRule
}

var (
	quotesRe   = regexp.MustCompile(`['"]`)
	nonWordRe  = regexp.MustCompile(`(?i)[^a-z0-9а-я\s-]`)
	multiWSRe  = regexp.MustCompile(`\s+`)
	metaCharRe = regexp.MustCompile(`[.*+?^${}()|[\]\\]`)
)

// New compiles a rule table. Rule order matters: a later rule needs a
// strictly greater score to replace an earlier one.
func New(rules []Rule) *Categorizer {
	c := &Categorizer{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		cr := compiledRule{rule: r}
		for _, kw := range r.Keywords {
			k := normText(kw)
			if k == "" {
				continue
			}
			quoted := metaCharRe.ReplaceAllString(k, `\$0`)
			cr.keywords = append(cr.keywords, compiledKeyword{
				text: k,
				word: regexp.MustCompile(`(^|\s)` + quoted + `(\s|$)`),
			})
		}
		c.rules = append(c.rules, cr)
	}
	return c
}

// Categorize scores every rule against the normalized text blob and returns
// the best strictly-scoring match, or the keyword-free legacy guess when no
// rule scores at all.
func (c *Categorizer) Categorize(in Input) Match {
	text := normText(strings.Join(nonEmpty(in.Title, in.CategoryText, in.Description, in.Brand), " "))

	var best *compiledRule
	bestScore := 0
	for i := range c.rules {
		hits := c.rules[i].hitScore(text)
		if hits == 0 {
			continue
		}
		score := hits + c.rules[i].rule.Weight
		if score > bestScore {
			best = &c.rules[i]
			bestScore = score
		}
	}

	if best == nil {
		return Match{Path: []string{}, Legacy: guessLegacy(in.CategoryText + " " + in.Title)}
	}

	return Match{Path: best.rule.Path, Legacy: legacyFromRoot(best.rule.Path[0])}
}

// hitScore adds 4 points per whole-word keyword match and 1 more per raw
// substring occurrence.
func (r *compiledRule) hitScore(text string) int {
	score := 0
	for _, kw := range r.keywords {
		if kw.word.MatchString(text) {
			score += wholeWordPoints
		}
		if strings.Contains(text, kw.text) {
			score += substringPoints
		}
	}
	return score
}

// normText lowercases, drops quotes and punctuation, and collapses whitespace
func normText(s string) string {
	s = strings.ToLower(s)
	s = quotesRe.ReplaceAllString(s, " ")
	s = nonWordRe.ReplaceAllString(s, " ")
	s = multiWSRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func legacyFromRoot(root string) string {
	switch root {
	case "home":
		return "home"
	case "garden":
		return "garden"
	default:
		return "other"
	}
}

// legacy root-bucket tokens, checked when no rule matched at all
var legacyBuckets = []struct {
	bucket string
	tokens []string
}{
	{"garden", []string{"градин", "garden", "полив", "маркуч", "солар", "външ"}},
	{"kitchen", []string{"кухн", "kitchen"}},
	{"tools", []string{"инструмент", "tool"}},
	{"home", []string{"органайзер", "storage", "рафт", "shelf", "дом", "home", "декор", "decor", "мебел"}},
}

func guessLegacy(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, b := range legacyBuckets {
		for _, tok := range b.tokens {
			if strings.Contains(t, tok) {
				return b.bucket
			}
		}
	}
	return "other"
}

package models

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// MatchMode selects how a required callback needle is compared against the
// tokens a keyboard exposes.
type MatchMode string

const (
	MatchExact     MatchMode = "exact"
	MatchSubstring MatchMode = "substring"
	MatchPrefix    MatchMode = "prefix"
	MatchSuffix    MatchMode = "suffix"
	MatchRegex     MatchMode = "regex"
)

// Combinator combines the per-needle results of a rule.
type Combinator string

const (
	// CombineAll requires every needle to be satisfied, each possibly by
	// a different token.
	CombineAll Combinator = "all"
	// CombineAny requires at least one needle to be satisfied.
	CombineAny Combinator = "any"
)

// CallbackRule describes the callback tokens a stage's keyboard must
// expose for the conversation's state machine to keep working. Rules are
// validation-time parameters, never persisted.
type CallbackRule struct {
	Needles       []string
	Combinator    Combinator
	MatchMode     MatchMode
	CaseSensitive bool
}

func (r CallbackRule) String() string {
	return fmt.Sprintf("callbacks %v (combinator=%s, mode=%s, case_sensitive=%t)",
		r.Needles, r.Combinator, r.MatchMode, r.CaseSensitive)
}

// exactCallbacks is the rule shape used by every message-group rule table:
// exact, case-sensitive, all needles required.
func exactCallbacks(needles ...string) CallbackRule {
	return CallbackRule{
		Needles:       needles,
		Combinator:    CombineAll,
		MatchMode:     MatchExact,
		CaseSensitive: true,
	}
}

// RequireCallbacks verifies that msg's keyboard exposes callback tokens
// satisfying rule. A nil msg passes vacuously: only populated fields are
// contract-checked. A populated msg exposing no tokens at all fails with
// ErrMissingKeyboard; an unsatisfied rule fails with
// ErrUnsatisfiedCallbackContract, reporting the exposed tokens, the
// needles, and the rule parameters.
func RequireCallbacks(msg *MessageItem, rule CallbackRule) error {
	if msg == nil {
		return nil
	}
	tokens := msg.Callbacks()
	if len(tokens) == 0 {
		return fmt.Errorf("%w: requires %s", ErrMissingKeyboard, rule)
	}
	matched := 0
	for _, needle := range rule.Needles {
		ok, err := matchNeedle(needle, tokens, rule)
		if err != nil {
			return err
		}
		if ok {
			matched++
		}
	}
	satisfied := matched == len(rule.Needles)
	if rule.Combinator == CombineAny {
		satisfied = matched > 0
	}
	if !satisfied {
		return fmt.Errorf("%w: keyboard exposes %v but requires %s",
			ErrUnsatisfiedCallbackContract, tokens, rule)
	}
	return nil
}

func matchNeedle(needle string, tokens []string, rule CallbackRule) (bool, error) {
	if rule.MatchMode == MatchRegex {
		pattern := needle
		if !rule.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("invalid callback pattern %q: %v", needle, err)
		}
		for _, tok := range tokens {
			if re.MatchString(tok) {
				return true, nil
			}
		}
		return false, nil
	}

	if !rule.CaseSensitive {
		needle = strings.ToLower(needle)
	}
	for _, tok := range tokens {
		if !rule.CaseSensitive {
			tok = strings.ToLower(tok)
		}
		var ok bool
		switch rule.MatchMode {
		case MatchSubstring:
			ok = strings.Contains(tok, needle)
		case MatchPrefix:
			ok = strings.HasPrefix(tok, needle)
		case MatchSuffix:
			ok = strings.HasSuffix(tok, needle)
		default:
			ok = tok == needle
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// validateGroup runs the structural check on every populated field, then
// the group's contract rules. Each field's contract runs exactly once per
// validation pass. The group is rejected as a whole on the first violation.
func validateGroup(group string, fields map[string]*MessageItem, rules map[string]CallbackRule) error {
	for _, name := range sortedFieldNames(fields) {
		if msg := fields[name]; msg != nil {
			if err := msg.Validate(); err != nil {
				return fmt.Errorf("%s.%s: %w", group, name, err)
			}
		}
	}
	ruleNames := make([]string, 0, len(rules))
	for name := range rules {
		ruleNames = append(ruleNames, name)
	}
	sort.Strings(ruleNames)
	for _, name := range ruleNames {
		if err := RequireCallbacks(fields[name], rules[name]); err != nil {
			return fmt.Errorf("%s.%s: %w", group, name, err)
		}
	}
	return nil
}

func sortedFieldNames(fields map[string]*MessageItem) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package teams

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NormalizationRule is one number-normalization rule of a dial plan, in its
// structured form. Dial plan records carry rules as serialized blobs (see
// ParseNormalizationRule for the grammar); this type is what create and
// "set rules" calls send to the remote service.
type NormalizationRule struct {
	Name                string `json:"Name" validate:"required"`
	Description         string `json:"Description,omitempty"`
	Pattern             string `json:"Pattern"`
	Translation         string `json:"Translation"`
	IsInternalExtension bool   `json:"IsInternalExtension"`
}

// String renders the rule in its blob form:
//
//	Name=<v>;Pattern=<v>;Translation=<v>;Description=<v>;IsInternalExtension=<True|False>
func (r NormalizationRule) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name=%s;", r.Name)
	fmt.Fprintf(&b, "Pattern=%s;", r.Pattern)
	fmt.Fprintf(&b, "Translation=%s;", r.Translation)
	fmt.Fprintf(&b, "Description=%s;", r.Description)
	if r.IsInternalExtension {
		b.WriteString("IsInternalExtension=True")
	} else {
		b.WriteString("IsInternalExtension=False")
	}
	return b.String()
}

// RuleParseError reports a normalization-rule blob that could not be parsed.
// Field names the offending field; a rule is never returned with silently
// missing fields.
type RuleParseError struct {
	Field  string
	Reason string
	Blob   string
}

func (e *RuleParseError) Error() string {
	return fmt.Sprintf("normalization rule %s: %s in %q", e.Field, e.Reason, e.Blob)
}

// Blob field grammar: Key=Value pairs separated by ";", values run to the
// next ";" or to end of string for the final field. Fields may appear in any
// order; all five must be present.
var (
	reRuleName        = regexp.MustCompile(`(?:^|;)Name=([^;]*)`)
	reRulePattern     = regexp.MustCompile(`(?:^|;)Pattern=([^;]*)`)
	reRuleTranslation = regexp.MustCompile(`(?:^|;)Translation=([^;]*)`)
	reRuleDescription = regexp.MustCompile(`(?:^|;)Description=([^;]*)`)
	reRuleInternalExt = regexp.MustCompile(`(?:^|;)IsInternalExtension=([^;]*)`)
)

// ParseNormalizationRule extracts the five rule fields from a blob.
// Returns a *RuleParseError when a field is absent or the boolean is
// malformed.
func ParseNormalizationRule(blob string) (NormalizationRule, error) {
	var rule NormalizationRule

	fields := []struct {
		name string
		re   *regexp.Regexp
		dst  *string
	}{
		{"Name", reRuleName, &rule.Name},
		{"Pattern", reRulePattern, &rule.Pattern},
		{"Translation", reRuleTranslation, &rule.Translation},
		{"Description", reRuleDescription, &rule.Description},
	}
	for _, f := range fields {
		m := f.re.FindStringSubmatch(blob)
		if m == nil {
			return NormalizationRule{}, &RuleParseError{Field: f.name, Reason: "field missing", Blob: blob}
		}
		*f.dst = m[1]
	}

	m := reRuleInternalExt.FindStringSubmatch(blob)
	if m == nil {
		return NormalizationRule{}, &RuleParseError{Field: "IsInternalExtension", Reason: "field missing", Blob: blob}
	}
	v, err := strconv.ParseBool(m[1])
	if err != nil {
		return NormalizationRule{}, &RuleParseError{Field: "IsInternalExtension", Reason: "not a boolean", Blob: blob}
	}
	rule.IsInternalExtension = v

	return rule, nil
}

// ParseNormalizationRules parses every blob of a dial plan record. The first
// bad blob fails the whole list; a partially parsed rule set is never
// attached to a plan.
func ParseNormalizationRules(blobs []string) ([]NormalizationRule, error) {
	rules := make([]NormalizationRule, 0, len(blobs))
	for _, blob := range blobs {
		rule, err := ParseNormalizationRule(blob)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

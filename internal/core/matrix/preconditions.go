package matrix

import (
	"strconv"
	"strings"

	"github.com/auditgrid/auditgrid/internal/core/assessment"
	"github.com/auditgrid/auditgrid/internal/core/attribute"
)

// Per-option requirement bits carried by multi_choice_mandatory. A code is
// any combination; "evidence" is satisfied by either evidence kind, "url" by
// url-kind evidence only.
const (
	requireComment  = 1
	requireEvidence = 2
	requireURL      = 4
)

// failedPreconditions reports the unmet completion requirements for a
// recorded answer, in fixed comment, evidence, url order. Nil means nothing
// was required or everything required is present. Option lists and codes are
// zip-aligned; a selected option past the end of the code list, an unknown
// option, or an undecodable code carries no requirement.
func failedPreconditions(def *attribute.Definition, value string, flags assessment.ArtifactFlags) []string {
	if value == "" {
		return nil
	}
	if def.MultiChoiceOptions == nil || *def.MultiChoiceOptions == "" {
		return nil
	}
	if def.MultiChoiceMandatory == nil || *def.MultiChoiceMandatory == "" {
		return nil
	}

	options := strings.Split(*def.MultiChoiceOptions, ",")
	codes := strings.Split(*def.MultiChoiceMandatory, ",")

	selected := []string{value}
	if def.AttributeType == attribute.TypeMultiselect {
		selected = strings.Split(value, ",")
	}

	mask := 0
	for _, sel := range selected {
		idx := optionIndex(options, sel)
		if idx < 0 || idx >= len(codes) {
			continue
		}
		code, err := strconv.Atoi(strings.TrimSpace(codes[idx]))
		if err != nil {
			continue
		}
		mask |= code
	}

	var failed []string
	if mask&requireComment != 0 && !flags.HasComment {
		failed = append(failed, "comment")
	}
	if mask&requireEvidence != 0 && !flags.HasEvidence {
		failed = append(failed, "evidence")
	}
	if mask&requireURL != 0 && !flags.HasURL {
		failed = append(failed, "url")
	}
	return failed
}

func optionIndex(options []string, value string) int {
	for i, opt := range options {
		if opt == value {
			return i
		}
	}
	return -1
}

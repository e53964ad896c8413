package handlers

import (
	"strings"
	"unicode/utf8"

	"practicehub/internal/store"
)

// Validation limits for practice and comment fields.
const (
	maxTitleLen      = 300
	maxBodyFieldLen  = 20_000
	maxTagLen        = 60
	maxTagCount      = 20
	maxIndustryCount = 20
	maxAttachments   = 10
	maxCommentLen    = 5_000
	maxNotesLen      = 2_000
)

// validatePracticeInput checks practice form inputs and returns the first
// error found. Required-field emptiness is re-checked by the store; the
// limits here exist only at the API boundary.
func validatePracticeInput(in *store.PracticeInput) string {
	if strings.TrimSpace(in.Title) == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	if strings.TrimSpace(in.ProblemStatement) == "" {
		return "problem_statement is required"
	}
	if utf8.RuneCountInString(in.ProblemStatement) > maxBodyFieldLen {
		return "problem_statement is too long (max 20,000 characters)"
	}
	if strings.TrimSpace(in.Solution) == "" {
		return "solution is required"
	}
	if utf8.RuneCountInString(in.Solution) > maxBodyFieldLen {
		return "solution is too long (max 20,000 characters)"
	}
	for _, opt := range []*string{in.ExpectedOutcomes, in.Variations, in.Pitfalls} {
		if opt != nil && utf8.RuneCountInString(*opt) > maxBodyFieldLen {
			return "optional text field is too long (max 20,000 characters)"
		}
	}
	if len(in.Tags) > maxTagCount {
		return "too many tags (max 20)"
	}
	for _, t := range in.Tags {
		if strings.TrimSpace(t) == "" {
			return "tags must not be empty"
		}
		if utf8.RuneCountInString(t) > maxTagLen {
			return "tag is too long (max 60 characters)"
		}
	}
	if len(in.Industries) > maxIndustryCount {
		return "too many industries (max 20)"
	}
	if len(in.Attachments) > maxAttachments {
		return "too many attachments (max 10)"
	}
	for _, a := range in.Attachments {
		if a.Name == "" || a.URL == "" {
			return "attachments require a name and url"
		}
	}
	return ""
}

// validateComment checks comment content.
func validateComment(content string) string {
	if strings.TrimSpace(content) == "" {
		return "content is required"
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return "content is too long (max 5,000 characters)"
	}
	return ""
}

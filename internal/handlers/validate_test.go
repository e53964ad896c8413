package handlers

import (
	"strings"
	"testing"

	"practicehub/internal/models"
	"practicehub/internal/store"
)

func validInput() store.PracticeInput {
	return store.PracticeInput{
		Title:            "Quarterly health review",
		ProblemStatement: "Renewals slip because health signals arrive late.",
		Solution:         "Run a 90-day-out health review with the account team.",
		Category:         models.CategoryRenewal,
		Tags:             models.StringList{"renewal", "health"},
	}
}

func TestValidatePracticeInput(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		in := validInput()
		if msg := validatePracticeInput(&in); msg != "" {
			t.Errorf("expected no error, got %q", msg)
		}
	})

	tests := []struct {
		name   string
		mutate func(*store.PracticeInput)
		want   string
	}{
		{
			name:   "missing title",
			mutate: func(in *store.PracticeInput) { in.Title = "  " },
			want:   "title is required",
		},
		{
			name:   "title too long",
			mutate: func(in *store.PracticeInput) { in.Title = strings.Repeat("x", maxTitleLen+1) },
			want:   "title is too long",
		},
		{
			name:   "missing problem statement",
			mutate: func(in *store.PracticeInput) { in.ProblemStatement = "" },
			want:   "problem_statement is required",
		},
		{
			name:   "solution too long",
			mutate: func(in *store.PracticeInput) { in.Solution = strings.Repeat("x", maxBodyFieldLen+1) },
			want:   "solution is too long",
		},
		{
			name: "optional field too long",
			mutate: func(in *store.PracticeInput) {
				long := strings.Repeat("x", maxBodyFieldLen+1)
				in.Pitfalls = &long
			},
			want: "optional text field is too long",
		},
		{
			name: "too many tags",
			mutate: func(in *store.PracticeInput) {
				in.Tags = make(models.StringList, maxTagCount+1)
				for i := range in.Tags {
					in.Tags[i] = "t"
				}
			},
			want: "too many tags",
		},
		{
			name:   "empty tag",
			mutate: func(in *store.PracticeInput) { in.Tags = models.StringList{"ok", " "} },
			want:   "tags must not be empty",
		},
		{
			name:   "tag too long",
			mutate: func(in *store.PracticeInput) { in.Tags = models.StringList{strings.Repeat("x", maxTagLen+1)} },
			want:   "tag is too long",
		},
		{
			name: "too many attachments",
			mutate: func(in *store.PracticeInput) {
				in.Attachments = make(models.AttachmentList, maxAttachments+1)
				for i := range in.Attachments {
					in.Attachments[i] = models.Attachment{Name: "f", URL: "u"}
				}
			},
			want: "too many attachments",
		},
		{
			name: "attachment missing url",
			mutate: func(in *store.PracticeInput) {
				in.Attachments = models.AttachmentList{{Name: "deck.pdf"}}
			},
			want: "attachments require a name and url",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			msg := validatePracticeInput(&in)
			if !strings.Contains(msg, strings.Split(tt.want, " (")[0]) {
				t.Errorf("got %q, want it to contain %q", msg, tt.want)
			}
		})
	}
}

func TestValidateComment(t *testing.T) {
	if msg := validateComment("Looks great."); msg != "" {
		t.Errorf("valid comment: got %q, want no error", msg)
	}
	if msg := validateComment("   "); msg == "" {
		t.Error("blank comment should fail")
	}
	if msg := validateComment(strings.Repeat("x", maxCommentLen+1)); msg == "" {
		t.Error("oversized comment should fail")
	}
}

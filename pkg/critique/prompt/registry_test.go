package prompt

import (
	"strings"
	"testing"

	"creative-critique-be/internal/constant"
	"creative-critique-be/internal/entity"
	"creative-critique-be/pkg/llm"
)

func TestPromptForKnownMedia(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		mediaType string
		want      string
	}{
		{constant.MediaTypePhotography, "photography critic"},
		{constant.MediaTypeMusic, "music critic"},
		{constant.MediaTypeCreativeWriting, "writing teacher"},
	}

	for _, tt := range tests {
		got := r.PromptFor(tt.mediaType)
		if !strings.Contains(got, tt.want) {
			t.Errorf("PromptFor(%q) missing %q", tt.mediaType, tt.want)
		}
	}
}

func TestPromptForUnknownMediaFallsBack(t *testing.T) {
	r := NewRegistry()

	got := r.PromptFor("interpretive-sculpture")
	if got != r.PromptFor(constant.MediaTypePhotography) {
		t.Errorf("unknown media should fall back to photography persona")
	}
	if r.Known("interpretive-sculpture") {
		t.Errorf("Known should be false for unregistered media")
	}
}

func TestAnalysisPartsLayout(t *testing.T) {
	parts := AnalysisParts("You are a critic.", "  my first gallery piece  ", []llm.Part{
		llm.InlinePart("image/png", []byte{1, 2}),
		llm.TextPart("lyrics.txt attached as text"),
	})

	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	head := parts[0].Text
	if !strings.Contains(head, "You are a critic.") {
		t.Errorf("head part missing persona")
	}
	if !strings.Contains(head, "Context from the artist: my first gallery piece") {
		t.Errorf("head part missing trimmed context, got: %q", head)
	}
	if !strings.Contains(head, constant.AnalysisInstruction) {
		t.Errorf("head part missing review instruction")
	}
	if parts[1].Inline == nil || parts[1].Inline.MIMEType != "image/png" {
		t.Errorf("file parts should follow the instruction part in order")
	}
}

func TestAnalysisPartsOmitsEmptyContext(t *testing.T) {
	parts := AnalysisParts("persona", "   ", nil)
	if strings.Contains(parts[0].Text, "Context from the artist") {
		t.Errorf("blank context should not produce a context line")
	}
}

func TestFollowUpPartsTranscript(t *testing.T) {
	history := []entity.Message{
		{Role: constant.MessageRoleUser, Content: "please review"},
		{Role: constant.MessageRoleAi, Content: "strong composition, weak color"},
	}

	parts := FollowUpParts("persona", "", history, "how do I fix the color?", nil)
	if len(parts) != 1 {
		t.Fatalf("expected 1 part without files, got %d", len(parts))
	}
	text := parts[0].Text
	for _, want := range []string{
		"Artist: please review",
		"Critic: strong composition, weak color",
		"Artist: how do I fix the color?",
		constant.FollowUpInstruction,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("transcript missing %q", want)
		}
	}
}

package seo

import (
	"context"
	"strings"
	"testing"
)

type fakeTextGenerator struct {
	output string
	prompt string
}

func (f *fakeTextGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.output, nil
}

const suggestionPayload = `[
	{"keyword": "location chaises mariage", "type": "longtail", "relevance": 9},
	{"keyword": "location mobilier", "type": "generic", "relevance": 7}
]`

func TestGenerateParsesPlainJSON(t *testing.T) {
	gen := NewGenerator(&fakeTextGenerator{output: suggestionPayload})

	suggestions, err := gen.Generate(context.Background(), GenerateRequest{Topic: "location de chaises"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}
	if suggestions[0].Keyword != "location chaises mariage" || suggestions[0].Relevance != 9 {
		t.Errorf("first suggestion = %+v", suggestions[0])
	}
}

func TestGenerateStripsMarkdownFences(t *testing.T) {
	gen := NewGenerator(&fakeTextGenerator{output: "```json\n" + suggestionPayload + "\n```"})

	suggestions, err := gen.Generate(context.Background(), GenerateRequest{Topic: "vaisselle"})
	if err != nil {
		t.Fatalf("fenced payload must parse: %v", err)
	}
	if len(suggestions) != 2 {
		t.Errorf("got %d suggestions, want 2", len(suggestions))
	}
}

func TestGenerateRejectsMalformedPayload(t *testing.T) {
	gen := NewGenerator(&fakeTextGenerator{output: "Je ne peux pas répondre en JSON."})

	if _, err := gen.Generate(context.Background(), GenerateRequest{Topic: "nappes"}); err == nil {
		t.Error("expected an error for a non-JSON payload")
	}
}

func TestGenerateAppliesDefaults(t *testing.T) {
	fake := &fakeTextGenerator{output: "[]"}
	gen := NewGenerator(fake)

	if _, err := gen.Generate(context.Background(), GenerateRequest{Topic: "housses"}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(fake.prompt, "10") {
		t.Error("default count 10 missing from prompt")
	}
	if !strings.Contains(fake.prompt, "fr") {
		t.Error("default locale fr missing from prompt")
	}
}

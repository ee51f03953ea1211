package services

import (
	"context"
	"fmt"
	"testing"
)

func TestParseChunkSpecs(t *testing.T) {
	valid := `[
		{"title":"Intro","week":"Week 1","description":"d","duration":"1 week","difficulty":"Beginner","objectives":["a"],"skills":["b"]},
		{"title":"Deep Dive","week":"Week 2","description":"d","duration":"1 week","difficulty":"Intermediate","objectives":["a"],"skills":["b"]}
	]`

	t.Run("valid array", func(t *testing.T) {
		specs, err := parseChunkSpecs(valid)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if len(specs) != 2 || specs[0].Title != "Intro" {
			t.Fatalf("unexpected specs: %+v", specs)
		}
	})

	t.Run("fenced array", func(t *testing.T) {
		specs, err := parseChunkSpecs("```json\n" + valid + "\n```")
		if err != nil {
			t.Fatalf("parse fenced: %v", err)
		}
		if len(specs) != 2 {
			t.Fatalf("expected 2 specs, got %d", len(specs))
		}
	})

	for name, raw := range map[string]string{
		"object not array": `{"title":"x"}`,
		"empty array":      `[]`,
		"missing title":    `[{"week":"Week 1"}]`,
		"garbage":          `sure! here is your curriculum`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := parseChunkSpecs(raw); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestCurriculumService_Generate_SubstitutesDefaultOnFailure(t *testing.T) {
	llm := &stubLLM{
		generateFn: func(ctx context.Context, system, user string) (string, error) {
			return "", fmt.Errorf("model unavailable")
		},
	}
	svc := NewCurriculumService(testLogger(t), llm)

	specs := svc.Generate(context.Background(), "Learn Go", "desc", "6 weeks")
	if len(specs) != 3 {
		t.Fatalf("expected 3 default chunks, got %d", len(specs))
	}
	if specs[0].Title != "Week 1-2: The Basics" {
		t.Fatalf("unexpected first default chunk: %q", specs[0].Title)
	}
	if specs[2].Difficulty != "Advanced" {
		t.Fatalf("unexpected last default difficulty: %q", specs[2].Difficulty)
	}
}

func TestCurriculumService_Generate_SubstitutesDefaultOnMalformedOutput(t *testing.T) {
	llm := &stubLLM{
		generateFn: func(ctx context.Context, system, user string) (string, error) {
			return `{"not":"an array"}`, nil
		},
	}
	svc := NewCurriculumService(testLogger(t), llm)

	specs := svc.Generate(context.Background(), "Learn Go", "desc", "6 weeks")
	if len(specs) != 3 || specs[1].Title != "Week 3-4: Core Practice" {
		t.Fatalf("expected default sequence, got %+v", specs)
	}
}

func TestCurriculumService_Generate_UsesModelOutput(t *testing.T) {
	llm := &stubLLM{
		generateFn: func(ctx context.Context, system, user string) (string, error) {
			return `[{"title":"Custom Module","week":"Week 1","description":"d","duration":"1 week","difficulty":"Beginner","objectives":[],"skills":[]}]`, nil
		},
	}
	svc := NewCurriculumService(testLogger(t), llm)

	specs := svc.Generate(context.Background(), "Learn Go", "desc", "6 weeks")
	if len(specs) != 1 || specs[0].Title != "Custom Module" {
		t.Fatalf("expected model output, got %+v", specs)
	}
}

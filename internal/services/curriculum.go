package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prashantttzz/experimentlabs/internal/clients"
	"github.com/prashantttzz/experimentlabs/internal/clients/gemini"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
)

// ChunkSpec is one generated curriculum entry before persistence. Order is
// assigned by position, never taken from the model output.
type ChunkSpec struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Week        string   `json:"week"`
	Duration    string   `json:"duration"`
	Difficulty  string   `json:"difficulty"`
	Objectives  []string `json:"objectives"`
	Skills      []string `json:"skills"`
}

// CurriculumService turns a goal into an ordered list of chunk specs.
// Generate never fails: any generator problem substitutes the fixed
// default sequence.
type CurriculumService interface {
	Generate(ctx context.Context, title, description, timeline string) []ChunkSpec
}

type curriculumService struct {
	log *logger.Logger
	llm gemini.Client
}

func NewCurriculumService(log *logger.Logger, llm gemini.Client) CurriculumService {
	return &curriculumService{
		log: log.With("service", "CurriculumService"),
		llm: llm,
	}
}

const curriculumSystemPrompt = `You are an expert curriculum and learning path designer.
Your task is to take a user's goal and break it down into a detailed, structured learning journey spanning multiple weeks.
You MUST return the response as a valid JSON array of objects.
Each object in the array represents a learning module or "chunk" of the journey.

Each JSON object MUST have the following exact structure:
{
  "title": "A concise, engaging title for the module.",
  "week": "The time frame, e.g., 'Week 1-2'.",
  "description": "A one-sentence summary of what the user will learn.",
  "duration": "The estimated duration, e.g., '2 weeks'.",
  "difficulty": "A difficulty rating, e.g., 'Beginner', 'Intermediate', 'Advanced'.",
  "objectives": ["A string array of 3-4 specific, actionable learning objectives."],
  "skills": ["A string array of 3-4 key skills the user will acquire."]
}

Generate a complete journey with a logical progression of modules. The total number of modules should be between 4 and 8. Do not include any text or markdown formatting before or after the JSON array.`

func (s *curriculumService) Generate(ctx context.Context, title, description, timeline string) []ChunkSpec {
	userPrompt := fmt.Sprintf(
		"Here is the user's goal:\nTitle: %q\nDescription: %q\nTimeline: ~%s\nNow, generate the JSON array of learning modules for this goal.",
		title, description, timeline,
	)

	return clients.WithFallback(s.log, "curriculum_generator",
		func() ([]ChunkSpec, error) {
			raw, err := s.llm.GenerateJSON(ctx, curriculumSystemPrompt, userPrompt)
			if err != nil {
				return nil, err
			}
			return parseChunkSpecs(raw)
		},
		func(err error) []ChunkSpec {
			return defaultChunkSpecs()
		},
	)
}

// parseChunkSpecs normalizes generator output. Anything other than a JSON
// array of well-formed entries counts as a generator failure; there is no
// partial salvage.
func parseChunkSpecs(raw string) ([]ChunkSpec, error) {
	raw = gemini.StripJSONFence(raw)
	if !strings.HasPrefix(strings.TrimSpace(raw), "[") {
		return nil, fmt.Errorf("generator output is not a JSON array")
	}
	var specs []ChunkSpec
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return nil, fmt.Errorf("parse generator output: %w", err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("generator returned an empty journey")
	}
	for i, spec := range specs {
		if strings.TrimSpace(spec.Title) == "" {
			return nil, fmt.Errorf("generator entry %d has no title", i)
		}
	}
	return specs, nil
}

// defaultChunkSpecs is the fixed fallback journey used whenever generation
// fails. Keep in sync with the generator fallback test expectations.
func defaultChunkSpecs() []ChunkSpec {
	return []ChunkSpec{
		{
			Title:       "Week 1-2: The Basics",
			Description: "Understand the fundamental concepts and get set up.",
			Week:        "Week 1-2",
			Duration:    "2 weeks",
			Difficulty:  "Beginner",
			Objectives:  []string{"Complete initial setup", "Learn core terminology"},
			Skills:      []string{"Setup", "Fundamentals"},
		},
		{
			Title:       "Week 3-4: Core Practice",
			Description: "Dive into the main topics and practice with exercises.",
			Week:        "Week 3-4",
			Duration:    "2 weeks",
			Difficulty:  "Intermediate",
			Objectives:  []string{"Complete 3 core exercises", "Build a small project"},
			Skills:      []string{"Core Skills", "Project Building"},
		},
		{
			Title:       "Week 5-6: Advanced Topics",
			Description: "Explore advanced concepts and finalize your understanding.",
			Week:        "Week 5-6",
			Duration:    "2 weeks",
			Difficulty:  "Advanced",
			Objectives:  []string{"Tackle an advanced tutorial", "Refactor the project with new knowledge"},
			Skills:      []string{"Advanced Concepts", "Refactoring"},
		},
	}
}

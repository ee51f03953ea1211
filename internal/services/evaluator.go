package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prashantttzz/experimentlabs/internal/clients"
	"github.com/prashantttzz/experimentlabs/internal/clients/gemini"
	types "github.com/prashantttzz/experimentlabs/internal/domain"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
)

const (
	VerdictPassed = "passed"
	VerdictFailed = "failed"

	evaluatorFailureFeedback = "An error occurred during the evaluation. Please try again."
)

// Verdict is the evaluator's transient outcome; only its effect on chunk
// state is ever persisted.
type Verdict struct {
	Assessment string `json:"assessment"`
	Feedback   string `json:"feedback"`
}

func (v Verdict) Passed() bool { return v.Assessment == VerdictPassed }

// EvaluatorService grades a chunk's conversation against its learning
// context. Evaluate never fails: transport or parse problems resolve to a
// FAILED verdict with a generic message, so chunk state is never left
// ambiguous.
type EvaluatorService interface {
	Evaluate(ctx context.Context, chunk *types.Chunk, history []*types.ChatMessage) Verdict
}

type evaluatorService struct {
	log *logger.Logger
	llm gemini.Client
}

func NewEvaluatorService(log *logger.Logger, llm gemini.Client) EvaluatorService {
	return &evaluatorService{
		log: log.With("service", "EvaluatorService"),
		llm: llm,
	}
}

func (s *evaluatorService) Evaluate(ctx context.Context, chunk *types.Chunk, history []*types.ChatMessage) Verdict {
	prompt := buildEvaluationPrompt(chunk, history)

	return clients.WithFallback(s.log, "assessment_evaluator",
		func() (Verdict, error) {
			raw, err := s.llm.GenerateJSON(ctx, "", prompt)
			if err != nil {
				return Verdict{}, err
			}
			return parseVerdict(raw)
		},
		func(err error) Verdict {
			return Verdict{Assessment: VerdictFailed, Feedback: evaluatorFailureFeedback}
		},
	)
}

func buildEvaluationPrompt(chunk *types.Chunk, history []*types.ChatMessage) string {
	turns := make([]map[string]string, 0, len(history))
	for _, m := range history {
		turns = append(turns, map[string]string{
			"sender":  string(m.Sender),
			"content": m.Content,
		})
	}
	historyJSON, _ := json.Marshal(turns)

	var b strings.Builder
	b.WriteString("You are a strict but fair examiner. A student has completed a learning module, and you must assess if they have understood the core concepts based on their conversation with an AI tutor.\n\n")
	b.WriteString("--- MODULE CONTEXT ---\n")
	fmt.Fprintf(&b, "Description: %q\n", chunk.Description)
	fmt.Fprintf(&b, "Learning Objectives: %s\n", string(chunk.Objectives))
	fmt.Fprintf(&b, "Skills to Master: %s\n", string(chunk.Skills))
	b.WriteString("--------------------\n\n")
	b.WriteString("--- CONVERSATION HISTORY ---\n")
	b.Write(historyJSON)
	b.WriteString("\n--------------------------\n\n")
	b.WriteString("--- YOUR TASK ---\n")
	b.WriteString("Evaluate the user's messages in the conversation history against the provided module context.\n")
	b.WriteString("- Did they ask relevant questions?\n")
	b.WriteString("- Do their answers demonstrate a grasp of the learning objectives and skills?\n")
	b.WriteString("- Is their understanding sufficient to move to the next module?\n\n")
	b.WriteString("Respond with ONLY a JSON object in the following format:\n")
	b.WriteString(`- If understanding is sufficient, respond with: {"assessment": "passed", "feedback": "Excellent work. The user clearly understands the key concepts and is ready to proceed."}` + "\n")
	b.WriteString(`- If understanding is weak, respond with: {"assessment": "failed", "feedback": "The user should review the material. Their understanding of [mention specific objective or skill] seems weak."}`)
	return b.String()
}

func parseVerdict(raw string) (Verdict, error) {
	raw = gemini.StripJSONFence(raw)
	var v Verdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Verdict{}, fmt.Errorf("parse verdict: %w", err)
	}
	switch v.Assessment {
	case VerdictPassed, VerdictFailed:
		return v, nil
	default:
		return Verdict{}, fmt.Errorf("unknown assessment value %q", v.Assessment)
	}
}

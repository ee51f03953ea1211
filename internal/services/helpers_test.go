package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/prashantttzz/experimentlabs/internal/clients/gemini"
	types "github.com/prashantttzz/experimentlabs/internal/domain"
	"github.com/prashantttzz/experimentlabs/internal/pkg/dbctx"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
)

// stubLLM lets tests script the model's behavior per call.
type stubLLM struct {
	generateFn func(ctx context.Context, system, user string) (string, error)
	chatFn     func(ctx context.Context, system string, history []gemini.Turn, message string) (string, error)
}

func (s *stubLLM) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	return s.generateFn(ctx, system, user)
}

func (s *stubLLM) Chat(ctx context.Context, system string, history []gemini.Turn, message string) (string, error) {
	return s.chatFn(ctx, system, history, message)
}

// stubEvaluator returns a fixed verdict, with an optional hook that runs
// before the verdict is returned.
type stubEvaluator struct {
	verdict Verdict
	before  func()
}

func (s *stubEvaluator) Evaluate(ctx context.Context, chunk *types.Chunk, history []*types.ChatMessage) Verdict {
	if s.before != nil {
		s.before()
	}
	return s.verdict
}

// stubCurriculum returns a fixed sequence.
type stubCurriculum struct {
	specs []ChunkSpec
}

func (s *stubCurriculum) Generate(ctx context.Context, title, description, timeline string) []ChunkSpec {
	return s.specs
}

func txContext(ctx context.Context, tx *gorm.DB) dbctx.Context {
	return dbctx.WithTx(ctx, tx)
}

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return log
}

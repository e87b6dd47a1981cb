package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prepmitra/currentaffairs-backend/internal/clients/openai"
	pkgerrors "github.com/prepmitra/currentaffairs-backend/internal/pkg/errors"
	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/repos"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

// Quiz timeframes accepted by Generate.
const (
	TimeframeToday = "today"
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
)

const (
	defaultQuizQuestions  = 5
	maxQuizQuestions      = 20
	maxQuizSourceCount    = 15
	maxPromptSummaryBytes = 600
)

type QuizGenerationInput struct {
	Timeframe    string `json:"timeframe"`
	NumQuestions int    `json:"num_questions"`
	Category     string `json:"category"`
	ExamType     string `json:"exam_type"`
}

type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

type Quiz struct {
	Timeframe        string         `json:"timeframe"`
	ExamType         string         `json:"exam_type,omitempty"`
	SourceArticleIDs []uuid.UUID    `json:"source_article_ids"`
	Questions        []QuizQuestion `json:"questions"`
	GeneratedAt      time.Time      `json:"generated_at"`
}

type QuizService interface {
	// Generate builds a multiple-choice quiz from articles published inside
	// the requested timeframe. Empty timeframes are an error, not an empty
	// quiz.
	Generate(ctx context.Context, input QuizGenerationInput) (*Quiz, error)
}

type quizService struct {
	db          *gorm.DB
	log         *logger.Logger
	articleRepo repos.ArticleRepo
	ai          openai.Client
}

func NewQuizService(db *gorm.DB, baseLog *logger.Logger, articleRepo repos.ArticleRepo, ai openai.Client) QuizService {
	return &quizService{
		db:          db,
		log:         baseLog.With("service", "QuizService"),
		articleRepo: articleRepo,
		ai:          ai,
	}
}

func (s *quizService) Generate(ctx context.Context, input QuizGenerationInput) (*Quiz, error) {
	if s.ai == nil {
		return nil, fmt.Errorf("quiz generation unavailable: no text-generation client configured")
	}
	since, err := timeframeStart(input.Timeframe, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if input.NumQuestions <= 0 {
		input.NumQuestions = defaultQuizQuestions
	}
	if input.NumQuestions > maxQuizQuestions {
		input.NumQuestions = maxQuizQuestions
	}

	articles, err := s.articleRepo.ListPublishedSince(ctx, nil, since, maxQuizSourceCount, input.Category)
	if err != nil {
		return nil, fmt.Errorf("loading source articles: %w", err)
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("%w: no articles published in timeframe %q", pkgerrors.ErrNotFound, input.Timeframe)
	}

	system, user := buildQuizPrompt(articles, input)
	raw, err := s.ai.GenerateJSON(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}
	questions, err := parseQuizQuestions(raw)
	if err != nil {
		return nil, err
	}
	s.log.Info("generated quiz", "timeframe", input.Timeframe, "questions", len(questions), "sources", len(articles))
	sourceIDs := make([]uuid.UUID, 0, len(articles))
	for _, a := range articles {
		sourceIDs = append(sourceIDs, a.ID)
	}
	return &Quiz{
		Timeframe:        input.Timeframe,
		ExamType:         input.ExamType,
		SourceArticleIDs: sourceIDs,
		Questions:        questions,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

func timeframeStart(timeframe string, now time.Time) (time.Time, error) {
	switch timeframe {
	case TimeframeToday:
		return now.Truncate(24 * time.Hour), nil
	case TimeframeWeek:
		return now.AddDate(0, 0, -7), nil
	case TimeframeMonth:
		return now.AddDate(0, -1, 0), nil
	default:
		return time.Time{}, fmt.Errorf("%w: timeframe %q (want today, week or month)", pkgerrors.ErrInvalidArgument, timeframe)
	}
}

func buildQuizPrompt(articles []*types.Article, input QuizGenerationInput) (system, user string) {
	system = "You are a current-affairs quiz writer for competitive exam preparation. " +
		"Respond with a JSON object of the form " +
		`{"questions":[{"question":"...","options":["...","...","...","..."],"answer":"...","explanation":"..."}]}. ` +
		"Each question must have exactly four options and the answer must match one of them verbatim."

	var b strings.Builder
	fmt.Fprintf(&b, "Write %d multiple-choice questions", input.NumQuestions)
	if input.ExamType != "" {
		fmt.Fprintf(&b, " suitable for %s aspirants", input.ExamType)
	}
	b.WriteString(" based only on these news items:\n")
	for i, a := range articles {
		fmt.Fprintf(&b, "\n%d. %s (%s)\n", i+1, a.Title, a.Category)
		summary := a.Summary
		if summary == "" {
			summary = a.Content
		}
		b.WriteString(truncateRunes(summary, maxPromptSummaryBytes))
		b.WriteString("\n")
	}
	return system, b.String()
}

// truncateRunes cuts s to at most max bytes without splitting a UTF-8
// sequence, so Indic-script summaries stay valid in the prompt.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func parseQuizQuestions(raw map[string]any) ([]QuizQuestion, error) {
	payload, ok := raw["questions"]
	if !ok {
		return nil, fmt.Errorf("quiz response missing questions field")
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("re-encoding quiz questions: %w", err)
	}
	var questions []QuizQuestion
	if err := json.Unmarshal(buf, &questions); err != nil {
		return nil, fmt.Errorf("decoding quiz questions: %w", err)
	}
	out := questions[:0]
	for _, q := range questions {
		if strings.TrimSpace(q.Question) == "" || len(q.Options) == 0 {
			continue
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("quiz response contained no usable questions")
	}
	return out, nil
}

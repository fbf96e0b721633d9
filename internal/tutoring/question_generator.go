package tutoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/mrlokans/studyhub/internal/ai"
	"github.com/mrlokans/studyhub/internal/auth"
	"github.com/mrlokans/studyhub/internal/database/subjects"
	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/result"
)

const (
	DefaultQuestionCount = 5
	DefaultItemCount     = 4
	MaxQuestionCount     = 20
	MaxItemCount         = 8
)

// ErrSubjectGone is returned by a QuestionWriter when the subject was deleted
// between generation and persistence.
var ErrSubjectGone = errors.New("subject no longer exists")

// QuestionWriter persists a generated batch atomically.
type QuestionWriter interface {
	SaveGenerated(subjectID uint, questions []entities.Question) error
}

// Request describes one generation run. Zero counts take the defaults.
type Request struct {
	SubjectID uint `json:"subjectId"`
	UserID    uint `json:"-"`
	Count     int  `json:"count"`
	ItemCount int  `json:"itemCount"`
}

func (r Request) withDefaults() Request {
	if r.Count <= 0 {
		r.Count = DefaultQuestionCount
	}
	if r.ItemCount <= 0 {
		r.ItemCount = DefaultItemCount
	}
	return r
}

// Summary reports what a run persisted.
type Summary struct {
	QuestionsGenerated int                 `json:"questionsGenerated"`
	Questions          []entities.Question `json:"questions"`
}

type generatedQuestion struct {
	Text  string                  `json:"text"`
	Items []entities.QuestionItem `json:"items"`
}

type QuestionGenerator struct {
	subjects      SubjectLoader
	conversations ConversationStore
	writer        QuestionWriter
	model         ai.JSONGenerator
	auditor       GenerationAuditor
	log           logrus.FieldLogger
}

func NewQuestionGenerator(subjects SubjectLoader, conversations ConversationStore, writer QuestionWriter, model ai.JSONGenerator, auditor GenerationAuditor, log logrus.FieldLogger) *QuestionGenerator {
	return &QuestionGenerator{
		subjects:      subjects,
		conversations: conversations,
		writer:        writer,
		model:         model,
		auditor:       auditor,
		log:           log.WithField("orchestrator", "question_generator"),
	}
}

// Validate checks request bounds before any lookup or model call.
func (req Request) Validate() error {
	req = req.withDefaults()
	if req.SubjectID == 0 {
		return errors.New("subjectId is required")
	}
	if req.Count > MaxQuestionCount {
		return fmt.Errorf("count must be at most %d", MaxQuestionCount)
	}
	if req.ItemCount < 2 || req.ItemCount > MaxItemCount {
		return fmt.Errorf("itemCount must be between 2 and %d", MaxItemCount)
	}
	return nil
}

// Generate builds questions for a subject from its resume and up to the first
// twenty conversation turns.
func (g *QuestionGenerator) Generate(ctx context.Context, req Request) result.Result[Summary] {
	req = req.withDefaults()
	log := g.log.WithFields(logrus.Fields{"subject_id": req.SubjectID, "user_id": req.UserID})

	if err := req.Validate(); err != nil {
		return result.BadRequest[Summary](err.Error())
	}

	subject, err := g.subjects.GetSubjectByID(req.SubjectID)
	if err != nil {
		if errors.Is(err, subjects.ErrNotFound) {
			return result.NotFound[Summary](msgSubjectNotFound)
		}
		log.WithError(err).Error("Failed to load subject")
		return result.Internal[Summary]()
	}
	if auth.Authorize(subject, req.UserID) != nil {
		return result.Unauthorized[Summary]()
	}

	turns, err := g.conversations.ListForSubject(req.SubjectID, historyWindow)
	if err != nil {
		log.WithError(err).Error("Failed to load conversation")
		return result.Internal[Summary]()
	}

	content := analyzableContent(subject.Resume, turns)
	if len(content) < minContentLength {
		log.Debug("Not enough content to generate questions")
		return result.OK(Summary{Questions: []entities.Question{}}, "Insufficient content to generate questions.")
	}

	raw, err := g.model.GenerateJSON(ctx, questionPrompt(subject.Name, req.Count, req.ItemCount, content), questionSchema(req.Count, req.ItemCount))
	if err != nil {
		g.audit(req, 0, err)
		if errors.Is(err, ai.ErrEmptyResponse) {
			log.Warn("Question model returned no text")
			return result.Upstream[Summary]("AI generation failed (empty response)")
		}
		log.WithError(err).Error("Question model call failed")
		return result.Internal[Summary]()
	}

	generated, failure := parseGenerated(raw)
	if failure != "" {
		log.WithField("response", truncate(raw, 500)).Error(failure)
		g.audit(req, 0, errors.New(failure))
		return result.Fail[Summary](result.KindInternal, failure)
	}

	batch := make([]entities.Question, 0, len(generated))
	for _, q := range generated {
		if len(batch) == req.Count {
			break
		}
		if len(q.Items) != req.ItemCount || strings.TrimSpace(q.Text) == "" {
			continue
		}
		question := entities.Question{Text: q.Text, SubjectID: req.SubjectID}
		if err := question.SetItems(q.Items); err != nil {
			continue
		}
		batch = append(batch, question)
	}

	if err := g.writer.SaveGenerated(req.SubjectID, batch); err != nil {
		g.audit(req, 0, err)
		if errors.Is(err, ErrSubjectGone) {
			return result.NotFound[Summary](msgSubjectNotFound)
		}
		log.WithError(err).Error("Failed to store generated questions")
		return result.Internal[Summary]()
	}

	g.audit(req, len(batch), nil)
	log.WithField("count", len(batch)).Info("Questions generated")
	return result.OK(Summary{
		QuestionsGenerated: len(batch),
		Questions:          batch,
	}, fmt.Sprintf("%d questions generated successfully", len(batch)))
}

// parseGenerated returns the question entries or a client-facing failure message.
// Entries that do not decode are dropped.
func parseGenerated(raw string) ([]generatedQuestion, string) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, "Failed to process AI response"
	}

	list, ok := envelope["questions"]
	if !ok {
		return nil, "Invalid JSON format returned by AI"
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(list, &entries); err != nil || entries == nil {
		return nil, "Invalid JSON format returned by AI"
	}

	out := make([]generatedQuestion, 0, len(entries))
	for _, entry := range entries {
		var q generatedQuestion
		if err := json.Unmarshal(entry, &q); err != nil {
			continue
		}
		out = append(out, q)
	}
	return out, ""
}

func questionSchema(count, itemCount int) *genai.Schema {
	item := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text": {
				Type:        genai.TypeString,
				Description: "The text of the multiple-choice option.",
			},
			"isCorrect": {
				Type:        genai.TypeBoolean,
				Description: "True if this is the correct answer, false otherwise.",
			},
		},
		Required: []string{"text", "isCorrect"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"questions": {
				Type:        genai.TypeArray,
				Description: fmt.Sprintf("A list containing exactly %d questions.", count),
				MinItems:    genai.Ptr(int64(count)),
				MaxItems:    genai.Ptr(int64(count)),
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"text": {
							Type:        genai.TypeString,
							Description: "The question statement.",
						},
						"items": {
							Type:        genai.TypeArray,
							Description: fmt.Sprintf("A list with exactly %d answer options.", itemCount),
							MinItems:    genai.Ptr(int64(itemCount)),
							MaxItems:    genai.Ptr(int64(itemCount)),
							Items:       item,
						},
					},
					Required: []string{"text", "items"},
				},
			},
		},
		Required: []string{"questions"},
	}
}

func (g *QuestionGenerator) audit(req Request, produced int, err error) {
	if g.auditor != nil {
		g.auditor.LogGeneration(req.UserID, "generate_questions", req.SubjectID, produced, err)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

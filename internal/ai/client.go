// Package ai wraps the Gemini API behind the two capabilities the tutoring
// orchestrators need: free-form text completion and schema-constrained JSON.
package ai

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/mrlokans/studyhub/internal/config"
)

var (
	ErrEmptyResponse = errors.New("model returned an empty response")
	ErrUnavailable   = errors.New("ai provider unavailable")
)

// TextGenerator produces a single free-form completion for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// JSONGenerator produces JSON text conforming to schema.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// Client talks to Gemini. The underlying SDK client is created on first use so
// a missing API key fails the call instead of the process.
type Client struct {
	cfg config.AI
	log logrus.FieldLogger

	once    sync.Once
	sdk     *genai.Client
	initErr error
}

func NewClient(cfg config.AI, log logrus.FieldLogger) *Client {
	log = log.WithField("component", "ai")
	if cfg.APIKey == "" {
		log.Warn("GEMINI_KEY is not set; AI requests will fail at the provider")
	}
	return &Client{cfg: cfg, log: log}
}

func (c *Client) models(ctx context.Context) (*genai.Models, error) {
	c.once.Do(func() {
		cc := &genai.ClientConfig{
			APIKey:  c.cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
		if c.cfg.BaseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.cfg.BaseURL}
		}
		c.sdk, c.initErr = genai.NewClient(ctx, cc)
	})
	if c.initErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, c.initErr)
	}
	return c.sdk.Models, nil
}

// Generate sends prompt to the tutor model.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, c.cfg.TutorModel, prompt, nil)
}

// GenerateJSON sends prompt to the question model with a response schema and
// near-deterministic sampling.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	return c.generate(ctx, c.cfg.QuestionModel, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      genai.Ptr[float32](0.3),
	})
}

func (c *Client) generate(ctx context.Context, model, prompt string, gc *genai.GenerateContentConfig) (string, error) {
	models, err := c.models(ctx)
	if err != nil {
		return "", err
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	resp, err := models.GenerateContent(ctx, model, genai.Text(prompt), gc)
	if err != nil {
		c.log.WithError(err).WithField("model", model).Warn("Generation request failed")
		return "", fmt.Errorf("generate with %s: %w", model, err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

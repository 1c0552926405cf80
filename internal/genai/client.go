package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mind-engage/quizmint/internal/logger"
	"github.com/mind-engage/quizmint/internal/quiz"
)

// Generator turns a topic and difficulty into question records.
type Generator interface {
	GenerateQuiz(ctx context.Context, topic, level string) ([]quiz.Question, error)
	GenerateQuestion(ctx context.Context, topic, level string) (quiz.Question, error)
}

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client calls the Gemini generateContent API and extracts question
// payloads from the fenced JSON block the prompt demands. Every upstream
// call runs under a bounded deadline; a reply that fails extraction or
// validation is retried once with a fresh call before the error surfaces.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
	httpc   *http.Client
	log     *logger.Logger
}

func NewClient(apiKey, model string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		httpc:   &http.Client{},
		log:     log.With("client", "genai"),
	}
}

// WithBaseURL points the client at a different host. Used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	cp := *c
	cp.baseURL = u
	return &cp
}

func (c *Client) GenerateQuiz(ctx context.Context, topic, level string) ([]quiz.Question, error) {
	prompt := quizPrompt(topic, level)
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		raw, err := c.generateText(ctx, prompt)
		if err != nil {
			return nil, err
		}
		qs, err := extractAndParseQuiz(raw)
		if err == nil {
			return qs, nil
		}
		lastErr = err
		c.log.Warn("malformed generator reply", "attempt", attempt+1, "err", err)
	}
	return nil, lastErr
}

func (c *Client) GenerateQuestion(ctx context.Context, topic, level string) (quiz.Question, error) {
	prompt := questionPrompt(topic, level)
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		raw, err := c.generateText(ctx, prompt)
		if err != nil {
			return quiz.Question{}, err
		}
		q, err := extractAndParseQuestion(raw)
		if err == nil {
			return q, nil
		}
		lastErr = err
		c.log.Warn("malformed generator reply", "attempt", attempt+1, "err", err)
	}
	return quiz.Question{}, lastErr
}

func extractAndParseQuiz(raw string) ([]quiz.Question, error) {
	jsonStr, err := extractFenced(raw)
	if err != nil {
		return nil, err
	}
	return parseQuizPayload(jsonStr)
}

func extractAndParseQuestion(raw string) (quiz.Question, error) {
	jsonStr, err := extractFenced(raw)
	if err != nil {
		return quiz.Question{}, err
	}
	return parseQuestionPayload(jsonStr)
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generateText performs one generateContent call and returns the model's
// free-form reply text.
func (c *Client) generateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: 0.7},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, bytes.TrimSpace(b))
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrUpstream)
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

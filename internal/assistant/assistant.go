package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/Deymos01/pr-auto-reviewer/internal/config"
	"google.golang.org/genai"
)

// Low temperature keeps reviews of the same diff close to each other.
const defaultTemperature = float32(0.2)

var (
	ErrBlocked      = errors.New("prompt blocked")
	ErrNoCandidates = errors.New("no candidates in response")
)

// AssistantError wraps every failure of the review model: auth, quota or transport.
type AssistantError struct {
	Model string
	Err   error
}

func (e *AssistantError) Error() string {
	return fmt.Sprintf("assistant (model %s): %v", e.Model, e.Err)
}

func (e *AssistantError) Unwrap() error {
	return e.Err
}

type Client struct {
	cfg   *genai.ClientConfig
	model string

	once   sync.Once
	models *genai.Models
	err    error
}

type Option func(*genai.ClientConfig)

func WithHTTPClient(hc *http.Client) Option {
	return func(cc *genai.ClientConfig) {
		cc.HTTPClient = hc
	}
}

// New only records the settings. The Gemini client is built on the first Review,
// so missing credentials surface there.
func New(cfg config.AssistantConfig, opts ...Option) *Client {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	}

	for _, opt := range opts {
		opt(cc)
	}

	return &Client{cfg: cc, model: cfg.Model}
}

func (c *Client) connect(ctx context.Context) (*genai.Models, error) {
	c.once.Do(func() {
		client, err := genai.NewClient(ctx, c.cfg)
		if err != nil {
			c.err = err
			return
		}
		c.models = client.Models
	})

	return c.models, c.err
}

// Review sends the prompt as a single user turn and returns the text of the answer.
func (c *Client) Review(ctx context.Context, prompt string) (string, error) {
	models, err := c.connect(ctx)
	if err != nil {
		return "", &AssistantError{Model: c.model, Err: err}
	}

	resp, err := models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(defaultTemperature),
	})
	if err != nil {
		return "", &AssistantError{Model: c.model, Err: err}
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", &AssistantError{
			Model: c.model,
			Err:   fmt.Errorf("%w: %s", ErrBlocked, resp.PromptFeedback.BlockReason),
		}
	}
	if len(resp.Candidates) == 0 {
		return "", &AssistantError{Model: c.model, Err: ErrNoCandidates}
	}

	return resp.Text(), nil
}

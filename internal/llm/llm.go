// Package llm wraps the Gemini API for schedule and recap generation. It
// resolves the credential, attaches the response schema and thinking budget,
// and normalizes raw responses into core entities.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"google.golang.org/genai"

	"gameday/internal/core"
	"gameday/internal/prompt"
)

const (
	// scheduleTemperature favors deterministic listings.
	scheduleTemperature = 0.4
	// recapTemperature allows a little narrative variety.
	recapTemperature = 0.5
	// thinkingBudget is the fixed reasoning budget attached to thinking-capable
	// tiers. Not user-tunable.
	thinkingBudget = 2048
)

// Client issues single-attempt, schema-constrained generation requests.
type Client struct {
	apiKey    string
	modelName string
	gClient   *genai.Client
}

// ResolveCredential returns the access credential in priority order: the
// per-request override in preferences, then the environment, then the
// config file. Empty means no credential is available.
func ResolveCredential(prefs core.Preferences) string {
	if prefs.APIKey != "" {
		return prefs.APIKey
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		if apiKey = os.Getenv("GOOGLE_GEMINI_API_KEY"); apiKey == "" {
			if apiKey = os.Getenv("GOOGLE_AI_API_KEY"); apiKey == "" {
				apiKey = viper.GetString("gemini.api_key")
			}
		}
	}
	return apiKey
}

// NewClient creates a client for the model selected in preferences. It fails
// with a MissingCredential-kind error before any network use when no API key
// can be resolved.
func NewClient(ctx context.Context, prefs core.Preferences) (*Client, error) {
	apiKey := ResolveCredential(prefs)
	if apiKey == "" {
		return nil, newError(KindMissingCredential, msgMissingCredential, nil)
	}

	modelName := prefs.Model
	if modelName == "" {
		modelName = core.ModelPro
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		apiKey:    apiKey,
		modelName: modelName,
		gClient:   gClient,
	}, nil
}

// GetModelName returns the model name used by this client.
func (c *Client) GetModelName() string {
	return c.modelName
}

// isThinkingModel reports whether the model tier supports a reasoning budget.
func isThinkingModel(modelName string) bool {
	return strings.Contains(modelName, "pro") || strings.Contains(modelName, "thinking")
}

// generationConfig builds the per-request configuration: JSON-typed output
// constrained by the schema, the fixed temperature for the operation, and a
// bounded thinking budget on capable tiers only.
func (c *Client) generationConfig(schema *genai.Schema, temperature float32) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      genai.Ptr(temperature),
	}
	if isThinkingModel(c.modelName) {
		config.ThinkingConfig = &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(int32(thinkingBudget)),
		}
	}
	return config
}

// generate issues exactly one network call. No retry, no client-side timeout
// beyond the transport's default.
func (c *Client) generate(ctx context.Context, promptText string, config *genai.GenerateContentConfig) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: promptText}},
		Role:  "user",
	}}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, config)
	if err != nil {
		return "", classifyProviderError(err)
	}

	text := resp.Text()
	if text == "" {
		text = "{}"
	}
	return text, nil
}

// classifyProviderError maps provider failures onto the error taxonomy at
// the source, instead of matching message substrings downstream.
func classifyProviderError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 403:
			return newError(KindAccessDenied, msgAccessDenied, err)
		case 429:
			return newError(KindQuotaExceeded, msgQuotaExceeded, err)
		}
	}
	return newError(KindRequestFailed, fmt.Sprintf("Failed to fetch from provider: %v", err), err)
}

// FetchSchedule requests the schedule for one date and returns normalized
// events with their date stamped from the request.
func (c *Client) FetchSchedule(ctx context.Context, date string, prefs core.Preferences) ([]core.SportEvent, error) {
	prefs.Normalize()

	promptText := prompt.RenderSchedule(prefs.SchedulePrompt, date, prefs)
	schema := EventListSchema()
	promptText = prompt.AppendSchemaInstruction(promptText, marshalSchema(schema))

	raw, err := c.generate(ctx, promptText, c.generationConfig(schema, scheduleTemperature))
	if err != nil {
		return nil, err
	}

	return NormalizeSchedule(raw, date)
}

// FetchRecap requests the daily recap for one date.
func (c *Client) FetchRecap(ctx context.Context, date string, prefs core.Preferences) (core.DailyRecap, error) {
	prefs.Normalize()

	promptText := prompt.RenderRecap(prefs.RecapPrompt, date, prefs)
	schema := RecapSchema()
	promptText = prompt.AppendSchemaInstruction(promptText, marshalSchema(schema))

	raw, err := c.generate(ctx, promptText, c.generationConfig(schema, recapTemperature))
	if err != nil {
		return core.DailyRecap{}, err
	}

	return NormalizeRecap(raw, date)
}

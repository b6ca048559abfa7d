package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"google.golang.org/genai"

	"gameday/internal/core"
)

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_AI_API_KEY", "")
	viper.Reset()
}

func TestNewClientMissingCredential(t *testing.T) {
	clearCredentialEnv(t)

	_, err := NewClient(context.Background(), core.Preferences{})
	if err == nil {
		t.Fatal("Expected an error when no credential is available")
	}
	if !IsKind(err, KindMissingCredential) {
		t.Errorf("Expected MissingCredential kind, got %v", err)
	}
	if err.Error() != "Missing API Key. Please add your Gemini API Key in Settings." {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestResolveCredentialPriority(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("GEMINI_API_KEY", "env-key")

	// Preference override wins over the environment.
	if got := ResolveCredential(core.Preferences{APIKey: "override"}); got != "override" {
		t.Errorf("Expected preference override, got %q", got)
	}
	if got := ResolveCredential(core.Preferences{}); got != "env-key" {
		t.Errorf("Expected environment credential, got %q", got)
	}
}

func TestResolveCredentialFromViper(t *testing.T) {
	clearCredentialEnv(t)
	viper.Set("gemini.api_key", "config-key")
	t.Cleanup(viper.Reset)

	if got := ResolveCredential(core.Preferences{}); got != "config-key" {
		t.Errorf("Expected config credential, got %q", got)
	}
}

func TestIsThinkingModel(t *testing.T) {
	cases := map[string]bool{
		core.ModelPro:             true,
		core.ModelFlash:           false,
		"gemini-thinking-exp":     true,
		"gemini-flash-2.0-latest": false,
	}
	for model, want := range cases {
		if got := isThinkingModel(model); got != want {
			t.Errorf("isThinkingModel(%s) = %v, want %v", model, got, want)
		}
	}
}

func TestGenerationConfig(t *testing.T) {
	pro := &Client{modelName: core.ModelPro}
	config := pro.generationConfig(EventListSchema(), scheduleTemperature)

	if config.ResponseMIMEType != "application/json" {
		t.Errorf("Expected JSON response MIME type, got %s", config.ResponseMIMEType)
	}
	if config.ResponseSchema == nil {
		t.Error("Expected response schema attached")
	}
	if config.Temperature == nil || *config.Temperature != 0.4 {
		t.Errorf("Expected schedule temperature 0.4, got %v", config.Temperature)
	}
	if config.ThinkingConfig == nil || config.ThinkingConfig.ThinkingBudget == nil || *config.ThinkingConfig.ThinkingBudget != 2048 {
		t.Error("Expected thinking budget 2048 for the pro tier")
	}

	flash := &Client{modelName: core.ModelFlash}
	config = flash.generationConfig(RecapSchema(), recapTemperature)
	if config.Temperature == nil || *config.Temperature != 0.5 {
		t.Errorf("Expected recap temperature 0.5, got %v", config.Temperature)
	}
	if config.ThinkingConfig != nil {
		t.Error("Expected no thinking config for the flash tier")
	}
}

func TestClassifyProviderError(t *testing.T) {
	denied := classifyProviderError(genai.APIError{Code: 403, Message: "forbidden"})
	if !IsKind(denied, KindAccessDenied) {
		t.Errorf("Expected AccessDenied for 403, got %v", denied)
	}
	if denied.Error() != "Invalid API Key or permission denied." {
		t.Errorf("Unexpected 403 message: %q", denied.Error())
	}

	quota := classifyProviderError(genai.APIError{Code: 429, Message: "quota"})
	if !IsKind(quota, KindQuotaExceeded) {
		t.Errorf("Expected QuotaExceeded for 429, got %v", quota)
	}
	if quota.Error() != "API Quota exceeded. Please try again later." {
		t.Errorf("Unexpected 429 message: %q", quota.Error())
	}

	other := classifyProviderError(errors.New("connection reset"))
	if !IsKind(other, KindRequestFailed) {
		t.Errorf("Expected RequestFailed for unclassified errors, got %v", other)
	}
}

func TestSchemaContracts(t *testing.T) {
	events := EventListSchema()
	if len(events.Required) != 1 || events.Required[0] != "events" {
		t.Errorf("Expected events to be the single required top-level field, got %v", events.Required)
	}
	item := events.Properties["events"].Items
	if len(item.Required) != 8 {
		t.Errorf("Expected 8 required event fields, got %d", len(item.Required))
	}
	status := item.Properties["status"]
	if len(status.Enum) != 3 {
		t.Errorf("Expected status enum of 3 values, got %v", status.Enum)
	}

	recap := RecapSchema()
	for _, field := range []string{"summary", "results", "standings"} {
		found := false
		for _, required := range recap.Required {
			if required == field {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected %s required in the recap schema", field)
		}
	}
}

func TestMarshalSchemaForPrompt(t *testing.T) {
	blob := marshalSchema(EventListSchema())
	for _, needle := range []string{"events", "homeTeam", "upcoming"} {
		if !strings.Contains(blob, needle) {
			t.Errorf("Expected serialized schema to contain %q", needle)
		}
	}
}

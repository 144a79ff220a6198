package llm

import (
	"errors"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
)

// Provider names an external completion service.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGroq      Provider = "groq"
	ProviderCohere    Provider = "cohere"
	ProviderGoogle    Provider = "google"
)

type OpenAIConfig struct {
	APIKey     string `envconfig:"API_KEY"`
	Model      string `envconfig:"MODEL" default:"gpt-4-turbo-preview"`
	BaseURL    string `envconfig:"BASE_URL"`
	MaxRetries int    `envconfig:"MAX_RETRIES" default:"2"`
}

type AnthropicConfig struct {
	APIKey     string `envconfig:"API_KEY"`
	Model      string `envconfig:"MODEL" default:"claude-3-opus-20240229"`
	BaseURL    string `envconfig:"BASE_URL"`
	MaxRetries int    `envconfig:"MAX_RETRIES" default:"2"`
}

type GroqConfig struct {
	APIKey  string `envconfig:"API_KEY"`
	Model   string `envconfig:"MODEL" default:"mixtral-8x7b-32768"`
	BaseURL string `envconfig:"BASE_URL" default:"https://api.groq.com/openai/v1"`
}

type CohereConfig struct {
	APIKey     string `envconfig:"API_KEY"`
	Model      string `envconfig:"MODEL" default:"command"`
	BaseURL    string `envconfig:"BASE_URL" default:"https://api.cohere.ai/compatibility/v1"`
	MaxRetries int    `envconfig:"MAX_RETRIES" default:"2"`
}

type GoogleConfig struct {
	APIKey  string `envconfig:"API_KEY"`
	Model   string `envconfig:"MODEL" default:"gemini-1.5-pro"`
	BaseURL string `envconfig:"BASE_URL"`
}

// Config is processed without a prefix so each block reads its provider's
// conventional variables, e.g. OPENAI_API_KEY.
type Config struct {
	OpenAI    OpenAIConfig    `envconfig:"OPENAI"`
	Anthropic AnthropicConfig `envconfig:"ANTHROPIC"`
	Groq      GroqConfig      `envconfig:"GROQ"`
	Cohere    CohereConfig    `envconfig:"COHERE"`
	Google    GoogleConfig    `envconfig:"GOOGLE"`
}

// Endpoint is the resolved connection settings for one provider.
type Endpoint struct {
	Provider   Provider
	APIKey     string
	Model      string
	BaseURL    string
	MaxRetries int
}

func (c Config) Endpoint(p Provider) Endpoint {
	ep := Endpoint{Provider: p, MaxRetries: -1}
	switch p {
	case ProviderOpenAI:
		ep.APIKey, ep.Model, ep.BaseURL, ep.MaxRetries = c.OpenAI.APIKey, c.OpenAI.Model, c.OpenAI.BaseURL, c.OpenAI.MaxRetries
	case ProviderAnthropic:
		ep.APIKey, ep.Model, ep.BaseURL, ep.MaxRetries = c.Anthropic.APIKey, c.Anthropic.Model, c.Anthropic.BaseURL, c.Anthropic.MaxRetries
	case ProviderGroq:
		ep.APIKey, ep.Model, ep.BaseURL = c.Groq.APIKey, c.Groq.Model, c.Groq.BaseURL
	case ProviderCohere:
		ep.APIKey, ep.Model, ep.BaseURL, ep.MaxRetries = c.Cohere.APIKey, c.Cohere.Model, c.Cohere.BaseURL, c.Cohere.MaxRetries
	case ProviderGoogle:
		ep.APIKey, ep.Model, ep.BaseURL = c.Google.APIKey, c.Google.Model, c.Google.BaseURL
	}
	ep.APIKey = strings.TrimSpace(ep.APIKey)
	ep.Model = strings.TrimSpace(ep.Model)
	ep.BaseURL = strings.TrimRight(strings.TrimSpace(ep.BaseURL), "/")
	return ep
}

// Validate reports every provider used by the pipeline that lacks a key or model.
func (c Config) Validate() error {
	var errs []error
	for _, p := range Providers() {
		ep := c.Endpoint(p)
		if ep.APIKey == "" {
			errs = append(errs, fmt.Errorf("%w: %s_API_KEY is required", contractx.ErrValidation, strings.ToUpper(string(p))))
		}
		if ep.Model == "" {
			errs = append(errs, fmt.Errorf("%w: %s_MODEL is required", contractx.ErrValidation, strings.ToUpper(string(p))))
		}
	}
	return errors.Join(errs...)
}

// Providers lists the providers in the order their first role runs.
func Providers() []Provider {
	seen := map[Provider]bool{}
	var out []Provider
	for _, role := range contractx.Roles() {
		p := ProviderFor(role)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// ProviderFor maps each role to the provider that serves it.
func ProviderFor(role contractx.Role) Provider {
	switch role {
	case contractx.RoleLeadSolver, contractx.RoleConsensusBuilder:
		return ProviderOpenAI
	case contractx.RoleCritic:
		return ProviderAnthropic
	case contractx.RoleJudgment:
		return ProviderGroq
	case contractx.RoleStrategist:
		return ProviderCohere
	case contractx.RoleDataAugmentor:
		return ProviderGoogle
	default:
		return ""
	}
}

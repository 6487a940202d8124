// Package llm implements the conversational backend adapters, one per
// provider, behind the LargeLanguageModel port.
package llm

import (
	"fmt"
	"sort"

	"github.com/samvaad-ai/samvaad/domain/entities"
	"github.com/samvaad-ai/samvaad/domain/repositories"
)

// Provider names accepted by the chat proxy.
const (
	ProviderOpenAI = "OPENAI"
	ProviderGemini = "GEMINI"
	ProviderCustom = "CUSTOM"
)

// chatTemperature is the fixed sampling temperature for all providers.
const chatTemperature = 0.7

// Registry resolves provider names to configured model adapters. Providers
// without a configured key are simply absent; resolving them fails with a
// configuration error before any network call is made.
type Registry struct {
	models map[string]repositories.LargeLanguageModel
}

// Ensure Registry implements the ModelResolver interface
var _ repositories.ModelResolver = (*Registry)(nil)

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]repositories.LargeLanguageModel)}
}

// Register adds a configured model under a provider name.
func (r *Registry) Register(provider string, model repositories.LargeLanguageModel) {
	r.models[provider] = model
}

// Model returns the adapter for the provider name.
func (r *Registry) Model(provider string) (repositories.LargeLanguageModel, error) {
	model, ok := r.models[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entities.ErrConfiguration, provider)
	}
	return model, nil
}

// Providers lists the configured provider names, sorted.
func (r *Registry) Providers() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

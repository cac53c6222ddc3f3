// Package providers holds model provider metadata shared between the intent
// backends and the auth subsystem.
package providers

import "nathanbeddoewebdev/infrachat/internal/util"

// CredentialSpec describes how a model provider's API key is obtained and
// where it can be supplied.
type CredentialSpec struct {
	// Provider is the normalized provider name (e.g. "openai", "gemini").
	Provider string

	// DisplayName is the human-readable provider name (e.g. "OpenAI").
	DisplayName string

	// EnvVar overrides the keychain entry when set.
	EnvVar string

	// Prompt is the label shown when prompting for the key.
	Prompt string

	// KeyURL is where a key can be created.
	KeyURL string
}

// knownSpecs is the authoritative list of model provider credential specs.
// The auth commands iterate this to know how to prompt for keys.
var knownSpecs = []CredentialSpec{
	{
		Provider:    "openai",
		DisplayName: "OpenAI",
		EnvVar:      "OPENAI_API_KEY",
		Prompt:      "OpenAI API Key",
		KeyURL:      "https://platform.openai.com/api-keys",
	},
	{
		Provider:    "gemini",
		DisplayName: "Google Gemini",
		EnvVar:      "GEMINI_API_KEY",
		Prompt:      "Gemini API Key",
		KeyURL:      "https://aistudio.google.com/apikey",
	},
}

// Lookup returns the CredentialSpec for the given provider name,
// or nil if no spec is registered for that provider.
func Lookup(providerName string) *CredentialSpec {
	normalized := util.NormalizeKey(providerName)
	for i := range knownSpecs {
		if knownSpecs[i].Provider == normalized {
			return &knownSpecs[i]
		}
	}
	return nil
}

// All returns a copy of all registered credential specs.
func All() []CredentialSpec {
	out := make([]CredentialSpec, len(knownSpecs))
	copy(out, knownSpecs)
	return out
}

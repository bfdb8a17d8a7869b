package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"portfolio-chat-backend/internal/types"
)

// Fixed upstream parameters used when a persona file leaves them out.
const (
	DefaultModel       = "llama-3.1-8b-instant"
	DefaultTemperature = float32(0.7)
	DefaultMaxTokens   = 500
)

//go:embed prompts/persona.yaml
var defaultPersona []byte

// Persona is the system instruction block injected ahead of every conversation,
// together with the sampling parameters the relay sends upstream.
type Persona struct {
	System string
	Style  Style
}

type Style struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// personaFile is the on-disk layout. Temperature is a pointer so that an
// explicit 0 is kept and only a missing key falls back to the default.
type personaFile struct {
	System string `yaml:"system"`
	Style  struct {
		Model       string   `yaml:"model"`
		Temperature *float32 `yaml:"temperature"`
		MaxTokens   int      `yaml:"max_tokens"`
	} `yaml:"style"`
}

// Load reads a persona from path, or the embedded default when path is empty.
func Load(path string) (*Persona, error) {
	b := defaultPersona
	if strings.TrimSpace(path) != "" {
		var err error
		b, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read persona: %w", err)
		}
	}
	return Parse(b)
}

func Parse(b []byte) (*Persona, error) {
	var f personaFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse persona: %w", err)
	}
	if strings.TrimSpace(f.System) == "" {
		return nil, fmt.Errorf("persona has an empty system prompt")
	}
	if f.Style.Temperature != nil && *f.Style.Temperature < 0 {
		return nil, fmt.Errorf("persona temperature %v is negative", *f.Style.Temperature)
	}

	p := Persona{
		System: f.System,
		Style: Style{
			Model:       f.Style.Model,
			Temperature: DefaultTemperature,
			MaxTokens:   f.Style.MaxTokens,
		},
	}
	if strings.TrimSpace(p.Style.Model) == "" {
		p.Style.Model = DefaultModel
	}
	if f.Style.Temperature != nil {
		p.Style.Temperature = *f.Style.Temperature
	}
	if p.Style.MaxTokens <= 0 {
		p.Style.MaxTokens = DefaultMaxTokens
	}
	return &p, nil
}

// SystemMessage returns the message prepended to every upstream request.
func (p *Persona) SystemMessage() types.Message {
	return types.Message{Role: types.RoleSystem, Content: p.System}
}

package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Hasan-Creations/MobiSwap/pkg/config"
	"github.com/Hasan-Creations/MobiSwap/pkg/llm"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator implements llm.Generator on the Gemini API with JSON structured output.
type Generator struct {
	models      contentGenerator
	model       string
	temperature float32
	timeout     time.Duration
	log         *logger.Logger
}

// New dials the Gemini API using the configured key.
func New(ctx context.Context, cfg config.GenAIConfig, logg *logger.Logger) (*Generator, error) {
	if !cfg.Enabled() {
		return nil, errors.New("genai api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "genai client initialized")
	}
	return newGenerator(client.Models, cfg, logg), nil
}

func newGenerator(models contentGenerator, cfg config.GenAIConfig, logg *logger.Logger) *Generator {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Generator{
		models:      models,
		model:       model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		log:         logg,
	}
}

// Generate runs a single structured-output request. A response without text
// yields llm.ErrNoOutput.
func (g *Generator) Generate(ctx context.Context, prompt llm.Prompt) (json.RawMessage, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(g.temperature),
	}
	if prompt.Schema != nil {
		genCfg.ResponseSchema = toGenAISchema(prompt.Schema)
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt.Text), genCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate %s: %w", prompt.Name, err)
	}
	if resp == nil {
		return nil, llm.ErrNoOutput
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		if g.log != nil {
			g.log.Warn(g.log.WithField(ctx, "prompt", prompt.Name), "gemini returned no text")
		}
		return nil, llm.ErrNoOutput
	}
	return json.RawMessage(text), nil
}

func toGenAISchema(s *llm.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        toGenAIType(s.Type),
		Description: s.Description,
		MaxItems:    s.MaxItems,
		Items:       toGenAISchema(s.Items),
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenAISchema(prop)
		}
		// Required keys first so the model emits them in a stable order.
		out.PropertyOrdering = append([]string(nil), s.Required...)
	}
	return out
}

func toGenAIType(t llm.Type) genai.Type {
	switch t {
	case llm.TypeObject:
		return genai.TypeObject
	case llm.TypeArray:
		return genai.TypeArray
	case llm.TypeString:
		return genai.TypeString
	case llm.TypeNumber:
		return genai.TypeNumber
	case llm.TypeInteger:
		return genai.TypeInteger
	case llm.TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}

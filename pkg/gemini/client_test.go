package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/Hasan-Creations/MobiSwap/pkg/config"
	"github.com/Hasan-Creations/MobiSwap/pkg/llm"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
)

type fakeModels struct {
	resp    *genai.GenerateContentResponse
	err     error
	model   string
	config  *genai.GenerateContentConfig
	content []*genai.Content
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = cfg
	f.content = contents
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func TestGenerateReturnsJSON(t *testing.T) {
	fake := &fakeModels{resp: textResponse(`{"recommendations":["1"]}`)}
	gen := newGenerator(fake, config.GenAIConfig{Model: "gemini-test", Temperature: 0.2}, logger.Nop())

	schema := &llm.Schema{
		Type:     llm.TypeObject,
		Required: []string{"recommendations"},
		Properties: map[string]*llm.Schema{
			"recommendations": {Type: llm.TypeArray, Items: &llm.Schema{Type: llm.TypeString}, MaxItems: llm.Int64(3)},
		},
	}
	out, err := gen.Generate(context.Background(), llm.Prompt{Name: "recommend", Text: "pick phones", Schema: schema})
	require.NoError(t, err)
	assert.JSONEq(t, `{"recommendations":["1"]}`, string(out))

	assert.Equal(t, "gemini-test", fake.model)
	require.NotNil(t, fake.config)
	assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
	require.NotNil(t, fake.config.Temperature)
	assert.InDelta(t, 0.2, *fake.config.Temperature, 0.0001)
	require.NotNil(t, fake.config.ResponseSchema)
	assert.Equal(t, genai.TypeObject, fake.config.ResponseSchema.Type)
	require.Len(t, fake.content, 1)
	assert.Equal(t, "pick phones", fake.content[0].Parts[0].Text)
}

func TestGenerateEmptyTextIsNoOutput(t *testing.T) {
	fake := &fakeModels{resp: &genai.GenerateContentResponse{}}
	gen := newGenerator(fake, config.GenAIConfig{}, logger.Nop())

	_, err := gen.Generate(context.Background(), llm.Prompt{Name: "valuation", Text: "x"})
	assert.ErrorIs(t, err, llm.ErrNoOutput)
	assert.Equal(t, "gemini-2.0-flash", fake.model)
}

func TestGenerateWrapsTransportErrors(t *testing.T) {
	boom := errors.New("quota exceeded")
	gen := newGenerator(&fakeModels{err: boom}, config.GenAIConfig{}, logger.Nop())

	_, err := gen.Generate(context.Background(), llm.Prompt{Name: "valuation", Text: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, llm.ErrNoOutput)
}

func TestToGenAISchema(t *testing.T) {
	in := &llm.Schema{
		Type:        llm.TypeObject,
		Description: "valuation",
		Required:    []string{"low", "high"},
		Properties: map[string]*llm.Schema{
			"low":  {Type: llm.TypeNumber},
			"high": {Type: llm.TypeNumber},
			"tags": {Type: llm.TypeArray, Items: &llm.Schema{Type: llm.TypeString}, MaxItems: llm.Int64(2)},
		},
	}
	out := toGenAISchema(in)
	require.NotNil(t, out)
	assert.Equal(t, genai.TypeObject, out.Type)
	assert.Equal(t, "valuation", out.Description)
	assert.Equal(t, []string{"low", "high"}, out.Required)
	assert.Equal(t, []string{"low", "high"}, out.PropertyOrdering)
	assert.Equal(t, genai.TypeNumber, out.Properties["low"].Type)
	assert.Equal(t, genai.TypeArray, out.Properties["tags"].Type)
	assert.Equal(t, genai.TypeString, out.Properties["tags"].Items.Type)
	assert.Equal(t, int64(2), *out.Properties["tags"].MaxItems)
	assert.Nil(t, toGenAISchema(nil))
	assert.Equal(t, genai.TypeUnspecified, toGenAIType("tuple"))
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), config.GenAIConfig{}, logger.Nop())
	assert.Error(t, err)
}

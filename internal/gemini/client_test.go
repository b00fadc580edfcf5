package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/rogerio-castellano/inventory-insights/internal/insight"
	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	calls  int
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}}},
	}
}

func TestAnalyze_DecodesRecords(t *testing.T) {
	fake := &fakeModels{resp: textResponse(`[{"id":"1","type":"understock","productName":"Hydraulic Pump","severity":"high","message":"Low","action":"Reorder"}]`)}
	c := newClient(fake, Config{})

	raw, err := c.Analyze(context.Background(), []insight.ProductSummary{{Name: "Hydraulic Pump", Stock: 12, Min: 20, Max: 100, Location: models.LocationNorth, RecentSalesAvg: 4.5}})
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, "Hydraulic Pump", raw[0]["productName"])

	assert.Equal(t, DefaultAnalysisModel, fake.model)
	assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
	assert.Contains(t, fake.prompt, "senior supply chain AI analyst")
	assert.Contains(t, fake.prompt, `"recentSalesAvg":4.5`)
}

func TestAnalyze_EmptyBody(t *testing.T) {
	c := newClient(&fakeModels{resp: textResponse("  ")}, Config{})

	raw, err := c.Analyze(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestAnalyze_Malformed(t *testing.T) {
	c := newClient(&fakeModels{resp: textResponse("not json")}, Config{})

	_, err := c.Analyze(context.Background(), nil)
	assert.ErrorContains(t, err, "malformed analysis response")
}

func TestAnalyze_BreakerOpensAfterFailures(t *testing.T) {
	fake := &fakeModels{err: errors.New("503 unavailable")}
	c := newClient(fake, Config{})

	for range 3 {
		_, err := c.Analyze(context.Background(), nil)
		require.Error(t, err)
	}
	_, err := c.Analyze(context.Background(), nil)
	require.Error(t, err)

	assert.Equal(t, 3, fake.calls)
	assert.True(t, c.analysisCB.Open())
}

func TestGenerateImage_DataURI(t *testing.T) {
	fake := &fakeModels{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{
			{Text: "here is your image"},
			{InlineData: &genai.Blob{Data: []byte{0x89, 0x50, 0x4e, 0x47}, MIMEType: "image/png"}},
		}}}},
	}}
	c := newClient(fake, Config{ImageModel: "custom-image"})

	uri, err := c.GenerateImage(context.Background(), "Hydraulic Pump", "Hardware")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,iVBORw==", uri)

	assert.Equal(t, "custom-image", fake.model)
	assert.True(t, strings.HasPrefix(fake.prompt, "A professional, high-quality commercial studio photograph of a Hydraulic Pump (Hardware)."))
	require.NotNil(t, fake.config.ImageConfig)
	assert.Equal(t, "1:1", fake.config.ImageConfig.AspectRatio)
}

func TestGenerateImage_NoInlineData(t *testing.T) {
	c := newClient(&fakeModels{resp: textResponse("sorry")}, Config{})

	_, err := c.GenerateImage(context.Background(), "Valve", "Hardware")
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	assert.Error(t, err)
}

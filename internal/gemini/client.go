// Package gemini is the Google Gemini collaborator: it produces stock insights from
// product summaries and studio images for products.
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/rogerio-castellano/inventory-insights/internal/breaker"
	"github.com/rogerio-castellano/inventory-insights/internal/insight"
)

const (
	DefaultAnalysisModel = "gemini-3-pro-preview"
	DefaultImageModel    = "gemini-2.5-flash-image"
)

// ErrNoImage is returned when the image model answered without inline image data.
var ErrNoImage = errors.New("response contained no image")

// contentGenerator is the part of *genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Config struct {
	APIKey        string
	AnalysisModel string
	ImageModel    string
	// BreakerCooldown is how long a tripped breaker rejects calls before probing again.
	BreakerCooldown time.Duration
}

type Client struct {
	models        contentGenerator
	analysisModel string
	imageModel    string
	analysisCB    *breaker.Breaker
	imageCB       *breaker.Breaker
}

// NewClient connects to the Gemini API.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newClient(client.Models, cfg), nil
}

func newClient(models contentGenerator, cfg Config) *Client {
	if cfg.AnalysisModel == "" {
		cfg.AnalysisModel = DefaultAnalysisModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = 30 * time.Second
	}
	return &Client{
		models:        models,
		analysisModel: cfg.AnalysisModel,
		imageModel:    cfg.ImageModel,
		analysisCB:    breaker.New("gemini-analysis", cfg.BreakerCooldown),
		imageCB:       breaker.New("gemini-image", cfg.BreakerCooldown),
	}
}

const analysisPrompt = `Act as a senior supply chain AI analyst. Analyze the following inventory data and provide actionable optimization insights.
Identify:
1. Understock risks (stock near or below minStock relative to lead time).
2. Overstock risks (stock far exceeding maxStock or low turnover).
3. Rebalancing opportunities (moving stock between regions).

Data: %s`

var insightSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":          {Type: genai.TypeString},
			"type":        {Type: genai.TypeString, Format: "enum", Enum: []string{"understock", "overstock", "rebalance"}},
			"productName": {Type: genai.TypeString},
			"severity":    {Type: genai.TypeString, Format: "enum", Enum: []string{"low", "medium", "high"}},
			"message":     {Type: genai.TypeString},
			"action":      {Type: genai.TypeString},
		},
		Required: []string{"id", "type", "productName", "severity", "message", "action"},
	},
}

// Analyze implements insight.AnalysisProvider.
func (c *Client) Analyze(ctx context.Context, summaries []insight.ProductSummary) ([]insight.RawInsight, error) {
	data, err := json.Marshal(summaries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode summaries: %w", err)
	}

	out, err := c.analysisCB.Execute(func() (any, error) {
		return c.models.GenerateContent(ctx, c.analysisModel, genai.Text(fmt.Sprintf(analysisPrompt, data)), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   insightSchema,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("gemini analysis failed: %w", err)
	}

	resp, _ := out.(*genai.GenerateContentResponse)
	if resp == nil {
		return []insight.RawInsight{}, nil
	}
	return decodeInsights(resp.Text())
}

// decodeInsights parses the JSON array the model returns. An empty body is an empty
// answer, not an error.
func decodeInsights(text string) ([]insight.RawInsight, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []insight.RawInsight{}, nil
	}

	var raw []insight.RawInsight
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("malformed analysis response: %w", err)
	}
	return raw, nil
}

const imagePrompt = "A professional, high-quality commercial studio photograph of a %s (%s). The image should be clean, well-lit, with a minimalist professional background, suitable for an e-commerce inventory management system. Sharp focus, high resolution."

// GenerateImage returns a square product photo as a data URI.
func (c *Client) GenerateImage(ctx context.Context, name, category string) (string, error) {
	out, err := c.imageCB.Execute(func() (any, error) {
		return c.models.GenerateContent(ctx, c.imageModel, genai.Text(fmt.Sprintf(imagePrompt, name, category)), &genai.GenerateContentConfig{
			ImageConfig: &genai.ImageConfig{AspectRatio: "1:1"},
		})
	})
	if err != nil {
		return "", fmt.Errorf("gemini image generation failed: %w", err)
	}
	resp, _ := out.(*genai.GenerateContentResponse)
	return imageDataURI(resp)
}

// imageDataURI takes the first inline image of the first candidate, wherever it sits
// among the parts.
func imageDataURI(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoImage
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		mime := part.InlineData.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
	}
	return "", ErrNoImage
}

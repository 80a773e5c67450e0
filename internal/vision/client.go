package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"

	"image-translator/internal/logger"
)

const analysisPrompt = `Analyze each page image. Detect every text block and return strict JSON:
{"pages":[{"page":<1-based page number>,"blocks":[{"type":"heading|title|paragraph|caption|figure_caption|label|table|header|footer|other","bbox":[x1,y1,x2,y2],"text":"<translation>"}]}]}
bbox coordinates are pixels in the source image, origin top-left.
"text" is the block's content translated into %s, nothing else.
Return only the JSON object, no commentary.`

// ClientConfig configures the page analysis client.
type ClientConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	TargetLanguage string
}

// Client sends page rasters to a multimodal chat model and parses the
// structured analysis it returns.
type Client struct {
	model  *openai.ChatModel
	target string
}

// NewClient builds a client against an OpenAI-compatible endpoint.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("vision client: api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("vision client: model is required")
	}
	mcfg := &openai.ChatModelConfig{
		Model:  cfg.Model,
		APIKey: cfg.APIKey,
	}
	if cfg.BaseURL != "" {
		mcfg.BaseURL = cfg.BaseURL
	}
	cm, err := openai.NewChatModel(ctx, mcfg)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	target := cfg.TargetLanguage
	if target == "" {
		target = "English"
	}
	return &Client{model: cm, target: target}, nil
}

// AnalyzePages submits page images in order and returns the parsed document.
// Image index 0 is page 1.
func (c *Client) AnalyzePages(ctx context.Context, images [][]byte) (*Document, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("analyze pages: no images given")
	}

	parts := []schema.ChatMessagePart{
		{
			Type: schema.ChatMessagePartTypeText,
			Text: fmt.Sprintf(analysisPrompt, c.target),
		},
	}
	for i, img := range images {
		parts = append(parts, schema.ChatMessagePart{
			Type: schema.ChatMessagePartTypeImageURL,
			ImageURL: &schema.ChatMessageImageURL{
				URL:    dataURL(img),
				Detail: schema.ImageURLDetailHigh,
			},
		})
		logger.Debug("attached page image",
			logger.Int("page", i+1),
			logger.Int("bytes", len(img)))
	}

	msg := &schema.Message{Role: schema.User, MultiContent: parts}
	resp, err := c.model.Generate(ctx, []*schema.Message{msg})
	if err != nil {
		return nil, fmt.Errorf("vision model call: %w", err)
	}

	doc, err := Parse([]byte(resp.Content))
	if err != nil {
		return nil, err
	}
	logger.Info("pages analyzed",
		logger.Int("pages", len(doc.Pages)),
		logger.String("model_target", c.target))
	return doc, nil
}

// dataURL inlines PNG bytes for multimodal transport.
func dataURL(img []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img)
}

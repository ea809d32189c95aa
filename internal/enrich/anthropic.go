// Package enrich rewrites generated flavor text with a language model.
// It is strictly optional: the generator's fixed pools are the source of
// truth, and every failure here leaves them in place.
package enrich

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/avulnerador/shop-master/internal/config"
	"github.com/avulnerador/shop-master/internal/shop"
)

// apiKeyEnv is the only place the key is read from; it never appears in
// config files.
const apiKeyEnv = "ANTHROPIC_API_KEY"

// Client produces a single replacement flavor line for a shop.
type Client struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient builds an enrichment client from config.
//
// Postcondition: returns (nil, nil) when enrichment is disabled or no API
// key is present; callers treat a nil client as "feature off".
func NewClient(cfg config.EnrichConfig, logger *zap.Logger) (*Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	key := os.Getenv(apiKeyEnv)
	if key == "" {
		logger.Warn("flavor enrichment enabled but no API key present, disabling",
			zap.String("env", apiKeyEnv))
		return nil, nil
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("enrich: model must be set when enrichment is enabled")
	}
	return &Client{
		client:  anthropic.NewClient(option.WithAPIKey(key)),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// Describe asks the model for a one-line atmospheric description of the
// shop.
//
// Postcondition: on success returns a non-empty single line. Errors are
// returned for the caller to swallow; this package never fabricates text.
func (c *Client) Describe(ctx context.Context, s shop.Shop) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Write one atmospheric sentence describing the interior of %q, a %s run by %s, a %s %s shopkeeper. Respond with the sentence only.",
		s.Name, s.Type, s.NPC.Name, strings.ToLower(s.NPC.Personality), s.NPC.Race,
	)

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 128,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("enrich: message request: %w", err)
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", fmt.Errorf("enrich: model returned no text")
	}
	c.logger.Debug("flavor enriched", zap.String("shop", s.ID))
	return text, nil
}

// Package llm generates narrative insights from article headlines using an
// OpenAI-compatible endpoint. It is optional; when disabled the heuristic
// synthesizer produces insights instead.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/emmanuelkyeremeh/trendradar/pkg/config"
	"github.com/emmanuelkyeremeh/trendradar/pkg/domain"
)

// maxInsights caps how many generated insights are kept per cycle.
const maxInsights = 8

// Generator uses an LLM to produce insights from articles.
type Generator struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewGenerator creates a new LLM insight generator.
func NewGenerator(cfg config.LLMConfig) *Generator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Generator{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// default system prompt for insight generation
const defaultSystemPrompt = `You are a news analyst that identifies the dominant themes in a batch of headlines.
Group the headlines into topical insights. Each insight should contain:
- topic: a short display name for the theme (e.g. "Artificial Intelligence", "Cybersecurity")
- summary: one sentence describing the theme's activity, mentioning the number of related stories
- sentiment: one of "positive", "negative" or "neutral"
- articleCount: how many of the given headlines belong to the theme
- impactScore: 0-10 score proportional to the theme's share of all headlines
- trendDirection: one of "rising", "falling" or "stable"
- keywords: 1-4 lowercase keywords for the theme

Only report themes actually present in the headlines. Order insights by articleCount descending.`

// Generate produces insights from the given articles' headlines.
func (g *Generator) Generate(ctx context.Context, articles []domain.Article) ([]domain.Insight, error) {
	if len(articles) == 0 {
		return []domain.Insight{}, nil
	}

	prompt := g.buildPrompt(articles)

	// retry up to 3 times if we get invalid JSON
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		chatReq := openai.ChatCompletionRequest{
			Model:       g.config.Model,
			Temperature: float32(g.config.Temperature),
			MaxTokens:   g.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: g.systemMsg},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		}

		resp, err := g.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return nil, fmt.Errorf("llm request failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no response from llm")
		}

		insights, err := g.parseResponse(resp.Choices[0].Message.Content, len(articles))
		if err == nil {
			return insights, nil
		}
		lastErr = err

		// only JSON shape problems are worth another attempt
		if strings.Contains(err.Error(), "parse json") || strings.Contains(err.Error(), "no json array found") {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed after 3 attempts: %w", lastErr)
}

// buildPrompt creates the prompt listing the headlines to analyze.
func (g *Generator) buildPrompt(articles []domain.Article) string {
	var sb strings.Builder

	sb.WriteString("Analyze these headlines:\n\n")
	for i, article := range articles {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, article.Title))
		if article.Source != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", article.Source))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nRespond with a JSON array of insight objects.")
	return sb.String()
}

// parseResponse parses the LLM response into insights, dropping malformed
// entries and clamping scores.
func (g *Generator) parseResponse(content string, articleCount int) ([]domain.Insight, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("no json array found in response")
	}

	var insights []domain.Insight
	if err := json.Unmarshal([]byte(content[start:end+1]), &insights); err != nil {
		return nil, fmt.Errorf("parse json array response: %w", err)
	}

	valid := make([]domain.Insight, 0, len(insights))
	for _, ins := range insights {
		if ins.Topic == "" || ins.Summary == "" {
			continue
		}
		if !ins.Sentiment.Valid() {
			ins.Sentiment = domain.SentimentNeutral
		}
		if !ins.TrendDirection.Valid() {
			ins.TrendDirection = domain.DirectionStable
		}
		if ins.ArticleCount < 0 {
			ins.ArticleCount = 0
		}
		if ins.ArticleCount > articleCount {
			ins.ArticleCount = articleCount
		}
		if ins.ImpactScore < 0 {
			ins.ImpactScore = 0
		} else if ins.ImpactScore > 10 {
			ins.ImpactScore = 10
		}
		valid = append(valid, ins)
		if len(valid) == maxInsights {
			break
		}
	}

	return valid, nil
}

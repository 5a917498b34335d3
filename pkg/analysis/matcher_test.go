package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		want     bool
	}{
		{"exact keyword", "OpenAI ships new model", []string{"openai"}, true},
		{"case insensitive", "CHATGPT passes the bar exam", []string{"chatgpt"}, true},
		{"substring inside word", "Brainstorming tools compared", []string{"ai"}, true},
		{"first of several", "Tesla recalls cars", []string{"tesla", "musk"}, true},
		{"second of several", "Musk announces changes", []string{"tesla", "musk"}, true},
		{"no match", "Quiet day in tech", []string{"crypto", "bitcoin"}, false},
		{"empty text", "", []string{"ai"}, false},
		{"empty keyword set", "AI everywhere", nil, false},
		{"blank keyword ignored", "plain title", []string{""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.text, tt.keywords))
		})
	}
}

func TestTrendTopicRules_Order(t *testing.T) {
	rules := TrendTopicRules()
	topics := make([]string, 0, len(rules))
	for _, r := range rules {
		topics = append(topics, r.Topic)
	}
	assert.Equal(t, []string{"AI", "ChatGPT", "OpenAI", "Google", "Apple", "Microsoft", "Tesla/Musk", "Crypto", "Security"}, topics)
}

package analysis

import "github.com/emmanuelkyeremeh/trendradar/pkg/domain"

// TopicRule maps a display topic to the lowercase title substrings that select it.
type TopicRule struct {
	Topic    string
	Keywords []string
}

// trendTopicRules is the ordered rule list used by trend synthesis. An article
// can match any number of rules and contributes one mention per matched topic.
var trendTopicRules = []TopicRule{
	{Topic: "AI", Keywords: []string{"ai", "artificial intelligence"}},
	{Topic: "ChatGPT", Keywords: []string{"chatgpt"}},
	{Topic: "OpenAI", Keywords: []string{"openai"}},
	{Topic: "Google", Keywords: []string{"google"}},
	{Topic: "Apple", Keywords: []string{"apple"}},
	{Topic: "Microsoft", Keywords: []string{"microsoft"}},
	{Topic: "Tesla/Musk", Keywords: []string{"tesla", "musk"}},
	{Topic: "Crypto", Keywords: []string{"crypto", "bitcoin"}},
	{Topic: "Security", Keywords: []string{"security", "hack"}},
}

// TrendTopicRules returns the rule table used by trend synthesis.
func TrendTopicRules() []TopicRule {
	return trendTopicRules
}

// positiveTrendMentions is the mention count above which a synthesized trend is
// reported as positive. The threshold is inherited behavior, kept verbatim.
const positiveTrendMentions = 3

// maxSynthesizedTrends caps the number of topics trend synthesis reports.
const maxSynthesizedTrends = 10

// insightDomain defines one of the fixed topical domains insight synthesis
// evaluates: its selection rules, display keywords, summary template and
// sentiment policy.
type insightDomain struct {
	topic    string
	keywords []string // lowercase title substrings
	category string   // exact category match, empty when title-only
	display  []string // keywords shown on the insight card
	summary  string   // template interpolating the article count
	// sentiment resolves the domain's fixed sentiment policy for a given
	// article count.
	sentiment func(count int) domain.Sentiment
	// momentum reports whether the domain computes a trend direction from
	// its recent-article subset; all others report stable.
	momentum bool
}

var insightDomains = []insightDomain{
	{
		topic:    "Artificial Intelligence",
		keywords: []string{"ai", "chatgpt", "openai", "machine learning"},
		display:  []string{"AI", "ChatGPT", "OpenAI", "Machine Learning", "LLM"},
		summary: "%d articles discuss AI developments. Recent coverage includes ChatGPT updates, " +
			"OpenAI announcements, and AI applications across healthcare, enterprise, and consumer sectors.",
		sentiment: func(count int) domain.Sentiment {
			if count > 10 {
				return domain.SentimentPositive
			}
			return domain.SentimentNeutral
		},
		momentum: true,
	},
	{
		topic:    "Cybersecurity",
		keywords: []string{"hack", "security", "breach", "cyber"},
		category: "Security",
		display:  []string{"Security", "Hacking", "Data Breach", "Privacy", "Vulnerability"},
		summary: "%d security-related stories covering data breaches, hacking incidents, " +
			"vulnerability disclosures, and cybersecurity policy developments.",
		sentiment: func(int) domain.Sentiment { return domain.SentimentNegative },
	},
	{
		topic:    "Big Tech",
		keywords: []string{"google", "apple", "microsoft", "meta", "amazon"},
		display:  []string{"Google", "Apple", "Microsoft", "Meta", "Amazon"},
		summary: "Major tech companies feature in %d stories covering product launches, " +
			"regulatory changes, earnings reports, and strategic initiatives.",
		sentiment: func(int) domain.Sentiment { return domain.SentimentNeutral },
	},
	{
		topic:    "Startups & Funding",
		keywords: []string{"startup", "funding", "raises", "venture"},
		category: "Startups",
		display:  []string{"Startups", "Funding", "VC", "Investment", "Series A"},
		summary: "%d articles covering startup funding rounds, venture capital activity, " +
			"and emerging companies in AI, fintech, and enterprise software.",
		sentiment: func(int) domain.Sentiment { return domain.SentimentPositive },
	},
	{
		topic:    "Cloud & Infrastructure",
		keywords: []string{"cloud", "aws", "azure", "gcp", "kubernetes"},
		display:  []string{"Cloud", "AWS", "Kubernetes", "DevOps", "Infrastructure"},
		summary:  "%d stories on cloud computing, infrastructure-as-code, containerization, and DevOps practices.",
		sentiment: func(int) domain.Sentiment { return domain.SentimentNeutral },
	},
}

// maxSynthesizedInsights caps the insight list; a no-op with the current five
// domains but kept to match the inherited contract.
const maxSynthesizedInsights = 8

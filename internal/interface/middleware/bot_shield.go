package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/x-way/crawlerdetect"

	"github.com/oksasatya/acquisitions/pkg/response"
)

// AgentCategory classifies a User-Agent.
type AgentCategory string

const (
	AgentBrowser      AgentCategory = "browser"
	AgentSearchEngine AgentCategory = "search_engine"
	AgentPreview      AgentCategory = "preview"
	AgentTool         AgentCategory = "tool"
	AgentAutomated    AgentCategory = "automated"
)

// Allowed non-browser agents, checked in order before crawler detection.
var allowedAgents = []struct {
	category  AgentCategory
	fragments []string
}{
	{AgentSearchEngine, []string{"googlebot", "bingbot", "duckduckbot", "yandexbot", "baiduspider", "applebot", "slurp"}},
	{AgentPreview, []string{"slackbot", "slack-imgproxy", "discordbot", "twitterbot", "facebookexternalhit", "linkedinbot", "telegrambot", "whatsapp"}},
	{AgentTool, []string{"curl/", "postmanruntime", "insomnia", "httpie", "wget/"}},
}

// ClassifyUserAgent returns the category of ua. An empty agent counts as automated.
func ClassifyUserAgent(ua string) AgentCategory {
	ua = strings.TrimSpace(ua)
	if ua == "" {
		return AgentAutomated
	}
	lower := strings.ToLower(ua)
	for _, a := range allowedAgents {
		for _, f := range a.fragments {
			if strings.Contains(lower, f) {
				return a.category
			}
		}
	}
	if crawlerdetect.IsCrawler(ua) {
		return AgentAutomated
	}
	return AgentBrowser
}

// BotShield rejects automated clients with 403. Browsers, search engines,
// link previews and developer tools pass.
func BotShield(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if ClassifyUserAgent(c.Request.UserAgent()) == AgentAutomated {
			response.AbortError(c, http.StatusForbidden, "Forbidden")
			return
		}
		c.Next()
	}
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/oakhaus/oakhaus-api/internal/config"
	"github.com/oakhaus/oakhaus-api/internal/models"
	"github.com/oakhaus/oakhaus-api/internal/repository"
)

// TextSearchService turns a free-form customer query into catalog keywords
// via an LLM, then matches products on those keywords. The LLM is an
// enhancement only: any failure falls back to searching with the raw query,
// so the endpoint never errors because of the model.
type TextSearchService struct {
	products *repository.ProductRepository
	cfg      *config.SearchConfig
}

func NewTextSearchService(products *repository.ProductRepository, cfg *config.SearchConfig) *TextSearchService {
	return &TextSearchService{products: products, cfg: cfg}
}

// TextSearchResult carries the matched products plus the terms actually used,
// so the storefront can show "results for: ...".
type TextSearchResult struct {
	Products []models.ProductWithStock `json:"products"`
	Keywords []string                  `json:"keywords"`
	// Fallback is true when the raw query was used instead of LLM keywords.
	Fallback bool `json:"fallback"`
}

// Search extracts keywords from the query and matches products on them.
func (s *TextSearchService) Search(ctx context.Context, query string, limit int) (*TextSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &TextSearchResult{Products: []models.ProductWithStock{}, Keywords: []string{}}, nil
	}

	keywords, err := s.extractKeywords(ctx, query)
	fallback := false
	if err != nil || len(keywords) == 0 {
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("Keyword extraction failed, falling back to raw query")
		}
		keywords = []string{query}
		fallback = true
	}

	products, err := s.products.SearchByTerms(keywords, limit)
	if err != nil {
		return nil, err
	}
	return &TextSearchResult{Products: products, Keywords: keywords, Fallback: fallback}, nil
}

// extractKeywords asks the LLM for catalog search terms.
func (s *TextSearchService) extractKeywords(ctx context.Context, query string) ([]string, error) {
	if s.cfg.GroqAPIKey == "" {
		return nil, errors.New("search API key not configured")
	}

	prompt := fmt.Sprintf(`Extract furniture catalog search keywords from this customer query.

Query: %q

Rules:
- Return 1 to 5 short keywords (single words or two-word phrases).
- Keep only terms useful for matching furniture product names, categories, materials and colors.
- Drop filler words, greetings and intent phrases like "I am looking for".

Respond with JSON: {"keywords": ["...", "..."]}`, query)

	response, err := s.callGroqAPI(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse keyword response: %w", err)
	}

	keywords := make([]string, 0, len(parsed.Keywords))
	for _, k := range parsed.Keywords {
		k = strings.TrimSpace(k)
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords, nil
}

// callGroqAPI calls the Groq chat completions endpoint and returns the JSON
// object extracted from the model's reply.
func (s *TextSearchService) callGroqAPI(ctx context.Context, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"model": s.cfg.GroqModel,
		"messages": []interface{}{
			map[string]string{
				"role":    "system",
				"content": "You are a JSON-only response bot. You MUST respond with ONLY a valid JSON object. No explanations, no markdown, no text before or after the JSON. Start your response with { and end with }.",
			},
			map[string]string{
				"role":    "user",
				"content": prompt,
			},
		},
		"temperature": 0.1,
		"max_tokens":  500,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.groq.com/openai/v1/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+s.cfg.GroqAPIKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Groq API error: %s", string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", errors.New("no response from Groq API")
	}

	rawContent := result.Choices[0].Message.Content

	log.Debug().Str("raw_response", rawContent).Msg("Raw AI response")

	content := extractJSON(rawContent)
	if content == "" {
		log.Error().
			Str("raw_content", rawContent).
			Msg("Failed to extract JSON from AI response")
		return "", fmt.Errorf("no valid JSON found in AI response. Raw: %s", truncateString(rawContent, 200))
	}

	return content, nil
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// extractJSON extracts JSON object from a string that may contain extra text
func extractJSON(s string) string {
	s = strings.TrimSpace(s)

	// Remove markdown code block markers
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var jsonStr string
	if strings.HasPrefix(s, "{") {
		jsonStr = extractJSONObject(s)
	} else {
		startIdx := strings.Index(s, "{")
		if startIdx == -1 {
			return ""
		}
		jsonStr = extractJSONObject(s[startIdx:])
	}

	jsonStr = sanitizeJSON(jsonStr)

	if !isValidJSONObject(jsonStr) {
		return ""
	}

	return jsonStr
}

// isValidJSONObject checks if the string is a valid JSON object with at least one key-value pair
func isValidJSONObject(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 5 { // Minimum valid JSON: {"a":1}
		return false
	}
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return false
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return false
	}
	return len(obj) > 0
}

// extractJSONObject extracts a complete JSON object from a string starting with {
func extractJSONObject(s string) string {
	if !strings.HasPrefix(s, "{") {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i, char := range s {
		if escaped {
			escaped = false
			continue
		}

		if char == '\\' && inString {
			escaped = true
			continue
		}

		if char == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		if char == '{' {
			depth++
		} else if char == '}' {
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}

	// If we couldn't find matching braces, return the whole string
	// and let JSON parser handle the error
	return s
}

// sanitizeJSON fixes common JSON errors from AI responses
func sanitizeJSON(s string) string {
	// Remove trailing commas before } or ]
	trailingCommaRegex := regexp.MustCompile(`,\s*([}\]])`)
	s = trailingCommaRegex.ReplaceAllString(s, "$1")

	// Fix unquoted keys (simple cases like {key: "value"} -> {"key": "value"})
	unquotedKeyRegex := regexp.MustCompile(`([{,]\s*)([a-zA-Z_][a-zA-Z0-9_]*)\s*:`)
	s = unquotedKeyRegex.ReplaceAllString(s, `$1"$2":`)

	return s
}

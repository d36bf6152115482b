package chef

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Groq names dishes through an OpenAI-compatible chat completions API.
type Groq struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
	model      string
}

func NewGroq(apiKey, apiURL, model string) *Groq {
	return &Groq{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     apiKey,
		apiURL:     strings.TrimRight(apiURL, "/"),
		model:      model,
	}
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func dishPrompt(ingredients []string) string {
	return `You are the chef of a party game. Invent a fictional dish using the ingredients below.
Ingredients: ` + strings.Join(ingredients, ", ") + `

Respond in this JSON format:
{
  "name": "dish name (at most 20 characters, humorous)",
  "description": "description of the dish (50 to 100 characters, fun for a party game)"
}
Output only the JSON object and nothing else.`
}

func (g *Groq) GenerateDish(ctx context.Context, ingredients []string) (Idea, error) {
	if g.apiKey == "" {
		return Idea{}, ErrNotConfigured
	}

	reqBody := chatRequest{
		Model:          g.model,
		Messages:       []chatMessage{{Role: "user", Content: dishPrompt(ingredients)}},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return Idea{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return Idea{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Idea{}, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Idea{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Idea{}, fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return Idea{}, fmt.Errorf("parsing chat response: %w", err)
	}
	if chatResp.Error != nil {
		return Idea{}, fmt.Errorf("chat API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return Idea{}, fmt.Errorf("empty response from chat API")
	}

	var idea Idea
	if err := json.Unmarshal([]byte(cleanJSONContent(chatResp.Choices[0].Message.Content)), &idea); err != nil {
		return Idea{}, fmt.Errorf("model returned invalid JSON: %w", err)
	}
	if idea.Name == "" {
		return Idea{}, fmt.Errorf("model returned a dish without a name")
	}
	return idea, nil
}

// cleanJSONContent strips markdown code fences some models wrap JSON in.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

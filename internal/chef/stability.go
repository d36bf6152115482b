package chef

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Stability illustrates dishes with the Stability AI image API.
type Stability struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
}

func NewStability(apiKey, apiURL string) *Stability {
	return &Stability{
		httpClient: &http.Client{Timeout: 90 * time.Second},
		apiKey:     apiKey,
		apiURL:     apiURL,
	}
}

type imageResponse struct {
	Image        string `json:"image"`
	FinishReason string `json:"finish_reason"`
}

func imagePrompt(idea Idea, ingredients []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A delicious and humorous food illustration of %q. Description: %s.", idea.Name, idea.Description)
	if len(ingredients) > 0 {
		fmt.Fprintf(&b, " Made from: %s.", strings.Join(ingredients, ", "))
	}
	b.WriteString(" Style: Pop art, vibrant colors, white background, simple composition, high quality food illustration.")
	return b.String()
}

// GenerateImage returns the image as a data URL.
func (s *Stability) GenerateImage(ctx context.Context, idea Idea, ingredients []string) (string, error) {
	if s.apiKey == "" {
		return "", ErrNotConfigured
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("prompt", imagePrompt(idea, ingredients)); err != nil {
		return "", fmt.Errorf("writing prompt field: %w", err)
	}
	if err := mw.WriteField("output_format", "png"); err != nil {
		return "", fmt.Errorf("writing format field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, &body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image API returned status %d: %s", resp.StatusCode, string(data))
	}

	var img imageResponse
	if err := json.Unmarshal(data, &img); err != nil {
		return "", fmt.Errorf("parsing image response: %w", err)
	}
	if img.Image == "" {
		return "", fmt.Errorf("image API returned no image (finish reason %q)", img.FinishReason)
	}
	return "data:image/png;base64," + img.Image, nil
}

package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

func init() {
	Register("vlm", func(cfg Config) (Engine, error) {
		return NewVisionModel(cfg)
	})
}

// VisionModel reads text out of images with a multimodal model served over
// the Ollama chat API.
type VisionModel struct {
	httpClient *http.Client
	ServerURL  string
	Model      string
	MaxTokens  int
}

// NewVisionModel validates cfg and returns a client for it.
func NewVisionModel(cfg Config) (*VisionModel, error) {
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("vision model server url is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("vision model name is required")
	}
	return &VisionModel{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		ServerURL:  cfg.ServerURL,
		Model:      cfg.Model,
		MaxTokens:  cfg.MaxTokens,
	}, nil
}

type chatMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatResponse struct {
	Model     string      `json:"model"`
	CreatedAt time.Time   `json:"created_at"`
	Message   chatMessage `json:"message"`
	Done      bool        `json:"done"`
	Error     string      `json:"error,omitempty"`
}

func (v *VisionModel) Name() string { return "vlm" }

// Recognize sends the image with the OCR prompt and returns the model's reply.
func (v *VisionModel) Recognize(ctx context.Context, in Input) (Result, error) {
	if len(in.Image) == 0 {
		return Result{}, fmt.Errorf("empty image")
	}
	prompt := in.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	request := chatRequest{
		Model: v.Model,
		Messages: []chatMessage{{
			Role:    "user",
			Content: prompt,
			Images:  []string{base64.StdEncoding.EncodeToString(in.Image)},
		}},
		Stream:  false,
		Options: chatOptions{Temperature: 0, NumPredict: v.MaxTokens},
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal ocr request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.ServerURL, bytes.NewBuffer(payload))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create ocr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to send ocr request to %s: %w", v.ServerURL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Result{}, fmt.Errorf("vision model returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return Result{}, fmt.Errorf("failed to decode ocr response: %w", err)
	}
	if chatResp.Error != "" {
		return Result{}, fmt.Errorf("vision model error: %s", chatResp.Error)
	}

	return Result{Text: strings.TrimSpace(chatResp.Message.Content), Engine: v.Name()}, nil
}

package mentor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyReply = errors.New("mentor: empty reply")

const streamDoneSentinel = "[DONE]"

// Request is one conversational turn.
type Request struct {
	ConversationID string `json:"conversation_id"`
	Prompt         string `json:"prompt"`
	Stream         bool   `json:"stream"`
}

// NewRequest mints a turn with a fresh conversation id.
func NewRequest(p Persona, t Tuning, tone, message string) Request {
	return Request{
		ConversationID: uuid.NewString(),
		Prompt:         BuildPrompt(p, t, tone, message),
	}
}

type singleResponse struct {
	Response string `json:"response"`
	Message  string `json:"message"`
}

type streamChunk struct {
	Content string `json:"content"`
}

type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

type ClientOption func(*Client)

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = h }
}

func NewClient(endpoint, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) post(ctx context.Context, req Request, accept string) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("mentor: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("mentor: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", accept)
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("mentor: call endpoint: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("mentor: endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return resp, nil
}

// Send performs a single-shot turn and returns the full reply text. The
// endpoint answers with a JSON object carrying either a response or a
// message field.
func (c *Client) Send(ctx context.Context, req Request) (string, error) {
	req.Stream = false
	resp, err := c.post(ctx, req, "application/json")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out singleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("mentor: decode reply: %w", err)
	}
	reply := out.Response
	if reply == "" {
		reply = out.Message
	}
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

// Stream performs a streamed turn: the endpoint emits `data:` lines, each a
// JSON chunk with partial content, terminated by a [DONE] sentinel. onChunk
// is called once per chunk; returning an error aborts the stream.
func (c *Client) Stream(ctx context.Context, req Request, onChunk func(content string) error) error {
	req.Stream = true
	resp, err := c.post(ctx, req, "text/event-stream")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == streamDoneSentinel {
			return nil
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return fmt.Errorf("mentor: decode chunk: %w", err)
		}
		if chunk.Content == "" {
			continue
		}
		if err := onChunk(chunk.Content); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("mentor: read stream: %w", err)
	}
	// Stream ended without the sentinel; treat a clean EOF as done.
	return nil
}

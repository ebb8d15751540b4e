package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"
)

const deepgramURL = "https://api.deepgram.com"

type DeepgramClient struct {
	apiKey   string
	language string
	baseURL  string
	client   *http.Client
}

func NewDeepgramClient(apiKey, language string) *DeepgramClient {
	if language == "" {
		language = "en"
	}
	return &DeepgramClient{
		apiKey:   apiKey,
		language: language,
		baseURL:  deepgramURL,
		client:   &http.Client{},
	}
}

func (c *DeepgramClient) WithBaseURL(u string) *DeepgramClient {
	c.baseURL = u
	return c
}

func (c *DeepgramClient) Transcribe(ctx context.Context, audio Audio) (string, error) {
	q := url.Values{}
	q.Set("model", "nova-2")
	q.Set("smart_format", "false")
	q.Set("numerals", "true")
	q.Set("language", c.language)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/listen?"+q.Encode(),
		bytes.NewReader(audio.Data),
	)
	if err != nil {
		return "", err
	}

	mime := audio.MIME
	if mime == "" {
		mime = "audio/ogg"
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", mime)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepgram request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepgram error: %s", body)
	}

	var parsed struct {
		Results struct {
			Channels []struct {
				Alternatives []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode deepgram: %w", err)
	}

	if len(parsed.Results.Channels) == 0 ||
		len(parsed.Results.Channels[0].Alternatives) == 0 ||
		parsed.Results.Channels[0].Alternatives[0].Transcript == "" {
		return "", ErrEmptyTranscript
	}

	return parsed.Results.Channels[0].Alternatives[0].Transcript, nil
}

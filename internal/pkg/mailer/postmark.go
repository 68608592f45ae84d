package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultPostmarkURL = "https://api.postmarkapp.com/email"

// PostmarkClient talks to the Postmark transactional email API.
type PostmarkClient struct {
	serverToken string
	apiURL      string
	httpClient  *http.Client
}

type PostmarkOption func(*PostmarkClient)

func WithHTTPClient(c *http.Client) PostmarkOption {
	return func(pc *PostmarkClient) {
		pc.httpClient = c
	}
}

func WithAPIURL(url string) PostmarkOption {
	return func(pc *PostmarkClient) {
		pc.apiURL = url
	}
}

func NewPostmarkClient(serverToken string, opts ...PostmarkOption) *PostmarkClient {
	c := &PostmarkClient{
		serverToken: serverToken,
		apiURL:      defaultPostmarkURL,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the server token is set.
func (c *PostmarkClient) Configured() bool {
	return c.serverToken != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
	ReplyTo  string `json:"ReplyTo,omitempty"`
	Cc       string `json:"Cc,omitempty"`
	Bcc      string `json:"Bcc,omitempty"`
}

type postmarkResponse struct {
	MessageID string `json:"MessageID"`
	ErrorCode int    `json:"ErrorCode"`
	Message   string `json:"Message"`
}

// Send delivers one message and returns the provider message id together
// with the HTTP status code of the API call.
func (c *PostmarkClient) Send(msg Message) (string, int, error) {
	if !c.Configured() {
		return "", 0, fmt.Errorf("postmark client not configured: missing server token")
	}

	to := msg.To
	if msg.ToName != "" {
		to = fmt.Sprintf("%s <%s>", msg.ToName, msg.To)
	}

	payload := postmarkEmail{
		From:     msg.From,
		To:       to,
		Subject:  msg.Subject,
		HtmlBody: msg.HTMLBody,
		TextBody: msg.TextBody,
		ReplyTo:  msg.ReplyTo,
		Cc:       strings.Join(msg.Cc, ","),
		Bcc:      strings.Join(msg.Bcc, ","),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", 0, fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequest("POST", c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode >= 400 {
		var pmErr postmarkResponse
		if json.Unmarshal(respBody, &pmErr) == nil && pmErr.Message != "" {
			return "", resp.StatusCode, fmt.Errorf("postmark API error %d: %s", pmErr.ErrorCode, pmErr.Message)
		}
		return "", resp.StatusCode, fmt.Errorf("postmark API error: status %d", resp.StatusCode)
	}

	var pmResp postmarkResponse
	if err := json.Unmarshal(respBody, &pmResp); err != nil {
		return "", resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}

	return pmResp.MessageID, resp.StatusCode, nil
}

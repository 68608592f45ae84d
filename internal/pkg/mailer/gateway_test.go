package mailer

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeProvider struct {
	configured bool
	messageID  string
	statusCode int
	err        error
	calls      int
}

func (f *fakeProvider) Configured() bool {
	return f.configured
}

func (f *fakeProvider) Send(msg Message) (string, int, error) {
	f.calls++
	return f.messageID, f.statusCode, f.err
}

func TestGatewayDryRunNeverCallsProvider(t *testing.T) {
	provider := &fakeProvider{configured: true, messageID: "real-id"}
	gw := NewGateway(provider, "noreply@vetdesk.app", true)

	result := gw.Send(Message{To: "owner@example.com", Subject: "Reminder"})

	if !result.Success {
		t.Fatalf("dry-run send should succeed, got %+v", result)
	}
	if !strings.HasPrefix(result.MessageID, DryRunPrefix) {
		t.Fatalf("message id %q missing prefix %q", result.MessageID, DryRunPrefix)
	}
	if len(result.MessageID) <= len(DryRunPrefix) {
		t.Fatalf("message id %q has no unique suffix", result.MessageID)
	}
	if provider.calls != 0 {
		t.Fatalf("dry-run must not call the provider, got %d calls", provider.calls)
	}
}

func TestGatewayDryRunIDsAreUnique(t *testing.T) {
	gw := NewGateway(nil, "noreply@vetdesk.app", true)

	first := gw.Send(Message{To: "a@b.co"})
	second := gw.Send(Message{To: "a@b.co"})
	if first.MessageID == second.MessageID {
		t.Fatalf("dry-run message ids must be unique, both %q", first.MessageID)
	}
}

func TestGatewayLiveSuccess(t *testing.T) {
	provider := &fakeProvider{configured: true, messageID: "pm-123", statusCode: 200}
	gw := NewGateway(provider, "noreply@vetdesk.app", false)

	result := gw.Send(Message{To: "owner@example.com"})

	if !result.Success || result.MessageID != "pm-123" {
		t.Fatalf("unexpected result %+v", result)
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}
}

func TestGatewayLiveMissingMessageIDIsFailure(t *testing.T) {
	provider := &fakeProvider{configured: true, messageID: "", statusCode: 200}
	gw := NewGateway(provider, "noreply@vetdesk.app", false)

	result := gw.Send(Message{To: "owner@example.com"})

	if result.Success {
		t.Fatalf("missing message id must be a failure, got %+v", result)
	}
	if result.ErrorMessage == "" {
		t.Fatalf("expected error message in result")
	}
}

func TestGatewayLiveProviderError(t *testing.T) {
	provider := &fakeProvider{configured: true, statusCode: 422, err: errors.New("invalid recipient")}
	gw := NewGateway(provider, "noreply@vetdesk.app", false)

	result := gw.Send(Message{To: "owner@example.com"})

	if result.Success {
		t.Fatalf("provider error must be a failure")
	}
	if result.StatusCode != 422 {
		t.Fatalf("StatusCode = %d, want 422", result.StatusCode)
	}
}

func TestGatewayUnconfiguredProvider(t *testing.T) {
	gw := NewGateway(&fakeProvider{configured: false}, "noreply@vetdesk.app", false)

	result := gw.Send(Message{To: "owner@example.com"})

	if result.Success {
		t.Fatalf("unconfigured provider must fail")
	}
}

func TestGatewayAppliesDefaultFrom(t *testing.T) {
	var captured postmarkEmail
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"MessageID": "pm-42"}`))
	}))
	defer server.Close()

	client := NewPostmarkClient("test-token", WithAPIURL(server.URL), WithHTTPClient(server.Client()))
	gw := NewGateway(client, "noreply@vetdesk.app", false)

	result := gw.Send(Message{To: "owner@example.com", ToName: "Robin Banks", Subject: "Hi"})

	if !result.Success || result.MessageID != "pm-42" {
		t.Fatalf("unexpected result %+v", result)
	}
	if captured.From != "noreply@vetdesk.app" {
		t.Fatalf("From = %q, want default sender", captured.From)
	}
	if captured.To != "Robin Banks <owner@example.com>" {
		t.Fatalf("To = %q, want named recipient", captured.To)
	}
}

func TestPostmarkClientSend(t *testing.T) {
	var gotToken string
	var received postmarkEmail
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Postmark-Server-Token")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"MessageID": "test-id"}`))
	}))
	defer server.Close()

	client := NewPostmarkClient("test-token", WithAPIURL(server.URL), WithHTTPClient(server.Client()))

	id, status, err := client.Send(Message{
		From:     "noreply@vetdesk.app",
		To:       "alice@example.com",
		Subject:  "Appointment confirmed",
		HTMLBody: "<p>See you soon</p>",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if id != "test-id" || status != http.StatusOK {
		t.Fatalf("id = %q status = %d", id, status)
	}
	if gotToken != "test-token" {
		t.Fatalf("server token = %q, want %q", gotToken, "test-token")
	}
	if received.Subject != "Appointment confirmed" {
		t.Fatalf("Subject = %q", received.Subject)
	}
}

func TestPostmarkClientErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"ErrorCode": 300, "Message": "Invalid email address"}`))
	}))
	defer server.Close()

	client := NewPostmarkClient("test-token", WithAPIURL(server.URL), WithHTTPClient(server.Client()))

	_, status, err := client.Send(Message{To: "broken"})
	if err == nil {
		t.Fatal("expected error for 422 response")
	}
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", status)
	}
	if !strings.Contains(err.Error(), "Invalid email address") {
		t.Fatalf("error %q should carry the provider message", err)
	}
}

func TestPostmarkClientNotConfigured(t *testing.T) {
	client := NewPostmarkClient("")

	if _, _, err := client.Send(Message{To: "a@b.co"}); err == nil {
		t.Fatal("expected error for unconfigured client")
	}
}

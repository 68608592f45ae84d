package mailer

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// DryRunPrefix marks synthesized message ids so tests and log readers can
// tell them apart from real provider ids.
const DryRunPrefix = "dry-run-"

// Message is a fully rendered email ready for delivery.
type Message struct {
	From     string
	To       string
	ToName   string
	Subject  string
	HTMLBody string
	TextBody string
	ReplyTo  string
	Cc       []string
	Bcc      []string
}

// DeliveryResult is the normalized outcome of one send attempt. Gateway and
// dispatcher both report through this shape; neither ever returns an error.
type DeliveryResult struct {
	Success      bool   `json:"success"`
	Skipped      bool   `json:"skipped"`
	SkipReason   string `json:"skip_reason,omitempty"`
	MessageID    string `json:"message_id,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	StatusCode   int    `json:"status_code,omitempty"`
}

// Provider is the transactional email API the gateway wraps.
type Provider interface {
	Configured() bool
	Send(msg Message) (messageID string, statusCode int, err error)
}

// Gateway sends rendered messages through the provider, or simulates
// delivery in dry-run mode. Send never panics and never returns an error;
// every failure is folded into the DeliveryResult.
type Gateway struct {
	provider Provider
	from     string
	dryRun   bool
}

// NewGateway creates a delivery gateway. The provider client is injected by
// the composition root; there is no lazily built global instance.
func NewGateway(provider Provider, from string, dryRun bool) *Gateway {
	return &Gateway{provider: provider, from: from, dryRun: dryRun}
}

// DryRun reports whether the gateway simulates delivery.
func (g *Gateway) DryRun() bool {
	return g.dryRun
}

// Send delivers one message. In dry-run mode it synthesizes a success result
// with a recognizable message id and never contacts the provider. In live
// mode a response without a provider message id counts as a failure even
// when the call itself succeeded.
func (g *Gateway) Send(msg Message) DeliveryResult {
	if msg.From == "" {
		msg.From = g.from
	}

	if g.dryRun {
		id := DryRunPrefix + uuid.New().String()
		log.Infof("[Mailer] Dry-run send to %s (subject %q), message id %s", msg.To, msg.Subject, id)
		return DeliveryResult{Success: true, MessageID: id}
	}

	if g.provider == nil || !g.provider.Configured() {
		return DeliveryResult{
			Success:      false,
			ErrorMessage: "mail provider not configured",
		}
	}

	messageID, statusCode, err := g.provider.Send(msg)
	if err != nil {
		log.Errorf("[Mailer] Send to %s failed: %v", msg.To, err)
		return DeliveryResult{
			Success:      false,
			ErrorMessage: err.Error(),
			StatusCode:   statusCode,
		}
	}
	if messageID == "" {
		log.Errorf("[Mailer] Provider accepted send to %s but returned no message id", msg.To)
		return DeliveryResult{
			Success:      false,
			ErrorMessage: "provider response missing message id",
			StatusCode:   statusCode,
		}
	}

	return DeliveryResult{Success: true, MessageID: messageID, StatusCode: statusCode}
}

// SkippedResult builds the distinguishable non-failure result used when a
// send is intentionally not attempted.
func SkippedResult(reason string) DeliveryResult {
	return DeliveryResult{Skipped: true, SkipReason: reason}
}

// FailedResult builds a failure result from an error.
func FailedResult(err error) DeliveryResult {
	return DeliveryResult{Success: false, ErrorMessage: fmt.Sprintf("%v", err)}
}

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/msaleh/formgate/internal/domain/schema"
	"github.com/msaleh/formgate/pkg/phone"
)

const (
	templateApproved = "submission_approved"
	templateRejected = "submission_rejected"
)

// WhatsAppNotifier posts template messages to an external WhatsApp
// gateway. The HTTP client carries a bounded timeout so a slow gateway
// cannot hang the dispatcher worker.
type WhatsAppNotifier struct {
	gatewayURL string
	token      string
	client     *http.Client
	logger     *zap.Logger
}

func NewWhatsAppNotifier(gatewayURL, token string, timeout time.Duration, logger *zap.Logger) *WhatsAppNotifier {
	return &WhatsAppNotifier{
		gatewayURL: gatewayURL,
		token:      token,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type gatewayMessage struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Language string            `json:"language"`
	Params   map[string]string `json:"params"`
}

func (n *WhatsAppNotifier) NotifyApproved(ctx context.Context, event Event) bool {
	return n.send(ctx, event, templateApproved, map[string]string{
		"name":      event.SubmitterName,
		"reference": event.ReferenceNo,
	})
}

func (n *WhatsAppNotifier) NotifyRejected(ctx context.Context, event Event) bool {
	return n.send(ctx, event, templateRejected, map[string]string{
		"name":      event.SubmitterName,
		"reference": event.ReferenceNo,
		"reason":    event.ReasonAr,
	})
}

func (n *WhatsAppNotifier) send(ctx context.Context, event Event, template string, params map[string]string) bool {
	if n.gatewayURL == "" {
		n.logger.Debug("whatsapp gateway not configured, skipping",
			zap.Uint("submission_id", event.SubmissionID))
		return false
	}

	to, err := phone.Normalize(event.Values[schema.FieldPhoneNumber])
	if err != nil {
		n.logger.Warn("cannot notify submitter without a valid phone",
			zap.Uint("submission_id", event.SubmissionID),
			zap.Error(err))
		return false
	}

	payload, err := json.Marshal(gatewayMessage{
		To:       to,
		Template: template,
		Language: "ar",
		Params:   params,
	})
	if err != nil {
		n.logger.Error("marshal gateway message", zap.Error(err))
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		n.logger.Error("build gateway request", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("gateway request failed",
			zap.Uint("submission_id", event.SubmissionID),
			zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		n.logger.Warn("gateway rejected message",
			zap.Uint("submission_id", event.SubmissionID),
			zap.Int("status", resp.StatusCode))
		return false
	}
	return true
}

// Package whatsapp implements the outbound WhatsApp Business (Meta Graph)
// client: free-text sends, template sends with component parameters, webhook
// verification, and inbound event payload shapes.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultSendTimeout = 15 * time.Second

// ---------------------------------------------------------------------------
// Payload shapes
// ---------------------------------------------------------------------------

// Param is a single typed template parameter. For button parameters SubType
// and Index select the button slot ("url", 0 when unset).
type Param struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	SubType string `json:"-"`
	Index   *int   `json:"-"`
}

// TemplateParams groups template parameters by component type, e.g.
// {"body": [...], "button": [...]}.
type TemplateParams map[string][]Param

type textBody struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type templateLanguage struct {
	Code string `json:"code"`
}

type templateComponent struct {
	Type       string  `json:"type"`
	SubType    string  `json:"sub_type,omitempty"`
	Index      *int    `json:"index,omitempty"`
	Parameters []Param `json:"parameters"`
}

type templateBody struct {
	Name       string              `json:"name"`
	Language   templateLanguage    `json:"language"`
	Components []templateComponent `json:"components,omitempty"`
}

type messagePayload struct {
	MessagingProduct string        `json:"messaging_product"`
	RecipientType    string        `json:"recipient_type,omitempty"`
	To               string        `json:"to"`
	Type             string        `json:"type"`
	Text             *textBody     `json:"text,omitempty"`
	Template         *templateBody `json:"template,omitempty"`
}

// SendResponse is the subset of the Graph API response the caller cares about.
type SendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// ---------------------------------------------------------------------------
// Client
// ---------------------------------------------------------------------------

// Config carries the WhatsApp Business API credentials.
type Config struct {
	AccessToken   string
	PhoneNumberID string
	VerifyToken   string
	APIVersion    string
	// BaseURL overrides the Graph API host. Empty means production.
	BaseURL string
}

// Client talks to the WhatsApp Business API. It does not retry; delivery
// failures are logged and returned to the caller.
type Client struct {
	cfg    Config
	apiURL string
	httpc  *http.Client
	logger zerolog.Logger
}

// NewClient validates the configuration and builds a Client.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.AccessToken == "" || cfg.PhoneNumberID == "" {
		return nil, fmt.Errorf("whatsapp configuration is incomplete: access token and phone number id are required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://graph.facebook.com"
	}
	return &Client{
		cfg:    cfg,
		apiURL: fmt.Sprintf("%s/%s/%s/messages", base, cfg.APIVersion, cfg.PhoneNumberID),
		httpc:  &http.Client{Timeout: defaultSendTimeout},
		logger: logger.With().Str("component", "whatsapp").Logger(),
	}, nil
}

// VerifyToken checks a webhook verification token from Meta against the
// configured secret.
func (c *Client) VerifyToken(token string) bool {
	return token == c.cfg.VerifyToken
}

// DispatchNumber converts a phone number into the digits-only,
// country-code-first form the transport API expects. This is distinct from
// the "+"-prefixed form used for identity lookups.
func DispatchNumber(phone string) string {
	n := strings.ReplaceAll(strings.TrimSpace(phone), "+", "")
	if !strings.HasPrefix(n, "91") {
		n = "91" + n
	}
	return n
}

// SendText sends a free-text message. to may be in either the "+"-prefixed
// lookup form or the bare dispatch form; it is normalized for the transport.
func (c *Client) SendText(ctx context.Context, to, body string) (*SendResponse, error) {
	payload := messagePayload{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               DispatchNumber(to),
		Type:             "text",
		Text:             &textBody{Body: body},
	}
	return c.post(ctx, payload)
}

// SendTemplate sends a pre-approved template message. Each non-button
// parameter group becomes one component; every button parameter becomes its
// own component carrying sub_type/index metadata.
func (c *Client) SendTemplate(ctx context.Context, to, templateName, language string, params TemplateParams) (*SendResponse, error) {
	if language == "" {
		language = "en"
	}

	tmpl := &templateBody{
		Name:     templateName,
		Language: templateLanguage{Code: language},
	}
	tmpl.Components = buildComponents(params)

	payload := messagePayload{
		MessagingProduct: "whatsapp",
		To:               DispatchNumber(to),
		Type:             "template",
		Template:         tmpl,
	}

	c.logger.Info().Str("to", to).Str("template", templateName).Msg("sending template")
	return c.post(ctx, payload)
}

func buildComponents(params TemplateParams) []templateComponent {
	// Fixed emission order: body, then other groups alphabetically,
	// buttons last. Map iteration order must not leak into payloads.
	types := make([]string, 0, len(params))
	for componentType := range params {
		types = append(types, componentType)
	}
	sort.Slice(types, func(i, j int) bool {
		rank := func(t string) int {
			switch {
			case t == "body":
				return 0
			case strings.EqualFold(t, "button"):
				return 2
			default:
				return 1
			}
		}
		if ri, rj := rank(types[i]), rank(types[j]); ri != rj {
			return ri < rj
		}
		return types[i] < types[j]
	})

	var components []templateComponent
	for _, componentType := range types {
		values := params[componentType]
		if strings.EqualFold(componentType, "button") {
			for _, button := range values {
				subType := button.SubType
				if subType == "" {
					subType = "url"
				}
				index := 0
				if button.Index != nil {
					index = *button.Index
				}
				components = append(components, templateComponent{
					Type:       "button",
					SubType:    subType,
					Index:      &index,
					Parameters: []Param{{Type: button.Type, Text: button.Text}},
				})
			}
			continue
		}
		components = append(components, templateComponent{
			Type:       componentType,
			Parameters: values,
		})
	}
	return components
}

func (c *Client) post(ctx context.Context, payload messagePayload) (*SendResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("whatsapp send failed")
		return nil, fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().Int("status", resp.StatusCode).Str("to", payload.To).Msg("whatsapp send rejected")
		return nil, fmt.Errorf("whatsapp send: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out SendResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		// A 2xx with an unparsable body still counts as delivered.
		return &SendResponse{}, nil
	}
	return &out, nil
}

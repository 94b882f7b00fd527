// Package formbuilder is the client for the FormBuilder aggregates API.
package formbuilder

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agentstation/formsync/internal/transport"
	"github.com/agentstation/formsync/pkg/formbuilder"
	"github.com/agentstation/formsync/pkg/logging"
)

// Client fetches template aggregates from FormBuilder.
type Client struct {
	transport *transport.Client
}

// NewClient creates a client. A zero timeout uses the default.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		transport: transport.New(transport.NewAPIKeyAuth(), transport.WithTimeout(timeout)),
	}
}

// NewClientWithTransport creates a client on top of an existing transport.
func NewClientWithTransport(t *transport.Client) *Client {
	return &Client{transport: t}
}

// FetchTemplates retrieves all template aggregates from url.
// The returned errors are typed; see pkg/errors.Classify for their messages.
func (c *Client) FetchTemplates(ctx context.Context, url, apiKey string) ([]formbuilder.Template, error) {
	logger := logging.FromContext(logging.WithAPIURL(ctx, url))
	logger.Debug().
		Str("api_key", formbuilder.MaskAPIKey(apiKey)).
		Dur("timeout", c.transport.Timeout()).
		Msg("Fetching template aggregates")

	resp, err := c.transport.Get(ctx, url, apiKey)
	if err != nil {
		return nil, fmt.Errorf("formbuilder: %w", err)
	}

	var decoded *formbuilder.Response
	err = transport.DecodeWith(resp, func(r io.Reader) error {
		var derr error
		decoded, derr = formbuilder.DecodeResponse(r)
		return derr
	})
	if err != nil {
		return nil, fmt.Errorf("formbuilder: %w", err)
	}

	logger.Info().Int("templates", len(decoded.Templates)).Msg("Fetched template aggregates")

	return decoded.Templates, nil
}

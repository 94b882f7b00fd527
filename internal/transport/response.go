package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/formsync/pkg/errors"
	"github.com/agentstation/formsync/pkg/logging"
)

// maxErrorBody caps how much of an error response is kept in the message.
const maxErrorBody = 4 << 10

// CheckResponse returns a typed error for any status other than 200.
// The body is consumed and closed on error.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	defer closeBody(resp)

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	endpoint := ""
	if resp.Request != nil && resp.Request.URL != nil {
		endpoint = resp.Request.URL.String()
	}

	apiErr := errors.NewAPIError(endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	if resp.StatusCode == http.StatusUnauthorized {
		return errors.NewAuthenticationError(endpoint, "api_key", "key rejected by server", apiErr)
	}
	return apiErr
}

// DecodeResponse decodes a JSON response into the target structure.
func DecodeResponse(resp *http.Response, target any) error {
	return DecodeWith(resp, func(r io.Reader) error {
		if err := json.NewDecoder(r).Decode(target); err != nil {
			return errors.WrapParse("json", "response", err)
		}
		return nil
	})
}

// DecodeWith checks the status and hands the body to decode.
func DecodeWith(resp *http.Response, decode func(io.Reader) error) error {
	if err := CheckResponse(resp); err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp.Body)
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close response body")
	}
}

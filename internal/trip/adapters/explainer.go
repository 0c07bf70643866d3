package adapters

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"tripcheck/internal/trip/ports"
)

const maxExplanationLength = 2000

// ExplainerClient calls an HTTP explanation service:
//
//	POST {base}/v1/explanations  {"citizenship": "US", ...}
//	200 {"explanation": "..."}
type ExplainerClient struct {
	http *httpClient
}

func NewExplainerClient(baseURL string, opts ...ClientOption) *ExplainerClient {
	return &ExplainerClient{
		http: newHTTPClient("explainer", strings.TrimRight(baseURL, "/"), opts...),
	}
}

var _ ports.ExplainerPort = (*ExplainerClient)(nil)

type explainRequestBody struct {
	Citizenship     string   `json:"citizenship"`
	Destination     string   `json:"destination"`
	DestinationName string   `json:"destinationName"`
	Purpose         string   `json:"purpose"`
	EntryType       string   `json:"entryType"`
	MaxStayDays     int      `json:"maxStayDays,omitempty"`
	DurationDays    int      `json:"durationDays"`
	Requirements    []string `json:"requirements"`
}

type explainResponseBody struct {
	Explanation string `json:"explanation"`
}

// Explain returns a trimmed explanation. An empty answer is an error so the
// caller leaves the field unset.
func (c *ExplainerClient) Explain(ctx context.Context, req ports.ExplainRequest) (string, error) {
	var out explainResponseBody
	err := c.http.do(ctx, http.MethodPost, "/v1/explanations", explainRequestBody(req), &out)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(out.Explanation)
	if text == "" {
		return "", errors.New("explainer: empty explanation")
	}
	if runes := []rune(text); len(runes) > maxExplanationLength {
		text = string(runes[:maxExplanationLength])
	}
	return text, nil
}

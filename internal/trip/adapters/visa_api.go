package adapters

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"tripcheck/internal/trip/ports"
)

// VisaAPIClient queries an external passport/destination requirement API:
//
//	GET {base}/v1/requirements?passport=US&destination=JP
//	200 {"passport": "US", "destination": "JP", "requirement": "visa free",
//	     "allowedStayDays": 90, "source": "..."}
type VisaAPIClient struct {
	http  *httpClient
	clock func() time.Time
}

// NewVisaAPIClient builds the client. apiKey, when set, is sent as X-API-Key.
func NewVisaAPIClient(baseURL, apiKey string, opts ...ClientOption) *VisaAPIClient {
	c := &VisaAPIClient{
		http:  newHTTPClient("visa_api", strings.TrimRight(baseURL, "/"), opts...),
		clock: time.Now,
	}
	if apiKey != "" {
		c.http.headers.Set("X-API-Key", apiKey)
	}
	return c
}

var _ ports.VisaStatusPort = (*VisaAPIClient)(nil)

type visaAPIResponse struct {
	Passport        string `json:"passport"`
	Destination     string `json:"destination"`
	Requirement     string `json:"requirement"`
	AllowedStayDays int    `json:"allowedStayDays"`
	Source          string `json:"source"`
}

func (c *VisaAPIClient) Status(ctx context.Context, citizenship, destination string) (*ports.VisaStatus, error) {
	q := url.Values{}
	q.Set("passport", citizenship)
	q.Set("destination", destination)

	var out visaAPIResponse
	if err := c.http.do(ctx, http.MethodGet, "/v1/requirements?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}

	source := out.Source
	if source == "" {
		source = "visa_api"
	}
	return &ports.VisaStatus{
		Citizenship:     citizenship,
		Destination:     destination,
		EntryType:       NormalizeRequirement(out.Requirement),
		AllowedStayDays: out.AllowedStayDays,
		Source:          source,
		CheckedAt:       c.clock(),
	}, nil
}

// NormalizeRequirement maps a provider's free-text requirement onto the
// catalog entry types. Anything unrecognised is UNKNOWN.
func NormalizeRequirement(raw string) string {
	words := strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool { return !unicode.IsLetter(r) })
	if len(words) == 0 {
		return "UNKNOWN"
	}
	// Padded so phrase matches land on word boundaries.
	text := " " + strings.Join(words, " ") + " "
	has := func(phrases ...string) bool {
		for _, p := range phrases {
			if strings.Contains(text, " "+p+" ") {
				return true
			}
		}
		return false
	}
	switch {
	case text == " none ", has("visa free", "visa not required", "freedom of movement"):
		return "NONE"
	case has("eta", "esta", "electronic travel"):
		return "ETA"
	case has("e visa", "evisa", "electronic visa", "evisitor"):
		return "EVISA"
	case has("visa"):
		return "VISA"
	default:
		return "UNKNOWN"
	}
}

package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcheck/internal/notify"
	"tripcheck/internal/trip/ports"
	"tripcheck/pkg/platform/circuit"
	"tripcheck/pkg/platform/sentinel"
)

func TestExplainerClient(t *testing.T) {
	var got explainRequestBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/explanations", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"explanation": "  You can travel visa-free.  "})
	}))
	defer srv.Close()

	client := NewExplainerClient(srv.URL + "/")
	text, err := client.Explain(context.Background(), ports.ExplainRequest{
		Citizenship:     "US",
		Destination:     "JP",
		DestinationName: "Japan",
		Purpose:         "conference",
		EntryType:       "NONE",
		MaxStayDays:     90,
		DurationDays:    5,
		Requirements:    []string{"Entry", "Carta travel policy"},
	})
	require.NoError(t, err)
	assert.Equal(t, "You can travel visa-free.", text)
	assert.Equal(t, "Japan", got.DestinationName)
	assert.Equal(t, []string{"Entry", "Carta travel policy"}, got.Requirements)
}

func TestExplainerClientRejectsEmptyAndTruncates(t *testing.T) {
	answer := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"explanation": answer})
	}))
	defer srv.Close()
	client := NewExplainerClient(srv.URL)

	_, err := client.Explain(context.Background(), ports.ExplainRequest{})
	require.Error(t, err)

	answer = strings.Repeat("é", maxExplanationLength+50)
	text, err := client.Explain(context.Background(), ports.ExplainRequest{})
	require.NoError(t, err)
	assert.Equal(t, maxExplanationLength, len([]rune(text)))
}

func TestVisaAPIClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/requirements", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		assert.Equal(t, "IN", r.URL.Query().Get("passport"))
		assert.Equal(t, "GB", r.URL.Query().Get("destination"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"passport":        "IN",
			"destination":     "GB",
			"requirement":     "Visa required",
			"allowedStayDays": 180,
		})
	}))
	defer srv.Close()

	client := NewVisaAPIClient(srv.URL, "secret")
	fixed := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	client.clock = func() time.Time { return fixed }

	status, err := client.Status(context.Background(), "IN", "GB")
	require.NoError(t, err)
	assert.Equal(t, &ports.VisaStatus{
		Citizenship:     "IN",
		Destination:     "GB",
		EntryType:       "VISA",
		AllowedStayDays: 180,
		Source:          "visa_api",
		CheckedAt:       fixed,
	}, status)
}

func TestVisaAPIClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewVisaAPIClient(srv.URL, "").Status(context.Background(), "US", "JP")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestBreakerShedsCallsWhileOpen(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	breaker := circuit.New("explainer", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))
	client := NewExplainerClient(srv.URL, WithBreaker(breaker))

	for i := 0; i < 2; i++ {
		_, err := client.Explain(context.Background(), ports.ExplainRequest{})
		require.ErrorIs(t, err, sentinel.ErrUnavailable)
	}
	assert.True(t, breaker.IsOpen())

	_, err := client.Explain(context.Background(), ports.ExplainRequest{})
	require.ErrorIs(t, err, sentinel.ErrCircuitOpen)
	assert.Equal(t, int32(2), hits.Load(), "open circuit does not reach upstream")
}

func TestRateLimitedClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"requirement": "eta"})
	}))
	defer srv.Close()

	client := NewVisaAPIClient(srv.URL, "", WithRateLimit(0.01))

	status, err := client.Status(context.Background(), "US", "GB")
	require.NoError(t, err)
	assert.Equal(t, "ETA", status.EntryType)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.Status(ctx, "US", "GB")
	require.ErrorIs(t, err, sentinel.ErrRateLimited)
}

func TestNormalizeRequirement(t *testing.T) {
	tests := map[string]string{
		"":                            "UNKNOWN",
		"Visa free":                   "NONE",
		"visa-free":                   "NONE",
		"Visa not required":           "NONE",
		"none":                        "NONE",
		"Freedom of movement":         "NONE",
		"ETA":                         "ETA",
		"Electronic Travel Authority": "ETA",
		"ESTA":                        "ETA",
		"e-Visa":                      "EVISA",
		"eVisa required":              "EVISA",
		"Electronic visa":             "EVISA",
		"eVisitor":                    "EVISA",
		"Visa required":               "VISA",
		"visa on arrival":             "VISA",
		"covid test":                  "UNKNOWN",
		"ESTA required":               "ETA",
	}
	for raw, want := range tests {
		assert.Equal(t, want, NormalizeRequirement(raw), raw)
	}
}

func TestNormalizeRequirementMatchesWholeWords(t *testing.T) {
	for _, raw := range []string{
		"Visa required - see details",
		"Visa required (contact the consulate for details)",
		"Visa required; festival season",
		"Visa required, metadata pending",
	} {
		assert.Equal(t, "VISA", NormalizeRequirement(raw), raw)
	}
	assert.Equal(t, "ETA", NormalizeRequirement("ETA (see details)"))
}

func TestNotifierAdapterPublishesToHub(t *testing.T) {
	hub := notify.NewHub()
	sub := hub.Subscribe("emp-1")
	defer sub.Close()

	due := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	err := NewNotifierAdapter(hub).Notify(context.Background(), "emp-1", []ports.Notice{
		{Kind: "apply_now", Title: "Apply for your visa", Message: "Apply by October 20, 2026.", DueAt: &due},
	})
	require.NoError(t, err)

	select {
	case msg := <-sub.C:
		assert.Equal(t, "apply_now", msg.Kind)
		assert.Equal(t, "Apply by October 20, 2026.", msg.Body)
		assert.Equal(t, &due, msg.DueAt)
		assert.NotEmpty(t, msg.ID)
	case <-time.After(time.Second):
		t.Fatal("notice not delivered")
	}
	assert.Len(t, hub.Recent("emp-1"), 1)
}

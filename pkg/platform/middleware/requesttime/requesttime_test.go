package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tripcheck/pkg/requestcontext"
	"tripcheck/pkg/testutil"
)

func TestMiddlewarePinsRequestTime(t *testing.T) {
	pinned := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

	testutil.Given(t, "a fixed clock", func(t *testing.T) {
		var seen []time.Time
		h := MiddlewareWithClock(func() time.Time { return pinned })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, requestcontext.Now(r.Context()), requestcontext.Now(r.Context()))
		}))

		testutil.When(t, "a request is served", func(t *testing.T) {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			testutil.Then(t, "every read of now agrees", func(t *testing.T) {
				assert.Equal(t, []time.Time{pinned, pinned}, seen)
			})
		})
	})
}

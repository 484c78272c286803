package environment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wellnest/internal/llm"
	"github.com/abhisek/wellnest/internal/profile"
)

type recordingSink struct {
	mu       sync.Mutex
	sections []profile.Section
}

func (r *recordingSink) Record(d profile.Domain, s profile.Section) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d == profile.Environment {
		r.sections = append(r.sections, s)
	}
}

func newOpenMeteo(t *testing.T, airStatus int) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "28.6139", r.URL.Query().Get("latitude"))
		assert.Contains(t, r.URL.Query().Get("current"), "apparent_temperature")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":35.2,"relative_humidity_2m":80,"wind_speed_10m":10.5,"apparent_temperature":39.1}}`))
	})
	mux.HandleFunc("/air", func(w http.ResponseWriter, r *http.Request) {
		if airStatus != http.StatusOK {
			http.Error(w, "unavailable", airStatus)
			return
		}
		_, _ = w.Write([]byte(`{"current":{"us_aqi":119.6}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, NewClient(WithEndpoints(srv.URL+"/forecast", srv.URL+"/air"))
}

func TestClient_Current(t *testing.T) {
	_, c := newOpenMeteo(t, http.StatusOK)

	cond, err := c.Current(context.Background(), DefaultLocation)
	require.NoError(t, err)
	assert.Equal(t, Conditions{AQI: 120, Temperature: 35.2, ApparentTemperature: 39.1, Humidity: 80, WindSpeed: 10.5}, cond)
	assert.Equal(t, "Unhealthy", AQILevel(cond.AQI))
}

func TestClient_AirQualityFailureFailsCall(t *testing.T) {
	_, c := newOpenMeteo(t, http.StatusServiceUnavailable)

	_, err := c.Current(context.Background(), DefaultLocation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch air quality")
}

func TestService_AssessRecords(t *testing.T) {
	_, c := newOpenMeteo(t, http.StatusOK)
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("```json\n" + `{
		"location": "New Delhi, India",
		"environment_summary": "Hot and humid with unhealthy air.",
		"guidelines": ["Stay hydrated", "Wear a mask outdoors"],
		"risk_level": "High"
	}` + "\n```")})
	sink := &recordingSink{}

	adv := NewService(c, mock, sink, nil).Assess(context.Background(), DefaultLocation)
	require.False(t, adv.Error, adv.Message)
	assert.Equal(t, "High", adv.RiskLevel)
	assert.Equal(t, 120, adv.Conditions.AQI)

	require.Len(t, sink.sections, 1)
	sec := sink.sections[0]
	assert.Equal(t, "Hot and humid with unhealthy air.", sec.String("environmentSummary"))
	assert.Equal(t, adv.Conditions, sec["parameters"])

	prompt := mock.Requests()[0].Messages[0].Content
	assert.True(t, strings.Contains(prompt, "AQI: 120 (Unhealthy)"), prompt)
}

func TestService_InvalidRiskLevel(t *testing.T) {
	_, c := newOpenMeteo(t, http.StatusOK)
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"location":"x","environment_summary":"ok","guidelines":["a"],"risk_level":"Extreme"}`)})
	sink := &recordingSink{}

	adv := NewService(c, mock, sink, nil).Assess(context.Background(), DefaultLocation)
	assert.True(t, adv.Error)
	assert.Equal(t, msgInvalid, adv.Message)
	require.Len(t, sink.sections, 1)
	assert.Equal(t, true, sink.sections[0]["error"])
}

func TestService_FetchFailureSkipsModel(t *testing.T) {
	_, c := newOpenMeteo(t, http.StatusBadGateway)
	mock := llm.NewMockProvider()

	adv := NewService(c, mock, nil, nil).Assess(context.Background(), DefaultLocation)
	assert.True(t, adv.Error)
	assert.Equal(t, 0, mock.CallCount())
}

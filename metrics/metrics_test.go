package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveCalculation(t *testing.T) {
	recorder := NewRecorder()

	recorder.ObserveCalculation("success", "", 20*time.Millisecond)
	recorder.ObserveCalculation("success", "", 30*time.Millisecond)
	recorder.ObserveCalculation("failure", "incomplete_data", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.calculations.WithLabelValues("success", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.calculations.WithLabelValues("failure", "incomplete_data")))
	assert.Equal(t, 2, testutil.CollectAndCount(recorder.duration))
}

func TestRecorder_Handler(t *testing.T) {
	recorder := NewRecorder()
	recorder.ObserveCalculation("failure", "unauthorized", time.Millisecond)

	server := httptest.NewServer(recorder.Handler())
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `groupdss_engine_calculations_total{kind="unauthorized",outcome="failure"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

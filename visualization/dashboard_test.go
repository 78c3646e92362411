package visualization_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anggasct/trafficflow"
	"github.com/anggasct/trafficflow/pkg/clock"
	"github.com/anggasct/trafficflow/visualization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioReport(t *testing.T) *trafficflow.Report {
	t.Helper()
	s := trafficflow.CreateScenarioScheduler(t)
	report, err := s.Run(context.Background(), clock.NewInstant())
	require.NoError(t, err)
	return report
}

func TestRenderDashboard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, visualization.RenderDashboard(&buf, scenarioReport(t)))

	html := buf.String()
	for _, title := range []string{
		"Vehicle Count per Direction",
		"Traffic Share by Direction",
		"Assigned Green Time (sec)",
		"Estimated Waiting Time (sec)",
	} {
		assert.Contains(t, html, title)
	}
	assert.Contains(t, html, "busiest=North (10 vehicles)")
	assert.Contains(t, html, "cycle=42s")
}

func TestDashboardRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.html")
	opts := visualization.DefaultDashboardOptions()
	opts.PageTitle = "Intersection 7"

	require.NoError(t, visualization.NewDashboard(scenarioReport(t), opts).RenderToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Intersection 7"))
}

func TestRenderDashboardWithoutReport(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, visualization.RenderDashboard(&buf, nil))
}

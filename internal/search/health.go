package search

import (
	"context"
	"encoding/json"
	"time"
)

// Health is a snapshot of cluster health as seen from this process.
type Health struct {
	Status      string        `json:"status"` // green, yellow, red, unavailable
	Latency     time.Duration `json:"latency"`
	ClusterName string        `json:"clusterName"`
	Nodes       int           `json:"nodes"`
}

// StatusUnavailable marks a cluster that could not be reached at all.
const StatusUnavailable = "unavailable"

// CheckHealth probes the cluster. It never returns an error; an
// unreachable cluster yields Status "unavailable".
func (m *Manager) CheckHealth(ctx context.Context) Health {
	client, err := m.Client()
	if err != nil {
		return Health{Status: StatusUnavailable}
	}

	start := time.Now()
	res, err := client.Cluster.Health(client.Cluster.Health.WithContext(ctx))
	latency := time.Since(start)
	if err != nil {
		return Health{Status: StatusUnavailable, Latency: latency}
	}
	defer res.Body.Close()

	if res.IsError() {
		return Health{Status: StatusUnavailable, Latency: latency}
	}

	var body struct {
		Status      string `json:"status"`
		ClusterName string `json:"cluster_name"`
		Nodes       int    `json:"number_of_nodes"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return Health{Status: StatusUnavailable, Latency: latency}
	}

	return Health{
		Status:      body.Status,
		Latency:     latency,
		ClusterName: body.ClusterName,
		Nodes:       body.Nodes,
	}
}

// WaitUntilReady polls cluster health with exponential backoff (factor 1.5,
// capped at maxDelay) until the cluster reports green or yellow, up to
// maxRetries attempts. Each attempt resets any cached failed connection
// before probing. Returns false when the feature is disabled, the context
// is canceled, or all attempts are exhausted.
func (m *Manager) WaitUntilReady(ctx context.Context, maxRetries int, initialDelay, maxDelay time.Duration) bool {
	if !m.cfg.Enabled {
		return false
	}

	delay := initialDelay
	for attempt := 1; attempt <= maxRetries; attempt++ {
		m.Reset()

		health := m.CheckHealth(ctx)
		if health.Status == "green" || health.Status == "yellow" {
			m.logger.Info("search cluster ready",
				"status", health.Status,
				"attempt", attempt,
				"latency", health.Latency)
			return true
		}

		m.logger.Warn("search cluster not ready",
			"status", health.Status,
			"attempt", attempt,
			"max_retries", maxRetries,
			"next_delay", delay)

		if attempt == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
		}
		delay = delay * 3 / 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
	return false
}

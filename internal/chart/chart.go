// Package chart is the client for the external chart-rendering
// collaborator. The core ships numeric series; the service returns opaque
// PNG bytes.
package chart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kassabot/internal/core"
)

// HTTPRenderer posts aggregate series to a chart service and returns the
// rendered images.
type HTTPRenderer struct {
	baseURL string
	client  *http.Client
}

func NewHTTPRenderer(baseURL string) *HTTPRenderer {
	return &HTTPRenderer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type slicePayload struct {
	Label string `json:"label"`
	Value int64  `json:"value"` // cents
}

type pointPayload struct {
	Date  string `json:"date"`
	Value int64  `json:"value"` // cents
}

func (r *HTTPRenderer) CategoryPie(ctx context.Context, view core.AggregateView) ([]byte, error) {
	slices := make([]slicePayload, 0, len(view.ByCategory))
	for label, amount := range view.ByCategory {
		slices = append(slices, slicePayload{Label: label, Value: amount.Cents})
	}
	return r.render(ctx, "/charts/pie", map[string]any{"slices": slices})
}

func (r *HTTPRenderer) DailyTrend(ctx context.Context, view core.AggregateView) ([]byte, error) {
	points := make([]pointPayload, 0, len(view.ByDate))
	for _, d := range view.ByDate {
		points = append(points, pointPayload{Date: d.Date, Value: d.Amount.Cents})
	}
	return r.render(ctx, "/charts/trend", map[string]any{"points": points})
}

func (r *HTTPRenderer) render(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal chart payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build chart request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call chart service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart service returned %s", resp.Status)
	}

	image, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chart image: %w", err)
	}
	return image, nil
}

// Package allocation calls the external room-and-bed allocation service.
package allocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hospadmin/hospadmin/internal/platform/apperr"
)

// Assignment is the room and bed the service picked.
type Assignment struct {
	Room int `json:"sala"`
	Bed  int `json:"cama"`
}

type hospitalResponse struct {
	Code     int        `json:"codigo"`
	Messages []string   `json:"mensajes"`
	Data     Assignment `json:"datos"`
}

// Recorder observes allocation call outcomes for monitoring.
type Recorder interface {
	ObserveAllocation(outcome string)
}

// Client fetches assignments from the allocation service. Calls are not
// retried: an unavailable service aborts the caller's operation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	recorder   Recorder
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithRecorder has the client record each call's outcome on r.
func (c *Client) WithRecorder(r Recorder) *Client {
	c.recorder = r
	return c
}

// Assign requests a room and bed for a new admission.
func (c *Client) Assign(ctx context.Context) (Assignment, error) {
	asg, err := c.assign(ctx)
	if c.recorder != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		c.recorder.ObserveAllocation(outcome)
	}
	return asg, err
}

func (c *Client) assign(ctx context.Context) (Assignment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/hospital", nil)
	if err != nil {
		return Assignment{}, apperr.Wrap(apperr.Dependency, "build allocation request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return Assignment{}, apperr.Wrap(apperr.Transient, "allocation service timed out", err)
		}
		return Assignment{}, apperr.Wrap(apperr.Dependency, "call allocation service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Assignment{}, apperr.Newf(apperr.Dependency,
			"allocation service returned status %d", resp.StatusCode)
	}

	var body hospitalResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Assignment{}, apperr.Wrap(apperr.Dependency, "decode allocation response", err)
	}

	if body.Code != http.StatusOK {
		msg := "allocation rejected"
		if len(body.Messages) > 0 {
			msg = fmt.Sprintf("allocation rejected: %s", strings.Join(body.Messages, "; "))
		}
		return Assignment{}, apperr.New(apperr.Dependency, msg)
	}

	return body.Data, nil
}

package lock

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Actuator triggers the physical door lock
type Actuator interface {
	Unlock(ctx context.Context) error
}

// RemoteLock drives a cloud-connected smart lock over its HTTP API
type RemoteLock struct {
	client  *http.Client
	baseURL string
	lockID  string
	apiKey  string
}

// NewRemoteLock creates an actuator for the given lock
func NewRemoteLock(baseURL, lockID, apiKey string) *RemoteLock {
	return &RemoteLock{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		lockID:  lockID,
		apiKey:  apiKey,
	}
}

// Unlock asks the lock API to open the door
func (l *RemoteLock) Unlock(ctx context.Context) error {
	url := fmt.Sprintf("%s/locks/%s/unlock", l.baseURL, l.lockID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build unlock request: %w", err)
	}
	req.Header.Set("x-api-key", l.apiKey)

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call lock API: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lock API returned status %d", resp.StatusCode)
	}
	return nil
}

// Disabled is an actuator with no lock behind it. Used when no lock is
// configured, e.g. in development.
type Disabled struct{}

func (Disabled) Unlock(ctx context.Context) error {
	log.Println("Unlock requested (no lock actuator configured)")
	return nil
}

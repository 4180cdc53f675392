package notify

import (
	"bytes"
	"fmt"
	"net/http"
	"time"
)

// SendWebhook POSTs the payload to the subscriber with a short timeout
// so a slow endpoint cannot stall the poller.
func SendWebhook(url string, payload []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "digibank-webhook/1.0")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("subscriber returned %d", resp.StatusCode)
}

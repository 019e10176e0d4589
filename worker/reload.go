package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type reloadResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// RequestReload posts to the server's /reload route and returns its message.
func RequestReload(ctx context.Context, endpoint string, h http.Header) (string, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/reload", strings.TrimSuffix(endpoint, "/")),
		nil,
	)
	if err != nil {
		return "", err
	}
	req.Header = h
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var body reloadResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%s: could not decode response: %w", res.Status, err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: %s", res.Status, body.Error)
	}
	return body.Message, nil
}

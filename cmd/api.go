package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/evloca/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request with the session's token.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	return r.apiCall(ctx, cmd, http.MethodGet, false)
}

// APIPost makes a direct POST request with an optional JSON body.
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	return r.apiCall(ctx, cmd, http.MethodPost, true)
}

// APIPut makes a direct PUT request with an optional JSON body.
func (r *Runner) APIPut(ctx context.Context, cmd *cli.Command) error {
	return r.apiCall(ctx, cmd, http.MethodPut, true)
}

// APIDelete makes a direct DELETE request.
func (r *Runner) APIDelete(ctx context.Context, cmd *cli.Command) error {
	return r.apiCall(ctx, cmd, http.MethodDelete, false)
}

func (r *Runner) apiCall(ctx context.Context, cmd *cli.Command, method string, withBody bool) error {
	path, err := requireArg(cmd, "path")
	if err != nil {
		return err
	}

	var body any
	if data := cmd.String("data"); withBody && data != "" {
		if !json.Valid([]byte(data)) {
			return fmt.Errorf("%w: data is not valid JSON", shared.ErrInvalidInput)
		}
		body = json.RawMessage(data)
	}

	r.logger.Info("raw request", "method", method, "path", path)

	resp, err := r.client.Raw(ctx, method, path, body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		if cmd.String("format") == "yaml" {
			return r.writeYAML(resp.JSONData)
		}
		return r.writeJSON(resp.JSONData, true)
	}

	if len(resp.Body) == 0 {
		return r.writePlain("%d %s\n", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}

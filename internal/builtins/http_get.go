package builtins

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"github.com/meshkit/meshd/internal/registry"
)

// httpGet returns the http_get function: fetch a URL and hand the response
// body to downstream nodes as a string.
func httpGet() *registry.Function {
	return &registry.Function{
		Signature: registry.Signature{
			Name: "http_get",
			Doc:  "Fetch a URL over HTTP GET and return the response body as a string.",
			Params: []registry.Param{
				{Name: "url", Type: registry.TypeString, Kind: registry.KindPositionalOrKeyword},
				{Name: "timeout", Type: registry.TypeString, Default: "10s", HasDefault: true, Kind: registry.KindKeywordOnly},
			},
			Returns: registry.TypeString,
		},
		Fn: func(ctx context.Context, args map[string]any) (any, error) {
			url, err := asString("url", args["url"])
			if err != nil {
				return nil, err
			}
			timeoutStr, err := asString("timeout", args["timeout"])
			if err != nil {
				return nil, err
			}
			timeout, err := time.ParseDuration(timeoutStr)
			if err != nil {
				return nil, fmt.Errorf("argument \"timeout\": %w", err)
			}

			client := resty.New().SetTimeout(timeout)
			defer client.Close()

			res, err := client.R().SetContext(ctx).Get(url)
			if err != nil {
				return nil, fmt.Errorf("GET %s: %w", url, err)
			}
			if res.IsError() {
				return nil, fmt.Errorf("GET %s: unexpected status %s", url, res.Status())
			}
			return res.String(), nil
		},
	}
}

package mdem

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPRenderRequest configures HTTPRenderDocument.
type HTTPRenderRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Options []RenderOption
}

// HTTPRenderDocument fetches a Markdown document over HTTP(S) and renders it
// with RenderDocument.
func HTTPRenderDocument(ctx context.Context, req HTTPRenderRequest) error {
	if req.URL == "" {
		return fmt.Errorf("http render: URL is required")
	}
	if req.Writer == nil {
		return fmt.Errorf("http render: Writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("http render: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return fmt.Errorf("http render: unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http render: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("http render: status %s", resp.Status)
	}
	return RenderDocument(RenderRequest{
		Reader:  resp.Body,
		Writer:  req.Writer,
		Options: req.Options,
	})
}

// Package http provides an HTTP client for fetching dataset archives.
//
// This package handles:
//   - HEAD requests to get archive metadata
//   - GET requests streaming the archive body
//   - Retry with exponential backoff on transient server errors
//
// # Usage
//
//	client := http.NewClient(http.DefaultOptions())
//
//	// Get file info
//	info, err := client.Head(ctx, url)
//	// info.Size, info.ContentType
//
//	// Stream the archive
//	resp, err := client.Get(ctx, url)
//	defer resp.Body.Close()
package http

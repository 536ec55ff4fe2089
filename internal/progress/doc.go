// Package progress provides progress reporting for dataset downloads.
//
// This package outputs a human-readable progress line to stderr, including
// a wget-style bar, completion percentage, transfer speed, and ETA.
//
// # Usage
//
//	reporter := progress.NewReporter(progress.Options{
//	    TotalSize: info.Size,
//	    SourceURL: url,
//	})
//
//	reporter.Start()
//	defer reporter.Stop()
//
//	// Pass Update as the fetch progress callback
//	fetch.FetchIfAbsent(ctx, url, dest, fetch.Options{Progress: reporter.Update})
//
// # Output Format
//
//	[dsfetch] Downloading: https://example.com/dataset.zip
//	[dsfetch] Progress: 45.2% [=========>          ] 113.1 MB / 250.0 MB | Speed: 1.2 MB/s | ETA: 1m 52s
package progress

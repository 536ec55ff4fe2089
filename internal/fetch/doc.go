// Package fetch downloads dataset archives to local storage, skipping
// files that are already present.
//
// Progress reporting is an explicit callback on the fetch call rather than
// shared library state, so two concurrent fetches never fight over one
// hook.
//
// # Usage
//
//	fetched, err := fetch.FetchIfAbsent(ctx, url, dest, fetch.Options{
//	    Progress: reporter.Update,
//	})
package fetch

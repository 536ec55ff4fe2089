// Package archive unpacks downloaded dataset archives, skipping trees that
// were already extracted.
package archive

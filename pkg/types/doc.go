// Package types defines the error taxonomy and shared types used across the
// alskit packages. Most users should import pkg/als instead, which re-exports
// everything needed for day-to-day use.
package types

// Package types defines the recipe catalog entities, the joined read shapes
// returned by the store, configuration, and the error kinds every storage
// operation reports.
package types

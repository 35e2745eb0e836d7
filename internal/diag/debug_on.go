//go:build viewkit_debug

package diag

const debugAsserts = true

// Package builtins registers the stock function set available for graph
// composition out of the box: arithmetic, string, and list helpers plus a
// simple HTTP fetch. It is wired into the application registry at startup
// through the registry.Module interface.
package builtins

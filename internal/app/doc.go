// Package app wires the storefront services (catalog, accounts, orders)
// over pluggable storage backends and owns their construction.
package app

// Package core implements the functionality for msysprefix that is shared across all components.
package core

//go:build tools

// Package tools pins the mockgen binary used by the go:generate directives
// in contract/, so `go generate ./...` works from a fresh checkout.
package avatar_chat

import (
	_ "go.uber.org/mock/mockgen"
)

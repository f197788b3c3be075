// internal/core/domain/actor.go
package domain

import "github.com/google/uuid"

// Actor identifies the authenticated caller of a gated operation. It is passed
// explicitly into services rather than read from ambient state; the core never
// authenticates, it only consumes the IsAdmin capability.
type Actor struct {
	ID      uuid.UUID
	Name    string
	IsAdmin bool
}

// Anonymous is the zero actor used on ungated read paths.
var Anonymous = Actor{}

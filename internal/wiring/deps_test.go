package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
)

// Every node's declared dependencies must match the graft.Dep calls its
// provider makes.
func TestNodeDependencyDeclarations(t *testing.T) {
	graft.AssertDepsValid(t, "../../internal")
}

// Package element provides the built-in element classes stacked in the
// traversal state: the current model matrix, override flags, and the
// viewport region with its device re-issue semantics.
package element

import (
	"github.com/scene-xyz/go-scene/sgtype"
)

// ElementType is the common ancestor of every element class.
var ElementType sgtype.TypeId

func init() {
	ElementType = sgtype.CreateType(sgtype.BadType(), "Element")
}

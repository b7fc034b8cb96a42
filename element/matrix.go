package element

import (
	"github.com/scene-xyz/go-scene/geom"
	"github.com/scene-xyz/go-scene/sgtype"
	"github.com/scene-xyz/go-scene/state"
)

// MatrixElementType identifies the model-matrix element class.
var (
	MatrixElementType sgtype.TypeId
	matrixStackIndex  int
)

// MatrixElement accumulates the current model matrix. Transform nodes
// multiply into it; shapes read it to place their geometry.
type MatrixElement struct {
	state.BaseElement
	matrix geom.Mat4
}

func init() {
	MatrixElementType, matrixStackIndex = state.RegisterElement(ElementType, "MatrixElement",
		func() state.Element {
			e := &MatrixElement{}
			e.SetClass(MatrixElementType, matrixStackIndex)
			return e
		})
}

// MatrixStackIndex returns the element's stack index, for enabling it on
// an action class.
func MatrixStackIndex() int { return matrixStackIndex }

// Init resets the matrix to identity.
func (e *MatrixElement) Init(st *state.State) {
	e.matrix = geom.Identity()
}

// Matches reports whether the other element carries the same matrix.
func (e *MatrixElement) Matches(other state.Element) bool {
	o, ok := other.(*MatrixElement)
	return ok && o.matrix == e.matrix
}

// Copy returns an element carrying the same matrix.
func (e *MatrixElement) Copy() state.Element {
	c := *e
	return &c
}

// GetMatrix returns the current model matrix.
func GetMatrix(st *state.State) geom.Mat4 {
	return st.Get(matrixStackIndex).(*MatrixElement).matrix
}

// MultMatrix multiplies m into the current model matrix in the current
// scope.
func MultMatrix(st *state.State, m geom.Mat4) {
	e := st.GetWritable(matrixStackIndex).(*MatrixElement)
	e.matrix = e.matrix.Mul(m)
}

// SetMatrix replaces the current model matrix in the current scope.
func SetMatrix(st *state.State, m geom.Mat4) {
	st.GetWritable(matrixStackIndex).(*MatrixElement).matrix = m
}

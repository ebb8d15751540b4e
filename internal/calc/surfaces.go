package calc

// Surface is one of the calculator tabs a UI shell offers.
type Surface string

const (
	SurfaceBasic         Surface = "Basic Operations"
	SurfaceExpression    Surface = "Mathematical Expressions"
	SurfaceIntegration   Surface = "Integration"
	SurfaceDifferentiate Surface = "Differentiation"
	SurfaceTrigonometry  Surface = "Trigonometry"
)

// Surfaces lists the tabs in display order.
var Surfaces = []Surface{
	SurfaceBasic,
	SurfaceExpression,
	SurfaceIntegration,
	SurfaceDifferentiate,
	SurfaceTrigonometry,
}

const (
	AboutTitle = "About the Calculator"
	AboutText  = "This calculator performs arithmetic, integration, differentiation, and trigonometry calculations using voice commands."
)

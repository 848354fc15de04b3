package entity

// ColorRole is a symbolic color slot for an overlay element. Mapping a
// role to a concrete color is a rendering concern (theme lookup), so the
// geometry stays testable independent of visual styling.
type ColorRole string

const (
	RoleLoss   ColorRole = "LOSS"
	RoleProfit ColorRole = "PROFIT"
	RoleStop   ColorRole = "STOP"
	RoleEntry  ColorRole = "ENTRY"
	RoleTarget ColorRole = "TARGET"
	RoleLast   ColorRole = "LAST"
)

// Level is one horizontal reference line with its right-edge label.
type Level struct {
	Price float64
	Role  ColorRole
	Label string
}

// Zone is a horizontal price band shaded across the plot. Low <= High.
type Zone struct {
	Low  float64
	High float64
	Role ColorRole
}

// OverlayGeometry is the full set of annotation directives for one
// request. Derived fresh from Signal plus the latest close; never cached.
type OverlayGeometry struct {
	Zones  []Zone
	Levels []Level
}

package entity

// Stage etapa del pipeline de producción cerámica.
// Las piezas avanzan siempre en el mismo orden: cruda → horneada → esmaltada.
// Solo la etapa esmaltada se particiona por variante de color.
type Stage string

const (
	StageRaw    Stage = "RAW"    // pieza cruda (recién moldeada)
	StageFired  Stage = "FIRED"  // pieza horneada (bizcocho)
	StageGlazed Stage = "GLAZED" // pieza esmaltada, con color
)

// Valid indica si la etapa es una de las tres conocidas.
func (s Stage) Valid() bool {
	switch s {
	case StageRaw, StageFired, StageGlazed:
		return true
	}
	return false
}

// RequiresColor indica si la etapa particiona por variante de color.
func (s Stage) RequiresColor() bool {
	return s == StageGlazed
}

// ValidTransition indica si (from, to) es un avance permitido del pipeline.
// Solo RAW→FIRED y FIRED→GLAZED; no hay saltos ni retrocesos.
func ValidTransition(from, to Stage) bool {
	return (from == StageRaw && to == StageFired) ||
		(from == StageFired && to == StageGlazed)
}

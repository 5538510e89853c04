// Package domain contains the core inventory model: the fixture catalog,
// rooms, the draft being edited, and the merge rules between them.
package domain

// Code identifies a fixture type from the fixed catalog.
type Code string

// Catalog codes. Sockets are named by style and amperage, switches by
// pole count and type, plus the doorbell.
const (
	CodeSocketSingle10 Code = "ts10"
	CodeSocketSingle20 Code = "ts20"
	CodeSocketDouble10 Code = "td10"
	CodeSocketDouble20 Code = "td20"
	CodeSocketTriple10 Code = "tt10"
	CodeSocketTriple20 Code = "tt20"

	CodeSwitchSingle Code = "is"
	CodeSwitchDouble Code = "idu"
	CodeSwitchTriple Code = "itr"

	CodeSwitchParallelSingle Code = "isp"
	CodeSwitchParallelDouble Code = "idup"
	CodeSwitchParallelTriple Code = "itrp"

	CodeSwitchIntermediateSingle Code = "isi"
	CodeSwitchIntermediateDouble Code = "idui"
	CodeSwitchIntermediateTriple Code = "itri"

	CodeDoorbell Code = "camp"
)

// KitSuffix is appended to catalog item labels in exported documents.
// Custom item labels are never suffixed.
const KitSuffix = " (kit completo bastidor + espelho 4x2)"

// catalogLabels maps catalog codes to their display labels.
//
//nolint:gochecknoglobals // Static lookup table for the fixture catalog
var catalogLabels = map[Code]string{
	CodeSocketSingle10: "Tomada simples 10A",
	CodeSocketSingle20: "Tomada simples 20A",
	CodeSocketDouble10: "Tomada dupla 10A",
	CodeSocketDouble20: "Tomada dupla 20A",
	CodeSocketTriple10: "Tomada tripla 10A",
	CodeSocketTriple20: "Tomada tripla 20A",

	CodeSwitchSingle: "Interruptor simples",
	CodeSwitchDouble: "Interruptor duplo",
	CodeSwitchTriple: "Interruptor triplo",

	CodeSwitchParallelSingle: "Interruptor paralelo simples",
	CodeSwitchParallelDouble: "Interruptor paralelo duplo",
	CodeSwitchParallelTriple: "Interruptor paralelo triplo",

	CodeSwitchIntermediateSingle: "Interruptor intermediário simples",
	CodeSwitchIntermediateDouble: "Interruptor intermediário duplo",
	CodeSwitchIntermediateTriple: "Interruptor intermediário triplo",

	CodeDoorbell: "Campainha",
}

// socketCodes maps (style, amperage) pairs to socket catalog codes.
//
//nolint:gochecknoglobals // Static lookup table for the fixture catalog
var socketCodes = map[[2]string]Code{
	{"simples", "10"}: CodeSocketSingle10,
	{"simples", "20"}: CodeSocketSingle20,
	{"dupla", "10"}:   CodeSocketDouble10,
	{"dupla", "20"}:   CodeSocketDouble20,
	{"tripla", "10"}:  CodeSocketTriple10,
	{"tripla", "20"}:  CodeSocketTriple20,
}

// CatalogLabel returns the display label for a catalog code.
func CatalogLabel(c Code) (string, bool) {
	label, ok := catalogLabels[c]
	return label, ok
}

// ValidCode reports whether c is a known catalog code.
func ValidCode(c Code) bool {
	_, ok := catalogLabels[c]
	return ok
}

// SocketCode resolves a socket style ("simples", "dupla", "tripla") and
// amperage ("10", "20") to its catalog code. The UI only offers the
// enumerated pairs, so a miss indicates a client defect.
func SocketCode(style, amperage string) (Code, bool) {
	code, ok := socketCodes[[2]string{style, amperage}]
	return code, ok
}

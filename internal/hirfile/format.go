// Package hirfile serializes HIR modules for front-end interchange. The
// format is flat: expressions, declarations and functions live in indexed
// tables and reference each other by table index, so shared declaration
// pointers survive a round trip.
package hirfile

// Increment when the record layout changes; decoders reject other versions.
const schemaVersion uint16 = 1

// noIndex marks an absent table reference.
const noIndex int32 = -1

type fileSpan struct {
	File  uint32
	Start uint32
	End   uint32
}

type fileDecl struct {
	Kind  uint8
	Name  string
	Type  uint32
	Span  fileSpan
	Local bool
	Union uint32
	Case  int32
}

// fileExpr flattens every payload shape into one record; which fields are
// meaningful depends on Kind.
type fileExpr struct {
	Kind      uint8
	Type      uint32
	ValueKind uint8
	Span      fileSpan

	Operand int32   // Load, UnionUnwrap, TupleShuffle operand; TupleElem tuple
	Callee  int32   // call family
	Args    []int32 // call family args; Tuple elements
	Int     int64
	Float   float64
	Index   int32 // TupleElem, AnonArg
	Group   bool
	Mapping []int32 // TupleShuffle
	Decl    int32
	Fn      int32
	Name    string // unchecked kinds
}

type fileFunc struct {
	Name   string
	Span   fileSpan
	Result uint32
	Params []int32
	Locals []int32
	Body   []int32
}

type fileModule struct {
	Schema  uint16
	Name    string
	Decls   []fileDecl
	Exprs   []fileExpr
	Funcs   []fileFunc
	Top     []int32 // module-level function indices, in order
	Globals []int32
}

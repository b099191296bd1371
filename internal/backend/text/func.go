package text

import (
	"fmt"
	"strconv"
	"strings"

	"ember/internal/hir"
	"ember/internal/irgen"
	"ember/internal/types"
)

// FuncGen builds the textual body of one function. It implements the
// instruction builder contract the lowering core drives. Each instance is
// confined to one goroutine; only the shared ModuleGen is synchronized.
type FuncGen struct {
	mod  *ModuleGen
	name string

	allocas strings.Builder
	body    strings.Builder
	tmp     int

	em *irgen.Emitter
}

// NewFuncGen returns a generator for the named function.
func NewFuncGen(mod *ModuleGen, name string) *FuncGen {
	return &FuncGen{mod: mod, name: name}
}

var _ irgen.Builder = (*FuncGen)(nil)

// Bind attaches the lowering core driving this generator. Call lowering
// needs it to evaluate callees and arguments.
func (fg *FuncGen) Bind(em *irgen.Emitter) {
	fg.em = em
}

// Finish renders the complete function definition. Allocas are grouped at
// the top of the entry block.
func (fg *FuncGen) Finish(resultType string) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "define %s @%s() {\nentry:\n", resultType, fg.name)
	buf.WriteString(fg.allocas.String())
	buf.WriteString(fg.body.String())
	buf.WriteString("}\n")
	return buf.String()
}

func (fg *FuncGen) newTmp() value {
	fg.tmp++
	return value(fmt.Sprintf("%%t%d", fg.tmp))
}

// Printf appends a raw instruction line to the body. The function-lowering
// driver uses it for returns and other control flow the expression core
// never emits.
func (fg *FuncGen) Printf(format string, args ...any) {
	fmt.Fprintf(&fg.body, format, args...)
}

func (fg *FuncGen) ConstInt(w types.Width, v int64) irgen.Value {
	return value(strconv.FormatInt(v, 10))
}

func (fg *FuncGen) ConstFloat(w types.Width, v float64) irgen.Value {
	if w == types.Width32 {
		return value(strconv.FormatFloat(v, 'e', -1, 32))
	}
	return value(strconv.FormatFloat(v, 'e', -1, 64))
}

func (fg *FuncGen) Zero(k irgen.ScalarKind) irgen.Value {
	switch {
	case k == irgen.ScalarPtr:
		return value("null")
	case k.Float():
		return value("0.0e+00")
	default:
		return value("0")
	}
}

func (fg *FuncGen) Undef(k irgen.ScalarKind) irgen.Value {
	return value("undef")
}

func (fg *FuncGen) UndefAddr(info irgen.TypeInfo) irgen.Value {
	return value("undef")
}

func (fg *FuncGen) Temp(info irgen.TypeInfo) irgen.Address {
	tmp := fg.newTmp()
	align := info.Align
	if align < 1 {
		align = 1
	}
	fmt.Fprintf(&fg.allocas, "  %s = alloca [%d x i8], align %d\n", tmp, info.Size, align)
	return irgen.MakeAddress(tmp, info)
}

// offsetAddr projects a pointer off bytes past base, reusing base when the
// offset is zero.
func (fg *FuncGen) offsetAddr(base irgen.Value, off int) irgen.Value {
	if off == 0 {
		return base
	}
	tmp := fg.newTmp()
	fmt.Fprintf(&fg.body, "  %s = getelementptr i8, ptr %s, i64 %d\n", tmp, base, off)
	return tmp
}

func (fg *FuncGen) Load(addr irgen.Address) irgen.RValue {
	info := addr.Info()
	if !info.Schema.IsScalar() {
		// Aggregates load by copy into a fresh scratch slot.
		dst := fg.Temp(info)
		fg.memCopy(dst.Addr(), addr.Addr(), info.Size)
		return irgen.ForAggregate(dst.Addr())
	}
	offs := fg.mustScalarOffsets(info.Type)
	kinds := info.Schema.Scalars()
	scalars := make([]irgen.Value, len(kinds))
	for i, k := range kinds {
		ptr := fg.offsetAddr(addr.Addr(), offs[i])
		tmp := fg.newTmp()
		fmt.Fprintf(&fg.body, "  %s = load %s, ptr %s\n", tmp, scalarType(k), ptr)
		scalars[i] = tmp
	}
	return irgen.ForScalars(scalars...)
}

func (fg *FuncGen) Store(rv irgen.RValue, addr irgen.Address) {
	info := addr.Info()
	if !rv.IsScalar() {
		fg.memCopy(addr.Addr(), rv.Aggregate(), info.Size)
		return
	}
	offs := fg.mustScalarOffsets(info.Type)
	kinds := info.Schema.Scalars()
	for i, v := range rv.Scalars() {
		ptr := fg.offsetAddr(addr.Addr(), offs[i])
		fmt.Fprintf(&fg.body, "  store %s %s, ptr %s\n", scalarType(kinds[i]), v, ptr)
	}
}

func (fg *FuncGen) MemSet(addr irgen.Address, b byte, size, align int) {
	fmt.Fprintf(&fg.body, "  call void @llvm.memset.p0.i64(ptr %s, i8 %d, i64 %d, i1 false)\n",
		addr.Addr(), b, size)
}

func (fg *FuncGen) memCopy(dst, src irgen.Value, size int) {
	fmt.Fprintf(&fg.body, "  call void @llvm.memcpy.p0.p0.i64(ptr %s, ptr %s, i64 %d, i1 false)\n",
		dst, src, size)
}

func (fg *FuncGen) ElemAddr(addr irgen.Address, index int, elemInfo irgen.TypeInfo) irgen.Address {
	base := resolveUnionWrap(fg.mod.Types, addr.Info().Type)
	off, err := fg.mod.Layout.ElemOffset(base, index)
	if err != nil {
		panic(fmt.Sprintf("text: no layout for tuple type id %d: %v", base, err))
	}
	return irgen.MakeAddress(fg.offsetAddr(addr.Addr(), off), elemInfo)
}

func (fg *FuncGen) FuncEntry(d *hir.Decl) irgen.Value {
	return value("@fn." + d.Name)
}

func (fg *FuncGen) CaseInjection(d *hir.Decl) irgen.Value {
	if info, ok := fg.mod.Types.UnionInfo(d.Union); ok {
		return value(fmt.Sprintf("@ctor.%s.%s", info.Name, d.Name))
	}
	return value("@ctor." + d.Name)
}

func (fg *FuncGen) mustScalarOffsets(id types.TypeID) []int {
	offs, err := scalarOffsets(fg.mod.Types, fg.mod.Layout, id, 0)
	if err != nil {
		panic(fmt.Sprintf("text: %v", err))
	}
	return offs
}

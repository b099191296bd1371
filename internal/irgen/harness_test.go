package irgen

import (
	"fmt"
	"testing"

	"ember/internal/diag"
	"ember/internal/hir"
	"ember/internal/layout"
	"ember/internal/source"
	"ember/internal/types"
)

type testValue string

func (v testValue) String() string { return string(v) }

// testBuilder fabricates deterministic value tokens and records every
// instruction, so tests can assert on exactly what the core emitted.
type testBuilder struct {
	tmps int
	ops  []string
}

func (b *testBuilder) op(format string, args ...any) {
	b.ops = append(b.ops, fmt.Sprintf(format, args...))
}

func (b *testBuilder) ConstInt(w types.Width, v int64) Value {
	return testValue(fmt.Sprintf("const:%d", v))
}

func (b *testBuilder) ConstFloat(w types.Width, v float64) Value {
	return testValue(fmt.Sprintf("fconst:%g", v))
}

func (b *testBuilder) Zero(k ScalarKind) Value {
	return testValue("zero:" + k.String())
}

func (b *testBuilder) Undef(k ScalarKind) Value {
	return testValue("undef:" + k.String())
}

func (b *testBuilder) UndefAddr(info TypeInfo) Value {
	return testValue("undefaddr")
}

func (b *testBuilder) Temp(info TypeInfo) Address {
	b.tmps++
	return MakeAddress(testValue(fmt.Sprintf("tmp%d", b.tmps)), info)
}

func (b *testBuilder) Load(addr Address) RValue {
	info := addr.Info()
	if !info.Schema.IsScalar() {
		b.op("loadagg %s", addr.Addr())
		return ForAggregate(testValue(fmt.Sprintf("copy(%s)", addr.Addr())))
	}
	kinds := info.Schema.Scalars()
	scalars := make([]Value, len(kinds))
	for i := range kinds {
		scalars[i] = testValue(fmt.Sprintf("load(%s.%d)", addr.Addr(), i))
		b.op("load %s.%d", addr.Addr(), i)
	}
	return ForScalars(scalars...)
}

func (b *testBuilder) Store(rv RValue, addr Address) {
	if rv.IsScalar() {
		for _, v := range rv.Scalars() {
			b.op("store %s -> %s", v, addr.Addr())
		}
		return
	}
	b.op("copy %s -> %s", rv.Aggregate(), addr.Addr())
}

func (b *testBuilder) MemSet(addr Address, v byte, size, align int) {
	b.op("memset %s %d %d", addr.Addr(), v, size)
}

func (b *testBuilder) ElemAddr(addr Address, index int, elemInfo TypeInfo) Address {
	return MakeAddress(testValue(fmt.Sprintf("elem(%s,%d)", addr.Addr(), index)), elemInfo)
}

func (b *testBuilder) FuncEntry(d *hir.Decl) Value {
	return testValue("entry:" + d.Name)
}

func (b *testBuilder) CaseInjection(d *hir.Decl) Value {
	return testValue("inject:" + d.Name)
}

// testCalls lowers any call to a fixed scalar or aggregate per the result
// schema, recording that the call path was taken.
type testCalls struct {
	b     *testBuilder
	calls int
}

func (c *testCalls) LowerCall(e *hir.Expr, info TypeInfo) RValue {
	c.calls++
	if !info.Schema.IsScalar() {
		c.b.tmps++
		return ForAggregate(testValue(fmt.Sprintf("callagg%d", c.b.tmps)))
	}
	kinds := info.Schema.Scalars()
	scalars := make([]Value, len(kinds))
	for i := range kinds {
		scalars[i] = testValue(fmt.Sprintf("call%d.%d", c.calls, i))
	}
	return ForScalars(scalars...)
}

type testGlobals struct {
	b     *testBuilder
	addrs map[*hir.Decl]Address
}

func (g *testGlobals) AddressOf(d *hir.Decl, info TypeInfo) Address {
	if g.addrs == nil {
		g.addrs = make(map[*hir.Decl]Address)
	}
	if addr, ok := g.addrs[d]; ok {
		return addr
	}
	addr := MakeAddress(testValue("global:"+d.Name), info)
	g.addrs[d] = addr
	return addr
}

type testEnv struct {
	types   *types.Interner
	info    *Describer
	builder *testBuilder
	calls   *testCalls
	frame   *FrameMap
	globals *testGlobals
	bag     *diag.Bag
	em      *Emitter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	typesIn := types.NewInterner()
	engine := layout.New(layout.X86_64LinuxGNU(), typesIn)
	b := &testBuilder{}
	env := &testEnv{
		types:   typesIn,
		info:    NewDescriber(typesIn, engine),
		builder: b,
		calls:   &testCalls{b: b},
		frame:   NewFrameMap(),
		globals: &testGlobals{b: b},
		bag:     diag.NewBag(64),
	}
	env.em = NewEmitter(typesIn, env.info, b, env.frame, env.globals, env.calls, diag.BagReporter{Bag: env.bag})
	return env
}

func span(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func intLit(t types.TypeID, v int64) *hir.Expr {
	return &hir.Expr{Kind: hir.ExprIntLit, Type: t, Span: span(0, 2), Data: hir.IntLitData{Value: v}}
}

func floatLit(t types.TypeID, v float64) *hir.Expr {
	return &hir.Expr{Kind: hir.ExprFloatLit, Type: t, Span: span(0, 3), Data: hir.FloatLitData{Value: v}}
}

func declRef(d *hir.Decl, vk hir.ValueKind) *hir.Expr {
	return &hir.Expr{Kind: hir.ExprDeclRef, Type: d.Type, ValueKind: vk, Span: span(4, 5), Data: hir.DeclRefData{Decl: d}}
}

func loadOf(e *hir.Expr) *hir.Expr {
	return &hir.Expr{Kind: hir.ExprLoad, Type: e.Type, Span: e.Span, Data: hir.LoadData{Operand: e}}
}

func tupleLit(t types.TypeID, grouping bool, elems ...*hir.Expr) *hir.Expr {
	return &hir.Expr{Kind: hir.ExprTuple, Type: t, Span: span(0, 8), Data: hir.TupleData{Elems: elems, Grouping: grouping}}
}

// scalarsOf drains an explosion into plain strings.
func scalarsOf(ex *Explosion) []string {
	var out []string
	for !ex.Empty() {
		out = append(out, ex.ClaimNext().String())
	}
	return out
}

func rvalueScalars(rv RValue) []string {
	out := make([]string, 0, MaxScalars)
	for _, v := range rv.Scalars() {
		out = append(out, v.String())
	}
	return out
}

func wantStrings(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("value %d: got %q, want %q (full: %v vs %v)", i, got[i], want[i], got, want)
		}
	}
}

package irgen

import (
	"testing"

	"ember/internal/diag"
	"ember/internal/hir"
	"ember/internal/types"
)

func TestEmitRValueIntLiteral(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()

	rv := env.em.EmitRValue(intLit(b.Int32, 42))
	if !rv.IsScalar() {
		t.Fatal("integer literal lowered to an aggregate")
	}
	wantStrings(t, rvalueScalars(rv), []string{"const:42"})
	if env.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", env.bag.Items())
	}
}

func TestEmitExplodedTupleOrder(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()
	pair := env.types.RegisterTuple([]types.TypeID{b.Int32, b.Float64})

	e := tupleLit(pair, false, intLit(b.Int32, 1), floatLit(b.Float64, 2))
	ex := NewExplosion(ExplosionMinimal)
	env.em.EmitExploded(e, ex)
	wantStrings(t, scalarsOf(ex), []string{"const:1", "fconst:2"})
}

func TestGroupingTupleIsTransparent(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()

	plain := env.em.EmitRValue(intLit(b.Int32, 7))
	grouped := env.em.EmitRValue(tupleLit(b.Int32, true, intLit(b.Int32, 7)))
	wantStrings(t, rvalueScalars(grouped), rvalueScalars(plain))
}

func TestDeclRefSameSlotIdentity(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()

	d := &hir.Decl{Kind: hir.DeclVar, Name: "x", Type: b.Int64, Local: true}
	slot := env.builder.Temp(env.info.InfoOf(b.Int64))
	env.frame.Define(d, slot)

	first := env.em.EmitLValue(declRef(d, hir.LValue))
	second := env.em.EmitLValue(declRef(d, hir.LValue))
	if first.Addr().String() != slot.Addr().String() || second.Addr().String() != slot.Addr().String() {
		t.Fatalf("lvalue addresses %q, %q, want frame slot %q", first.Addr(), second.Addr(), slot.Addr())
	}
}

func TestLoadOfVariableReadsFrameSlot(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()

	d := &hir.Decl{Kind: hir.DeclVar, Name: "x", Type: b.Int32, Local: true}
	env.frame.Define(d, env.builder.Temp(env.info.InfoOf(b.Int32)))

	rv := env.em.EmitRValue(loadOf(declRef(d, hir.LValue)))
	wantStrings(t, rvalueScalars(rv), []string{"load(tmp1.0)"})
}

func TestGlobalVariableUsesRegistry(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()

	d := &hir.Decl{Kind: hir.DeclVar, Name: "g", Type: b.Int32, Local: false}
	addr := env.em.EmitLValue(declRef(d, hir.LValue))
	if addr.Addr().String() != "global:g" {
		t.Fatalf("global lvalue = %q, want registry address", addr.Addr())
	}
}

func TestFuncRefIsEntryAndUndefContext(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()
	fnT := env.types.RegisterFn([]types.TypeID{b.Int32}, b.Int32)

	d := &hir.Decl{Kind: hir.DeclFunc, Name: "f", Type: fnT}
	rv := env.em.EmitRValue(declRef(d, hir.RValue))
	wantStrings(t, rvalueScalars(rv), []string{"entry:f", "undef:ptr"})
}

func TestAddressOfFuncRefRecovers(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()
	fnT := env.types.RegisterFn([]types.TypeID{b.Int32}, b.Int32)

	d := &hir.Decl{Kind: hir.DeclFunc, Name: "f", Type: fnT}
	addr := env.em.EmitLValue(declRef(d, hir.RValue))
	if addr.Addr().String() != "undefaddr" {
		t.Fatalf("fake lvalue = %q, want undef address", addr.Addr())
	}
	if env.bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want exactly 1", env.bag.Len())
	}
	if env.bag.Items()[0].Code != diag.GenNotAddressable {
		t.Fatalf("code = %v, want %v", env.bag.Items()[0].Code, diag.GenNotAddressable)
	}
}

func TestCaseConstructorRefIsInjectionPair(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()
	fnT := env.types.RegisterFn([]types.TypeID{b.Int32}, b.Int32)

	d := &hir.Decl{Kind: hir.DeclCase, Name: "Some", Type: fnT}
	rv := env.em.EmitRValue(declRef(d, hir.RValue))
	wantStrings(t, rvalueScalars(rv), []string{"inject:Some", "undef:ptr"})
}

func TestTupleElemFromLiteral(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()
	pair := env.types.RegisterTuple([]types.TypeID{b.Int32, b.Int64})

	tup := tupleLit(pair, false, intLit(b.Int32, 1), intLit(b.Int64, 2))
	elem := &hir.Expr{Kind: hir.ExprTupleElem, Type: b.Int64, Span: span(0, 4),
		Data: hir.TupleElemData{Tuple: tup, Index: 1}}

	rv := env.em.EmitRValue(elem)
	wantStrings(t, rvalueScalars(rv), []string{"const:2"})
}

func TestTupleElemFromVariableProjectsAddress(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()
	pair := env.types.RegisterTuple([]types.TypeID{b.Int32, b.Int64})

	d := &hir.Decl{Kind: hir.DeclVar, Name: "p", Type: pair, Local: true}
	env.frame.Define(d, env.builder.Temp(env.info.InfoOf(pair)))

	elem := &hir.Expr{Kind: hir.ExprTupleElem, Type: b.Int64, Span: span(0, 4),
		Data: hir.TupleElemData{Tuple: declRef(d, hir.LValue), Index: 1}}

	rv := env.em.EmitRValue(elem)
	wantStrings(t, rvalueScalars(rv), []string{"load(elem(tmp1,1).0)"})
}

func TestTupleShuffleWithDefaults(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()
	src := env.types.RegisterTuple([]types.TypeID{b.Int32, b.Int64})
	dst := env.types.RegisterTuple([]types.TypeID{b.Int64, b.Int32, b.Int32})

	tup := tupleLit(src, false, intLit(b.Int32, 10), intLit(b.Int64, 20))
	shuffle := &hir.Expr{Kind: hir.ExprTupleShuffle, Type: dst, Span: span(0, 9),
		Data: hir.TupleShuffleData{Operand: tup, Mapping: []int{1, hir.ShuffleDefault, 0}}}

	ex := NewExplosion(ExplosionMinimal)
	env.em.EmitExploded(shuffle, ex)
	wantStrings(t, scalarsOf(ex), []string{"const:20", "zero:i32", "const:10"})
}

func TestAddressOfLiteralRecovers(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()
	lit := intLit(b.Int32, 5)

	addr := env.em.EmitLValue(lit)
	if addr.Addr().String() != "undefaddr" {
		t.Fatalf("fake lvalue = %q, want undef address", addr.Addr())
	}
	// A second attempt at the same spot must not pile up duplicates.
	env.em.EmitLValue(lit)

	if env.bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want exactly 1", env.bag.Len())
	}
	d := env.bag.Items()[0]
	if d.Code != diag.GenNotAddressable || d.Severity != diag.SevError {
		t.Fatalf("diagnostic = %v %v, want error %v", d.Severity, d.Code, diag.GenNotAddressable)
	}
}

func TestFakeValuesAreStructurallyValid(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()
	pair := env.types.RegisterTuple([]types.TypeID{b.Int32, b.Int64})
	wide := env.types.RegisterTuple([]types.TypeID{b.Int32, b.Int64, b.Int32})

	rv := env.em.FakeRValue(env.info.InfoOf(pair))
	wantStrings(t, rvalueScalars(rv), []string{"undef:i32", "undef:i64"})

	agg := env.em.FakeRValue(env.info.InfoOf(wide))
	if agg.IsScalar() {
		t.Fatal("fake value for an aggregate type is scalar")
	}

	ex := NewExplosion(ExplosionMinimal)
	env.em.FakeExplosion(pair, ex)
	if ex.Size() != env.info.InfoOf(pair).ValueCount() {
		t.Fatalf("fake explosion size %d, want %d", ex.Size(), env.info.InfoOf(pair).ValueCount())
	}
}

func TestUnimplementedExprRecoversWithFake(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()

	anon := &hir.Expr{Kind: hir.ExprAnonArg, Type: b.Int32, Span: span(6, 7), Data: hir.AnonArgData{Index: 0}}
	rv := env.em.EmitRValue(anon)
	wantStrings(t, rvalueScalars(rv), []string{"undef:i32"})

	if env.bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1", env.bag.Len())
	}
	if env.bag.Items()[0].Code != diag.GenNotImplemented {
		t.Fatalf("code = %v, want %v", env.bag.Items()[0].Code, diag.GenNotImplemented)
	}
}

func TestUncheckedExprPanics(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()

	defer func() {
		if recover() == nil {
			t.Fatal("unchecked expression did not panic")
		}
	}()
	env.em.EmitRValue(&hir.Expr{Kind: hir.ExprUncheckedIdent, Type: b.Int32, Data: hir.UncheckedData{Name: "x"}})
}

func TestCallFamilyRoutesThroughCallLowerer(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()

	callee := &hir.Decl{Kind: hir.DeclFunc, Name: "f", Type: env.types.RegisterFn(nil, b.Int32)}
	for _, kind := range []hir.ExprKind{hir.ExprCall, hir.ExprUnary, hir.ExprBinary, hir.ExprCtorCall, hir.ExprMethodCall} {
		e := &hir.Expr{Kind: kind, Type: b.Int32, Span: span(0, 3),
			Data: hir.ApplyData{Callee: declRef(callee, hir.RValue)}}
		env.em.EmitRValue(e)
	}
	if env.calls.calls != 5 {
		t.Fatalf("call lowerer invoked %d times, want 5", env.calls.calls)
	}
}

func TestUnionUnwrapIsTransparent(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()
	u := env.types.RegisterUnion("Wrapper", span(0, 10))
	env.types.SetUnionCases(u, []types.UnionCase{{Name: "Only", Payload: b.Int32}})

	d := &hir.Decl{Kind: hir.DeclVar, Name: "w", Type: u, Local: true}
	env.frame.Define(d, env.builder.Temp(env.info.InfoOf(u)))
	unwrap := &hir.Expr{Kind: hir.ExprUnionUnwrap, Type: b.Int32, Span: span(0, 5),
		Data: hir.UnionUnwrapData{Operand: declRef(d, hir.LValue)}}

	// The union wraps one case, so its storage is exactly the payload's and
	// the unwrap reads it as a plain scalar.
	rv := env.em.EmitRValue(unwrap)
	wantStrings(t, rvalueScalars(rv), []string{"load(tmp1.0)"})
}

func TestEmitAsPrimitiveScalar(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()

	v := env.em.EmitAsPrimitiveScalar(intLit(b.Int32, 9))
	if v.String() != "const:9" {
		t.Fatalf("EmitAsPrimitiveScalar = %q, want const:9", v)
	}
}

func TestEmitZeroInit(t *testing.T) {
	env := newTestEnv(t)
	b := env.types.Builtins()
	wide := env.types.RegisterTuple([]types.TypeID{b.Int64, b.Int64, b.Int64})

	scalarSlot := env.builder.Temp(env.info.InfoOf(b.Int32))
	env.em.EmitZeroInit(scalarSlot)
	wantStrings(t, env.builder.ops, []string{"store zero:i32 -> tmp1"})

	env.builder.ops = nil
	aggSlot := env.builder.Temp(env.info.InfoOf(wide))
	env.em.EmitZeroInit(aggSlot)
	wantStrings(t, env.builder.ops, []string{"memset tmp2 0 24"})
}

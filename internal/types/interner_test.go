package types

import (
	"testing"

	"ember/internal/source"
)

func TestInternDedupsStructuralTypes(t *testing.T) {
	in := NewInterner()

	a := in.Intern(MakeInt(Width16))
	b := in.Intern(MakeInt(Width16))
	if a != b {
		t.Fatalf("identical int types interned to %d and %d", a, b)
	}
	if c := in.Intern(MakeUint(Width16)); c == a {
		t.Fatal("uint16 interned to the same id as int16")
	}
}

func TestInternInvalidIsNoTypeID(t *testing.T) {
	in := NewInterner()
	if got := in.Intern(Type{Kind: KindInvalid}); got != NoTypeID {
		t.Fatalf("Intern(invalid) = %d, want NoTypeID", got)
	}
}

func TestBuiltinsAreStable(t *testing.T) {
	a := NewInterner().Builtins()
	b := NewInterner().Builtins()
	if a != b {
		t.Fatalf("builtin ids differ between interners: %+v vs %+v", a, b)
	}
	if a.Int32 == NoTypeID || a.Unit == NoTypeID {
		t.Fatal("builtin ids must be valid")
	}
}

func TestRegisterTupleDedups(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	first := in.RegisterTuple([]TypeID{b.Int32, b.Float64})
	second := in.RegisterTuple([]TypeID{b.Int32, b.Float64})
	if first != second {
		t.Fatalf("identical tuples registered as %d and %d", first, second)
	}
	other := in.RegisterTuple([]TypeID{b.Float64, b.Int32})
	if other == first {
		t.Fatal("element order must distinguish tuple types")
	}

	info, ok := in.TupleInfo(first)
	if !ok || len(info.Elems) != 2 || info.Elems[0] != b.Int32 {
		t.Fatalf("TupleInfo = %+v, %v", info, ok)
	}
}

func TestRegisterUnionIsNominal(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	u1 := in.RegisterUnion("Same", source.Span{})
	u2 := in.RegisterUnion("Same", source.Span{})
	if u1 == u2 {
		t.Fatal("separate union declarations must get distinct ids")
	}

	in.SetUnionCases(u1, []UnionCase{{Name: "Only", Payload: b.Int32}})
	payload, ok := in.SingleCasePayload(u1)
	if !ok || payload != b.Int32 {
		t.Fatalf("SingleCasePayload = %d, %v", payload, ok)
	}
	if _, ok := in.SingleCasePayload(u2); ok {
		t.Fatal("union without cases must not report a single-case payload")
	}
}

func TestSingleCasePayloadRejectsMultiCase(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	u := in.RegisterUnion("Either", source.Span{})
	in.SetUnionCases(u, []UnionCase{
		{Name: "L", Payload: b.Int32},
		{Name: "R", Payload: b.Float64},
	})
	if _, ok := in.SingleCasePayload(u); ok {
		t.Fatal("multi-case union must not be payload-transparent")
	}
}

func TestRegisterFn(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	fn := in.RegisterFn([]TypeID{b.Int32, b.Float64}, b.Bool)
	info, ok := in.FnInfo(fn)
	if !ok {
		t.Fatal("FnInfo missing for registered fn type")
	}
	if len(info.Params) != 2 || info.Result != b.Bool {
		t.Fatalf("FnInfo = %+v", info)
	}

	again := in.RegisterFn([]TypeID{b.Int32, b.Float64}, b.Bool)
	if again != fn {
		t.Fatalf("identical fn types registered as %d and %d", fn, again)
	}
}

func TestLookupRejectsOutOfRange(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(NoTypeID); ok {
		t.Fatal("Lookup(NoTypeID) must fail")
	}
	if _, ok := in.Lookup(TypeID(10_000)); ok {
		t.Fatal("Lookup past the end must fail")
	}
}

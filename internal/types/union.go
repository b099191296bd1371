package types

import (
	"fmt"

	"fortio.org/safecast"

	"ember/internal/source"
)

// UnionCase describes a single case inside a tagged union.
type UnionCase struct {
	Name    string
	Payload TypeID // NoTypeID for payload-free cases
}

// UnionInfo stores metadata for a tagged union type.
type UnionInfo struct {
	Name  string
	Decl  source.Span
	Cases []UnionCase
}

// RegisterUnion allocates a nominal union type slot and returns its TypeID.
// Cases are attached later via SetUnionCases once the front end has resolved
// them.
func (in *Interner) RegisterUnion(name string, decl source.Span) TypeID {
	slot := in.appendUnionInfo(UnionInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindUnion, Payload: slot})
}

// SetUnionCases stores the resolved cases for the union type.
func (in *Interner) SetUnionCases(typeID TypeID, cases []UnionCase) {
	info := in.unionInfo(typeID)
	if info == nil {
		return
	}
	info.Cases = append([]UnionCase(nil), cases...)
}

// UnionInfo returns metadata for the provided union TypeID.
func (in *Interner) UnionInfo(typeID TypeID) (*UnionInfo, bool) {
	info := in.unionInfo(typeID)
	if info == nil {
		return nil, false
	}
	return info, true
}

// SingleCasePayload returns the payload type when the union has exactly one
// case. Single-case unions are transparent for lowering.
func (in *Interner) SingleCasePayload(typeID TypeID) (TypeID, bool) {
	info := in.unionInfo(typeID)
	if info == nil || len(info.Cases) != 1 {
		return NoTypeID, false
	}
	return info.Cases[0].Payload, true
}

func (in *Interner) unionInfo(typeID TypeID) *UnionInfo {
	if typeID == NoTypeID {
		return nil
	}
	tt, ok := in.Lookup(typeID)
	if !ok || tt.Kind != KindUnion {
		return nil
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.unions) {
		return nil
	}
	return &in.unions[tt.Payload]
}

func (in *Interner) appendUnionInfo(info UnionInfo) uint32 {
	if in.unions == nil {
		in.unions = append(in.unions, UnionInfo{})
	}
	in.unions = append(in.unions, info)
	slot, err := safecast.Conv[uint32](len(in.unions) - 1)
	if err != nil {
		panic(fmt.Errorf("types: union info overflow: %w", err))
	}
	return slot
}

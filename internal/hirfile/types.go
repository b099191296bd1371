package hirfile

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/types"
)

type fileUnionCase struct {
	Name    string
	Payload uint32
}

// fileType records one interned type. Union cases are attached in a second
// decoding pass because they may reference later TypeIDs.
type fileType struct {
	Kind  uint8
	Elem  uint32
	Width uint8

	TupleElems []uint32
	UnionName  string
	UnionDecl  fileSpan
	UnionCases []fileUnionCase
	FnParams   []uint32
	FnResult   uint32
}

type fileTypeTable struct {
	Schema uint16
	// Seed is the number of descriptors a fresh interner already holds;
	// records cover TypeIDs [Seed, Seed+len(Types)).
	Seed  uint32
	Types []fileType
}

// EncodeTypes writes the interner's type table to w.
func EncodeTypes(w io.Writer, in *types.Interner) error {
	table, err := buildTypeTable(in)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(&table)
}

func buildTypeTable(in *types.Interner) (fileTypeTable, error) {
	seed := types.NewInterner().Len()
	table := fileTypeTable{Schema: schemaVersion, Seed: uint32(seed)}

	for id := types.TypeID(seed); int(id) < in.Len(); id++ {
		tt, ok := in.Lookup(id)
		if !ok {
			return table, fmt.Errorf("hirfile: type id %d missing from interner", id)
		}
		rec := fileType{Kind: uint8(tt.Kind), Elem: uint32(tt.Elem), Width: uint8(tt.Width)}
		switch tt.Kind {
		case types.KindTuple:
			info, ok := in.TupleInfo(id)
			if !ok {
				return table, fmt.Errorf("hirfile: tuple info missing for type id %d", id)
			}
			for _, el := range info.Elems {
				rec.TupleElems = append(rec.TupleElems, uint32(el))
			}
		case types.KindUnion:
			info, ok := in.UnionInfo(id)
			if !ok {
				return table, fmt.Errorf("hirfile: union info missing for type id %d", id)
			}
			rec.UnionName = info.Name
			rec.UnionDecl = encSpan(info.Decl)
			for _, c := range info.Cases {
				rec.UnionCases = append(rec.UnionCases, fileUnionCase{Name: c.Name, Payload: uint32(c.Payload)})
			}
		case types.KindFn:
			info, ok := in.FnInfo(id)
			if !ok {
				return table, fmt.Errorf("hirfile: fn info missing for type id %d", id)
			}
			for _, p := range info.Params {
				rec.FnParams = append(rec.FnParams, uint32(p))
			}
			rec.FnResult = uint32(info.Result)
		}
		table.Types = append(table.Types, rec)
	}
	return table, nil
}

// DecodeTypes reads a type table from r and rebuilds an interner with the
// same dense TypeID assignment.
func DecodeTypes(r io.Reader) (*types.Interner, error) {
	var table fileTypeTable
	if err := msgpack.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("hirfile: decode types: %w", err)
	}
	return rebuildInterner(table)
}

func rebuildInterner(table fileTypeTable) (*types.Interner, error) {
	if table.Schema != schemaVersion {
		return nil, fmt.Errorf("hirfile: type table schema version %d, want %d", table.Schema, schemaVersion)
	}

	in := types.NewInterner()
	if in.Len() != int(table.Seed) {
		return nil, fmt.Errorf("hirfile: interner seed is %d, table expects %d", in.Len(), table.Seed)
	}

	// First pass: recreate descriptors in ID order. Replaying in order keeps
	// the dense assignment identical to the encoder's interner.
	for i, rec := range table.Types {
		want := types.TypeID(int(table.Seed) + i)
		var got types.TypeID
		switch types.Kind(rec.Kind) {
		case types.KindUnit:
			got = in.Intern(types.Type{Kind: types.KindUnit})
		case types.KindBool:
			got = in.Intern(types.Type{Kind: types.KindBool})
		case types.KindInt:
			got = in.Intern(types.MakeInt(types.Width(rec.Width)))
		case types.KindUint:
			got = in.Intern(types.MakeUint(types.Width(rec.Width)))
		case types.KindFloat:
			got = in.Intern(types.MakeFloat(types.Width(rec.Width)))
		case types.KindPointer:
			got = in.Intern(types.MakePointer(types.TypeID(rec.Elem)))
		case types.KindTuple:
			elems := make([]types.TypeID, len(rec.TupleElems))
			for j, el := range rec.TupleElems {
				elems[j] = types.TypeID(el)
			}
			got = in.RegisterTuple(elems)
		case types.KindUnion:
			got = in.RegisterUnion(rec.UnionName, decSpan(rec.UnionDecl))
		case types.KindFn:
			params := make([]types.TypeID, len(rec.FnParams))
			for j, p := range rec.FnParams {
				params[j] = types.TypeID(p)
			}
			got = in.RegisterFn(params, types.TypeID(rec.FnResult))
		default:
			return nil, fmt.Errorf("hirfile: unknown type kind %d at id %d", rec.Kind, want)
		}
		if got != want {
			return nil, fmt.Errorf("hirfile: type id drift: got %d, want %d", got, want)
		}
	}

	// Second pass: attach union cases, which may reference forward IDs.
	for i, rec := range table.Types {
		if types.Kind(rec.Kind) != types.KindUnion {
			continue
		}
		id := types.TypeID(int(table.Seed) + i)
		cases := make([]types.UnionCase, len(rec.UnionCases))
		for j, c := range rec.UnionCases {
			cases[j] = types.UnionCase{Name: c.Name, Payload: types.TypeID(c.Payload)}
		}
		in.SetUnionCases(id, cases)
	}
	return in, nil
}

package irgen

// Address is a non-owning reference to one addressable storage location
// together with the type info describing its layout. The storage itself is
// owned by a frame slot, a global, or a caller-supplied buffer.
type Address struct {
	addr Value
	info TypeInfo
}

// MakeAddress pairs a storage address with its type info. The info's
// size/alignment must match the location's actual allocation.
func MakeAddress(addr Value, info TypeInfo) Address {
	return Address{addr: addr, info: info}
}

// Addr returns the storage address value.
func (a Address) Addr() Value {
	return a.addr
}

// Info returns the layout descriptor that applies at the location.
func (a Address) Info() TypeInfo {
	return a.info
}

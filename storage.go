package bitfield

// Storage is the natural unsigned type a field's value is read into.
type Storage uint8

const (
	StorageU8 Storage = iota + 1
	StorageU16
	StorageU32
	StorageU64
	StorageU128
)

var storageNames = [...]string{
	StorageU8:   "u8",
	StorageU16:  "u16",
	StorageU32:  "u32",
	StorageU64:  "u64",
	StorageU128: "u128",
}

var storageBits = [...]int{
	StorageU8:   8,
	StorageU16:  16,
	StorageU32:  32,
	StorageU64:  64,
	StorageU128: 128,
}

func (s Storage) String() string {
	if s > 0 && int(s) < len(storageNames) {
		return storageNames[s]
	}
	return "unknown"
}

// Bits returns the size of the storage type in bits, or 0 for an unknown kind.
func (s Storage) Bits() int {
	if s > 0 && int(s) < len(storageBits) {
		return storageBits[s]
	}
	return 0
}

// StorageFor returns the narrowest storage kind holding bits bits.
// Widths outside [1, 128] report false.
func StorageFor(bits int) (Storage, bool) {
	switch {
	case bits < 1:
		return 0, false
	case bits <= 8:
		return StorageU8, true
	case bits <= 16:
		return StorageU16, true
	case bits <= 32:
		return StorageU32, true
	case bits <= 64:
		return StorageU64, true
	case bits <= 128:
		return StorageU128, true
	default:
		return 0, false
	}
}

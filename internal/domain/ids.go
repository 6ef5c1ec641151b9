package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a fresh 24-character hexadecimal identifier.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// RefKind tells which backing store owns a trip id.
type RefKind int

const (
	// RefStored ids belong to the trip aggregate store.
	RefStored RefKind = iota + 1
	// RefDemo ids belong to the seed catalog and the fallback mirror.
	RefDemo
)

func (k RefKind) String() string {
	switch k {
	case RefStored:
		return "stored"
	case RefDemo:
		return "demo"
	}
	return "unknown"
}

// TripRef is a trip id classified by its shape. Build it once with ParseTripRef
// at the API boundary and switch on Kind instead of re-checking the string.
type TripRef struct {
	ID   string
	Kind RefKind
}

// ParseTripRef classifies id: 24 hexadecimal characters (any case) denote a
// stored trip, anything else a demo trip.
func ParseTripRef(id string) TripRef {
	if IsStoredID(id) {
		return TripRef{ID: id, Kind: RefStored}
	}
	return TripRef{ID: id, Kind: RefDemo}
}

// Stored reports whether the ref targets the trip aggregate store.
func (r TripRef) Stored() bool { return r.Kind == RefStored }

// Demo reports whether the ref targets the seed catalog and mirror.
func (r TripRef) Demo() bool { return r.Kind == RefDemo }

// IsStoredID reports whether id has the 24-hex shape of a store identifier.
func IsStoredID(id string) bool {
	return primitive.IsValidObjectID(id)
}

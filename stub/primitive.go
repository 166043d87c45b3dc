package stub

import (
	"errors"
	"fmt"
)

var ErrUnknownType = errors.New("unknown type")

type PrimitiveType int

const (
	PrimitiveTypeBool PrimitiveType = iota
	PrimitiveTypeUint8
	PrimitiveTypeInt8
	PrimitiveTypeInt16
	PrimitiveTypeInt32
	PrimitiveTypeInt64
	PrimitiveTypeVoid
	PrimitiveTypeAddress
	PrimitiveTypeID
)

var primitiveTypes = []PrimitiveType{
	PrimitiveTypeBool,
	PrimitiveTypeUint8,
	PrimitiveTypeInt8,
	PrimitiveTypeInt16,
	PrimitiveTypeInt32,
	PrimitiveTypeInt64,
	PrimitiveTypeVoid,
	PrimitiveTypeAddress,
	PrimitiveTypeID,
}

// ParsePrimitiveType returns the type whose canonical name is name.
func ParsePrimitiveType(name string) (PrimitiveType, error) {
	for _, t := range primitiveTypes {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrUnknownType, name)
}

func (t PrimitiveType) String() string {
	switch t {
	case PrimitiveTypeBool:
		return "bool"
	case PrimitiveTypeUint8:
		return "uint8"
	case PrimitiveTypeInt8:
		return "int8"
	case PrimitiveTypeInt16:
		return "int16"
	case PrimitiveTypeInt32:
		return "int32"
	case PrimitiveTypeInt64:
		return "int64"
	case PrimitiveTypeVoid:
		return "void"
	case PrimitiveTypeAddress:
		return "address"
	case PrimitiveTypeID:
		return "id"
	}
	panic(fmt.Sprintf("invalid primitive type: %d", int(t)))
}

// CType returns the C spelling of the type.
func (t PrimitiveType) CType() string {
	switch t {
	case PrimitiveTypeBool:
		return "bool"
	case PrimitiveTypeUint8:
		return "uint8_t"
	case PrimitiveTypeInt8:
		return "int8_t"
	case PrimitiveTypeInt16:
		return "int16_t"
	case PrimitiveTypeInt32:
		return "int32_t"
	case PrimitiveTypeInt64:
		return "int64_t"
	case PrimitiveTypeVoid:
		return "void"
	case PrimitiveTypeAddress:
		return "uint32_t"
	case PrimitiveTypeID:
		return "uint64_t"
	}
	panic(fmt.Sprintf("invalid primitive type: %d", int(t)))
}

// Length returns the size of the type in bytes.
func (t PrimitiveType) Length() int {
	switch t {
	case PrimitiveTypeBool, PrimitiveTypeUint8, PrimitiveTypeInt8:
		return 1
	case PrimitiveTypeInt16:
		return 2
	case PrimitiveTypeInt32, PrimitiveTypeAddress:
		return 4
	case PrimitiveTypeInt64, PrimitiveTypeID:
		return 8
	case PrimitiveTypeVoid:
		return 0
	}
	panic(fmt.Sprintf("invalid primitive type: %d", int(t)))
}

package interpose

import (
	"reflect"
	"sync"

	"github.com/muir/reflectutils"
)

// typeCode is a stable identifier for a reflect.Type.  Dispatch caches are
// keyed by typeCode rather than by the reflect.Type itself so that the key
// is a plain integer that does not depend on pointer identity.
type typeCode int

var (
	typeCounter = 0
	typeLock    sync.Mutex
	typeMap     = make(map[reflect.Type]typeCode)
	reverseMap  = make(map[typeCode]reflect.Type)
)

// getTypeCode maps reflect.Type to integers.
func getTypeCode(t reflect.Type) typeCode {
	if t == nil {
		panic("nil has no type")
	}
	typeLock.Lock()
	defer typeLock.Unlock()
	if tc, found := typeMap[t]; found {
		return tc
	}
	typeCounter++
	tc := typeCode(typeCounter)
	typeMap[t] = tc
	reverseMap[tc] = t
	return tc
}

// Type returns the reflect.Type for this typeCode
func (tc typeCode) Type() reflect.Type {
	typeLock.Lock()
	defer typeLock.Unlock()
	return reverseMap[tc]
}

func (tc typeCode) String() string {
	return reflectutils.TypeName(tc.Type())
}

package conditions

import (
	"errors"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	f, err := newFulfillment(testLockBit)
	if err != nil {
		t.Fatalf("lookup of registered bit: %v", err)
	}
	if _, ok := f.(*testLock); !ok {
		t.Fatalf("constructor returned %T", f)
	}

	_, err = newFulfillment(1 << 11)
	var ute UnknownTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("got %v, want UnknownTypeError", err)
	}
	if !IsParse(err) {
		t.Fatal("UnknownTypeError not classified as parse error")
	}
}

func TestRegisteredTypeBits(t *testing.T) {
	mask := RegisteredTypeBits()
	if mask&testLockBit == 0 || mask&emptyLockBit == 0 {
		t.Fatalf("mask %#x missing test bits", mask)
	}
}

func TestRegisterTypePanics(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			fn()
		})
	}
	ctor := func() Fulfillment { return &testLock{} }
	mustPanic("zero bit", func() { RegisterType(0, ctor) })
	mustPanic("two bits", func() { RegisterType(0x3, ctor) })
	mustPanic("nil constructor", func() { RegisterType(1<<20, nil) })
	mustPanic("duplicate", func() { RegisterType(testLockBit, ctor) })
}

func TestCombineMasks(t *testing.T) {
	if got := CombineMasks(); got != 0 {
		t.Fatalf("CombineMasks() = %#x", got)
	}
	if got := CombineMasks(0x1, 0x4, 0x5); got != 0x5 {
		t.Fatalf("CombineMasks = %#x, want 0x5", got)
	}
}

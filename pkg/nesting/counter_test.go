package nesting_test

import (
	"testing"

	"github.com/brickingsoft/lockcell/pkg/nesting"
)

func TestCounter(t *testing.T) {
	counter := nesting.New()
	if n := counter.Incr(); n != 1 {
		t.Error("incr:", n)
	}
	if n := counter.Incr(); n != 2 {
		t.Error("incr:", n)
	}
	if n := counter.Decr(); n != 1 {
		t.Error("decr:", n)
	}
	if n := counter.Value(); n != 1 {
		t.Error("value:", n)
	}
	if n := counter.Decr(); n != 0 {
		t.Error("decr:", n)
	}
}

func TestCounter_Underflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("underflow was accepted")
		}
	}()
	nesting.New().Decr()
}

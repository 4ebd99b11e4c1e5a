package ops

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wavecore/corelang/ast"
	"github.com/wavecore/corelang/value"
)

func TestBinaryIntegerArithmetic(t *testing.T) {
	x := value.Int32{V: 7}
	y := value.Int32{V: 3}

	cases := []struct {
		op   ast.BinaryOp
		want value.Value
	}{
		{ast.BAdd, value.Int32{V: 10}},
		{ast.BSub, value.Int32{V: 4}},
		{ast.BMul, value.Int32{V: 21}},
		{ast.BDiv, value.Int32{V: 2}},
		{ast.BRem, value.Int32{V: 1}},
		{ast.BLt, value.Bool{V: false}},
		{ast.BGe, value.Bool{V: true}},
	}
	for _, c := range cases {
		got, err := Binary(ast.Pos{}, c.op, x, y)
		if err != nil {
			t.Fatalf("Binary(%v): %v", c.op, err)
		}
		if !value.Equal(got, c.want) {
			t.Errorf("Binary(%v) = %s, want %s", c.op, got, c.want)
		}
	}
}

func TestBinaryDivByZero(t *testing.T) {
	_, err := Binary(ast.Pos{}, ast.BDiv, value.Int32{V: 1}, value.Int32{V: 0})
	if err != ErrDivByZero {
		t.Fatalf("Binary div-by-zero: got %v, want ErrDivByZero", err)
	}
}

func TestBinaryTruncatesTowardZero(t *testing.T) {
	got, err := Binary(ast.Pos{}, ast.BDiv, value.Int32{V: -7}, value.Int32{V: 2})
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, value.Int32{V: -3}) {
		t.Errorf("-7/2 = %s, want -3", got)
	}
	rem, err := Binary(ast.Pos{}, ast.BRem, value.Int32{V: -7}, value.Int32{V: 2})
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(rem, value.Int32{V: -1}) {
		t.Errorf("-7%%2 = %s, want -1", rem)
	}
}

func TestShiftResultWidthFollowsLeftOperand(t *testing.T) {
	got, err := Binary(ast.Pos{}, ast.BShl, value.Int8{V: 1}, value.Int32{V: 3})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(value.Int8); !ok {
		t.Fatalf("shift result type = %T, want value.Int8", got)
	}
	if !value.Equal(got, value.Int8{V: 8}) {
		t.Errorf("1<<3 = %s, want 8", got)
	}
}

func TestShiftNegativeAmountFlipsDirection(t *testing.T) {
	got, err := Binary(ast.Pos{}, ast.BShr, value.Int32{V: 1}, value.Int32{V: -3})
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, value.Int32{V: 8}) {
		t.Errorf("1>>(-3) = %s, want 8 (shift left by 3)", got)
	}
}

func TestBinaryComplexDivision(t *testing.T) {
	// (4+2i) / (1+1i) = (4*1+2*1)/(1+1) + ((2*1-4*1)/(1+1))i = 3 + -1i
	x := value.Complex32{Re: 4, Im: 2}
	y := value.Complex32{Re: 1, Im: 1}
	got, err := Binary(ast.Pos{}, ast.BDiv, x, y)
	if err != nil {
		t.Fatal(err)
	}
	want := value.Complex32{Re: 3, Im: -1}
	if !value.Equal(got, want) {
		t.Errorf("complex division = %s, want %s", got, want)
	}
}

func TestBinaryEqualityIsStructural(t *testing.T) {
	a := value.NewArrayFromList(ast.Pos{}, ast.Int32T, value.Int32{}, []value.Value{
		value.Int32{V: 1}, value.Int32{V: 2},
	})
	b := value.NewArrayFromList(ast.Pos{}, ast.Int32T, value.Int32{}, []value.Value{
		value.Int32{V: 1}, value.Int32{V: 2},
	})
	got, err := Binary(ast.Pos{}, ast.BEq, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, value.Bool{V: true}) {
		t.Errorf("array equality = %s, want true", got)
	}
}

func TestUnaryNegateAndLength(t *testing.T) {
	neg, err := Unary(ast.Pos{}, ast.UNeg, value.Int16{V: 5})
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(neg, value.Int16{V: -5}) {
		t.Errorf("-5 = %s, want -5", neg)
	}

	arr := value.NewArray(ast.Pos{}, ast.Int8T, 10, value.Int8{})
	ln, err := Unary(ast.Pos{}, ast.ULen, arr)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(ln, value.Int32{V: 10}) {
		t.Errorf("length = %s, want 10", ln)
	}
}

func TestUnaryBitNotOnBit(t *testing.T) {
	got, err := Unary(ast.Pos{}, ast.UBitNot, value.Bit{V: true})
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, value.Bit{V: false}) {
		t.Errorf("~1 = %s, want 0", got)
	}
}

func TestCastIntegerTruncation(t *testing.T) {
	var in int32 = 300
	got, err := Cast(ast.Pos{}, ast.Int8T, value.Int32{V: in})
	if err != nil {
		t.Fatal(err)
	}
	want := int8(in)
	if !value.Equal(got, value.Int8{V: want}) {
		t.Errorf("cast(300 as int8) = %s, want %d", got, want)
	}
}

func TestCastDoubleTruncatesTowardZero(t *testing.T) {
	got, err := Cast(ast.Pos{}, ast.Int32T, value.Double{V: -3.9})
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, value.Int32{V: -3}) {
		t.Errorf("cast(-3.9 as int32) = %s, want -3", got)
	}
}

func TestCastToString(t *testing.T) {
	got, err := Cast(ast.Pos{}, ast.StringT, value.Int32{V: 42})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("42", got.String()); diff != "" {
		t.Errorf("cast to string mismatch (-want +got):\n%s", diff)
	}
}

func TestCastComplexElementwise(t *testing.T) {
	var re, im int32 = 1000, -1000
	got, err := Cast(ast.Pos{}, ast.Complex8T, value.Complex32{Re: re, Im: im})
	if err != nil {
		t.Fatal(err)
	}
	want := value.Complex8{Re: int8(re), Im: int8(im)}
	if !value.Equal(got, want) {
		t.Errorf("complex cast = %s, want %s", got, want)
	}
}

func TestCastRealToComplex(t *testing.T) {
	got, err := Cast(ast.Pos{}, ast.Complex16T, value.Int16{V: 7})
	if err != nil {
		t.Fatal(err)
	}
	want := value.Complex16{Re: 7, Im: 0}
	if !value.Equal(got, want) {
		t.Errorf("real-to-complex cast = %s, want %s", got, want)
	}
}

// Cast round-trip: casting a value already of type T to T again is a
// no-op, and re-widening after a narrowing round-trip agrees with casting
// the original value straight to the wider type.
func TestCastRoundTrip(t *testing.T) {
	x := value.Int32{V: 42}

	once, err := Cast(ast.Pos{}, ast.Int32T, x)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Cast(ast.Pos{}, ast.Int32T, once)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(once, twice) {
		t.Errorf("cast<T>(cast<T>(x)) = %s, want %s", twice, once)
	}

	narrowed, err := Cast(ast.Pos{}, ast.Int8T, x)
	if err != nil {
		t.Fatal(err)
	}
	widenedFromNarrow, err := Cast(ast.Pos{}, ast.Int32T, narrowed)
	if err != nil {
		t.Fatal(err)
	}
	widenedDirect, err := Cast(ast.Pos{}, ast.Int32T, x)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(widenedFromNarrow, widenedDirect) {
		t.Errorf("cast<Wider>(cast<T>(x)) = %s, want %s", widenedFromNarrow, widenedDirect)
	}
}

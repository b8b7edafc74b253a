package tensor

import (
	"testing"
)

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{name: "same shape", a: Shape{13, 17}, b: Shape{13, 17}, want: Shape{13, 17}, broadcast: false},
		{name: "scalar lhs", a: Shape{}, b: Shape{13, 17}, want: Shape{13, 17}, broadcast: true},
		{name: "scalar rhs", a: Shape{13, 17}, b: Shape{}, want: Shape{13, 17}, broadcast: true},
		{name: "both scalar", a: Shape{}, b: Shape{}, want: Shape{}, broadcast: false},
		{name: "one element rhs", a: Shape{10, 3, 4}, b: Shape{1}, want: Shape{10, 3, 4}, broadcast: true},
		{name: "trailing vector", a: Shape{2, 3, 100}, b: Shape{100}, want: Shape{2, 3, 100}, broadcast: true},
		{name: "middle ones", a: Shape{10, 2, 11}, b: Shape{10, 1, 11}, want: Shape{10, 2, 11}, broadcast: true},
		{name: "both sides broadcast", a: Shape{30, 3, 1, 5}, b: Shape{30, 1, 4, 1}, want: Shape{30, 3, 4, 5}, broadcast: true},
		{name: "lhs lower rank", a: Shape{10, 10}, b: Shape{2, 2, 10, 10}, want: Shape{2, 2, 10, 10}, broadcast: true},
		{name: "incompatible", a: Shape{3, 4}, b: Shape{3, 5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broadcast, err := BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("BroadcastShapes(%v, %v) expected error, got %v", tt.a, tt.b, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("BroadcastShapes(%v, %v) error: %v", tt.a, tt.b, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if broadcast != tt.broadcast {
				t.Errorf("BroadcastShapes(%v, %v) broadcast = %v, want %v", tt.a, tt.b, broadcast, tt.broadcast)
			}
		})
	}
}

func TestAlignBroadcastShape(t *testing.T) {
	tests := []struct {
		name    string
		big     Shape
		small   Shape
		axis    int
		want    Shape
		wantErr bool
	}{
		{name: "leading axis", big: Shape{100, 2, 3}, small: Shape{100}, axis: 0, want: Shape{100, 1, 1}},
		{name: "middle axis", big: Shape{2, 100, 3}, small: Shape{100}, axis: 1, want: Shape{1, 100, 1}},
		{name: "trailing default", big: Shape{2, 3, 100}, small: Shape{100}, axis: -1, want: Shape{1, 1, 100}},
		{name: "two dims middle", big: Shape{2, 10, 12, 3}, small: Shape{10, 12}, axis: 1, want: Shape{1, 10, 12, 1}},
		{name: "inner pair", big: Shape{2, 2, 10, 10}, small: Shape{10, 10}, axis: 2, want: Shape{1, 1, 10, 10}},
		{name: "scalar small", big: Shape{13, 17}, small: Shape{}, axis: -1, want: Shape{1, 1}},
		{name: "axis out of range", big: Shape{2, 3}, small: Shape{3}, axis: 2, wantErr: true},
		{name: "dim mismatch", big: Shape{2, 3, 4}, small: Shape{5}, axis: 1, wantErr: true},
		{name: "small higher rank", big: Shape{3}, small: Shape{2, 3}, axis: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AlignBroadcastShape(tt.big, tt.small, tt.axis)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("AlignBroadcastShape(%v, %v, %d) expected error, got %v", tt.big, tt.small, tt.axis, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("AlignBroadcastShape(%v, %v, %d) error: %v", tt.big, tt.small, tt.axis, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("AlignBroadcastShape(%v, %v, %d) = %v, want %v", tt.big, tt.small, tt.axis, got, tt.want)
			}
		})
	}
}

func TestComputeStrides(t *testing.T) {
	tests := []struct {
		shape Shape
		want  []int
	}{
		{Shape{}, []int{}},
		{Shape{5}, []int{1}},
		{Shape{2, 3}, []int{3, 1}},
		{Shape{2, 10, 12, 3}, []int{360, 36, 3, 1}},
	}

	for _, tt := range tests {
		got := tt.shape.ComputeStrides()
		if len(got) != len(tt.want) {
			t.Errorf("ComputeStrides(%v) = %v, want %v", tt.shape, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ComputeStrides(%v) = %v, want %v", tt.shape, got, tt.want)
				break
			}
		}
	}
}

func TestPromoteTypes(t *testing.T) {
	tests := []struct {
		a, b, want DataType
	}{
		{Float32, Float32, Float32},
		{Float32, Float64, Float64},
		{Float16, Float32, Float32},
		{BFloat16, Float16, Float32},
		{Float64, Complex128, Complex128},
		{Float32, Complex64, Complex64},
		{Float64, Complex64, Complex128},
		{Int32, Int64, Int64},
		{Uint8, Float32, Float32},
	}

	for _, tt := range tests {
		if got := PromoteTypes(tt.a, tt.b); got != tt.want {
			t.Errorf("PromoteTypes(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
		// Promotion is symmetric.
		if got := PromoteTypes(tt.b, tt.a); got != tt.want {
			t.Errorf("PromoteTypes(%s, %s) = %s, want %s", tt.b, tt.a, got, tt.want)
		}
	}
}

package geo

import (
	"math"
	"testing"
)

func TestHaversineIdenticalPointsIsZero(t *testing.T) {
	p := Coordinate{Lat: 1.3039, Lng: 103.9130}
	if d := HaversineMeters(p, p); d != 0 {
		t.Fatalf("expected 0 for identical points, got %v", d)
	}
}

func TestHaversineReferenceValues(t *testing.T) {
	cases := []struct {
		name string
		a, b Coordinate
		want float64
	}{
		// One degree of longitude along the equator.
		{"equator degree", Coordinate{0, 0, 0}, Coordinate{Lat: 0, Lng: 1}, 6371000.0 * math.Pi / 180},
		// Equator to the north pole: a quarter of a great circle.
		{"quarter circle", Coordinate{0, 0, 0}, Coordinate{Lat: 90, Lng: 0}, 6371000.0 * math.Pi / 2},
	}
	for _, c := range cases {
		got := HaversineMeters(c.a, c.b)
		if math.Abs(got-c.want) > 1.0 {
			t.Errorf("%s: got %v want %v", c.name, got, c.want)
		}
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := Coordinate{Lat: 1.3039, Lng: 103.9130}
	b := Coordinate{Lat: 1.3811, Lng: 103.9550}
	if d1, d2 := HaversineMeters(a, b), HaversineMeters(b, a); d1 != d2 {
		t.Fatalf("distance not symmetric: %v vs %v", d1, d2)
	}
}

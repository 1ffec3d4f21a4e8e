package main

import (
	"math/rand"
	"testing"

	"github.com/yangl1996/minhash-sketch/minhash"
)

func TestRunTrial(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	je, ce, err := runTrial(r, 256, 1, minhash.SHA1, 500, 250, 250.0/750.0)
	if err != nil {
		t.Fatal(err)
	}
	if je > 0.2 {
		t.Errorf("jaccard error %f implausibly large for 256 slots", je)
	}
	if ce > 0.5 {
		t.Errorf("cardinality error %f implausibly large for 256 slots", ce)
	}
}

func TestErrorSketchQuantiles(t *testing.T) {
	e := newErrorSketch()
	for i := 0; i < 1000; i++ {
		e.record(float64(i) / 1000)
	}
	qs, err := e.sketch.GetValuesAtQuantiles([]float64{0.5})
	if err != nil {
		t.Fatal(err)
	}
	if qs[0] < 0.4 || qs[0] > 0.6 {
		t.Errorf("p50 of a uniform [0,1) sample is %f", qs[0])
	}
}

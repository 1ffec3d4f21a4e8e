package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/DataDog/sketches-go/ddsketch"
	"github.com/aclements/go-moremath/stats"
	"github.com/yangl1996/minhash-sketch/minhash"
)

// Measures the estimation error of the MinHash jaccard and cardinality
// estimators over repeated trials on random sets with a controlled overlap.

func main() {
	numPerm := flag.Int("k", 128, "number of permutation slots per sketch")
	setSize := flag.Int("n", 1000, "number of items in each set")
	overlap := flag.Float64("o", 0.5, "fraction of each set shared with the other, must be in [0, 1]")
	trials := flag.Int("r", 100, "number of independent trials")
	seed := flag.Int64("seed", 1, "seed for the item generator and the sketches")
	digestName := flag.String("digest", "sha1", "item digest: sha1, blake2b-256, or xxhash64")
	flag.Parse()
	if *overlap < 0 || *overlap > 1 {
		fmt.Println("overlap must be in [0, 1]")
		os.Exit(1)
	}
	digest, ok := minhash.DigestByName(*digestName)
	if !ok {
		fmt.Println("unknown digest", *digestName)
		os.Exit(1)
	}

	shared := int(float64(*setSize) * *overlap)
	trueJaccard := float64(shared) / float64(2*(*setSize)-shared)

	jaccErr := newErrorSketch()
	cardErr := newErrorSketch()
	r := rand.New(rand.NewSource(*seed))
	for i := 0; i < *trials; i++ {
		je, ce, err := runTrial(r, *numPerm, *seed, digest, *setSize, shared, trueJaccard)
		if err != nil {
			fmt.Println("trial failed:", err)
			os.Exit(2)
		}
		jaccErr.record(je)
		cardErr.record(ce)
	}

	fmt.Println("# k", *numPerm, "n", *setSize, "true jaccard", trueJaccard)
	jaccErr.report("jaccard abs error")
	cardErr.report("cardinality rel error")
}

// runTrial sketches two random sets of n items sharing the first `shared`
// items and returns the absolute jaccard estimation error and the relative
// cardinality estimation error of the first sketch.
func runTrial(r *rand.Rand, numPerm int, seed int64, digest minhash.Digest, n, shared int, trueJaccard float64) (float64, float64, error) {
	a, err := minhash.NewWithDigest(numPerm, seed, digest)
	if err != nil {
		return 0, 0, err
	}
	b, err := minhash.NewWithDigest(numPerm, seed, digest)
	if err != nil {
		return 0, 0, err
	}
	item := make([]byte, 16)
	for i := 0; i < shared; i++ {
		r.Read(item)
		if err := a.Update(item); err != nil {
			return 0, 0, err
		}
		if err := b.Update(item); err != nil {
			return 0, 0, err
		}
	}
	for i := shared; i < n; i++ {
		r.Read(item)
		if err := a.Update(item); err != nil {
			return 0, 0, err
		}
		r.Read(item)
		if err := b.Update(item); err != nil {
			return 0, 0, err
		}
	}
	j, err := a.Jaccard(b)
	if err != nil {
		return 0, 0, err
	}
	je := j - trueJaccard
	if je < 0 {
		je = -je
	}
	ce := (a.Count() - float64(n)) / float64(n)
	if ce < 0 {
		ce = -ce
	}
	return je, ce, nil
}

// errorSketch accumulates one error metric both exactly (for moments) and in
// a DDSketch (for quantiles).
type errorSketch struct {
	sketch *ddsketch.DDSketch
	sample stats.Sample
}

func newErrorSketch() *errorSketch {
	sketch, err := ddsketch.NewDefaultDDSketch(0.01)
	if err != nil {
		panic(err)
	}
	return &errorSketch{sketch: sketch}
}

func (e *errorSketch) record(v float64) {
	e.sketch.Add(v)
	e.sample.Xs = append(e.sample.Xs, v)
}

func (e *errorSketch) report(name string) {
	sort.Float64s(e.sample.Xs)
	e.sample.Sorted = true
	fmt.Printf("# %s mean %.5f stddev %.5f\n", name, e.sample.Mean(), e.sample.StdDev())
	qs, err := e.sketch.GetValuesAtQuantiles([]float64{0.50, 0.95, 0.99})
	if err != nil {
		panic(err)
	}
	fmt.Printf("# %s p50 %.5f p95 %.5f p99 %.5f\n", name, qs[0], qs[1], qs[2])
}

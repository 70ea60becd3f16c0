package featurize

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"sync"
	"testing"

	"github.com/crestlab/featurize/internal/chem"
	"github.com/crestlab/featurize/internal/feature"
)

// recordingHandler captures slog records for assertions.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) count(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level {
			n++
		}
	}
	return n
}

func (h *recordingHandler) total() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// countingFeaturizer returns a one-element vector holding the datapoint,
// failing with a domain error on negative values.
type countingFeaturizer struct{}

func (countingFeaturizer) FeaturizeDatapoint(_ context.Context, point float64) (feature.Vector, error) {
	if point < 0 {
		return nil, Domainf("negative datapoint %v", point)
	}
	return feature.Vector{point}, nil
}

func TestBatch_PreservesLengthAndOrder(t *testing.T) {
	points := []float64{3, 1, 4, 1, 5}

	mat, err := Batch(context.Background(), countingFeaturizer{}, points)
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}

	if mat.Rows() != len(points) {
		t.Fatalf("Rows() = %d, want %d", mat.Rows(), len(points))
	}
	for i, p := range points {
		if len(mat[i]) != 1 || mat[i][0] != p {
			t.Errorf("row %d = %v, want [%v]", i, mat[i], p)
		}
	}
}

func TestBatch_DomainFailureYieldsEmptyRow(t *testing.T) {
	handler := &recordingHandler{}
	logger := slog.New(handler)

	points := []float64{1, -1, 2}
	mat, err := Batch(context.Background(), countingFeaturizer{}, points, WithLogger(logger))
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}

	if mat.Rows() != 3 {
		t.Fatalf("Rows() = %d, want 3", mat.Rows())
	}
	if !mat[1].IsEmpty() {
		t.Errorf("row 1 = %v, want empty", mat[1])
	}
	if mat[0].IsEmpty() || mat[2].IsEmpty() {
		t.Error("rows surrounding the failure should be unaffected")
	}
	if got := handler.count(slog.LevelWarn); got != 1 {
		t.Errorf("warning count = %d, want 1", got)
	}
	if got := mat.Failed(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Failed() = %v, want [1]", got)
	}
}

func TestBatch_NonDomainErrorPropagates(t *testing.T) {
	boom := errors.New("disk on fire")
	f := DatapointFunc[int](func(context.Context, int) (feature.Vector, error) {
		return nil, boom
	})

	_, err := Batch(context.Background(), f, []int{1})
	if !errors.Is(err, boom) {
		t.Fatalf("Batch() error = %v, want wrapped %v", err, boom)
	}
}

func TestBatch_NilFeaturizer(t *testing.T) {
	_, err := Batch[int](context.Background(), nil, []int{1})
	if !errors.Is(err, ErrCapabilityMissing) {
		t.Fatalf("Batch() error = %v, want ErrCapabilityMissing", err)
	}
}

func TestBatch_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Batch(ctx, countingFeaturizer{}, []float64{1, 2})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Batch() error = %v, want context.Canceled", err)
	}
}

func TestOne_MatchesBatchOfOne(t *testing.T) {
	vec, err := One(context.Background(), countingFeaturizer{}, 7.0)
	if err != nil {
		t.Fatalf("One() error = %v", err)
	}

	mat, err := Batch(context.Background(), countingFeaturizer{}, []float64{7.0})
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}

	if !reflect.DeepEqual(vec, mat[0]) {
		t.Errorf("One() = %v, Batch()[0] = %v; want identical", vec, mat[0])
	}
}

func TestBatch_ProgressLogging(t *testing.T) {
	handler := &recordingHandler{}
	logger := slog.New(handler)

	points := make([]float64, 5)
	mat, err := Batch(context.Background(), countingFeaturizer{}, points,
		WithLogger(logger), WithLogEveryN(2))
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}

	// Indices 0, 2 and 4 each emit one progress message.
	if got := handler.count(slog.LevelInfo); got != 3 {
		t.Errorf("info count = %d, want 3", got)
	}
	if mat.Rows() != 5 {
		t.Errorf("logging altered the result: Rows() = %d, want 5", mat.Rows())
	}
}

func TestBatch_ProgressCallback(t *testing.T) {
	var calls [][2]int
	_, err := Batch(context.Background(), countingFeaturizer{}, []float64{1, 2, 3},
		WithProgress(func(done, total int) {
			calls = append(calls, [2]int{done, total})
		}))
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}

	want := [][2]int{{1, 3}, {2, 3}, {3, 3}}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("progress calls = %v, want %v", calls, want)
	}
}

func TestBatch_EmptyInput(t *testing.T) {
	mat, err := Batch(context.Background(), countingFeaturizer{}, nil)
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}
	if mat.Rows() != 0 {
		t.Errorf("Rows() = %d, want 0", mat.Rows())
	}
}

// fakeParser parses a tiny SMILES subset: anything containing '!' fails.
type fakeParser struct{}

func (fakeParser) ParseSMILES(_ context.Context, smiles string) (*chem.Molecule, error) {
	for _, r := range smiles {
		if r == '!' {
			return nil, Domainf("unparseable SMILES %q", smiles)
		}
	}
	return &chem.Molecule{SMILES: smiles, NumAtoms: len(smiles)}, nil
}

// atomCounter features a molecule as its atom count.
type atomCounter struct{}

func (atomCounter) FeaturizeMolecule(_ context.Context, mol *chem.Molecule) (feature.Vector, error) {
	return feature.Vector{float64(mol.NumAtoms)}, nil
}

func TestMolecularBatch_ParseFailureCovered(t *testing.T) {
	handler := &recordingHandler{}
	b := &MolecularBatch{Parser: fakeParser{}, Featurizer: atomCounter{}}

	inputs := chem.SMILESInputs([]string{"C1=CC=CC=C1", "not_a_smiles!!"})
	mat, err := b.Featurize(context.Background(), inputs, WithLogger(slog.New(handler)))
	if err != nil {
		t.Fatalf("Featurize() error = %v", err)
	}

	if mat.Rows() != 2 {
		t.Fatalf("Rows() = %d, want 2", mat.Rows())
	}
	if mat[0].IsEmpty() {
		t.Error("row 0 should hold a real feature vector")
	}
	if !mat[1].IsEmpty() {
		t.Errorf("row 1 = %v, want empty", mat[1])
	}
}

func TestMolecularBatch_ParsedInputSkipsParser(t *testing.T) {
	// A parser that always fails proves pre-parsed inputs never touch it.
	failing := chem.Parser(failingParser{})
	b := &MolecularBatch{Parser: failing, Featurizer: atomCounter{}}

	mol := &chem.Molecule{SMILES: "CCO", NumAtoms: 3}
	vec, err := b.FeaturizeOne(context.Background(), chem.Parsed(mol))
	if err != nil {
		t.Fatalf("FeaturizeOne() error = %v", err)
	}
	if len(vec) != 1 || vec[0] != 3 {
		t.Errorf("vec = %v, want [3]", vec)
	}
}

type failingParser struct{}

func (failingParser) ParseSMILES(context.Context, string) (*chem.Molecule, error) {
	return nil, Domainf("parser should not have been called")
}

func TestMolecularBatch_MissingParser(t *testing.T) {
	handler := &recordingHandler{}
	b := &MolecularBatch{Featurizer: atomCounter{}}

	_, err := b.Featurize(context.Background(), chem.SMILESInputs([]string{"CCO"}),
		WithLogger(slog.New(handler)))
	if !errors.Is(err, ErrCapabilityMissing) {
		t.Fatalf("Featurize() error = %v, want ErrCapabilityMissing", err)
	}
	if handler.total() != 0 {
		t.Errorf("log records = %d, want 0 before capability check", handler.total())
	}
}

func TestMolecularBatch_OneMatchesBatchOfOne(t *testing.T) {
	b := &MolecularBatch{Parser: fakeParser{}, Featurizer: atomCounter{}}
	in := chem.SMILES("CCO")

	vec, err := b.FeaturizeOne(context.Background(), in)
	if err != nil {
		t.Fatalf("FeaturizeOne() error = %v", err)
	}
	mat, err := b.Featurize(context.Background(), []chem.Input{in})
	if err != nil {
		t.Fatalf("Featurize() error = %v", err)
	}
	if !reflect.DeepEqual(vec, mat[0]) {
		t.Errorf("FeaturizeOne() = %v, Featurize()[0] = %v; want identical", vec, mat[0])
	}
}

func TestUserDefined(t *testing.T) {
	u := &UserDefined{Fields: []string{"logp", "tpsa"}}

	points := []map[string]float64{
		{"logp": 1.2, "tpsa": 40.5, "extra": 9},
		{"logp": 0.3}, // missing tpsa
	}

	mat, err := Batch[map[string]float64](context.Background(), u, points)
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}

	want0 := feature.Vector{1.2, 40.5}
	if !reflect.DeepEqual(mat[0], want0) {
		t.Errorf("row 0 = %v, want %v", mat[0], want0)
	}
	if !mat[1].IsEmpty() {
		t.Errorf("row 1 = %v, want empty (missing field is a domain error)", mat[1])
	}
}

package dataset

import "testing"

func validDataset() *Dataset {
	return &Dataset{
		Name: "test",
		X:    [][]float64{{1, 2}, {3, 4}, {5, 6}},
		Y:    []int{0, 1, 0},
	}
}

func TestValidateOK(t *testing.T) {
	if err := validDataset().Validate(); err != nil {
		t.Errorf("Expected valid dataset, got: %v", err)
	}
}

func TestValidateEmpty(t *testing.T) {
	ds := &Dataset{Name: "empty"}
	if err := ds.Validate(); err == nil {
		t.Error("Expected error for empty dataset")
	}
}

func TestValidateRowLabelMismatch(t *testing.T) {
	ds := validDataset()
	ds.Y = ds.Y[:2]
	if err := ds.Validate(); err == nil {
		t.Error("Expected error for mismatched rows and labels")
	}
}

func TestValidateRaggedRows(t *testing.T) {
	ds := validDataset()
	ds.X[1] = []float64{1}
	if err := ds.Validate(); err == nil {
		t.Error("Expected error for inconsistent feature dimension")
	}
}

func TestValidateNegativeLabel(t *testing.T) {
	ds := validDataset()
	ds.Y[0] = -1
	if err := ds.Validate(); err == nil {
		t.Error("Expected error for negative label")
	}
}

func TestValidateSparseLabels(t *testing.T) {
	ds := validDataset()
	ds.Y = []int{0, 2, 0} // class 1 has no samples
	if err := ds.Validate(); err == nil {
		t.Error("Expected error for non-dense class indices")
	}
}

func TestDimensions(t *testing.T) {
	ds := validDataset()
	if ds.NumSamples() != 3 {
		t.Errorf("NumSamples = %d, expected 3", ds.NumSamples())
	}
	if ds.NumFeatures() != 2 {
		t.Errorf("NumFeatures = %d, expected 2", ds.NumFeatures())
	}
	if ds.NumClasses() != 2 {
		t.Errorf("NumClasses = %d, expected 2", ds.NumClasses())
	}
}

package main

import (
	"fmt"

	"github.com/sbinet/npyio/npz"
)

// dataset holds paired samples.  x[k] is fed to the input layer, y[k] is the
// expected output.
type dataset struct {
	x [][]float32
	y [][]float32
}

func (d *dataset) inputSize() int {
	return len(d.x[0])
}

func (d *dataset) outputSize() int {
	return len(d.y[0])
}

func xorDataset() *dataset {
	return &dataset{
		x: [][]float32{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		y: [][]float32{{0}, {1}, {1}, {0}},
	}
}

// loadDataset reads x.npy and y.npy from an npz archive.  Both must be C-order
// arrays with the same number of rows.  A 1-D array is treated as a single
// column.
func loadDataset(path string) (*dataset, error) {
	r, err := npz.Open(path)
	if err != nil {
		return nil, fmt.Errorf("while opening data file: %w", err)
	}
	defer r.Close()

	x, err := loadMatrix(r, "x.npy")
	if err != nil {
		return nil, fmt.Errorf("while reading x.npy: %w", err)
	}

	y, err := loadMatrix(r, "y.npy")
	if err != nil {
		return nil, fmt.Errorf("while reading y.npy: %w", err)
	}

	if len(x) != len(y) {
		return nil, fmt.Errorf("x.npy has %d rows but y.npy has %d", len(x), len(y))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("data file has no samples")
	}

	return &dataset{x: x, y: y}, nil
}

func loadMatrix(r *npz.Reader, name string) ([][]float32, error) {
	header := r.Header(name)
	if header == nil {
		return nil, fmt.Errorf("no entry for %s", name)
	}
	if header.Descr.Fortran {
		return nil, fmt.Errorf("fortran-ordered arrays are not supported")
	}

	var rows, cols int
	switch len(header.Descr.Shape) {
	case 1:
		rows, cols = header.Descr.Shape[0], 1
	case 2:
		rows, cols = header.Descr.Shape[0], header.Descr.Shape[1]
	default:
		return nil, fmt.Errorf("unsupported shape %v", header.Descr.Shape)
	}
	if cols == 0 {
		return nil, fmt.Errorf("unsupported shape %v", header.Descr.Shape)
	}

	flat := make([]float32, 0, rows*cols)
	switch header.Descr.Type {
	case "<f4":
		var raw []float32
		if err := r.Read(name, &raw); err != nil {
			return nil, fmt.Errorf("while reading float32 array: %w", err)
		}
		flat = append(flat, raw...)
	case "<f8":
		var raw []float64
		if err := r.Read(name, &raw); err != nil {
			return nil, fmt.Errorf("while reading float64 array: %w", err)
		}
		for _, v := range raw {
			flat = append(flat, float32(v))
		}
	case "|u1":
		var raw []uint8
		if err := r.Read(name, &raw); err != nil {
			return nil, fmt.Errorf("while reading uint8 array: %w", err)
		}
		for _, v := range raw {
			flat = append(flat, float32(v))
		}
	default:
		return nil, fmt.Errorf("unsupported dtype %s", header.Descr.Type)
	}

	if len(flat) != rows*cols {
		return nil, fmt.Errorf("read %d values for shape %v", len(flat), header.Descr.Shape)
	}

	m := make([][]float32, rows)
	for k := range m {
		m[k] = flat[k*cols : k*cols+cols]
	}
	return m, nil
}

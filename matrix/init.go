package matrix

import "github.com/pkg/errors"

// Init fills m so that element (i,j) = (i+j) mod mod + 1.
func Init(m *Matrix, mod int) error {
	if mod <= 0 {
		return errors.Wrapf(ErrInvalidInput, "modulus %d must be positive", mod)
	}
	for i := 0; i < m.n; i++ {
		row := m.Row(i)
		for j := range row {
			row[j] = int32((i+j)%mod + 1)
		}
	}
	return nil
}

func Generate(n, mod int) (*Matrix, error) {
	m, err := New(n)
	if err != nil {
		return nil, err
	}
	if err := Init(m, mod); err != nil {
		return nil, err
	}
	return m, nil
}

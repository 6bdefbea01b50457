package halfspace

import (
	"io"
	"sync/atomic"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Tolerances are the numerical thresholds used by the kernel.
type Tolerances struct {
	// Point is the absolute distance (world units) within which a point counts
	// as lying on a plane and two points count as coincident.
	Point float64 `toml:"point_epsilon"`
	// Angle is the maximum distance between two unit normals for them to be
	// considered equal.
	Angle float64 `toml:"angle_epsilon"`
	// Determinant is the smallest absolute determinant for which three planes
	// are considered to meet in a single point.
	Determinant float64 `toml:"determinant_epsilon"`
}

// DefaultTolerances returns the built-in thresholds.
func DefaultTolerances() Tolerances {
	return Tolerances{
		Point:       1e-6,
		Angle:       1e-6,
		Determinant: 1e-9,
	}
}

func (t Tolerances) validate() error {
	if !(t.Point > 0) || !(t.Angle > 0) || !(t.Determinant > 0) {
		return errors.Wrapf(ErrInvalidInput, "tolerances must be positive, got %+v", t)
	}
	return nil
}

var tolerancesPtr atomic.Pointer[Tolerances]

func init() {
	t := DefaultTolerances()
	tolerancesPtr.Store(&t)
}

// SetTolerances replaces the process-wide tolerances. Solids capture the
// tolerances in effect when they are constructed, so a change only affects
// solids built afterwards.
func SetTolerances(t Tolerances) error {
	if err := t.validate(); err != nil {
		return err
	}
	tolerancesPtr.Store(&t)
	return nil
}

// CurrentTolerances returns the process-wide tolerances.
func CurrentTolerances() Tolerances {
	return *tolerancesPtr.Load()
}

// LoadTolerances decodes tolerances from TOML. Keys that are missing keep
// their default values.
//
//	point_epsilon = 0.001
//	angle_epsilon = 1e-6
func LoadTolerances(r io.Reader) (Tolerances, error) {
	t := DefaultTolerances()

	if err := toml.NewDecoder(r).Decode(&t); err != nil {
		return Tolerances{}, errors.Wrap(err, "failed to decode tolerances")
	}

	if err := t.validate(); err != nil {
		return Tolerances{}, err
	}

	return t, nil
}

package reckon

import "math"

// config collects the settings an evaluation runs under.
type config struct {
	// degrees says trig operators take their argument in degrees.
	degrees bool
	// current is the value % and x scale, or NaN when there is none.
	current float64
}

// defaultConfig returns the settings Eval starts from: degrees on and no
// current value.
func defaultConfig() config {
	return config{degrees: true, current: math.NaN()}
}

// An Option adjusts how Eval treats an expression.
type Option interface {
	option(config) config
}

type degreesopt bool

func (d degreesopt) option(cfg config) config {
	cfg.degrees = bool(d)
	return cfg
}

// Degrees makes the trig operators read their argument in degrees. This is
// the default.
func Degrees() Option {
	return degreesopt(true)
}

// Radians makes the trig operators read their argument in radians.
func Radians() Option {
	return degreesopt(false)
}

type currentopt float64

func (c currentopt) option(cfg config) config {
	cfg.current = float64(c)
	return cfg
}

// Current supplies the running value that the % and x operators scale.
// Without it those operators fail with ExpectedCurrentValue. Passing a NaN
// is the same as passing no Current at all.
func Current(v float64) Option {
	return currentopt(v)
}

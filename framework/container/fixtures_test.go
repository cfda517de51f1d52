package container_test

import (
	"errors"
	"fmt"
	"time"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type Engine interface {
	Name() string
}

type V8Engine struct{}

func (*V8Engine) Name() string { return "v8" }

type ElectricEngine struct {
	Volts int `inject:"volts" default:"400"`
}

func (e *ElectricEngine) Name() string { return fmt.Sprintf("electric-%d", e.Volts) }

type Car struct {
	Engine Engine `inject:""`
	Color  string `inject:"color" default:"red"`
	Wheels int    `inject:"wheels"`
	Plate  string
}

type Garage struct {
	Car      *Car
	Capacity int
}

func NewGarage(car *Car, capacity int) *Garage {
	return &Garage{Car: car, Capacity: capacity}
}

type Counter struct {
	N int
}

var errBroken = errors.New("broken on purpose")

func NewBroken() (*Counter, error) { return nil, errBroken }

type Greeter struct {
	Prefix string `inject:"prefix" default:"Hello"`
}

func (g *Greeter) Greet(name, punct string) string { return g.Prefix + ", " + name + punct }

type Dashboard struct{}

func (Dashboard) Show(speed int, e Engine) string { return fmt.Sprintf("%s@%d", e.Name(), speed) }

type Chicken struct {
	Egg *Egg `inject:""`
}

type Egg struct {
	Chicken *Chicken `inject:""`
}

type Poller struct {
	Every   time.Duration `inject:"every" default:"5s"`
	Enabled bool          `inject:"enabled" default:"true"`
	Ratio   float64       `inject:"ratio" default:"0.5"`
	skipped string        `inject:"skipped"`
}

type BadDefault struct {
	N int `inject:"n" default:"many"`
}

type Showroom struct {
	Car *Car `inject:""`
}

func (s *Showroom) Index() string { return s.Car.Engine.Name() }

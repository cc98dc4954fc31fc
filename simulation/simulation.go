// Package simulation assembles a kernel, an engine, a trace recorder, and a
// monitor into one runnable simulation.
package simulation

import (
	"github.com/nervasim/nerva/datarecording"
	"github.com/nervasim/nerva/kernel"
	"github.com/nervasim/nerva/monitoring"
	"github.com/nervasim/nerva/sched"
)

//go:generate mockgen -destination "mock_components_test.go" -package simulation -write_package_comment=false github.com/nervasim/nerva/simulation Component

// A Component is a named model that advances with every simulation step. Its
// Step method is invoked once per owned VP per step, with that VP's private
// stream.
type Component interface {
	sched.Handler
	Name() string
}

// A Simulation provides the services required to run a model.
type Simulation struct {
	id string

	kernel       *kernel.Kernel
	engine       sched.Engine
	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor

	dispatcher    *dispatcher
	components    []Component
	compNameIndex map[string]int
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Kernel returns the simulation's kernel.
func (s *Simulation) Kernel() *kernel.Kernel {
	return s.kernel
}

// Engine returns the engine driving the simulation.
func (s *Simulation) Engine() sched.Engine {
	return s.engine
}

// DataRecorder returns the trace recorder, or nil when recording is off.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// Monitor returns the monitor, or nil when monitoring is off.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// RegisterComponent registers a component with the simulation. Components
// must be registered before Run.
func (s *Simulation) RegisterComponent(c Component) {
	name := c.Name()
	if _, exists := s.compNameIndex[name]; exists {
		panic("component " + name + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[name] = len(s.components) - 1
	s.dispatcher.add(c)
}

// Components returns all registered components.
func (s *Simulation) Components() []Component {
	return s.components
}

// GetComponentByName returns the component with the given name.
func (s *Simulation) GetComponentByName(name string) Component {
	return s.components[s.compNameIndex[name]]
}

// Run executes the given number of steps.
func (s *Simulation) Run(steps int) error {
	return s.engine.Run(steps)
}

// Terminate terminates the simulation, flushing and closing the recorder.
func (s *Simulation) Terminate() {
	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}
}

// dispatcher fans one engine step out to every registered component.
type dispatcher struct {
	components []Component
}

func (d *dispatcher) add(c Component) {
	d.components = append(d.components, c)
}

func (d *dispatcher) Step(ctx sched.VPContext) error {
	for _, c := range d.components {
		if err := c.Step(ctx); err != nil {
			return err
		}
	}

	return nil
}

package simulation

import (
	"github.com/rs/xid"

	"github.com/nervasim/nerva/datarecording"
	"github.com/nervasim/nerva/kernel"
	"github.com/nervasim/nerva/monitoring"
	"github.com/nervasim/nerva/sched"
	"github.com/nervasim/nerva/vp"
)

// Builder can be used to build a simulation.
type Builder struct {
	numRanks       int
	threadsPerRank int
	kernelConfig   kernel.Config

	serialEngine   bool
	recordingOn    bool
	monitorOn      bool
	monitorPort    int
	outputFileName string
}

// MakeBuilder creates a builder with a single-unit layout and monitoring and
// recording enabled.
func MakeBuilder() Builder {
	return Builder{
		numRanks:       1,
		threadsPerRank: 1,
		kernelConfig:   kernel.Config{TotalVPs: 1},
		recordingOn:    true,
		monitorOn:      true,
	}
}

// WithLayout sets the physical layout of the run.
func (b Builder) WithLayout(numRanks, threadsPerRank int) Builder {
	b.numRanks = numRanks
	b.threadsPerRank = threadsPerRank
	return b
}

// WithKernelConfig sets the VP count and run seed.
func (b Builder) WithKernelConfig(cfg kernel.Config) Builder {
	b.kernelConfig = cfg
	return b
}

// WithSerialEngine makes the simulation step units one at a time.
func (b Builder) WithSerialEngine() Builder {
	b.serialEngine = true
	return b
}

// WithoutRecording disables the trace recorder.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithoutMonitoring disables the monitoring server.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number of the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithOutputFileName sets the output file name for the trace recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}
	if !b.recordingOn && b.outputFileName != "" {
		panic("output file name cannot be set when recording is disabled")
	}
}

// Build builds the simulation. Layout and kernel configuration errors panic:
// a simulation cannot exist without a valid partition.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:            xid.New().String(),
		compNameIndex: make(map[string]int),
		dispatcher:    &dispatcher{},
	}

	layout, err := vp.MakeLayout(b.numRanks, b.threadsPerRank)
	if err != nil {
		panic(err)
	}

	s.kernel = kernel.New(layout)
	if err := s.kernel.Configure(b.kernelConfig); err != nil {
		panic(err)
	}

	if b.recordingOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "nerva_sim_" + s.id
		}

		s.dataRecorder = datarecording.New(outputPath)
		s.kernel.AcceptHook(datarecording.NewKernelTraceHook(s.dataRecorder))
	}

	s.engine = sched.NewStepEngine(s.kernel, s.dispatcher)
	if b.serialEngine {
		s.engine = sched.NewSerialEngine(s.kernel, s.dispatcher)
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterKernel(s.kernel)
		s.monitor.RegisterEngine(s.engine)
		s.monitor.StartServer()
	}

	return s
}

// Package monitoring turns a running simulation into a small web server so
// the kernel configuration, ownership maps, and run progress can be inspected
// from outside the process.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/nervasim/nerva/kernel"
	"github.com/nervasim/nerva/sched"
)

// Monitor exposes a kernel and its engine over HTTP for external inspection
// and control.
type Monitor struct {
	kernel      *kernel.Kernel
	engine      sched.Engine
	portNumber  int
	openBrowser bool

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port the server listens on. Ports below 1000 are
// rejected and replaced with a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server. "+
				"Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the status page in the local browser.
func (m *Monitor) WithBrowser() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterKernel registers the kernel to be monitored.
func (m *Monitor) RegisterKernel(k *kernel.Kernel) {
	m.kernel = k
}

// RegisterEngine registers the engine driving the simulation.
func (m *Monitor) RegisterEngine(e sched.Engine) {
	m.engine = e
}

// CreateProgressBar creates a progress bar shown by the monitor.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := newProgressBar(name, total)

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar from the monitor.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the HTTP routes the monitor serves.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/status", m.status)
	r.HandleFunc("/api/ownership", m.ownership)
	r.HandleFunc("/api/kernel", m.kernelState)
	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/step", m.currentStep)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	return r
}

// StartServer starts the monitor as a web server.
func (m *Monitor) StartServer() {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	go func() {
		err := http.Serve(listener, m.Router())
		dieOnErr(err)
	}()

	if m.openBrowser {
		_ = browser.OpenURL(url + "/api/status")
	}
}

type statusRsp struct {
	State    string `json:"state"`
	TotalVPs int    `json:"total_vps"`
	RunSeed  uint64 `json:"run_seed"`
	Ranks    int    `json:"ranks"`
	Threads  int    `json:"threads"`
	Elements uint64 `json:"elements"`
}

func (m *Monitor) status(w http.ResponseWriter, _ *http.Request) {
	cfg := m.kernel.Config()
	layout := m.kernel.Layout()

	state := "unconfigured"
	if m.kernel.State() == kernel.Configured {
		state = "configured"
	}

	rsp := statusRsp{
		State:    state,
		TotalVPs: cfg.TotalVPs,
		RunSeed:  cfg.RunSeed,
		Ranks:    layout.NumRanks(),
		Threads:  layout.ThreadsPerRank(),
		Elements: m.kernel.NumElements(),
	}

	writeJSON(w, rsp)
}

func (m *Monitor) ownership(w http.ResponseWriter, _ *http.Request) {
	if m.kernel.State() != kernel.Configured {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, "kernel is not configured")
		return
	}

	partition := m.kernel.Partition()
	layout := partition.Layout()

	owned := make(map[string][]int)
	for index := 0; index < layout.NumUnits(); index++ {
		unit := layout.UnitAt(index)
		key := fmt.Sprintf("rank%d.thread%d", unit.Rank, unit.Thread)

		vps := partition.OwnedBy(index)
		if vps == nil {
			vps = []int{}
		}
		owned[key] = vps
	}

	writeJSON(w, owned)
}

func (m *Monitor) kernelState(w http.ResponseWriter, _ *http.Request) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.kernel)
	serializer.SetMaxDepth(1)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) currentStep(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"step\":%d}", m.engine.CurrentStep())
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	writeJSON(w, m.progressBars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, value any) {
	bytes, err := json.Marshal(value)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}

package simulation

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/nervasim/nerva/kernel"
)

var _ = Describe("Simulation", func() {
	var (
		mockCtrl *gomock.Controller
		sim      *Simulation
		comp     *MockComponent
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		sim = MakeBuilder().
			WithLayout(1, 2).
			WithKernelConfig(kernel.Config{TotalVPs: 3, RunSeed: 1}).
			WithoutMonitoring().
			WithoutRecording().
			Build()

		comp = NewMockComponent(mockCtrl)
		comp.EXPECT().Name().Return("comp").AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()
		sim.Terminate()
	})

	It("should configure the kernel from the builder", func() {
		Expect(sim.Kernel().State()).To(Equal(kernel.Configured))
		Expect(sim.Kernel().Config().TotalVPs).To(Equal(3))
	})

	It("should register a component", func() {
		sim.RegisterComponent(comp)

		Expect(sim.GetComponentByName("comp")).To(BeIdenticalTo(comp))
		Expect(sim.Components()).To(HaveLen(1))
	})

	It("should panic on duplicated component names", func() {
		other := NewMockComponent(mockCtrl)
		other.EXPECT().Name().Return("comp").AnyTimes()

		sim.RegisterComponent(comp)

		Expect(func() { sim.RegisterComponent(other) }).To(Panic())
	})

	It("should step every component once per owned VP per step", func() {
		sim.RegisterComponent(comp)

		// 3 VPs, 2 steps.
		comp.EXPECT().Step(gomock.Any()).Return(nil).Times(6)

		Expect(sim.Run(2)).To(Succeed())
		Expect(sim.Engine().CurrentStep()).To(Equal(2))
	})

	It("should assign a unique run ID", func() {
		other := MakeBuilder().
			WithoutMonitoring().
			WithoutRecording().
			Build()

		Expect(sim.ID()).NotTo(BeEmpty())
		Expect(sim.ID()).NotTo(Equal(other.ID()))
	})
})

var _ = Describe("Builder", func() {
	It("should reject a monitor port without monitoring", func() {
		Expect(func() {
			MakeBuilder().
				WithoutMonitoring().
				WithMonitorPort(8080).
				Build()
		}).To(Panic())
	})

	It("should reject an output file without recording", func() {
		Expect(func() {
			MakeBuilder().
				WithoutMonitoring().
				WithoutRecording().
				WithOutputFileName("out").
				Build()
		}).To(Panic())
	})

	It("should panic on an invalid kernel configuration", func() {
		Expect(func() {
			MakeBuilder().
				WithoutMonitoring().
				WithoutRecording().
				WithKernelConfig(kernel.Config{TotalVPs: 0}).
				Build()
		}).To(Panic())
	})
})

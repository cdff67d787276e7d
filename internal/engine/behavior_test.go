package engine_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/plasmalab/tokasim/internal/device"
	"github.com/plasmalab/tokasim/internal/engine"
	"github.com/plasmalab/tokasim/internal/physics"
	"github.com/plasmalab/tokasim/internal/plasma"
)

var _ = Describe("Advance", func() {
	var (
		dev device.Params
		eng *engine.Engine
		s   *plasma.State
		act *plasma.Actuators
	)

	step := func(n int, dt float64) {
		for i := 0; i < n; i++ {
			eng.Advance(s, act, dt)
			act.Time += dt
		}
	}

	BeforeEach(func() {
		dev = device.Default()
		eng = engine.New(dev, 11)
		s = &plasma.State{
			PlasmaCurrent:   2.0,
			RadialPosition:  dev.MajorRadius,
			Elongation:      1.8,
			Triangularity:   0.4,
			TemperatureCore: 15.0,
			DensityCore:     10.0,
			StoredEnergy:    8.3,
		}
		act = plasma.NewActuators(dev)
		act.PFCoils[0] = 1.0e-6 * s.PlasmaCurrent * physics.AmpsPerMA / 0.1
		vol := physics.PlasmaVolume(dev, s.Elongation)
		act.FuelRate = s.DensityCore * physics.DensityScale * vol / 10.0
	})

	Context("on a quiet flat top", func() {
		It("holds the plasma current against resistive decay", func() {
			step(1000, 0.001)
			Expect(s.PlasmaCurrent).To(BeNumerically("~", 2.0, 1e-6))
		})

		It("keeps the edge safety factor above the floor", func() {
			step(100, 0.001)
			Expect(s.Q95).To(BeNumerically(">", dev.Q95Min))
		})

		It("keeps MHD activity inside the baseline band", func() {
			for i := 0; i < 500; i++ {
				eng.Advance(s, act, 0.001)
				act.Time += 0.001
				Expect(s.MHDActivity).To(And(
					BeNumerically(">=", -0.1),
					BeNumerically("<=", 0.15),
				))
			}
		})

		It("settles stored energy at heating power times confinement time", func() {
			act.Heating[0] = plasma.HeatingSystem{Power: 10.0, Enabled: true}
			act.ConfinementTime = 5.0
			step(5000, 0.01)
			Expect(s.StoredEnergy).To(BeNumerically("~", 50.0, 0.5))
		})
	})

	Context("at the full reference current", func() {
		BeforeEach(func() {
			s.PlasmaCurrent = dev.PlasmaCurrent
			act.PFCoils[0] = 1.0e-6 * s.PlasmaCurrent * physics.AmpsPerMA / 0.1
		})

		It("drives the edge safety factor below the floor", func() {
			step(1, 0.001)
			Expect(s.Q95).To(BeNumerically("<", dev.Q95Min))
		})

		It("accrues the low-q penalty every step", func() {
			for i := 0; i < 50; i++ {
				eng.Advance(s, act, 0.001)
				act.Time += 0.001
				Expect(s.MHDActivity).To(BeNumerically(">=", 0.4))
			}
		})
	})

	Context("with the column displaced beyond the VDE bound", func() {
		BeforeEach(func() {
			s.VerticalPosition = 0.2
		})

		It("accrues the displacement penalty while outside the bound", func() {
			for i := 0; i < 5; i++ {
				eng.Advance(s, act, 0.001)
				act.Time += 0.001
				Expect(math.Abs(s.VerticalPosition)).To(BeNumerically(">", dev.VerticalDisplacementMax))
				Expect(s.MHDActivity).To(BeNumerically(">=", 0.6))
			}
		})
	})

	Describe("AdvanceChecked", func() {
		It("rejects a non-positive timestep", func() {
			Expect(eng.AdvanceChecked(s, act, 0)).To(MatchError(engine.ErrTimestep))
		})

		It("rejects a drained confinement time", func() {
			act.ConfinementTime = 0
			Expect(eng.AdvanceChecked(s, act, 0.01)).To(MatchError(engine.ErrConfinement))
		})

		It("flags a diverged state and leaves it inspectable", func() {
			s.DensityCore = 0
			err := eng.AdvanceChecked(s, act, 0.01)
			Expect(err).To(MatchError(engine.ErrNonFiniteState))
			Expect(s.Finite()).To(BeFalse())
		})

		It("passes a healthy step through untouched", func() {
			Expect(eng.AdvanceChecked(s, act, 0.001)).To(Succeed())
			Expect(s.Finite()).To(BeTrue())
		})
	})
})

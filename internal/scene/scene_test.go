package scene_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nlolab/internal/config"
	"github.com/san-kum/nlolab/internal/optics"
	"github.com/san-kum/nlolab/internal/scene"
)

var _ = Describe("Registry", func() {
	var reg *scene.Registry

	BeforeEach(func() {
		reg = scene.NewRegistry(config.DefaultConfig(), nil)
	})

	It("lists every scene", func() {
		Expect(reg.List()).To(Equal([]string{"correlation", "ellipsoid", "gaussian", "intensity", "phase", "shg"}))
	})

	It("separates interactive scenes", func() {
		Expect(reg.Interactive()).To(Equal([]string{"correlation", "ellipsoid", "gaussian"}))
	})

	It("rejects unknown scenes", func() {
		_, err := reg.Get("hologram")
		Expect(errors.Is(err, scene.ErrUnknownScene)).To(BeTrue())
	})

	It("fails construction when the crystal is not birefringent", func() {
		cfg := config.DefaultConfig()
		cfg.Crystal.NeW = cfg.Crystal.NoW
		_, err := scene.NewRegistry(cfg, nil).Get("gaussian")
		Expect(err).To(MatchError(optics.ErrDomain))
	})
})

var _ = Describe("Correlation scene", func() {
	var s scene.Scene

	BeforeEach(func() {
		var err error
		s, err = scene.NewRegistry(config.DefaultConfig(), nil).Get("correlation")
		Expect(err).NotTo(HaveOccurred())
	})

	It("exposes the tau dial", func() {
		dials := s.Dials()
		Expect(dials).To(HaveLen(1))
		Expect(dials[0].Name).To(Equal("tau"))
		Expect(dials[0].Min).To(Equal(-35))
		Expect(dials[0].Max).To(Equal(35))
		Expect(dials[0].Scale).To(Equal(0.1))
	})

	It("reports full overlap at zero delay", func() {
		st, err := s.Render(scene.Params{"tau": 0})
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Coefficient).To(Equal(1.0))
		Expect(st.Title).To(Equal("Overlap: γ_corr = 1.00"))
		Expect(st.Series).To(HaveLen(2))
		Expect(st.Series[0].Y).To(Equal(st.Series[1].Y))
	})

	It("rounds the coefficient to two decimals", func() {
		st, err := s.Render(scene.Params{"tau": 0.5})
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Coefficient).To(Equal(0.94))
		Expect(st.Series[1].Name).To(Equal("g(x - 0.5)"))
	})

	It("samples 1000 points on [-5, 5]", func() {
		st, err := s.Render(scene.Params{"tau": 1.7})
		Expect(err).NotTo(HaveOccurred())
		for _, ser := range st.Series {
			Expect(ser.X).To(HaveLen(1000))
			Expect(ser.Y).To(HaveLen(1000))
			Expect(ser.X[0]).To(Equal(-5.0))
			Expect(ser.X[999]).To(Equal(5.0))
		}
	})

	It("is idempotent", func() {
		a, err := s.Render(scene.Params{"tau": -2.3})
		Expect(err).NotTo(HaveOccurred())
		b, err := s.Render(scene.Params{"tau": -2.3})
		Expect(err).NotTo(HaveOccurred())
		Expect(b).To(Equal(a))
	})

	It("requires tau", func() {
		_, err := s.Render(scene.Params{})
		Expect(errors.Is(err, scene.ErrMissingParam)).To(BeTrue())
	})

	It("agrees with the quadrature estimator", func() {
		cfg := config.DefaultConfig()
		cfg.Numerics.Method = "quadrature"
		q, err := scene.NewRegistry(cfg, nil).Get("correlation")
		Expect(err).NotTo(HaveOccurred())
		for _, tau := range []float64{0, 0.5, 1, 2, 3.5} {
			a, err := s.Render(scene.Params{"tau": tau})
			Expect(err).NotTo(HaveOccurred())
			b, err := q.Render(scene.Params{"tau": tau})
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Coefficient).To(Equal(a.Coefficient))
		}
	})
})

var _ = Describe("Gaussian scene", func() {
	var s *scene.Gaussian

	BeforeEach(func() {
		var err error
		s, err = scene.NewGaussian(config.DefaultConfig(), optics.ClosedForm{})
		Expect(err).NotTo(HaveOccurred())
	})

	It("computes the walk-off once", func() {
		st, err := s.Render(scene.Params{"tau": 0})
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Readout).To(ContainElement("τm: 0.5 ns"))
	})

	It("peaks when tau equals the walk-off", func() {
		st, err := s.Render(scene.Params{"tau": 0.5})
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Coefficient).To(Equal(1.0))
		Expect(st.Panels).To(HaveLen(1))
		_, hi := st.Panels[0].Mesh.Range()
		Expect(hi).To(BeNumerically("<=", 1.0))
		Expect(hi).To(BeNumerically(">", 0.98))
	})

	It("scales the surface by γ²", func() {
		st, err := s.Render(scene.Params{"tau": 0})
		Expect(err).NotTo(HaveOccurred())
		gamma := st.Coefficient
		Expect(gamma).To(Equal(optics.Round(math.Exp(-0.25/4), 2)))
		peak := 0.0
		for _, v := range st.Series[0].Y {
			peak = math.Max(peak, v)
		}
		Expect(peak).To(BeNumerically("~", gamma*gamma, 1e-3))
	})
})

var _ = Describe("Ellipsoid scene", func() {
	var s scene.Scene

	BeforeEach(func() {
		var err error
		s, err = scene.NewEllipsoid(config.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	It("points along the optic axis at theta=0", func() {
		st, err := s.Render(scene.Params{"phi": 0, "theta": 0})
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Title).To(Equal("Coordinates: (X:0.00, Y:0.00, Z:1.51)"))
		last := st.Wireframe[len(st.Wireframe)-1]
		Expect(last.Accent).To(BeTrue())
		Expect(last.To.Z).To(BeNumerically("~", 1.5124, 1e-12))
	})

	It("lies in the equatorial plane at theta=90", func() {
		st, err := s.Render(scene.Params{"phi": 90, "theta": 90})
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Title).To(Equal("Coordinates: (X:0.00, Y:1.47, Z:0.00)"))
	})

	It("keeps the surface fixed across renders", func() {
		a, err := s.Render(scene.Params{"phi": 10, "theta": 20})
		Expect(err).NotTo(HaveOccurred())
		b, err := s.Render(scene.Params{"phi": 200, "theta": 100})
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Wireframe[:len(b.Wireframe)-1]).To(Equal(a.Wireframe[:len(a.Wireframe)-1]))
	})

	It("needs both angles", func() {
		_, err := s.Render(scene.Params{"phi": 0})
		Expect(errors.Is(err, scene.ErrMissingParam)).To(BeTrue())
	})
})

var _ = Describe("Static scenes", func() {
	var reg *scene.Registry

	BeforeEach(func() {
		reg = scene.NewRegistry(config.DefaultConfig(), nil)
	})

	It("renders I(tau) with a walk-off marker", func() {
		s, err := reg.Get("intensity")
		Expect(err).NotTo(HaveOccurred())
		st, err := s.Render(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Series).To(HaveLen(2))
		Expect(st.Series[0].X).To(HaveLen(100))
		Expect(st.Series[1].X).To(Equal([]float64{0.5, 0.5}))
		for _, v := range st.Series[0].Y {
			Expect(v).To(BeNumerically(">=", 0))
			Expect(v).To(BeNumerically("<=", 1))
		}
	})

	It("renders SHG panels for every depth", func() {
		s, err := reg.Get("shg")
		Expect(err).NotTo(HaveOccurred())
		st, err := s.Render(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Panels).To(HaveLen(2 * len(scene.SHGDepths)))
		Expect(st.Panels[0].Title).To(Equal("Intensity of SHG at z=0"))
		Expect(st.Panels[5].Title).To(Equal("Phase of SHG at z=0.2"))
	})

	It("reports the phase-matching verdict", func() {
		s, err := reg.Get("phase")
		Expect(err).NotTo(HaveOccurred())
		st, err := s.Render(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Title).To(ContainSubstring("is phase-matched"))
		Expect(st.Readout).To(HaveLen(2))
	})
})

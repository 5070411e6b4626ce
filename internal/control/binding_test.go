package control_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nlolab/internal/config"
	"github.com/san-kum/nlolab/internal/control"
	"github.com/san-kum/nlolab/internal/scene"
)

var tauSpec = scene.DialSpec{Name: "tau", Label: "Tau", Unit: "ns", Min: -35, Max: 35, Scale: 0.1}

var _ = Describe("Dial", func() {
	var d *control.Dial

	BeforeEach(func() {
		var err error
		d, err = control.NewDial(tauSpec)
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts at the baseline", func() {
		Expect(d.Value()).To(Equal(0))
		Expect(d.Physical()).To(Equal(0.0))
		Expect(d.Fraction()).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("maps control units to exact decimals", func() {
		d.Set(17)
		Expect(d.Physical()).To(Equal(1.7))
		d.Set(-35)
		Expect(d.Physical()).To(Equal(-3.5))
		Expect(d.Fraction()).To(Equal(0.0))
	})

	It("clamps out-of-range values", func() {
		Expect(d.Set(99)).To(Equal(35))
		Expect(d.Set(-99)).To(Equal(-35))
	})

	It("formats its label with the unit", func() {
		d.Set(17)
		Expect(d.Text()).To(Equal("Tau: 1.70 ns"))
	})

	It("appends degree units without a space", func() {
		p, err := control.NewDial(scene.DialSpec{Name: "phi", Label: "Phi", Unit: "°", Min: 0, Max: 360, Scale: 1})
		Expect(err).NotTo(HaveOccurred())
		p.Set(45)
		Expect(p.Text()).To(Equal("Phi: 45.00°"))
	})

	It("rejects empty ranges and zero scales", func() {
		_, err := control.NewDial(scene.DialSpec{Name: "x", Min: 1, Max: 1, Scale: 1})
		Expect(err).To(MatchError(control.ErrBadRange))
		_, err = control.NewDial(scene.DialSpec{Name: "x", Min: 0, Max: 1})
		Expect(err).To(MatchError(control.ErrBadRange))
	})
})

var _ = Describe("Scaled", func() {
	DescribeTable("multiplies or divides without drift",
		func(v int, scale, want float64) {
			Expect(control.Scaled(v, scale)).To(Equal(want))
		},
		Entry("tenths", 17, 0.1, 1.7),
		Entry("negative tenths", -35, 0.1, -3.5),
		Entry("quarters", 3, 0.25, 0.75),
		Entry("unit", 45, 1.0, 45.0),
		Entry("coarse", 3, 2.0, 6.0),
	)
})

var _ = Describe("Binding", func() {
	var (
		reg *scene.Registry
		b   *control.Binding
	)

	BeforeEach(func() {
		reg = scene.NewRegistry(config.DefaultConfig(), nil)
		s, err := reg.Get("correlation")
		Expect(err).NotTo(HaveOccurred())
		b, err = control.NewBinding(s, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	It("renders the baseline on construction", func() {
		Expect(b.State()).NotTo(BeNil())
		Expect(b.State().Coefficient).To(Equal(1.0))
		Expect(b.State().Title).To(Equal("Overlap: γ_corr = 1.00"))
	})

	It("updates the parameter and the view on change", func() {
		st, err := b.OnParameterChanged("tau", 17)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Params()["tau"]).To(Equal(1.7))
		Expect(st.Coefficient).To(Equal(0.49))
		Expect(st.Series[1].Name).To(Equal("g(x - 1.7)"))
		Expect(b.Labels()).To(Equal([]string{"Tau: 1.70 ns"}))
		Expect(b.State()).To(BeIdenticalTo(st))
	})

	It("reaches the lower end of the range", func() {
		_, err := b.OnParameterChanged("tau", -35)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Params()["tau"]).To(Equal(-3.5))
	})

	It("resets to zero and is idempotent", func() {
		_, err := b.OnParameterChanged("tau", 20)
		Expect(err).NotTo(HaveOccurred())

		st, err := b.Reset("tau")
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Params()["tau"]).To(Equal(0.0))
		Expect(st.Coefficient).To(Equal(1.0))

		again, err := b.Reset("tau")
		Expect(err).NotTo(HaveOccurred())
		Expect(again.Title).To(Equal(st.Title))
		Expect(again.Series[1].Y).To(Equal(st.Series[1].Y))
	})

	It("steps relative to the current value", func() {
		_, err := b.Step("tau", 5)
		Expect(err).NotTo(HaveOccurred())
		_, err = b.Step("tau", 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Params()["tau"]).To(Equal(1.0))
	})

	It("rejects unknown dials", func() {
		_, err := b.OnParameterChanged("phi", 3)
		Expect(errors.Is(err, control.ErrUnknownDial)).To(BeTrue())
	})

	It("drives two-dial scenes", func() {
		s, err := reg.Get("ellipsoid")
		Expect(err).NotTo(HaveOccurred())
		eb, err := control.NewBinding(s, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(eb.Dials()).To(HaveLen(2))

		_, err = eb.OnParameterChanged("phi", 90)
		Expect(err).NotTo(HaveOccurred())
		_, err = eb.OnParameterChanged("theta", 45)
		Expect(err).NotTo(HaveOccurred())

		st, err := eb.ResetAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(eb.Params()).To(Equal(scene.Params{"phi": 0, "theta": 0}))
		Expect(st.Wireframe).NotTo(BeEmpty())
	})
})

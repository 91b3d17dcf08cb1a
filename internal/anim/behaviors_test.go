package anim_test

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/motionlab/internal/anim"
	"github.com/san-kum/motionlab/internal/scene"
)

var _ = Describe("Generator", func() {
	var (
		g      *anim.Generator
		target *scene.Object
	)

	BeforeEach(func() {
		g = anim.NewGenerator(42, nil)
		target = scene.NewObject("companion")
	})

	It("starts neutral at half intensity", func() {
		Expect(g.Emotion()).To(Equal(anim.EmotionNeutral))
		Expect(g.Intensity()).To(BeNumerically("==", 0.5))
	})

	It("rejects emotions outside the catalog", func() {
		err := g.SetEmotionalState("furious", 0.5)
		Expect(err).To(MatchError(anim.ErrUnknownEmotion))
	})

	It("accepts every cataloged emotion", func() {
		for _, e := range anim.Emotions() {
			Expect(g.SetEmotionalState(e, 0.5)).To(Succeed())
			Expect(g.Emotion()).To(Equal(e))
		}
	})

	It("animates a bound target over time", func() {
		update := g.GenerateAnimation(target)
		update(1.0)
		Expect(target.Transform).NotTo(Equal(scene.IdentityTransform()))
	})

	It("restores the rest pose when the emotion changes", func() {
		target.Transform.Position = mgl64.Vec3{3, 1, 2}
		update := g.GenerateAnimation(target)
		update(1.0)

		Expect(g.SetEmotionalState(anim.EmotionJoy, 1.0)).To(Succeed())
		Expect(target.Transform.Position).To(Equal(mgl64.Vec3{3, 1, 2}))
	})

	It("leaves the pose alone when only intensity changes", func() {
		update := g.GenerateAnimation(target)
		update(1.0)
		moved := target.Transform

		Expect(g.SetEmotionalState(anim.EmotionNeutral, 0.9)).To(Succeed())
		Expect(target.Transform).To(Equal(moved))
	})
})

var _ = Describe("RandomSequence", func() {
	It("produces the requested number of steps", func() {
		rng := rand.New(rand.NewSource(7))
		Expect(anim.RandomSequence(rng, anim.EmotionCalm, 5)).To(HaveLen(5))
	})

	It("only draws cataloged base animations", func() {
		rng := rand.New(rand.NewSource(7))
		known := map[string]bool{}
		for _, n := range anim.BaseNames() {
			known[n] = true
		}
		for _, st := range anim.RandomSequence(rng, anim.EmotionExcited, 50) {
			Expect(known).To(HaveKey(st.Base))
			Expect(st.Duration).To(BeNumerically(">", 0))
		}
	})
})

var _ = DescribeTable("easing curves pin their endpoints",
	func(name string) {
		f := anim.EaseByName(name)
		Expect(f(0)).To(BeNumerically("~", 0, 1e-9))
		Expect(f(1)).To(BeNumerically("~", 1, 1e-9))
	},
	Entry("linear", "linear"),
	Entry("quadIn", "quadIn"),
	Entry("quadOut", "quadOut"),
	Entry("quadInOut", "quadInOut"),
	Entry("cubicIn", "cubicIn"),
	Entry("cubicOut", "cubicOut"),
	Entry("cubicInOut", "cubicInOut"),
	Entry("elasticIn", "elasticIn"),
	Entry("elasticOut", "elasticOut"),
	Entry("elasticInOut", "elasticInOut"),
	Entry("backIn", "backIn"),
	Entry("backOut", "backOut"),
	Entry("backInOut", "backInOut"),
	Entry("bounceIn", "bounceIn"),
	Entry("bounceOut", "bounceOut"),
	Entry("bounceInOut", "bounceInOut"),
)

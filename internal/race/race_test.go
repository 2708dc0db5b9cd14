package race_test

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortlab/internal/algo"
	"github.com/san-kum/sortlab/internal/race"
	"github.com/san-kum/sortlab/internal/trace"
)

type manualClock struct {
	t time.Time
}

func (c *manualClock) Now() time.Time { return c.t }

func tickUntilDone(c *race.Coordinator, limit int) int {
	n := 0
	for !c.Done() && n < limit {
		c.Tick()
		n++
	}
	return n
}

var _ = Describe("Coordinator", func() {
	var (
		clock *manualClock
		c     *race.Coordinator
		input trace.Values
	)

	BeforeEach(func() {
		clock = &manualClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		c = race.New(nil, race.WithClock(clock.Now))
		input = trace.Values{4, 2, 7, 1}
	})

	Describe("Start", func() {
		It("requires at least two lanes", func() {
			Expect(c.Start([]string{"bubbleSort"}, input)).To(MatchError(race.ErrTooFewLanes))
			Expect(c.Start(nil, input)).To(MatchError(race.ErrTooFewLanes))
		})

		It("rejects the same algorithm twice, including by alias", func() {
			err := c.Start([]string{"bubbleSort", "bubble"}, input)
			Expect(err).To(MatchError(race.ErrDuplicateLane))
		})

		It("rejects unknown algorithms", func() {
			err := c.Start([]string{"bubbleSort", "bogoSort"}, input)
			Expect(err).To(MatchError(algo.ErrUnknownAlgorithm))
		})

		It("propagates invalid input", func() {
			err := c.Start([]string{"bubbleSort", "mergeSort"}, trace.Values{1, math.Inf(1)})
			Expect(err).To(MatchError(trace.ErrInvalidInput))
		})

		It("gives every lane a private copy of the input", func() {
			Expect(c.Start([]string{"bubbleSort", "quickSort"}, input)).To(Succeed())
			input[0] = 100
			for _, p := range c.Lanes() {
				Expect(p.Frame.Array).To(Equal(trace.Values{4, 2, 7, 1}))
				Expect(p.Frame.Index).To(BeZero())
			}
		})

		It("uses the default tick rate", func() {
			Expect(c.TickRate()).To(Equal(50 * time.Millisecond))
			Expect(race.New(nil, race.WithTickRate(time.Second)).TickRate()).To(Equal(time.Second))
		})
	})

	Describe("before Start", func() {
		It("ticks nothing", func() {
			Expect(c.Tick()).To(BeNil())
			_, err := c.TickLane(0)
			Expect(err).To(MatchError(race.ErrNotStarted))
			Expect(c.Done()).To(BeFalse())
			Expect(c.Run(context.Background(), nil)).To(MatchError(race.ErrNotStarted))
		})
	})

	Describe("synchronous ticks", func() {
		BeforeEach(func() {
			Expect(c.Start([]string{"bubbleSort", "insertionSort"}, input)).To(Succeed())
		})

		It("advances each unfinished lane exactly one step per tick", func() {
			progress := c.Tick()
			Expect(progress).To(HaveLen(2))
			for i, p := range progress {
				Expect(p.Lane).To(Equal(i))
				Expect(p.Frame.Index).To(Equal(1))
				Expect(p.Finished).To(BeFalse())
			}
			Expect(progress[0].Algorithm).To(Equal("bubbleSort"))
			Expect(progress[1].Frame.Kind).To(Equal(trace.KindSelect))
		})

		It("completes both lanes with the same sorted snapshot", func() {
			ticks := tickUntilDone(c, 1000)
			Expect(c.Done()).To(BeTrue())
			// insertionSort records 15 steps on this input, bubbleSort 14.
			Expect(ticks).To(Equal(15))

			results := c.Results()
			Expect(results).To(HaveLen(2))
			for _, r := range results {
				Expect(r.Finished).To(BeTrue())
				Expect(r.Final).To(Equal(trace.Values{1, 2, 4, 7}))
			}
			Expect(results[0].Steps).To(Equal(14))
			Expect(results[0].Rank).To(Equal(1))
			Expect(results[1].Rank).To(Equal(2))
			Expect(results[1].Name).To(Equal("Insertion Sort"))

			winner, ok := c.Winner()
			Expect(ok).To(BeTrue())
			Expect(winner.Algorithm).To(Equal("bubbleSort"))
		})

		It("stops changing once every lane has finished", func() {
			tickUntilDone(c, 1000)
			before := c.Lanes()
			after := c.Tick()
			for i := range after {
				Expect(after[i].Frame.Index).To(Equal(before[i].Frame.Index))
			}
		})

		It("records finish times against the shared start", func() {
			for !c.Done() {
				clock.t = clock.t.Add(50 * time.Millisecond)
				c.Tick()
			}
			results := c.Results()
			Expect(results[0].FinishTime).To(Equal(14 * 50 * time.Millisecond))
			Expect(results[1].FinishTime).To(Equal(15 * 50 * time.Millisecond))
		})

		It("finishes regardless of which lane's timer fires first", func() {
			rng := rand.New(rand.NewSource(3))
			for i := 0; i < 200 && !c.Done(); i++ {
				_, err := c.TickLane(rng.Intn(2))
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(c.Done()).To(BeTrue())
			for _, r := range c.Results() {
				Expect(r.Final).To(Equal(trace.Values{1, 2, 4, 7}))
			}
		})

		It("rejects out-of-range lanes", func() {
			_, err := c.TickLane(2)
			Expect(err).To(MatchError(race.ErrLaneIndex))
			_, err = c.TickLane(-1)
			Expect(err).To(MatchError(race.ErrLaneIndex))
		})

		It("cancels without finalizing unfinished lanes", func() {
			c.Tick()
			c.Tick()
			c.Tick()
			c.Cancel()

			Expect(c.Cancelled()).To(BeTrue())
			Expect(c.Done()).To(BeFalse())
			for _, p := range c.Tick() {
				Expect(p.Frame.Index).To(Equal(3))
				Expect(p.Finished).To(BeFalse())
			}
			for _, r := range c.Results() {
				Expect(r.Finished).To(BeFalse())
				Expect(r.Rank).To(BeZero())
			}
			_, ok := c.Winner()
			Expect(ok).To(BeFalse())
			Expect(c.Run(context.Background(), nil)).To(MatchError(race.ErrCancelled))
		})

		It("can be restarted after cancel", func() {
			c.Tick()
			c.Cancel()
			Expect(c.Start([]string{"heap", "shell"}, input)).To(Succeed())
			Expect(c.Cancelled()).To(BeFalse())
			tickUntilDone(c, 1000)
			Expect(c.Done()).To(BeTrue())
		})
	})

	Describe("Run", func() {
		var rc *race.Coordinator

		BeforeEach(func() {
			rc = race.New(nil, race.WithTickRate(time.Millisecond))
		})

		It("drives every lane on its own goroutine to completion", func() {
			rng := rand.New(rand.NewSource(11))
			values := make(trace.Values, 24)
			for i := range values {
				values[i] = float64(rng.Intn(100))
			}
			want := values.Clone()
			sort.Float64s(want)

			names := algo.Default().Names()
			Expect(rc.Start(names, values)).To(Succeed())

			finished := map[string]bool{}
			err := rc.Run(context.Background(), func(p race.Progress) {
				if p.Finished {
					finished[p.Algorithm] = true
				}
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rc.Done()).To(BeTrue())
			Expect(finished).To(HaveLen(len(names)))

			ranks := map[int]bool{}
			for _, r := range rc.Results() {
				Expect(r.Finished).To(BeTrue())
				Expect(r.Final).To(Equal(want))
				ranks[r.Rank] = true
			}
			Expect(ranks).To(HaveLen(len(names)))
		})

		It("stops every lane when cancelled mid-race", func() {
			rc = race.New(nil, race.WithTickRate(5*time.Millisecond))
			values := make(trace.Values, 40)
			for i := range values {
				values[i] = float64(40 - i)
			}
			Expect(rc.Start([]string{"bubbleSort", "selectionSort"}, values)).To(Succeed())

			updates := 0
			err := rc.Run(context.Background(), func(race.Progress) {
				updates++
				if updates == 4 {
					rc.Cancel()
				}
			})
			Expect(err).To(MatchError(race.ErrCancelled))
			Expect(rc.Cancelled()).To(BeTrue())
			Expect(rc.Done()).To(BeFalse())
			for _, r := range rc.Results() {
				Expect(r.Finished).To(BeFalse())
				Expect(r.Final).NotTo(BeEmpty())
			}
		})

		It("returns the context error when the caller gives up", func() {
			rc = race.New(nil, race.WithTickRate(time.Hour))
			Expect(rc.Start([]string{"bubbleSort", "mergeSort"}, trace.Values{3, 1, 2})).To(Succeed())

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			Expect(rc.Run(ctx, nil)).To(MatchError(context.DeadlineExceeded))
			Expect(rc.Cancelled()).To(BeTrue())
		})
	})
})

var _ = Describe("Progress", func() {
	It("reports the applied fraction", func() {
		c := race.New(nil)
		Expect(c.Start([]string{"bubble", "insertion"}, trace.Values{4, 2, 7, 1})).To(Succeed())
		p := c.Tick()
		Expect(p[0].Fraction()).To(BeNumerically("~", 1.0/14.0, 1e-12))
		Expect(race.Progress{}.Fraction()).To(BeZero())
	})
})

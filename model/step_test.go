package model_test

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sheikhrachel/decaylife/model"
	"github.com/sheikhrachel/decaylife/rules"
	"github.com/sheikhrachel/decaylife/utils"
)

func blockPattern() model.Pattern {
	return model.Pattern{
		{Row: 0, Col: 0, Cell: model.AliveCell},
		{Row: 0, Col: 1, Cell: model.AliveCell},
		{Row: 1, Col: 0, Cell: model.AliveCell},
		{Row: 1, Col: 1, Cell: model.AliveCell},
	}
}

var _ = Describe("Step", func() {
	It("keeps an all-dead grid dead", func() {
		g := mustGrid(3, 3, nil)
		next := model.Step(g)
		Expect(next.Equal(g)).To(BeTrue())
		Expect(next.CountLivingCells()).To(BeZero())
	})

	It("starts decay on a lonely alive cell", func() {
		g := mustGrid(3, 3, model.Pattern{{Row: 1, Col: 1, Cell: model.AliveCell}})
		next := model.Step(g)
		for row := range 3 {
			for col := range 3 {
				if row == 1 && col == 1 {
					Expect(mustGet(next, row, col)).To(Equal(model.DyingCell(rules.DefaultDecay)))
					continue
				}
				Expect(mustGet(next, row, col)).To(Equal(model.DeadCell))
			}
		}
	})

	It("keeps the block still life stable", func() {
		g := mustGrid(4, 4, blockPattern())
		for _, o := range blockPattern() {
			Expect(g.NeighborCount(o.Row, o.Col)).To(Equal(3))
		}
		Expect(g.NeighborCount(2, 2)).To(Equal(1))
		Expect(g.NeighborCount(0, 2)).To(Equal(2))
		Expect(g.NeighborCount(2, 0)).To(Equal(2))

		next := g
		for range 5 {
			next = model.Step(next)
			Expect(next.Equal(g)).To(BeTrue())
		}
	})

	It("kills an expired dying cell", func() {
		g := mustGrid(3, 3, model.Pattern{{Row: 1, Col: 1, Cell: model.DyingCell(0)}})
		Expect(mustGet(model.Step(g), 1, 1)).To(Equal(model.DeadCell))
	})

	It("counts a dying cell down one step at a time", func() {
		g := mustGrid(3, 3, model.Pattern{{Row: 1, Col: 1, Cell: model.DyingCell(2)}})

		g = model.Step(g)
		Expect(mustGet(g, 1, 1)).To(Equal(model.DyingCell(1)))
		g = model.Step(g)
		Expect(mustGet(g, 1, 1)).To(Equal(model.DyingCell(0)))
		g = model.Step(g)
		Expect(mustGet(g, 1, 1)).To(Equal(model.DeadCell))
		Expect(g.CountLivingCells()).To(BeZero())
	})

	It("runs a fresh dying cell through the full decay", func() {
		g := mustGrid(1, 1, model.Pattern{{Row: 0, Col: 0, Cell: model.AliveCell}})
		expected := []model.Cell{
			model.DyingCell(3),
			model.DyingCell(2),
			model.DyingCell(1),
			model.DyingCell(0),
			model.DeadCell,
			model.DeadCell,
		}
		for _, want := range expected {
			g = model.Step(g)
			Expect(mustGet(g, 0, 0)).To(Equal(want))
		}
	})

	It("uses the configured decay duration", func() {
		g, err := model.NewSeededGrid(
			utils.SimulationConfig{Rows: 2, Cols: 2, DecayDuration: 7},
			model.Pattern{{Row: 0, Col: 0, Cell: model.AliveCell}},
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(mustGet(model.Step(g), 0, 0)).To(Equal(model.DyingCell(7)))
	})

	It("births a dead cell with three neighbors including a dying one", func() {
		g := mustGrid(3, 3, model.Pattern{
			{Row: 0, Col: 0, Cell: model.AliveCell},
			{Row: 0, Col: 1, Cell: model.AliveCell},
			{Row: 0, Col: 2, Cell: model.DyingCell(1)},
		})
		Expect(mustGet(model.Step(g), 1, 1)).To(Equal(model.AliveCell))
	})

	It("computes every cell from the pre-step snapshot", func() {
		// (1,1) leaves dying this step but still counts for (2,1)
		g := mustGrid(3, 3, model.Pattern{
			{Row: 1, Col: 1, Cell: model.DyingCell(0)},
			{Row: 2, Col: 0, Cell: model.AliveCell},
			{Row: 2, Col: 2, Cell: model.AliveCell},
		})
		next := model.Step(g)
		Expect(mustGet(next, 1, 1)).To(Equal(model.DeadCell))
		Expect(mustGet(next, 2, 1)).To(Equal(model.AliveCell))
	})

	It("is deterministic and leaves the current grid untouched", func() {
		rng := rand.New(rand.NewPCG(42, 0))
		g := randomGrid(rng, 12, 17)
		before := g.Clone()

		first := model.Step(g)
		second := model.Step(g)
		Expect(first.Equal(second)).To(BeTrue())
		Expect(g.Equal(before)).To(BeTrue())
	})

	It("only produces valid cells", func() {
		rng := rand.New(rand.NewPCG(3, 9))
		g := randomGrid(rng, 10, 10)
		for range 20 {
			g = model.Step(g)
			for row := range 10 {
				for col := range 10 {
					cell := mustGet(g, row, col)
					Expect(cell.State.Valid()).To(BeTrue())
					Expect(cell.DecayTimer).To(BeNumerically(">=", 0))
					Expect(cell.DecayTimer).To(BeNumerically("<=", rules.DefaultDecay))
					if cell.State != rules.Dying {
						Expect(cell.DecayTimer).To(BeZero())
					}
				}
			}
		}
	})

	DescribeTable("every mode matches the sequential stepper",
		func(mode utils.StepMode, usePool bool) {
			var pool *model.GridPool
			if usePool {
				pool = model.NewGridPool()
			}

			rng := rand.New(rand.NewPCG(11, 5))
			reference := mustGrid(45, 60, model.DefaultPattern())
			reference.Randomize(rng, 0.2)
			current := reference.Clone()

			for range 40 {
				reference = model.Step(reference)
				next := current.NextGeneration(mode, pool)
				model.GridToPool(current, pool)
				current = next
				Expect(current.Equal(reference)).To(BeTrue())
			}
		},
		Entry("sequential", utils.ModeSequential, false),
		Entry("parallel", utils.ModeParallel, false),
		Entry("parallel with pool", utils.ModeParallel, true),
		Entry("bounded", utils.ModeBounded, false),
		Entry("bounded with pool", utils.ModeBounded, true),
	)

	It("returns an empty grid from the bounded stepper when nothing lives", func() {
		g := mustGrid(5, 5, nil)
		next := g.NextGenerationBounded(nil)
		Expect(next.CountLivingCells()).To(BeZero())
		Expect(next.Rows()).To(Equal(5))
	})
})

var _ = Describe("GridPool", func() {
	It("hands back cleared grids of the requested size", func() {
		pool := model.NewGridPool()
		used := mustGrid(4, 4, blockPattern())
		model.GridToPool(used, pool)

		g := pool.Get(simConfig(6, 3))
		Expect(g.Rows()).To(Equal(6))
		Expect(g.Cols()).To(Equal(3))
		Expect(g.CountLivingCells()).To(BeZero())
	})

	It("ignores a nil pool", func() {
		Expect(func() { model.GridToPool(mustGrid(1, 1, nil), nil) }).NotTo(Panic())
	})
})

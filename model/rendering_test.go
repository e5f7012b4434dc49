package model_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sheikhrachel/decaylife/model"
	"github.com/sheikhrachel/decaylife/rules"
)

var _ = Describe("rendering", func() {
	var g *model.Grid

	BeforeEach(func() {
		g = mustGrid(2, 3, model.Pattern{
			{Row: 0, Col: 0, Cell: model.AliveCell},
			{Row: 1, Col: 2, Cell: model.DyingCell(1)},
		})
	})

	It("maps states to their symbols", func() {
		Expect(model.Symbol(rules.Alive)).To(Equal("O"))
		Expect(model.Symbol(rules.Dying)).To(Equal("X"))
		Expect(model.Symbol(rules.Dead)).To(Equal("."))
	})

	It("formats one row per line", func() {
		Expect(model.Format(g)).To(Equal("O . . \n. . X \n"))
	})

	It("keeps the symbols when colored", func() {
		colored := model.FormatColor(g)
		Expect(strings.Count(colored, "O")).To(Equal(1))
		Expect(strings.Count(colored, "X")).To(Equal(1))
		Expect(strings.Count(colored, "\n")).To(Equal(2))
	})

	It("writes frames through the terminal renderer", func() {
		var out bytes.Buffer
		r := &model.TerminalRenderer{Out: &out}
		Expect(r.Clear()).To(Succeed())
		Expect(r.Display(g)).To(Succeed())
		Expect(out.String()).To(Equal("\033[2J\033[H" + "O . . \n. . X \n"))
	})
})

package engine

import (
	"context"
	"math/rand"
	"sort"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

// GeneticConfig holds parameters for the genetic strategy.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
}

// DefaultGeneticConfig returns sensible default parameters. The fixed seed
// keeps the strategy deterministic run to run.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
	}
}

// Genetic returns the GA meta-heuristic strategy: it searches over piece
// orderings and rotation flags, decoding each candidate through the same
// guillotine packer the other strategies use.
func Genetic() Strategy {
	return GeneticWithConfig(DefaultGeneticConfig())
}

// GeneticWithConfig returns a genetic strategy with explicit parameters.
func GeneticWithConfig(config GeneticConfig) Strategy {
	return Strategy{
		Name: "genetic",
		Pack: func(ctx context.Context, req *model.Request) ([]model.SheetLayout, []model.InfeasiblePiece, error) {
			g := &geneticPacker{
				req:       req,
				config:    config,
				instances: expandInstances(req.Pieces),
				rng:       rand.New(rand.NewSource(config.Seed)),
			}
			return g.run(ctx)
		},
	}
}

// gene represents a single placement decision in the chromosome.
type gene struct {
	instIndex int  // Index into the expanded instances slice
	rotated   bool // Whether this instance should try rotated first
}

// chromosome is a candidate solution: an ordering of instances with
// rotation preferences.
type chromosome struct {
	genes   []gene
	fitness float64
}

type geneticPacker struct {
	req       *model.Request
	config    GeneticConfig
	instances []model.Piece
	rng       *rand.Rand
}

func (g *geneticPacker) run(ctx context.Context) ([]model.SheetLayout, []model.InfeasiblePiece, error) {
	if len(g.instances) == 0 {
		return nil, nil, nil
	}

	// Scale effort with problem size, as for the other heuristics the GA
	// dominates runtime.
	config := g.config
	if len(g.instances) > 20 {
		config.Generations = 150
	}
	if len(g.instances) > 50 {
		config.Generations = 200
		config.PopulationSize = 80
	}
	g.config = config

	population := g.initPopulation()
	for i := range population {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < config.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		sort.SliceStable(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		newPop := make([]chromosome, 0, config.PopulationSize)
		eliteCount := config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, g.copyChromosome(population[i]))
		}

		for len(newPop) < config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)
			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)
			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}
		population = newPop
	}

	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
	return g.decode(population[0])
}

func (g *geneticPacker) initPopulation() []chromosome {
	n := len(g.instances)
	population := make([]chromosome, g.config.PopulationSize)

	for i := range population {
		genes := make([]gene, n)
		perm := g.rng.Perm(n)
		for j := 0; j < n; j++ {
			canRotate := g.req.Params.AllowRotate(g.instances[perm[j]])
			genes[j] = gene{
				instIndex: perm[j],
				rotated:   canRotate && g.rng.Float64() < 0.5,
			}
		}
		population[i] = chromosome{genes: genes}
	}

	// Seed one chromosome with the greedy area-descending order to give
	// the GA a good starting point.
	if len(population) > 0 {
		population[0] = g.greedyChromosome()
	}
	return population
}

func (g *geneticPacker) greedyChromosome() chromosome {
	n := len(g.instances)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return g.instances[indices[i]].Size.Area() > g.instances[indices[j]].Size.Area()
	})

	genes := make([]gene, n)
	for i, idx := range indices {
		genes[i] = gene{instIndex: idx}
	}
	return chromosome{genes: genes}
}

// evaluate decodes the chromosome and scores it: material efficiency with
// heavy penalties for unplaced instances and extra sheets.
func (g *geneticPacker) evaluate(c chromosome) float64 {
	layouts, infeasible, err := g.decode(c)
	if err != nil || len(layouts) == 0 {
		return 0
	}

	var usedArea, totalArea float64
	for _, l := range layouts {
		usedArea += l.UsedArea()
		totalArea += l.Sheet.Size.Area()
	}
	if totalArea == 0 {
		return 0
	}

	unplaced := 0
	for _, ip := range infeasible {
		unplaced += ip.Quantity
	}

	fitness := usedArea/totalArea - float64(unplaced)*0.1 - float64(len(layouts)-1)*0.05
	if fitness < 0 {
		fitness = 0
	}
	return fitness
}

// decode converts a chromosome into sheet layouts by running the guillotine
// packer with the chromosome's order and rotation preferences.
func (g *geneticPacker) decode(c chromosome) ([]model.SheetLayout, []model.InfeasiblePiece, error) {
	req := g.req
	pool := newStockPool(req.Stocks)
	var packers []*sheetPacker
	skip := make(map[string]string)
	var infeasible []model.InfeasiblePiece
	infeasibleIdx := make(map[string]int)

	report := func(p model.Piece, reason string) {
		if i, ok := infeasibleIdx[p.ID]; ok {
			infeasible[i].Quantity++
			return
		}
		infeasibleIdx[p.ID] = len(infeasible)
		infeasible = append(infeasible, model.InfeasiblePiece{
			PieceID:  p.ID,
			Label:    p.Label,
			Quantity: 1,
			Reason:   reason,
		})
	}

	for _, gn := range c.genes {
		inst := g.instances[gn.instIndex]
		if reason, skipped := skip[inst.ID]; skipped {
			report(inst, reason)
			continue
		}

		allowRotate := req.Params.AllowRotate(inst)
		size := inst.Size
		if gn.rotated && allowRotate {
			// The chromosome's preference is expressed by presenting the
			// rotated footprint as primary; the packer may still flip back.
			size = size.Rotated()
		}

		pk, reg := chooseBestArea(packers, inst.Size, allowRotate, req.Params.Kerf)
		if reg == nil {
			sheet, ok := pool.open(req, inst.Size, allowRotate)
			if !ok {
				reason := "no remaining sheet can fit this piece"
				skip[inst.ID] = reason
				report(inst, reason)
				continue
			}
			pk = newSheetPacker(sheet, len(packers), req.Params)
			packers = append(packers, pk)
			reg = pk.regions[0]
		}

		fp, rotated, ok := geneOrientation(size, inst.Size, reg.node.Region, allowRotate, req.Params.Kerf)
		if !ok {
			return nil, nil, &model.GeometryError{
				Region: reg.node.Region,
				Offset: inst.Size.W,
				Kerf:   req.Params.Kerf,
			}
		}
		if _, err := pk.place(reg, inst, fp, rotated); err != nil {
			return nil, nil, err
		}
	}

	layouts := make([]model.SheetLayout, 0, len(packers))
	for _, pk := range packers {
		layouts = append(layouts, pk.layout())
	}
	return layouts, infeasible, nil
}

// geneOrientation tries the chromosome's preferred footprint first, then
// the other orientation.
func geneOrientation(preferred, original model.Rect, reg model.Rect, allowRotate bool, kerf float64) (model.Rect, bool, bool) {
	if footprintFits(preferred, reg, kerf) {
		return preferred, preferred != original, true
	}
	other := preferred.Rotated()
	if (allowRotate || other == original) && footprintFits(other, reg, kerf) {
		return other, other != original, true
	}
	return model.Rect{}, false, false
}

func (g *geneticPacker) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return g.copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation
// chromosomes, preserving relative gene order from both parents.
func (g *geneticPacker) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.genes)
	if n <= 2 {
		return g.copyChromosome(parent1)
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{genes: make([]gene, n)}
	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.genes[i] = parent1.genes[i]
		inSegment[parent1.genes[i].instIndex] = true
	}

	childIdx := (point2 + 1) % n
	for _, pg := range parent2.genes {
		if !inSegment[pg.instIndex] {
			child.genes[childIdx] = pg
			childIdx = (childIdx + 1) % n
		}
	}
	return child
}

func (g *geneticPacker) mutate(c *chromosome) {
	n := len(c.genes)
	if n < 2 {
		return
	}

	// Swap mutation
	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}

	// Rotation mutation
	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		if g.req.Params.AllowRotate(g.instances[c.genes[i].instIndex]) {
			c.genes[i].rotated = !c.genes[i].rotated
		}
	}

	// Inversion mutation, less frequent
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
			i++
			j--
		}
	}
}

func (g *geneticPacker) copyChromosome(c chromosome) chromosome {
	genes := make([]gene, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, fitness: c.fitness}
}

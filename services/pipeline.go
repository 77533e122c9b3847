package services

import (
	"fmt"

	"macro-averages/models"
	"macro-averages/storage"
	"macro-averages/utils"
)

// Result holds the averaged tables of one run.
type Result struct {
	Year   string
	Weight models.MonthlyAverages
	Macros models.MonthlyAverages
}

// Pipeline runs collect → clean → average over the weight and macros files.
type Pipeline struct {
	collector storage.RowCollector
	cleaner   *Cleaner
	averager  *Averager
	logger    *utils.Logger
}

// NewPipeline wires a Pipeline from its stages.
func NewPipeline(collector storage.RowCollector, cleaner *Cleaner, averager *Averager, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		collector: collector,
		cleaner:   cleaner,
		averager:  averager,
		logger:    logger,
	}
}

// Run processes both files for year. The first error aborts the run.
func (p *Pipeline) Run(weightPath, macrosPath, year string) (*Result, error) {
	weight, err := p.collector.Collect(weightPath, models.WeightFields)
	if err != nil {
		return nil, err
	}
	macros, err := p.collector.Collect(macrosPath, models.MacrosFields)
	if err != nil {
		return nil, err
	}
	p.logger.Info("[pipeline] Collected %d weight rows and %d macros rows", len(weight.Rows), len(macros.Rows))

	weightClean, err := p.cleaner.Clean(weight, year)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", weight.Source, err)
	}
	macrosClean, err := p.cleaner.Clean(macros, year)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", macros.Source, err)
	}

	res := &Result{Year: year}
	if res.Weight, err = p.averager.Average(weightClean); err != nil {
		return nil, err
	}
	if res.Macros, err = p.averager.Average(macrosClean); err != nil {
		return nil, err
	}
	return res, nil
}

// Print writes both tables through the averager.
func (p *Pipeline) Print(res *Result) {
	p.averager.Print("MONTHLY AVERAGES "+res.Year, models.WeightFields[1:], res.Weight)
	p.averager.Print("MONTHLY MACROS "+res.Year, models.MacrosFields[1:], res.Macros)
}

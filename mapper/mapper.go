// Package mapper implements the mzTab-M → ISA-Tab mapping pipeline: one
// mapper unit per metadata facet, applied in fixed order by a Pipeline
// against a single (source, destination) model pair.
package mapper

import (
	"fmt"
	"log/slog"

	"github.com/EBI-Metabolights/mztab2mtbls/isatab"
	"github.com/EBI-Metabolights/mztab2mtbls/mztab"
)

// Mapper translates one semantic slice of the source model into the
// destination model. Implementations are stateless: Update never
// retains anything across calls, never mutates the source, and assumes
// the destination skeleton (study container, accession, tables) exists.
type Mapper interface {
	// Name identifies the mapper in logs and error messages.
	Name() string

	// Update maps this unit's slice of src into dst.
	Update(src *mztab.MzTab, dst *isatab.StudyModel) error
}

// IntegrityError reports a cross-reference that could not be resolved
// (sample id, ms_run id, database prefix). It is fatal for the run: the
// pipeline stops rather than emitting a model with dangling references.
type IntegrityError struct {
	Kind string // the referenced collection: "sample", "ms_run", "database", "assay"
	Ref  string // the unresolved reference value
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("reference integrity: %s %q has no matching entry", e.Kind, e.Ref)
}

// Pipeline applies an ordered list of mappers to one model pair. Order
// matters: later mappers depend on entities registered by earlier ones
// (assay rows link to sample rows, summary rows resolve databases).
type Pipeline struct {
	mappers []Mapper
	logger  *slog.Logger
}

// NewPipeline builds a pipeline with the standard mapper order. The
// mapper list is an explicit per-pipeline value, not process state.
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger: logger,
		mappers: []Mapper{
			&BaseMapper{},
			&ContactMapper{},
			&PublicationMapper{},
			&CVMapper{},
			&SampleMapper{},
			&SampleProcessingMapper{},
			&SoftwareMapper{},
			&DatabaseMapper{},
			&AssayMapper{},
			&SummaryMapper{},
		},
	}
}

// Run applies every mapper in order. The first failure aborts the run,
// wrapped with the failing mapper's name; the destination is then
// partially populated and must not be serialized.
func (p *Pipeline) Run(src *mztab.MzTab, dst *isatab.StudyModel) error {
	for _, m := range p.mappers {
		p.logger.Debug("running mapper", slog.String("mapper", m.Name()))
		if err := m.Update(src, dst); err != nil {
			return fmt.Errorf("mapper %s: %w", m.Name(), err)
		}
	}
	p.logger.Info("mapping complete",
		slog.Int("samples", dst.Study().SamplesTable.RowCount()),
		slog.Int("assays", len(dst.Study().Assays)),
		slog.Int("assignments", dst.Study().AssignmentTable.RowCount()),
	)
	return nil
}

package transfer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/ortho-gaf/internal/assoc"
	"github.com/inodb/ortho-gaf/internal/gpi"
)

// GeneLookup resolves target gene metadata by curie string.
type GeneLookup interface {
	Lookup(id string) (*gpi.GeneRecord, bool)
}

// Iterator yields associations one at a time. Returns nil, nil when
// exhausted. The translator makes a single forward pass, so streamed
// and materialized inputs behave identically.
type Iterator interface {
	Next() (*assoc.Association, error)
}

// SliceIterator adapts a materialized slice to the Iterator interface.
type SliceIterator struct {
	records []*assoc.Association
	pos     int
}

// NewSliceIterator creates an iterator over the given records.
func NewSliceIterator(records []*assoc.Association) *SliceIterator {
	return &SliceIterator{records: records}
}

// Next returns the next record, or nil, nil when exhausted.
func (it *SliceIterator) Next() (*assoc.Association, error) {
	if it.pos >= len(it.records) {
		return nil, nil
	}
	a := it.records[it.pos]
	it.pos++
	return a, nil
}

// Translator rewrites source-species associations into target-species
// associations. It performs no I/O and never mutates its inputs.
type Translator struct {
	ctx    Context
	logger *zap.Logger
}

// New creates a translator for the given context.
func New(ctx Context) *Translator {
	return &Translator{
		ctx:    ctx,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for progress and attrition messages.
func (t *Translator) SetLogger(l *zap.Logger) {
	t.logger = l
}

// Context returns the translation context.
func (t *Translator) Context() Context {
	return t.ctx
}

// TranslateOne rewrites a single association. A subject absent from
// the mapping is expected attrition and yields nil, nil. A mapped
// target gene absent from the metadata index yields an
// *UnknownTargetGeneError. The input is never modified; the returned
// record shares no memory with it.
func (t *Translator) TranslateOne(a *assoc.Association, mapping map[string]string, genes GeneLookup) (*assoc.Association, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	identity, ok := mapping[a.Subject.ID.String()]
	if !ok {
		return nil, nil
	}

	out := a.Clone()

	// Evidence: the original subject becomes the with/from support,
	// preserving where the inference came from.
	out.Evidence.WithSupportFrom = []assoc.ConjunctiveSet{
		{Elements: []assoc.Curie{a.Subject.ID}},
	}
	out.Evidence.HasSupportingReference = []assoc.Curie{t.ctx.Reference}
	out.Evidence.Type = t.ctx.EvidenceCode

	// Identity: the record now belongs to the target gene.
	out.Subject.ID = assoc.Curie{Namespace: t.ctx.TargetNamespace, Identity: identity}
	out.Subject.Synonyms = nil
	out.Subject.Taxon = t.ctx.TargetTaxon
	out.Term.Taxon = t.ctx.TargetTaxon

	// Provenance: the source species' default attribution becomes the
	// target's; anything else passes through unchanged.
	if t.ctx.SourceAttribution != "" && out.ProvidedBy == t.ctx.SourceAttribution {
		out.ProvidedBy = t.ctx.TargetAttribution
	}

	// Hydrate subject metadata from the target gene index.
	rec, ok := genes.Lookup(out.Subject.ID.String())
	if !ok {
		return nil, &UnknownTargetGeneError{ID: out.Subject.ID.String()}
	}
	out.Subject.Label = rec.Label
	out.Subject.FullName = rec.FullName
	out.Subject.Type = []assoc.Curie{assoc.TypeLabelCurie(rec.FirstType())}

	return out, nil
}

// Translate rewrites every mapped association from the iterator,
// preserving input order. Unmapped subjects are dropped silently;
// any fault aborts the pass.
func (t *Translator) Translate(it Iterator, mapping map[string]string, genes GeneLookup) ([]*assoc.Association, error) {
	var out []*assoc.Association
	read, dropped := 0, 0

	for {
		a, err := it.Next()
		if err != nil {
			return nil, fmt.Errorf("read association: %w", err)
		}
		if a == nil {
			break
		}
		read++

		translated, err := t.TranslateOne(a, mapping, genes)
		if err != nil {
			return nil, err
		}
		if translated == nil {
			dropped++
			continue
		}
		out = append(out, translated)
	}

	t.logger.Info("translation pass complete",
		zap.Int("read", read),
		zap.Int("translated", len(out)),
		zap.Int("unmapped", dropped))

	return out, nil
}

// MappedOnly wraps an iterator so it skips subjects absent from the
// mapping before they reach the translator. A throughput optimization
// only; TranslateOne applies the same eligibility rule.
func MappedOnly(it Iterator, mapping map[string]string) Iterator {
	return &mappedIterator{inner: it, mapping: mapping}
}

type mappedIterator struct {
	inner   Iterator
	mapping map[string]string
}

func (m *mappedIterator) Next() (*assoc.Association, error) {
	for {
		a, err := m.inner.Next()
		if err != nil || a == nil {
			return a, err
		}
		if _, ok := m.mapping[a.Subject.ID.String()]; ok {
			return a, nil
		}
	}
}

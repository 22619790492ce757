package transfer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/ortho-gaf/internal/assoc"
)

func TestTranslateParallel_MatchesSequential(t *testing.T) {
	tr := New(ratToMouseContext())
	genes := mouseGenes()

	mapping := make(map[string]string)
	var records []*assoc.Association
	for i := 0; i < 200; i++ {
		id := fmt.Sprintf("RGD:%d", i)
		records = append(records, ratAssociation(id))
		if i%3 != 0 { // leave every third record unmapped
			mapping[id] = "5678"
		}
	}

	sequential, err := tr.Translate(NewSliceIterator(records), mapping, genes)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 2, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			parallel, err := tr.TranslateParallel(NewSliceIterator(records), mapping, genes, workers)
			require.NoError(t, err)
			assert.Equal(t, sequential, parallel)
		})
	}
}

func TestTranslateParallel_PropagatesFault(t *testing.T) {
	tr := New(ratToMouseContext())
	mapping := map[string]string{
		"RGD:1": "5678",
		"RGD:2": "0000000", // metadata miss
		"RGD:3": "5678",
	}

	records := []*assoc.Association{
		ratAssociation("RGD:1"),
		ratAssociation("RGD:2"),
		ratAssociation("RGD:3"),
	}

	_, err := tr.TranslateParallel(NewSliceIterator(records), mapping, mouseGenes(), 4)
	require.Error(t, err)

	var uerr *UnknownTargetGeneError
	assert.ErrorAs(t, err, &uerr)
}

func TestOrderedCollect(t *testing.T) {
	results := make(chan WorkResult, 4)
	results <- WorkResult{Seq: 2}
	results <- WorkResult{Seq: 0}
	results <- WorkResult{Seq: 3}
	results <- WorkResult{Seq: 1}
	close(results)

	var seen []int
	err := OrderedCollect(results, func(r WorkResult) error {
		seen = append(seen, r.Seq)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
}

func TestOrderedCollect_StopsOnError(t *testing.T) {
	results := make(chan WorkResult, 2)
	results <- WorkResult{Seq: 0}
	results <- WorkResult{Seq: 1}
	close(results)

	calls := 0
	err := OrderedCollect(results, func(r WorkResult) error {
		calls++
		return fmt.Errorf("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

package extractor

import (
	"github.com/beevik/etree"

	"fjacquet/alert-extract/internal/xmlutils"
)

// Candidate tag lists, highest priority first. Producers disagree on
// capitalization and on whether parties are entities or customers.
var (
	AlertTags       = []string{"Alert", "alert"}
	TransactionTags = []string{"Transaction", "transaction"}
	EntityTags      = []string{"Entity", "Customer", "entity", "customer"}
)

// ResolveTag returns the elements matching the first candidate that occurs
// anywhere below scope, in document order. Later candidates are only tried
// when every earlier one has no match. No match at all yields nil.
func ResolveTag(scope *etree.Element, candidates []string) []*etree.Element {
	for _, tag := range candidates {
		if found := xmlutils.FindByTag(scope, tag); len(found) > 0 {
			return found
		}
	}
	return nil
}

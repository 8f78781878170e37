package populate

import (
	"github.com/kturhan/ontofill/internal/graph"
	"github.com/kturhan/ontofill/internal/vocab"
)

// CorrectionGraph is the slice of the graph model the correction pass
// needs.
type CorrectionGraph interface {
	NamespacePrefix() string
	ListIndividuals() []graph.Individual
	RemoveAllWithSubject(subject string)
	Class(iri string) (string, bool)
	CreateIndividual(classIRI, iri string)
	MarkNamedIndividual(iri string)
	Add(st graph.Statement)
}

// CorrectNamedIndividuals re-types every individual already present in a
// freshly loaded model: each is fully detached and recreated under its
// class with an explicit owl:NamedIndividual assertion and a label equal
// to its local name. Some ontology editors omit the explicit typing, and
// documents from them would otherwise lose their individuals on reserialization.
//
// The entity count is unchanged by the pass and running it again yields
// the same model. Must run single-threaded, before population.
func CorrectNamedIndividuals(g CorrectionGraph) int {
	existing := g.ListIndividuals()
	for _, ind := range existing {
		g.RemoveAllWithSubject(ind.IRI)
	}

	ns := g.NamespacePrefix()
	corrected := 0
	for _, ind := range existing {
		classIRI, ok := g.Class(ind.Class)
		if !ok {
			// Classes in the default namespace may be listed by local
			// name only.
			classIRI, ok = g.Class(ns + vocab.Local(ind.Class))
			if !ok {
				continue
			}
		}
		g.CreateIndividual(classIRI, ind.IRI)
		g.MarkNamedIndividual(ind.IRI)
		g.Add(graph.Statement{Subject: ind.IRI, Predicate: vocab.RDFSLabel, Object: vocab.Local(ind.IRI), Literal: true})
		corrected++
	}
	return corrected
}

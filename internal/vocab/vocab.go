// Package vocab holds the RDF, RDFS and OWL IRIs used by the graph model.
package vocab

// Namespace prefixes.
const (
	RDFNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNS = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNS  = "http://www.w3.org/2002/07/owl#"
	XSDNS  = "http://www.w3.org/2001/XMLSchema#"
)

// Predicates and types asserted by the populator.
const (
	RDFType            = RDFNS + "type"
	RDFSLabel          = RDFSNS + "label"
	RDFSComment        = RDFSNS + "comment"
	OWLClass           = OWLNS + "Class"
	OWLOntology        = OWLNS + "Ontology"
	OWLNamedIndividual = OWLNS + "NamedIndividual"
)

// Local returns the fragment of an IRI: the part after the last '#',
// or after the last '/' when there is no fragment separator.
func Local(iri string) string {
	for i := len(iri) - 1; i >= 0; i-- {
		switch iri[i] {
		case '#', '/':
			return iri[i+1:]
		}
	}
	return iri
}

// Namespace returns the prefix of an IRI up to and including the last
// '#' or '/', the counterpart of Local.
func Namespace(iri string) string {
	return iri[:len(iri)-len(Local(iri))]
}

// Package mtbls holds the fixed controlled-vocabulary tables used when
// mapping mzTab-M metadata onto the MetaboLights ISA-Tab model: contact
// role terms, standard protocol types, assay measurement/technology
// terms and the default ontology source references every study carries.
package mtbls

// Package schema defines the declarative form definition shared by the wizard
// engine and the schema editor: an ordered list of sections, each holding an
// ordered list of field descriptors. The package also owns the portable JSON
// document format (`{"<title>": {"canAddMultiple": bool, "fields": [...]}}`)
// and its YAML twin. Decoding preserves the insertion order of both the outer
// mapping and every field list because that order drives wizard step order and
// field order. Validate reports every structural problem at once so authors can
// fix a document in a single pass.
package schema

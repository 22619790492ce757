package assoc

// Evidence code tables mapping GAF short codes to Evidence & Conclusion
// Ontology terms. Only the codes that appear in GO annotation files are
// listed.

// Well-known ECO terms used by the translation drivers.
var (
	// ECOSequenceOrthology is "inferred from sequence orthology" (ISO),
	// the evidence class for ortholog-based transfer.
	ECOSequenceOrthology = Curie{Namespace: "ECO", Identity: "0000266"}

	// ECOSequenceOrthologyAuto is sequence orthology evidence used in an
	// automatic assertion, the class for cross-reference-based transfer.
	ECOSequenceOrthologyAuto = Curie{Namespace: "ECO", Identity: "0000265"}
)

var codeToECO = map[string]Curie{
	"EXP": {Namespace: "ECO", Identity: "0000269"},
	"IDA": {Namespace: "ECO", Identity: "0000314"},
	"IPI": {Namespace: "ECO", Identity: "0000353"},
	"IMP": {Namespace: "ECO", Identity: "0000315"},
	"IGI": {Namespace: "ECO", Identity: "0000316"},
	"IEP": {Namespace: "ECO", Identity: "0000270"},
	"HTP": {Namespace: "ECO", Identity: "0006056"},
	"HDA": {Namespace: "ECO", Identity: "0007005"},
	"HMP": {Namespace: "ECO", Identity: "0007001"},
	"HGI": {Namespace: "ECO", Identity: "0007003"},
	"HEP": {Namespace: "ECO", Identity: "0007007"},
	"ISS": {Namespace: "ECO", Identity: "0000250"},
	"ISO": {Namespace: "ECO", Identity: "0000266"},
	"ISA": {Namespace: "ECO", Identity: "0000247"},
	"ISM": {Namespace: "ECO", Identity: "0000255"},
	"IGC": {Namespace: "ECO", Identity: "0000317"},
	"IBA": {Namespace: "ECO", Identity: "0000318"},
	"IBD": {Namespace: "ECO", Identity: "0000319"},
	"IKR": {Namespace: "ECO", Identity: "0000320"},
	"IRD": {Namespace: "ECO", Identity: "0000321"},
	"RCA": {Namespace: "ECO", Identity: "0000245"},
	"TAS": {Namespace: "ECO", Identity: "0000304"},
	"NAS": {Namespace: "ECO", Identity: "0000303"},
	"IC":  {Namespace: "ECO", Identity: "0000305"},
	"ND":  {Namespace: "ECO", Identity: "0000307"},
	"IEA": {Namespace: "ECO", Identity: "0000501"},
}

var ecoToCode = func() map[Curie]string {
	m := make(map[Curie]string, len(codeToECO)+1)
	for code, eco := range codeToECO {
		m[eco] = code
	}
	// Automatic-assertion subclasses all serialize as IEA.
	m[ECOSequenceOrthologyAuto] = "IEA"
	return m
}()

// Short experimental evidence codes excluded from transfer; annotations
// with experimental support stay with the species they were curated in.
var experimentalCodes = []string{"EXP", "IDA", "IPI", "IMP", "IGI"}

// EvidenceCodeFor returns the ECO curie for a GAF short code.
func EvidenceCodeFor(code string) (Curie, bool) {
	c, ok := codeToECO[code]
	return c, ok
}

// ShortEvidenceCode returns the GAF column 7 code for an ECO term, or
// "" when the term has no GAF rendering.
func ShortEvidenceCode(eco Curie) string {
	return ecoToCode[eco]
}

// ExperimentalEvidence returns the set of ECO terms that denote direct
// experimental support.
func ExperimentalEvidence() map[Curie]bool {
	set := make(map[Curie]bool, len(experimentalCodes))
	for _, code := range experimentalCodes {
		set[codeToECO[code]] = true
	}
	return set
}

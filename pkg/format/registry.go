// pkg/format/registry.go
package format

// MatchMode tells the sniffer where a signature may appear
type MatchMode int

const (
	// Prefix signatures must sit at offset 0
	Prefix MatchMode = iota
	// Contains signatures may appear anywhere in the file
	Contains
)

func (m MatchMode) String() string {
	if m == Contains {
		return "contains"
	}
	return "prefix"
}

// Signature maps a magic byte pattern to a format
type Signature struct {
	Pattern []byte
	Mode    MatchMode
	Format  Format
}

// prefixSignatures are checked first against a small probe read from offset 0.
// No pattern may be a prefix of another one.
var prefixSignatures = []Signature{
	{Pattern: []byte("BZh"), Mode: Prefix, Format: Bzip2},
	{Pattern: []byte{0x1F, 0x8B}, Mode: Prefix, Format: Gzip},
	{Pattern: []byte{0x50, 0x4B, 0x03, 0x04}, Mode: Prefix, Format: Zip},
}

// scanSignatures have no reliable offset across producers and are searched
// for in the whole file. The ustar magic normally sits at offset 257.
var scanSignatures = []Signature{
	{Pattern: []byte("ustar"), Mode: Contains, Format: Tar},
}

// ProbeSize is the number of leading bytes read for prefix matching
var ProbeSize = maxPatternLen(prefixSignatures)

// MinProbeSize is the shortest file length any prefix signature can match
var MinProbeSize = minPatternLen(prefixSignatures)

// Signatures returns a copy of the registry, prefix entries first
func Signatures() []Signature {
	out := make([]Signature, 0, len(prefixSignatures)+len(scanSignatures))
	for _, table := range [][]Signature{prefixSignatures, scanSignatures} {
		for _, sig := range table {
			sig.Pattern = append([]byte(nil), sig.Pattern...)
			out = append(out, sig)
		}
	}
	return out
}

func maxPatternLen(sigs []Signature) int {
	n := 0
	for _, s := range sigs {
		n = max(n, len(s.Pattern))
	}
	return n
}

func minPatternLen(sigs []Signature) int {
	n := 0
	for i, s := range sigs {
		if i == 0 || len(s.Pattern) < n {
			n = len(s.Pattern)
		}
	}
	return n
}

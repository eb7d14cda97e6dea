package taxonomy

import "strings"

// Source identifies which layer of the resolution chain produced a canonical
// name.
type Source string

const (
	SourceOrgSynonym Source = "org_synonym"
	SourceVariant    Source = "taxonomy_variant"
	SourceExact      Source = "exact"
	SourceLiteral    Source = "literal"
)

// Resolution is the outcome of canonicalizing one raw skill token.
type Resolution struct {
	Raw           string
	Canonical     string
	Source        Source
	Canonicalized bool
}

// Snapshot is an immutable view of the taxonomy for one (industry,
// organization) pair, built once at the start of a scoring operation so
// concurrent synonym promotions cannot change results mid-computation.
type Snapshot struct {
	org       map[string]string
	variants  map[string]string
	canonical map[string]string
}

// BuildSnapshot folds active global entries and active organization synonym
// sets into lookup tables. Inactive rows are ignored. Later entries never
// overwrite earlier ones within a layer, matching the uniqueness invariant of
// (industry, context) canonical names.
func BuildSnapshot(entries []Entry, overrides []SynonymSet) *Snapshot {
	s := &Snapshot{
		org:       make(map[string]string),
		variants:  make(map[string]string),
		canonical: make(map[string]string),
	}

	for _, e := range entries {
		if !e.Active {
			continue
		}
		canon := strings.TrimSpace(e.Canonical)
		if canon == "" {
			continue
		}
		key := Normalize(canon)
		if _, ok := s.canonical[key]; !ok {
			s.canonical[key] = canon
		}
		for _, v := range e.Variants {
			vk := Normalize(v)
			if vk == "" {
				continue
			}
			if _, ok := s.variants[vk]; !ok {
				s.variants[vk] = canon
			}
		}
	}

	for _, o := range overrides {
		if !o.IsActive() {
			continue
		}
		canon := strings.TrimSpace(o.Canonical)
		if canon == "" {
			continue
		}
		for _, syn := range o.Synonyms {
			sk := Normalize(syn)
			if sk == "" {
				continue
			}
			// An org override may redefine a global variant for that org.
			if _, ok := s.org[sk]; !ok {
				s.org[sk] = canon
			}
		}
	}

	return s
}

// Resolve canonicalizes a raw token through the ordered chain: organization
// synonym, global variant, normalized exact canonical, literal passthrough.
// Literal results are flagged uncanonicalized; they still participate in
// matching under their surface form.
func (s *Snapshot) Resolve(raw string) Resolution {
	key := Normalize(raw)
	if key == "" {
		return Resolution{Raw: raw, Canonical: "", Source: SourceLiteral, Canonicalized: false}
	}

	if canon, ok := s.org[key]; ok {
		return Resolution{Raw: raw, Canonical: canon, Source: SourceOrgSynonym, Canonicalized: true}
	}
	if canon, ok := s.variants[key]; ok {
		return Resolution{Raw: raw, Canonical: canon, Source: SourceVariant, Canonicalized: true}
	}
	if canon, ok := s.canonical[key]; ok {
		return Resolution{Raw: raw, Canonical: canon, Source: SourceExact, Canonicalized: true}
	}
	return Resolution{Raw: raw, Canonical: strings.TrimSpace(raw), Source: SourceLiteral, Canonicalized: false}
}

// ResolveSet canonicalizes a token list into a deduplicated set keyed by the
// normalized canonical form, preserving per-token provenance.
func (s *Snapshot) ResolveSet(tokens []string) (map[string]string, []Resolution) {
	set := make(map[string]string, len(tokens))
	resolutions := make([]Resolution, 0, len(tokens))
	for _, t := range tokens {
		r := s.Resolve(t)
		resolutions = append(resolutions, r)
		if r.Canonical == "" {
			continue
		}
		key := Normalize(r.Canonical)
		if _, ok := set[key]; !ok {
			set[key] = r.Canonical
		}
	}
	return set, resolutions
}

// Normalize lowercases and collapses internal whitespace so "  Postgre SQL "
// and "postgre sql" compare equal.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

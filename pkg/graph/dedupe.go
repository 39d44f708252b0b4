package graph

import (
	"sort"
	"strings"

	gUtil "github.com/helica-bio/expertgraph/backend/internal/util"
	"github.com/helica-bio/expertgraph/backend/pkg/common"
)

// Fingerprint derives the identity key of an entity: the normalized label
// joined with its sorted normalized affiliations by "|". The same person at
// two different institutions therefore produces two distinct entities; that
// is intentional, affiliation is part of identity here.
func Fingerprint(label string, affiliations []string) string {
	parts := []string{gUtil.NormalizeName(label)}

	normalized := []string{}
	for _, aff := range affiliations {
		if n := gUtil.NormalizeName(aff); n != "" {
			normalized = append(normalized, n)
		}
	}
	sort.Strings(normalized)
	parts = append(parts, normalized...)

	return strings.Join(parts, "|")
}

// dedupeMentions folds normalized mentions that share a fingerprint into a
// single canonical entity. Entities keep the order in which their fingerprint
// first appeared, so identical input always yields the same entity list.
func (g *GraphClient) dedupeMentions(pairs []normalizedMention) []common.CanonicalEntity {
	entities := []common.CanonicalEntity{}
	byFingerprint := map[string]int{}

	for _, pair := range pairs {
		candidate := entityFromPair(pair)
		fp := Fingerprint(candidate.Label, candidate.Affiliations)

		idx, seen := byFingerprint[fp]
		if !seen {
			candidate.ID = gUtil.DeterministicID(string(candidate.Type), fp)
			byFingerprint[fp] = len(entities)
			entities = append(entities, candidate)
			continue
		}
		mergeEntity(&entities[idx], candidate)
	}

	return entities
}

func entityFromPair(pair normalizedMention) common.CanonicalEntity {
	mention := pair.mention
	enrichment := pair.enrichment

	label := strings.TrimSpace(pair.label())

	aliases := append([]string{}, mention.Aliases...)
	if mention.RawName != "" && gUtil.NormalizeName(mention.RawName) != gUtil.NormalizeName(label) {
		aliases = append(aliases, mention.RawName)
	}

	contact := mention.Contact
	if !enrichment.Contact.Empty() {
		contact = enrichment.Contact
	}

	entity := common.CanonicalEntity{
		Label:          label,
		Type:           common.ResolveEntityType(enrichment.Type, mention.Type),
		Affiliations:   mergeStringSets(nil, pair.affiliations()),
		Expertise:      mergeStringSets(enrichment.Expertise, mention.Expertise),
		Aliases:        mergeStringSets(nil, aliases),
		Contact:        contact,
		SourceChannels: mergeStringSets(mention.Channels, enrichment.Channels),
		DocumentIDs:    mergeStringSets(nil, mention.DocumentIDs),
		TrialIDs:       mergeStringSets(nil, mention.TrialIDs),
		PatentIDs:      mergeStringSets(nil, mention.PatentIDs),
		WebIDs:         mergeStringSets(nil, mention.WebIDs),
		Evidence:       mergeStringSets(nil, mention.Evidence),
		RecentActivity: mention.RecentActivity,
	}
	return entity
}

// mergeEntity folds src into dst: set fields union, recent activity keeps the
// max, contact keeps the first non-empty value encountered. Label and type
// stay as first seen; the fingerprint already guarantees the labels agree
// after normalization.
func mergeEntity(dst *common.CanonicalEntity, src common.CanonicalEntity) {
	dst.Affiliations = mergeStringSets(dst.Affiliations, src.Affiliations)
	dst.Expertise = mergeStringSets(dst.Expertise, src.Expertise)
	dst.Aliases = mergeStringSets(dst.Aliases, src.Aliases)
	dst.SourceChannels = mergeStringSets(dst.SourceChannels, src.SourceChannels)
	dst.DocumentIDs = mergeStringSets(dst.DocumentIDs, src.DocumentIDs)
	dst.TrialIDs = mergeStringSets(dst.TrialIDs, src.TrialIDs)
	dst.PatentIDs = mergeStringSets(dst.PatentIDs, src.PatentIDs)
	dst.WebIDs = mergeStringSets(dst.WebIDs, src.WebIDs)
	dst.Evidence = mergeStringSets(dst.Evidence, src.Evidence)

	if src.RecentActivity > dst.RecentActivity {
		dst.RecentActivity = src.RecentActivity
	}
	if dst.Contact.Empty() && !src.Contact.Empty() {
		dst.Contact = src.Contact
	}
}

// mergeStringSets unions two slices into a sorted, duplicate-free slice.
// Empty values are dropped; nil in, nil out when nothing remains.
func mergeStringSets(a []string, b []string) []string {
	seen := map[string]bool{}
	merged := []string{}
	for _, values := range [][]string{a, b} {
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			merged = append(merged, v)
		}
	}
	if len(merged) == 0 {
		return nil
	}
	sort.Strings(merged)
	return merged
}

package graph

import (
	"sort"

	gUtil "github.com/helica-bio/expertgraph/backend/internal/util"
	"github.com/helica-bio/expertgraph/backend/pkg/common"
	"github.com/helica-bio/expertgraph/backend/pkg/logger"
)

// institutionRef is an institution named at the top level of a channel
// payload, before any entity affiliation is considered.
type institutionRef struct {
	Name    string
	Channel string
}

// SignalContext carries the non-entity material collected from the signal
// channels: institutions, trial events and patent records that become context
// nodes and edge sources later in the build.
type SignalContext struct {
	Institutions []institutionRef
	Trials       []common.TrialEvent
	Patents      []common.PatentRecord
	Channels     []string
}

// collectSignals flattens the per-channel payloads into a single ordered list
// of raw mentions plus the contextual trial, patent and institution material.
// Channels are visited in sorted name order so that repeated builds over the
// same input walk the mentions identically. Entries that are not objects, or
// that carry none of the recognized fields, are skipped without error.
func collectSignals(signals map[string]any) ([]common.RawMention, *SignalContext) {
	sctx := &SignalContext{}
	mentions := []common.RawMention{}

	channels := make([]string, 0, len(signals))
	for name := range signals {
		channels = append(channels, name)
	}
	sort.Strings(channels)

	for _, channel := range channels {
		payload, ok := asMap(signals[channel])
		if !ok {
			logger.Debug("skipping channel with non-object payload", "channel", channel)
			continue
		}
		sctx.Channels = append(sctx.Channels, channel)

		for _, entry := range listField(payload, "entities") {
			if mention, ok := mentionFromEntry(channel, entry); ok {
				mentions = append(mentions, mention)
			}
		}

		for _, name := range stringList(payload, "institutions") {
			sctx.Institutions = append(sctx.Institutions, institutionRef{
				Name:    name,
				Channel: channel,
			})
		}

		for _, entry := range listField(payload, "events") {
			if trial, ok := trialFromEntry(channel, entry); ok {
				sctx.Trials = append(sctx.Trials, trial)
			}
		}

		for _, entry := range listField(payload, "patents") {
			if patent, ok := patentFromEntry(channel, entry); ok {
				sctx.Patents = append(sctx.Patents, patent)
			}
		}
	}

	return mentions, sctx
}

func mentionFromEntry(channel string, entry map[string]any) (common.RawMention, bool) {
	mention := common.RawMention{
		RawName:        firstString(entry, "name", "label"),
		Type:           firstString(entry, "type"),
		Affiliations:   stringList(entry, "affiliations", "organization"),
		Expertise:      stringList(entry, "expertise", "domains"),
		Roles:          stringList(entry, "roles"),
		DocumentIDs:    stringList(entry, "documents", "document_ids"),
		TrialIDs:       stringList(entry, "trial_ids"),
		PatentIDs:      stringList(entry, "patent_ids"),
		WebIDs:         stringList(entry, "web_ids"),
		Aliases:        stringList(entry, "aliases"),
		Contact:        contactFromEntry(entry, channel),
		Channels:       []string{channel},
		Evidence:       stringList(entry, "evidence"),
		RecentActivity: intField(entry, "recent_activity"),
	}

	if mention.RawName == "" &&
		len(mention.Aliases) == 0 &&
		len(mention.Affiliations) == 0 &&
		len(mention.Expertise) == 0 {
		return common.RawMention{}, false
	}
	return mention, true
}

func trialFromEntry(channel string, entry map[string]any) (common.TrialEvent, bool) {
	trialID := firstString(entry, "trial_id", "nct_id")
	if trialID == "" {
		return common.TrialEvent{}, false
	}
	return common.TrialEvent{
		TrialID:       trialID,
		Title:         firstString(entry, "title"),
		Phase:         firstString(entry, "phase"),
		Investigators: stringList(entry, "investigators", "staff"),
		Evidence:      stringList(entry, "evidence"),
		Channel:       channel,
	}, true
}

func patentFromEntry(channel string, entry map[string]any) (common.PatentRecord, bool) {
	number := firstString(entry, "patent_number", "publication_number")
	if number == "" {
		return common.PatentRecord{}, false
	}
	return common.PatentRecord{
		PatentNumber: number,
		Title:        firstString(entry, "title"),
		Authority:    firstString(entry, "authority"),
		Inventors:    stringList(entry, "inventors"),
		Channel:      channel,
	}, true
}

func contactFromEntry(entry map[string]any, channel string) *common.Contact {
	raw, ok := entry["contact"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil
		}
		return &common.Contact{Email: v, Confidence: 0.5, Source: channel}
	case map[string]any:
		contact := &common.Contact{
			Email:      firstString(v, "email"),
			ORCID:      firstString(v, "orcid"),
			Confidence: floatField(v, "confidence"),
			Source:     firstString(v, "source"),
		}
		if contact.Source == "" {
			contact.Source = channel
		}
		if contact.Empty() {
			return nil
		}
		return contact
	default:
		return nil
	}
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// listField returns the first present key's value as a list of objects.
func listField(m map[string]any, keys ...string) []map[string]any {
	for _, key := range keys {
		raw, ok := m[key]
		if !ok {
			continue
		}
		items, ok := raw.([]any)
		if !ok {
			continue
		}
		entries := []map[string]any{}
		for _, item := range items {
			if entry, ok := asMap(item); ok {
				entries = append(entries, entry)
			}
		}
		return entries
	}
	return nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// stringList accepts either a plain string, a list of strings, or a list of
// objects carrying a name/label field. Non-string noise is dropped; a key
// whose value decodes to nothing falls through to the next accepted key.
func stringList(m map[string]any, keys ...string) []string {
	for _, key := range keys {
		raw, ok := m[key]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case string:
			if v != "" {
				return []string{v}
			}
		case []any:
			values := []string{}
			for _, item := range v {
				switch iv := item.(type) {
				case string:
					if iv != "" {
						values = append(values, iv)
					}
				case map[string]any:
					if name := firstString(iv, "name", "label", "id"); name != "" {
						values = append(values, name)
					}
				}
			}
			if len(values) > 0 {
				return values
			}
		}
	}
	return nil
}

func intField(m map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		}
	}
	return 0
}

func floatField(m map[string]any, keys ...string) float64 {
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}
	return 0
}

func normalizeKey(value string) string {
	return gUtil.NormalizeName(value)
}

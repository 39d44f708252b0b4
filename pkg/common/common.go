package common

import (
	"strings"
	"time"
)

// EntityType is the resolved kind of a canonical entity. The raw "type" field
// arrives as free text from up to three sources (enrichment, raw mention,
// default); ResolveEntityType makes the precedence rule explicit.
type EntityType string

const (
	EntityTypeExpert      EntityType = "expert"
	EntityTypeInstitution EntityType = "institution"
)

// ResolveEntityType reconciles free-form type hints into an EntityType.
// The first non-empty candidate wins; unknown values fall back to expert.
func ResolveEntityType(candidates ...string) EntityType {
	for _, candidate := range candidates {
		c := strings.ToLower(strings.TrimSpace(candidate))
		if c == "" {
			continue
		}
		switch c {
		case "institution", "organization", "organisation":
			return EntityTypeInstitution
		default:
			return EntityTypeExpert
		}
	}
	return EntityTypeExpert
}

// Relation is the type of an edge between two graph nodes.
type Relation string

const (
	RelationAffiliatedWith   Relation = "affiliated_with"
	RelationCoAuthor         Relation = "co_author"
	RelationInvestigatorIn   Relation = "investigator_in"
	RelationInventorOf       Relation = "inventor_of"
	RelationCoInventor       Relation = "co_inventor"
	RelationCollaboratedWith Relation = "collaborated_with"
)

// Contact holds resolved contact details for an entity, together with the
// confidence reported by whichever source supplied them.
type Contact struct {
	Email      string  `json:"email,omitempty"`
	ORCID      string  `json:"orcid,omitempty"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source,omitempty"`
}

// Empty reports whether the contact carries no resolvable detail.
func (c *Contact) Empty() bool {
	return c == nil || (c.Email == "" && c.ORCID == "")
}

// RawMention is one unresolved occurrence of an entity name within a signal
// channel. Mentions are transient; they exist only between collection and
// deduplication and are never persisted.
type RawMention struct {
	RawName        string   `json:"raw_name"`
	Type           string   `json:"type,omitempty"`
	Affiliations   []string `json:"affiliations,omitempty"`
	Expertise      []string `json:"expertise,omitempty"`
	Roles          []string `json:"roles,omitempty"`
	DocumentIDs    []string `json:"document_ids,omitempty"`
	TrialIDs       []string `json:"trial_ids,omitempty"`
	PatentIDs      []string `json:"patent_ids,omitempty"`
	WebIDs         []string `json:"web_ids,omitempty"`
	Aliases        []string `json:"aliases,omitempty"`
	Contact        *Contact `json:"contact,omitempty"`
	Channels       []string `json:"channels,omitempty"`
	Evidence       []string `json:"evidence,omitempty"`
	RecentActivity int      `json:"recent_activity,omitempty"`
}

// TrialEvent is a clinical trial reference collected from a signal channel.
type TrialEvent struct {
	TrialID       string   `json:"trial_id"`
	Title         string   `json:"title,omitempty"`
	Phase         string   `json:"phase,omitempty"`
	Investigators []string `json:"investigators,omitempty"`
	Evidence      []string `json:"evidence,omitempty"`
	Channel       string   `json:"channel,omitempty"`
}

// PatentRecord is a patent filing reference collected from a signal channel.
type PatentRecord struct {
	PatentNumber string   `json:"patent_number"`
	Title        string   `json:"title,omitempty"`
	Authority    string   `json:"authority,omitempty"`
	Inventors    []string `json:"inventors,omitempty"`
	Channel      string   `json:"channel,omitempty"`
}

// CanonicalEntity is the deduplicated, scored representation of an expert or
// institution. All slice fields behave as sets: merging unions them and keeps
// them sorted and free of duplicates.
type CanonicalEntity struct {
	ID             string     `json:"id"`
	Label          string     `json:"label"`
	Type           EntityType `json:"type"`
	Affiliations   []string   `json:"affiliations,omitempty"`
	Expertise      []string   `json:"expertise,omitempty"`
	Aliases        []string   `json:"aliases,omitempty"`
	Contact        *Contact   `json:"contact,omitempty"`
	SourceChannels []string   `json:"source_channels,omitempty"`
	DocumentIDs    []string   `json:"document_ids,omitempty"`
	TrialIDs       []string   `json:"trial_ids,omitempty"`
	PatentIDs      []string   `json:"patent_ids,omitempty"`
	WebIDs         []string   `json:"web_ids,omitempty"`
	Evidence       []string   `json:"evidence,omitempty"`
	RecentActivity int        `json:"recent_activity,omitempty"`

	InfluenceScore            int `json:"influence_score"`
	RepurposingRelevanceScore int `json:"repurposing_relevance_score"`
}

// Node is one entry in a graph snapshot: a canonical entity or a context
// object (institution, trial, patent, document). Size and Color are rendering
// hints only.
type Node struct {
	ID                        string         `json:"id"`
	Label                     string         `json:"label"`
	Type                      string         `json:"type"`
	Affiliations              []string       `json:"affiliations,omitempty"`
	Expertise                 []string       `json:"expertise,omitempty"`
	Contact                   *Contact       `json:"contact,omitempty"`
	Score                     int            `json:"score"`
	InfluenceScore            int            `json:"influence_score"`
	RepurposingRelevanceScore int            `json:"repurposing_relevance_score"`
	Size                      float64        `json:"size"`
	Color                     string         `json:"color"`
	Metadata                  map[string]any `json:"metadata,omitempty"`
}

// Edge is a typed relationship between two nodes. Duplicate edges between the
// same ordered pair and relation are permitted; the graph is a multigraph.
type Edge struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Type     Relation `json:"type"`
	Label    string   `json:"label"`
	Weight   float64  `json:"weight"`
	Evidence []string `json:"evidence,omitempty"`
}

// Recommendation is a derived ranking entry; it is embedded in the snapshot
// meta and never persisted separately.
type Recommendation struct {
	ID                        string   `json:"id"`
	Name                      string   `json:"name"`
	Affiliations              []string `json:"affiliations,omitempty"`
	Expertise                 []string `json:"expertise,omitempty"`
	InfluenceScore            int      `json:"influence_score"`
	RepurposingRelevanceScore int      `json:"repurposing_relevance_score"`
	Reason                    string   `json:"reason"`
}

// GraphMeta describes one immutable snapshot.
type GraphMeta struct {
	Query           string           `json:"query"`
	CreatedAt       time.Time        `json:"created_at"`
	NodeCount       int              `json:"node_count"`
	EdgeCount       int              `json:"edge_count"`
	Channels        []string         `json:"channels"`
	Path            string           `json:"path,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// Graph is an immutable relationship graph snapshot. It is created once per
// build, written to the snapshot store keyed by GraphID, and never mutated
// or versioned afterward.
type Graph struct {
	GraphID string    `json:"graph_id"`
	Nodes   []Node    `json:"nodes"`
	Edges   []Edge    `json:"edges"`
	Meta    GraphMeta `json:"meta"`
}

// GraphRecord is the lightweight index entry written alongside a snapshot for
// listing and lookup. Its durability is independent of the snapshot's.
type GraphRecord struct {
	GraphID   string    `json:"graph_id"`
	CreatedAt time.Time `json:"created_at"`
	Query     string    `json:"query"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
	Location  string    `json:"location"`
}

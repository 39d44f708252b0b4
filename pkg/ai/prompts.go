package ai

const EnrichPrompt = `
# Task Context
You are a helpful assistant specialized in resolving noisy mentions of domain
experts and institutions into canonical identities. You will be provided with
the research query that produced the mentions and a small batch of raw entity
mentions collected from heterogeneous sources (publication search, trial
registries, patent databases, web intelligence).

# Background Data
Query: %s

Entities:
%s

# Detailed Task Description & Rules
- For every mention, determine the canonical name of the person or
  institution it refers to (e.g., "J. Smith" listed at "Acme University" may
  canonically be "John Smith").
- Normalize affiliation strings to their full institutional names.
- Classify each mention as "expert" (a person) or "institution".
- Supply expertise tags relevant to the query where they can be inferred from
  the mention's own fields. Do not invent expertise that has no support in
  the mention.
- If a mention cannot be resolved, return an empty object for its position.
- The output array MUST contain exactly one item per input mention, in the
  same order as the input.

# Output Formatting
Return a JSON object with this structure:
{
  "entities": [
    {
      "canonical_name": "<resolved name>",
      "affiliations": ["<institution>"],
      "type": "expert",
      "expertise": ["<tag>"],
      "id": "<external identifier if known>",
      "contact": {"email": "", "orcid": "", "confidence": 0.0},
      "channels": ["<source channel>"]
    }
  ]
}
`

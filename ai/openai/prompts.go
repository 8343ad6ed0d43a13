package openai

import "fmt"

const expansionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "statements": {
      "type": "array",
      "items": {
        "type": "string"
      }
    }
  },
  "required": ["statements"],
  "additionalProperties": false
}`

const expansionPromptTemplate = `Turn the given keyword into short third-person statements describing what someone
searching for that keyword is looking for, and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Produce at most %d statements.
- Each statement is one sentence, lowercase, in the third person, phrased as a need or request.
- Cover distinct plausible intents behind the keyword; do not produce near-duplicates.
- If the keyword is empty or meaningless, return "statements": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "climbing"
Output:
{
  "statements": [
    "looking for a climbing partner",
    "wants to learn how to climb safely",
    "seeking advice on climbing gear"
  ]
}

Example:
Input: "go programming"
Output:
{
  "statements": [
    "looking for a mentor in go programming",
    "wants code review for a go project",
    "seeking collaborators for a go open source project"
  ]
}`

const suggestionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "asks": {
      "type": "array",
      "items": {
        "type": "string"
      }
    },
    "offers": {
      "type": "array",
      "items": {
        "type": "string"
      }
    }
  },
  "required": ["asks", "offers"],
  "additionalProperties": false
}`

const suggestionPromptTemplate = `Given a short profile description, propose things this person is plausibly
seeking (asks) and things they can plausibly provide to others (offers), and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Produce at most 3 asks and at most 3 offers.
- Each statement is one sentence, lowercase, in the third person.
- Stay close to what the description states or strongly implies. Do not invent unrelated interests.
- If the description supports no plausible statements, return empty arrays.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "backend engineer, ten years of go, climbs on weekends"
Output:
{
  "asks": [
    "looking for a regular climbing partner"
  ],
  "offers": [
    "can mentor engineers learning go",
    "can review backend code"
  ]
}`

// buildExpansionPrompt creates the system prompt for keyword expansion.
func buildExpansionPrompt(maxExpansions int) string {
	return fmt.Sprintf(expansionPromptTemplate, expansionResponseSchema, maxExpansions)
}

// buildSuggestionPrompt creates the system prompt for statement suggestion.
func buildSuggestionPrompt() string {
	return fmt.Sprintf(suggestionPromptTemplate, suggestionResponseSchema)
}

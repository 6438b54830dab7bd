package analysis

// Prompts sent ahead of the comment blob, one per extractor.
const (
	sentimentPrompt = `
Return **only** this JSON:

{
  "video":   {"positive": <int 0-100>, "neutral": <int 0-100>, "negative": <int 0-100>},
  "creator": {"positive": <int 0-100>, "neutral": <int 0-100>, "negative": <int 0-100>},
  "topic":   {"positive": <int 0-100>, "neutral": <int 0-100>, "negative": <int 0-100>}
}

where:
- "video" is the audience sentiment towards the video itself,
- "creator" is the sentiment towards the person who made it,
- "topic" is the sentiment towards the subject matter discussed.

Each triplet should sum to 100. Do not write anything outside the braces.
`

	headlinePrompt = `
Write one short headline (at most 12 words) that captures how the audience
reacted to this video. Use the sentiment scores given below as a guide.
Return **only** this JSON:

{"headline": "<the headline>"}
`

	discussionsPrompt = `
For each category (video, creator and topic) identify up to five discussion themes.
For every theme, count how many comments mention it and estimate a sentiment
breakdown (positive/neutral/negative percentages that sum to 100).
Return exactly one JSON object with keys "video", "creator" and "topic", each
mapping to an array of objects shaped like:

{
  "name": "<the theme phrase>",
  "mentions": <integer count>,
  "sentiment": {"positive": <int>, "neutral": <int>, "negative": <int>}
}

No prose, no extra fields, valid JSON only.
`

	peoplePrompt = `
Identify up to six named people (or entities) repeatedly mentioned in the comments.
For each, estimate the sentiment split and supply up to three concise remarks.
Return a JSON array only, e.g.

[
  {
    "name": "Joe",
    "sentiment": {"positive": 68, "neutral": 22, "negative": 10},
    "remarks": ["Joe's editing praised", "Viewers want more tutorials"]
  }
]
`

	otherInsightsPrompt = `
List every other insight you can glean from the comments.
One insight per line, no bullets, no numbering, keep each line short.
Return ONLY those lines.
`

	videoRequestsPrompt = `
Pick out any explicit video requests the audience makes.
If there are none, just output: None
Otherwise return each request on its own line, no bullets or numbering.
`
)

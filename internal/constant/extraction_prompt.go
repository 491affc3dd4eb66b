package constant

// ExtractionPrompt is sent to the secondary model together with an AI critique.
// The response is parsed defensively; anything that is not the requested JSON
// shape yields zero notes.
const ExtractionPrompt = `You will be given an AI critique of a creative work. Extract up to 5 durable, reusable insights the artist could save as notes.

Respond with ONLY a JSON object in this exact shape:
{"items": [{"title": "...", "content": "...", "category": "...", "link": ""}]}

Rules:
- "category" must be exactly one of: "technique", "advice", "resource"
- "title" is a short label (under 10 words); "content" is the full insight
- "link" is a URL if the critique referenced one, otherwise an empty string
- Extract at most 5 items; fewer is fine, an empty list is fine
- No text outside the JSON object

Critique:
`

// UploadAllowedMimeTypes is the allow-list checked before any storage write.
var UploadAllowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"audio/mpeg":      true,
	"audio/wav":       true,
	"audio/ogg":       true,
	"audio/mp4":       true,
	"video/mp4":       true,
	"video/quicktime": true,
	"video/webm":      true,
	"application/pdf": true,
}

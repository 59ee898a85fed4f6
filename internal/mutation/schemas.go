package mutation

// Input schemas for every registered mutation, compiled once at startup.
// These guard the wire shape only; domain invariants live in the handlers.

const profileCreateSchema = `{
	"type": "object",
	"required": ["email"],
	"properties": {
		"email":      {"type": "string", "minLength": 3},
		"name":       {"type": "string"},
		"bio":        {"type": "string"},
		"skills":     {"type": "array", "items": {"type": "string"}},
		"githubUrl":  {"type": "string"},
		"linkedinUrl": {"type": "string"},
		"websiteUrl": {"type": "string"}
	},
	"additionalProperties": false
}`

const profileUpdateSchema = `{
	"type": "object",
	"required": ["id"],
	"properties": {
		"id":         {"type": "string", "minLength": 36, "maxLength": 36},
		"name":       {"type": "string"},
		"bio":        {"type": "string"},
		"skills":     {"type": "array", "items": {"type": "string"}},
		"githubUrl":  {"type": "string"},
		"linkedinUrl": {"type": "string"},
		"websiteUrl": {"type": "string"}
	},
	"additionalProperties": false
}`

const projectCreateSchema = `{
	"type": "object",
	"required": ["memberId", "title"],
	"properties": {
		"memberId":    {"type": "string", "minLength": 36, "maxLength": 36},
		"title":       {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"tags":        {"type": "array", "items": {"type": "string"}},
		"imageUrls":   {"type": "array", "items": {"type": "string"}},
		"repoUrl":     {"type": "string"},
		"demoUrl":     {"type": "string"}
	},
	"additionalProperties": false
}`

const projectUpdateSchema = `{
	"type": "object",
	"required": ["id"],
	"properties": {
		"id":          {"type": "string", "minLength": 36, "maxLength": 36},
		"title":       {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"tags":        {"type": "array", "items": {"type": "string"}},
		"imageUrls":   {"type": "array", "items": {"type": "string"}},
		"repoUrl":     {"type": "string"},
		"demoUrl":     {"type": "string"}
	},
	"additionalProperties": false
}`

const projectDeleteSchema = `{
	"type": "object",
	"required": ["id"],
	"properties": {
		"id": {"type": "string", "minLength": 36, "maxLength": 36}
	},
	"additionalProperties": false
}`

const attendanceCheckInSchema = `{
	"type": "object",
	"required": ["memberId", "lumaEventId"],
	"properties": {
		"memberId":    {"type": "string", "minLength": 36, "maxLength": 36},
		"lumaEventId": {"type": "string", "minLength": 1}
	},
	"additionalProperties": false
}`

const surveyResponseSubmitSchema = `{
	"type": "object",
	"required": ["memberId", "surveyId", "answers"],
	"properties": {
		"memberId":  {"type": "string", "minLength": 36, "maxLength": 36},
		"surveyId":  {"type": "string", "minLength": 1},
		"answers":   {"type": "object"},
		"completed": {"type": "boolean"}
	},
	"additionalProperties": false
}`

const demoSlotRequestSchema = `{
	"type": "object",
	"required": ["memberId", "lumaEventId", "title"],
	"properties": {
		"memberId":        {"type": "string", "minLength": 36, "maxLength": 36},
		"lumaEventId":     {"type": "string", "minLength": 1},
		"title":           {"type": "string", "minLength": 1},
		"description":     {"type": "string"},
		"requestedTime":   {"type": "string"},
		"durationMinutes": {"type": "integer", "minimum": 1, "maximum": 60}
	},
	"additionalProperties": false
}`

const demoSlotUpdateStatusSchema = `{
	"type": "object",
	"required": ["id", "status"],
	"properties": {
		"id":     {"type": "string", "minLength": 36, "maxLength": 36},
		"status": {"type": "string", "enum": ["confirmed", "canceled"]}
	},
	"additionalProperties": false
}`

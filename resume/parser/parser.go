// Package parser turns free-text model completions into a GeneratedResume.
// It never fails: anything it cannot decode is replaced by the profile's own data.
package parser

import (
	"encoding/json"
	"errors"
	"strings"

	"resume-studio/internal/shared/telemetry"
	"resume-studio/resume/model"
)

// Reason explains why a parse fell back to profile data. Empty means the
// completion was decoded.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonNoObject    Reason = "no_json_object"
	ReasonInvalidJSON Reason = "invalid_json"
)

// Result is the outcome of Parse.
type Result struct {
	Resume model.GeneratedResume
	// Fallback is ReasonNone when the completion was used.
	Fallback Reason
	// Padded counts generic bullets appended by EnsureMinimumBullets.
	Padded int
}

// Parse extracts the outermost JSON object from raw and decodes it. On any
// failure it builds the resume from the profile instead. Every experience
// entry of the result has at least MinBullets descriptions.
func Parse(raw string, profile model.Profile) Result {
	var res Result

	span, ok := ExtractJSONObject(raw)
	if !ok {
		res.Resume = Fallback(profile)
		res.Fallback = ReasonNoObject
	} else if decoded, err := decode(span); err != nil {
		res.Resume = Fallback(profile)
		res.Fallback = ReasonInvalidJSON
	} else {
		res.Resume = decoded
	}
	if res.Fallback != ReasonNone {
		telemetry.Warn("resume.parse.fallback", map[string]any{"reason": string(res.Fallback), "profileId": profile.ID})
	}

	res.Padded = EnsureMinimumBullets(&res.Resume)
	return res
}

// ExtractJSONObject returns the text between the first '{' and the last '}'.
func ExtractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// Fallback builds a GeneratedResume from the profile: summary and skills
// verbatim, and each experience description as a single bullet.
func Fallback(profile model.Profile) model.GeneratedResume {
	out := model.GeneratedResume{
		Summary:    profile.Summary,
		Skills:     append([]string(nil), profile.Skills...),
		Experience: make([]model.EnhancedExperience, 0, len(profile.Experience)),
	}
	for _, exp := range profile.Experience {
		entry := model.EnhancedExperience{
			Company:      exp.Company,
			Position:     exp.Position,
			Descriptions: []string{},
		}
		if desc := strings.TrimSpace(exp.Description); desc != "" {
			entry.Descriptions = append(entry.Descriptions, desc)
		}
		out.Experience = append(out.Experience, entry)
	}
	return out
}

// wireResume accepts the shapes models actually return: "descriptions" as a
// list, or a single "description" string.
type wireResume struct {
	Summary    json.RawMessage `json:"summary"`
	Experience []struct {
		Company      string          `json:"company"`
		Position     string          `json:"position"`
		Title        string          `json:"title"`
		Descriptions json.RawMessage `json:"descriptions"`
		Description  json.RawMessage `json:"description"`
	} `json:"experience"`
	Skills json.RawMessage `json:"skills"`
}

func decode(span string) (model.GeneratedResume, error) {
	var w wireResume
	if err := json.Unmarshal([]byte(span), &w); err != nil {
		return model.GeneratedResume{}, err
	}

	out := model.GeneratedResume{
		Summary:    joinText(w.Summary),
		Skills:     stringList(w.Skills),
		Experience: make([]model.EnhancedExperience, 0, len(w.Experience)),
	}
	if out.Summary == "" && len(out.Skills) == 0 && len(w.Experience) == 0 {
		return model.GeneratedResume{}, errors.New("empty resume object")
	}
	for _, e := range w.Experience {
		position := e.Position
		if position == "" {
			position = e.Title
		}
		bullets := stringList(e.Descriptions)
		if len(bullets) == 0 {
			bullets = stringList(e.Description)
		}
		out.Experience = append(out.Experience, model.EnhancedExperience{
			Company:      strings.TrimSpace(e.Company),
			Position:     strings.TrimSpace(position),
			Descriptions: bullets,
		})
	}
	return out, nil
}

// stringList reads a JSON string array or a single string, trimming and
// dropping blanks. Other shapes yield nil.
func stringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		var single string
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil
		}
		list = []string{single}
	}
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func joinText(raw json.RawMessage) string {
	return strings.Join(stringList(raw), " ")
}

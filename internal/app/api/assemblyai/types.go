package assemblyai

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of a transcript job
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// IsTerminal reports whether no further transition can happen
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// UnmarshalJSON rejects status values outside the four known wire strings
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	switch Status(raw) {
	case StatusQueued, StatusProcessing, StatusCompleted, StatusError:
		*s = Status(raw)
		return nil
	default:
		return fmt.Errorf("unknown transcript status %q", raw)
	}
}

// Upload is the response of the upload endpoint
type Upload struct {
	UploadURL string `json:"upload_url"`
}

// CreateTranscriptRequest is the body of the transcript creation call
type CreateTranscriptRequest struct {
	AudioURL string `json:"audio_url"`
}

// Transcript is a snapshot of a transcription job. Only the fields the bot
// reads are typed; everything else the provider sends is kept in Extra as
// raw JSON and written back byte for byte by MarshalJSON.
type Transcript struct {
	ID     string
	Status Status
	Text   *string
	Error  *string
	Extra  map[string]json.RawMessage
}

var typedFields = []string{"id", "status", "text", "error"}

// TextOrEmpty returns the transcript text, or "" when absent
func (t *Transcript) TextOrEmpty() string {
	if t.Text == nil {
		return ""
	}
	return *t.Text
}

// ErrorOrEmpty returns the provider error message, or "" when absent
func (t *Transcript) ErrorOrEmpty() string {
	if t.Error == nil {
		return ""
	}
	return *t.Error
}

// UnmarshalJSON decodes the typed fields and keeps the rest as opaque values
func (t *Transcript) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var out Transcript

	rawID, ok := fields["id"]
	if !ok {
		return fmt.Errorf("transcript: missing field id")
	}
	if err := json.Unmarshal(rawID, &out.ID); err != nil {
		return fmt.Errorf("transcript id: %w", err)
	}

	rawStatus, ok := fields["status"]
	if !ok {
		return fmt.Errorf("transcript: missing field status")
	}
	if err := json.Unmarshal(rawStatus, &out.Status); err != nil {
		return err
	}

	if raw, ok := fields["text"]; ok {
		if err := json.Unmarshal(raw, &out.Text); err != nil {
			return fmt.Errorf("transcript text: %w", err)
		}
	}
	if raw, ok := fields["error"]; ok {
		if err := json.Unmarshal(raw, &out.Error); err != nil {
			return fmt.Errorf("transcript error: %w", err)
		}
	}

	for _, name := range typedFields {
		delete(fields, name)
	}
	if len(fields) > 0 {
		out.Extra = fields
	}

	*t = out
	return nil
}

// MarshalJSON writes the typed fields over the pass-through ones
func (t Transcript) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(t.Extra)+len(typedFields))
	for name, value := range t.Extra {
		fields[name] = value
	}
	fields["id"] = t.ID
	fields["status"] = t.Status
	fields["text"] = t.Text
	fields["error"] = t.Error
	return json.Marshal(fields)
}

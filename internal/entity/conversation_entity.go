package entity

import (
	"encoding/json"
	"time"
)

// knownBlockKeys are the payload fields the content-block variants carry.
// Anything else stays in Extra so unrecognized tags survive a round trip.
var knownBlockKeys = map[string]bool{
	"type":      true,
	"text":      true,
	"thinking":  true,
	"data":      true,
	"language":  true,
	"title":     true,
	"id":        true,
	"mime_type": true,
}

// ContentBlock is a tagged variant over {text, thinking, p, pre, image,
// document, artifact}. Unknown tags pass through verbatim: Type keeps the
// original tag and Extra keeps the original payload.
type ContentBlock struct {
	Type     string
	Text     string
	Thinking string
	Data     string
	Language string
	Title    string
	Id       string
	MimeType string
	Extra    map[string]interface{}
}

const (
	BlockText      = "text"
	BlockThinking  = "thinking"
	BlockParagraph = "p"
	BlockCode      = "pre"
	BlockImage     = "image"
	BlockDocument  = "document"
	BlockArtifact  = "artifact"
)

func (b ContentBlock) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(b.Extra)+8)
	for k, v := range b.Extra {
		out[k] = v
	}
	out["type"] = b.Type
	if b.Text != "" {
		out["text"] = b.Text
	}
	if b.Thinking != "" {
		out["thinking"] = b.Thinking
	}
	if b.Data != "" {
		out["data"] = b.Data
	}
	if b.Language != "" {
		out["language"] = b.Language
	}
	if b.Title != "" {
		out["title"] = b.Title
	}
	if b.Id != "" {
		out["id"] = b.Id
	}
	if b.MimeType != "" {
		out["mime_type"] = b.MimeType
	}
	return json.Marshal(out)
}

// A known key is lifted into its typed field only when the value is a
// string; anything else goes to Extra so an unrecognized tag reusing a
// known key name keeps its payload across a round trip.
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Type = stringValue(raw["type"])
	for k, v := range raw {
		if k == "type" {
			continue
		}
		if s, ok := v.(string); ok && knownBlockKeys[k] {
			switch k {
			case "text":
				b.Text = s
			case "thinking":
				b.Thinking = s
			case "data":
				b.Data = s
			case "language":
				b.Language = s
			case "title":
				b.Title = s
			case "id":
				b.Id = s
			case "mime_type":
				b.MimeType = s
			}
			continue
		}
		if b.Extra == nil {
			b.Extra = make(map[string]interface{})
		}
		b.Extra[k] = v
	}
	return nil
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

// Attachment after alias resolution. Legacy names (file_id, media_type,
// size, extracted_text) never appear past the normalizer.
type Attachment struct {
	FileName         string `json:"file_name,omitempty"`
	FileType         string `json:"file_type,omitempty"`
	FileSize         int64  `json:"file_size,omitempty"`
	ExtractedContent string `json:"extracted_content,omitempty"`
}

const (
	SenderHuman     = "human"
	SenderAssistant = "assistant"
)

type Message struct {
	Uuid        string         `json:"uuid"`
	Sender      string         `json:"sender,omitempty"`
	Text        string         `json:"text,omitempty"`
	Content     []ContentBlock `json:"content,omitempty"`
	Attachments []Attachment   `json:"attachments,omitempty"`
	Index       int            `json:"index"`
	IsDeleted   bool           `json:"is_deleted,omitempty"`
	CreatedAt   string         `json:"created_at,omitempty"`
	UpdatedAt   string         `json:"updated_at,omitempty"`
}

type Artifact struct {
	Id        string `json:"id"`
	Type      string `json:"type,omitempty"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content,omitempty"`
	Language  string `json:"language,omitempty"`
	MimeType  string `json:"mime_type,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type Conversation struct {
	Uuid       string     `json:"uuid"`
	Name       string     `json:"name,omitempty"`
	Summary    string     `json:"summary,omitempty"`
	Model      string     `json:"model,omitempty"`
	AccountRef string     `json:"account_ref,omitempty"`
	ProjectRef string     `json:"project_ref,omitempty"`
	CreatedAt  string     `json:"created_at,omitempty"`
	UpdatedAt  string     `json:"updated_at,omitempty"`
	IsDeleted  bool       `json:"is_deleted"`
	Tags       []string   `json:"tags,omitempty"`
	Messages   []Message  `json:"chat_messages"`
	Artifacts  []Artifact `json:"artifacts,omitempty"`

	// Import lineage. AccountName and ImportedAt always reflect the most
	// recent batch that touched the record; ImportIds is a set.
	AccountName string    `json:"account_name,omitempty"`
	ImportIds   []string  `json:"import_ids,omitempty"`
	ImportedAt  time.Time `json:"imported_at,omitempty"`
}

// ConversationSummary is the query-engine row shape. Counts are derived in
// SQL at query time, never stored.
type ConversationSummary struct {
	Uuid            string `json:"uuid"`
	Name            string `json:"name"`
	AccountName     string `json:"account_name"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
	MessageCount    int    `json:"message_count"`
	AttachmentCount int    `json:"attachment_count"`
}

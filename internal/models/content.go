package models

// Content hierarchy: Chapter → Topic → Subtopic → Microcontent.
// All four are created by the seed loader and read-only at runtime.

type Chapter struct {
	ChapterID   string `json:"chapter_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
	Locked      bool   `json:"locked"`
}

type Topic struct {
	TopicID     string  `json:"topic_id"`
	ChapterID   string  `json:"chapter_id"`
	Title       string  `json:"title"`
	TopicTitle  string  `json:"topic_title,omitempty"`
	Description string  `json:"description"`
	Content     string  `json:"content,omitempty"`
	Order       float64 `json:"order"`
}

type Subtopic struct {
	SubtopicID        string `json:"subtopic_id"`
	TopicID           string `json:"topic_id"`
	ChapterID         string `json:"chapter_id"`
	Title             string `json:"title"`
	SubtopicTitle     string `json:"subtopic_title,omitempty"`
	Order             int    `json:"order"`
	MicrocontentCount int    `json:"microcontent_count"`
}

type Microcontent struct {
	MicrocontentID string  `json:"microcontent_id"`
	SubtopicID     string  `json:"subtopic_id"`
	TopicID        string  `json:"topic_id"`
	ChapterID      string  `json:"chapter_id"`
	Order          int     `json:"order"`
	Story          string  `json:"story"`
	Relate         string  `json:"relate"`
	Why            string  `json:"why"`
	ContentType    string  `json:"content_type"`
	RelatedCode    *string `json:"related_code"`
}

// ChapterWithProgress is a chapter merged with the caller's progress record.
type ChapterWithProgress struct {
	Chapter
	Progress  float64 `json:"progress"`
	Completed bool    `json:"completed"`
}

type TopicWithProgress struct {
	Topic
	Progress     float64 `json:"progress"`
	Completed    bool    `json:"completed"`
	LastPosition int     `json:"last_position"`
}

type SubtopicWithProgress struct {
	Subtopic
	Progress  float64 `json:"progress"`
	Completed bool    `json:"completed"`
}

type TopicSubtopicsResponse struct {
	Topic     TopicSummary           `json:"topic"`
	Subtopics []SubtopicWithProgress `json:"subtopics"`
}

type TopicSummary struct {
	TopicID    string `json:"topic_id"`
	Title      string `json:"title"`
	TopicTitle string `json:"topic_title,omitempty"`
	ChapterID  string `json:"chapter_id"`
}

type MicrocontentResponse struct {
	Subtopic   SubtopicSummary    `json:"subtopic"`
	Cards      []MicrocontentCard `json:"cards"`
	Progress   int                `json:"progress"`
	TotalCards int                `json:"total_cards"`
}

type SubtopicSummary struct {
	SubtopicID string `json:"subtopic_id"`
	Title      string `json:"title"`
	TopicID    string `json:"topic_id"`
	ChapterID  string `json:"chapter_id"`
}

// MicrocontentCard is the client-facing card shape: three narrative modes
// (story / relate / why) plus presentation metadata.
type MicrocontentCard struct {
	MicrocontentID string  `json:"microcontent_id"`
	Order          int     `json:"order"`
	Story          string  `json:"story"`
	Relate         string  `json:"relate"`
	Why            string  `json:"why"`
	ContentType    string  `json:"content_type"`
	RelatedCode    *string `json:"related_code"`
}

package quiz

import (
	"encoding/json"
	"strings"
	"time"
)

// Score is one finished play of a subtopic.
type Score struct {
	ID       string    `json:"_id"`
	CreateOn time.Time `json:"createOn"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Category string    `json:"category"`
	Topic    string    `json:"topic"`
	Subtopic string    `json:"subtopic"`
	Score    int       `json:"score"`
}

// Topic groups subtopics under a category.
type Topic struct {
	ID        string    `json:"_id"`
	TopicName string    `json:"topicName"`
	Category  string    `json:"category"`
	CreateOn  time.Time `json:"createOn,omitzero"`
}

// Subtopic is a playable quiz. Time is the time limit in minutes.
type Subtopic struct {
	ID           string `json:"_id"`
	TopicID      string `json:"topicId"`
	SubtopicName string `json:"subtopicName"`
	Time         int    `json:"time"`
}

// TopicInput is the create/update payload for a topic.
type TopicInput struct {
	TopicName string `json:"topicName"`
	Category  string `json:"category"`
}

// SubtopicInput is the create/update payload for a subtopic.
type SubtopicInput struct {
	TopicID      string `json:"topicId"`
	SubtopicName string `json:"subtopicName"`
	Time         int    `json:"time"`
}

// timeLayouts are the createOn formats accepted from the API, tried in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// parseTimestamp decodes a createOn value. Strings in any of timeLayouts and
// epoch milliseconds are accepted; anything else, including "" and null,
// yields the zero time.
func parseTimestamp(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var ms int64
		if json.Unmarshal(raw, &ms) == nil && ms > 0 {
			return time.UnixMilli(ms).UTC()
		}
		return time.Time{}
	}

	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// UnmarshalJSON decodes a score, tolerating malformed createOn values.
func (s *Score) UnmarshalJSON(data []byte) error {
	type score Score
	aux := struct {
		*score
		CreateOn json.RawMessage `json:"createOn"`
	}{score: (*score)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.CreateOn = parseTimestamp(aux.CreateOn)
	return nil
}

// UnmarshalJSON decodes a topic, tolerating malformed createOn values.
func (t *Topic) UnmarshalJSON(data []byte) error {
	type topic Topic
	aux := struct {
		*topic
		CreateOn json.RawMessage `json:"createOn"`
	}{topic: (*topic)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.CreateOn = parseTimestamp(aux.CreateOn)
	return nil
}

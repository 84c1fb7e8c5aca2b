// Package quiz defines the quiz platform's entities as served by its REST API
// and the list screens the console shows for them.
//
// Each screen pairs an entity with a listview field table (what can be
// searched and sorted), its column headers, and a row formatter used by both
// the table output and the TUI.
package quiz

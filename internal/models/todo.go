package models

import "time"

// Todo represents a todo item. IDs are assigned by the caller, not the store.
type Todo struct {
	ID        uint32 `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ToggleResult is the response payload for a toggle: the id and its new completed flag.
type ToggleResult struct {
	ID        uint32 `json:"id"`
	Completed bool   `json:"completed"`
}

// TodoEvent is the change-feed payload published to Kafka after a write commits.
type TodoEvent struct {
	Action    string    `json:"action"` // insert, update, toggle
	ID        uint32    `json:"id"`
	Completed bool      `json:"completed"`
	At        time.Time `json:"at"`
}

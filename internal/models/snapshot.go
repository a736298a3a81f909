package models

// SnapshotVersion is the current layout of Snapshot.
const SnapshotVersion = 1

// Buckets holds the scheduling sets as ordered task ID lists.
type Buckets struct {
	Active        []string `json:"active" yaml:"active"`
	Today         []string `json:"today" yaml:"today"`
	Past          []string `json:"past" yaml:"past"`
	TodayFinished []string `json:"today_finished" yaml:"today_finished"`
}

// Snapshot is the serialized form of the whole tracker aggregate.
// Goals, Groups and Tasks are listed in creation order.
type Snapshot struct {
	Version       int     `json:"version" yaml:"version"`
	FirstOpened   Date    `json:"first_opened" yaml:"first_opened"`
	IsFirstOpen   bool    `json:"is_first_open" yaml:"is_first_open"`
	LastRecompute Date    `json:"last_recompute" yaml:"last_recompute"`
	Goals         []Goal  `json:"goals" yaml:"goals"`
	Groups        []Group `json:"groups" yaml:"groups"`
	Tasks         []Task  `json:"tasks" yaml:"tasks"`
	Buckets       Buckets `json:"buckets" yaml:"buckets"`
}

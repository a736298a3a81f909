package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/julianstephens/toyplan/internal/constants"
	"github.com/julianstephens/toyplan/internal/models"
)

// Dialect selects the bind-parameter style of a SQL backend.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// Rebind rewrites ? placeholders to $1, $2, ... for PostgreSQL.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const (
	bucketActive        = "active"
	bucketToday         = "today"
	bucketPast          = "past"
	bucketTodayFinished = "today_finished"

	metaVersion       = "version"
	metaFirstOpened   = "first_opened"
	metaIsFirstOpen   = "is_first_open"
	metaLastRecompute = "last_recompute"
)

// ReadSettings loads the settings table, filling unset keys with defaults.
func ReadSettings(db *sql.DB) (models.Settings, error) {
	rows, err := db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := models.DefaultSettings()
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case constants.SettingHorizonDays:
			if settings.HorizonDays, err = strconv.Atoi(value); err != nil {
				return models.Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
		case constants.SettingDescriptionPreview:
			if settings.DescriptionPreview, err = strconv.Atoi(value); err != nil {
				return models.Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
		case constants.SettingAutoBackup:
			settings.AutoBackup = value == "true"
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}
	return settings, nil
}

// WriteSettings upserts every setting in one transaction.
func WriteSettings(db *sql.DB, d Dialect, settings models.Settings) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(d.Rebind("INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value"))
	if err != nil {
		return err
	}
	defer stmt.Close()

	values := [][2]string{
		{constants.SettingHorizonDays, strconv.Itoa(settings.HorizonDays)},
		{constants.SettingDescriptionPreview, strconv.Itoa(settings.DescriptionPreview)},
		{constants.SettingAutoBackup, strconv.FormatBool(settings.AutoBackup)},
	}
	for _, kv := range values {
		if _, err := stmt.Exec(kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", kv[0], err)
		}
	}
	return tx.Commit()
}

// WriteSnapshot replaces all tracker rows with s in one transaction.
func WriteSnapshot(db *sql.DB, d Dialect, s models.Snapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"task_buckets", "tasks", "task_groups", "goals", "meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	meta := [][2]string{
		{metaVersion, strconv.Itoa(s.Version)},
		{metaFirstOpened, s.FirstOpened.String()},
		{metaIsFirstOpen, strconv.FormatBool(s.IsFirstOpen)},
		{metaLastRecompute, s.LastRecompute.String()},
	}
	for _, kv := range meta {
		if _, err := tx.Exec(d.Rebind("INSERT INTO meta (key, value) VALUES (?, ?)"), kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to save %s: %w", kv[0], err)
		}
	}

	for seq, goal := range s.Goals {
		if _, err := tx.Exec(d.Rebind("INSERT INTO goals (id, name, seq) VALUES (?, ?, ?)"), goal.ID, goal.Name, seq); err != nil {
			return fmt.Errorf("failed to save goal %s: %w", goal.ID, err)
		}
	}

	groupLists := make([][]string, 0, len(s.Goals))
	for _, goal := range s.Goals {
		groupLists = append(groupLists, goal.GroupIDs)
	}
	groupPos := positions(groupLists)
	for seq, group := range s.Groups {
		_, err := tx.Exec(d.Rebind("INSERT INTO task_groups (id, goal_id, name, position, seq) VALUES (?, ?, ?, ?, ?)"),
			group.ID, group.GoalID, group.Name, groupPos[group.ID], seq)
		if err != nil {
			return fmt.Errorf("failed to save group %s: %w", group.ID, err)
		}
	}

	taskLists := make([][]string, 0, len(s.Groups))
	for _, group := range s.Groups {
		taskLists = append(taskLists, group.TaskIDs)
	}
	taskPos := positions(taskLists)
	stmt, err := tx.Prepare(d.Rebind(`INSERT INTO tasks (
		id, group_id, name, start_date, end_date, date_step, importance,
		expected_times, finished_times, is_finished, tags, description, position, seq
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for seq, t := range s.Tasks {
		tags, err := json.Marshal(nonNil(t.Tags))
		if err != nil {
			return fmt.Errorf("failed to encode tags of task %s: %w", t.ID, err)
		}
		_, err = stmt.Exec(t.ID, t.GroupID, t.Name, t.StartDate.String(), t.EndDate.String(),
			t.DateStep, t.Importance, t.ExpectedTimes, t.FinishedTimes, t.IsFinished,
			string(tags), t.Description, taskPos[t.ID], seq)
		if err != nil {
			return fmt.Errorf("failed to save task %s: %w", t.ID, err)
		}
	}

	buckets := [][]string{s.Buckets.Active, s.Buckets.Today, s.Buckets.Past, s.Buckets.TodayFinished}
	for i, name := range []string{bucketActive, bucketToday, bucketPast, bucketTodayFinished} {
		for pos, id := range buckets[i] {
			if _, err := tx.Exec(d.Rebind("INSERT INTO task_buckets (bucket, task_id, position) VALUES (?, ?, ?)"), name, id, pos); err != nil {
				return fmt.Errorf("failed to save %s bucket: %w", name, err)
			}
		}
	}

	return tx.Commit()
}

// ReadSnapshot loads the tracker rows. It returns ErrNoSnapshot when
// nothing was saved yet.
func ReadSnapshot(db *sql.DB) (models.Snapshot, error) {
	var s models.Snapshot

	meta, err := readMeta(db)
	if err != nil {
		return s, err
	}
	if _, ok := meta[metaVersion]; !ok {
		return s, ErrNoSnapshot
	}
	if s.Version, err = strconv.Atoi(meta[metaVersion]); err != nil {
		return s, fmt.Errorf("parsing snapshot version: %w", err)
	}
	if err := s.FirstOpened.UnmarshalText([]byte(meta[metaFirstOpened])); err != nil {
		return s, err
	}
	if err := s.LastRecompute.UnmarshalText([]byte(meta[metaLastRecompute])); err != nil {
		return s, err
	}
	s.IsFirstOpen = meta[metaIsFirstOpen] == "true"

	if s.Goals, err = readGoals(db); err != nil {
		return s, err
	}
	if s.Groups, err = readGroups(db, s.Goals); err != nil {
		return s, err
	}
	if s.Tasks, err = readTasks(db, s.Groups); err != nil {
		return s, err
	}
	if s.Buckets, err = readBuckets(db); err != nil {
		return s, err
	}
	return s, nil
}

func readMeta(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query("SELECT key, value FROM meta")
	if err != nil {
		return nil, fmt.Errorf("failed to query meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

func readGoals(db *sql.DB) ([]models.Goal, error) {
	rows, err := db.Query("SELECT id, name FROM goals ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g := models.Goal{GroupIDs: []string{}}
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

type placed struct {
	id       string
	parent   string
	position int
}

// readGroups also fills each goal's GroupIDs in display order.
func readGroups(db *sql.DB, goals []models.Goal) ([]models.Group, error) {
	rows, err := db.Query("SELECT id, goal_id, name, position FROM task_groups ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	groups := []models.Group{}
	var order []placed
	for rows.Next() {
		g := models.Group{TaskIDs: []string{}}
		var pos int
		if err := rows.Scan(&g.ID, &g.GoalID, &g.Name, &pos); err != nil {
			return nil, err
		}
		groups = append(groups, g)
		order = append(order, placed{id: g.ID, parent: g.GoalID, position: pos})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	children := attach(order)
	for i := range goals {
		if ids, ok := children[goals[i].ID]; ok {
			goals[i].GroupIDs = ids
		}
	}
	return groups, nil
}

// readTasks also fills each group's TaskIDs in display order.
func readTasks(db *sql.DB, groups []models.Group) ([]models.Task, error) {
	rows, err := db.Query(`SELECT id, group_id, name, start_date, end_date, date_step, importance,
		expected_times, finished_times, is_finished, tags, description, position
		FROM tasks ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	var order []placed
	for rows.Next() {
		var (
			t          models.Task
			start, end string
			tags       string
			pos        int
		)
		err := rows.Scan(&t.ID, &t.GroupID, &t.Name, &start, &end, &t.DateStep, &t.Importance,
			&t.ExpectedTimes, &t.FinishedTimes, &t.IsFinished, &tags, &t.Description, &pos)
		if err != nil {
			return nil, err
		}
		if err := t.StartDate.UnmarshalText([]byte(start)); err != nil {
			return nil, fmt.Errorf("task %s: %w", t.ID, err)
		}
		if err := t.EndDate.UnmarshalText([]byte(end)); err != nil {
			return nil, fmt.Errorf("task %s: %w", t.ID, err)
		}
		if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags of task %s: %w", t.ID, err)
		}
		t.Tags = nonNil(t.Tags)
		tasks = append(tasks, t)
		order = append(order, placed{id: t.ID, parent: t.GroupID, position: pos})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	children := attach(order)
	for i := range groups {
		if ids, ok := children[groups[i].ID]; ok {
			groups[i].TaskIDs = ids
		}
	}
	return tasks, nil
}

func readBuckets(db *sql.DB) (models.Buckets, error) {
	b := models.Buckets{
		Active:        []string{},
		Today:         []string{},
		Past:          []string{},
		TodayFinished: []string{},
	}
	rows, err := db.Query("SELECT bucket, task_id FROM task_buckets ORDER BY bucket, position")
	if err != nil {
		return b, fmt.Errorf("failed to query buckets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bucket, id string
		if err := rows.Scan(&bucket, &id); err != nil {
			return b, err
		}
		switch bucket {
		case bucketActive:
			b.Active = append(b.Active, id)
		case bucketToday:
			b.Today = append(b.Today, id)
		case bucketPast:
			b.Past = append(b.Past, id)
		case bucketTodayFinished:
			b.TodayFinished = append(b.TodayFinished, id)
		default:
			return b, fmt.Errorf("unknown bucket %q", bucket)
		}
	}
	return b, rows.Err()
}

// positions numbers the IDs of the child lists in order. Only the relative
// order within one parent matters when reading them back.
func positions(lists [][]string) map[string]int {
	pos := make(map[string]int)
	for _, list := range lists {
		for _, id := range list {
			pos[id] = len(pos)
		}
	}
	return pos
}

// attach groups children by parent, ordered by their stored position.
func attach(items []placed) map[string][]string {
	slices.SortStableFunc(items, func(a, b placed) int { return a.position - b.position })
	out := make(map[string][]string)
	for _, it := range items {
		out[it.parent] = append(out[it.parent], it.id)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// IsNoSnapshot reports whether err means no tracker data exists yet.
func IsNoSnapshot(err error) bool {
	return errors.Is(err, ErrNoSnapshot)
}

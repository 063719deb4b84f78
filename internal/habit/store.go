// Package habit implements the habit store and analytics engine.
//
// It uses SQLite to hold habits and their completion log. Streaks and
// analytics are derived values: they are recomputed from the raw rows on
// every read and never persisted, so stored and derived state cannot
// diverge. All date handling is by UTC calendar day.
package habit

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Error kinds reported to callers. Tool handlers translate these into
// tool-result errors; they are never fatal.
var (
	// ErrNotFound means the referenced habit does not exist.
	ErrNotFound = errors.New("habit not found")

	// ErrValidation means the input shape or values are unacceptable.
	ErrValidation = errors.New("invalid input")
)

// ─── Types ───────────────────────────────────────────────────────────────────

// CadenceKind distinguishes daily habits from N-times-per-week habits.
type CadenceKind string

const (
	CadenceDaily  CadenceKind = "daily"
	CadenceWeekly CadenceKind = "weekly"
)

// Cadence is the target frequency of a habit. For weekly habits,
// TimesPerWeek is the number of completions an ISO week needs to qualify.
type Cadence struct {
	Kind         CadenceKind `json:"kind"`
	TimesPerWeek int         `json:"times_per_week,omitempty"`
}

// String renders the cadence the way tools display it.
func (c Cadence) String() string {
	if c.Kind == CadenceDaily {
		return "daily"
	}
	if c.TimesPerWeek == 1 {
		return "1x per week"
	}
	return fmt.Sprintf("%dx per week", c.TimesPerWeek)
}

// ParseCadence validates a frequency string plus an optional times-per-week
// count. Supported: "daily", or "weekly" with timesPerWeek >= 1.
func ParseCadence(frequency string, timesPerWeek int) (Cadence, error) {
	switch strings.TrimSpace(strings.ToLower(frequency)) {
	case "", "daily":
		return Cadence{Kind: CadenceDaily}, nil
	case "weekly":
		if timesPerWeek <= 0 {
			timesPerWeek = 1
		}
		return Cadence{Kind: CadenceWeekly, TimesPerWeek: timesPerWeek}, nil
	default:
		return Cadence{}, fmt.Errorf("%w: unsupported frequency %q (use daily or weekly)", ErrValidation, frequency)
	}
}

// Habit is a tracked recurring activity.
type Habit struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Cadence     Cadence `json:"cadence"`
	Archived    bool    `json:"archived"`
	CreatedAt   string  `json:"created_at"`
}

// Completion is one entry in a habit's completion log.
type Completion struct {
	ID       int64  `json:"id"`
	HabitID  string `json:"habit_id"`
	Date     string `json:"date"` // UTC calendar day, "2006-01-02"
	Note     string `json:"note,omitempty"`
	LoggedAt string `json:"logged_at"`
}

// StreakState is derived from the completion log; it is never stored.
type StreakState struct {
	Current       int    `json:"current"`
	Longest       int    `json:"longest"`
	LastCompleted string `json:"last_completed,omitempty"`
}

// HabitWithStreak pairs a habit with its recomputed streak for listings.
type HabitWithStreak struct {
	Habit
	Streak           StreakState `json:"streak"`
	TotalCompletions int         `json:"total_completions"`
}

// DayProgress is one calendar day in a progress window.
type DayProgress struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Note      string `json:"note,omitempty"`
}

// ProgressReport combines a habit, its windowed completion log, and its streak.
type ProgressReport struct {
	Habit          Habit         `json:"habit"`
	Streak         StreakState   `json:"streak"`
	Days           []DayProgress `json:"days"`
	WindowDays     int           `json:"window_days"`
	CompletedDays  int           `json:"completed_days"`
	CompletionRate float64       `json:"completion_rate"` // percent, one decimal
}

// TopStreak is one entry in the analytics leaderboard.
type TopStreak struct {
	HabitID string `json:"habit_id"`
	Name    string `json:"name"`
	Current int    `json:"current"`
}

// AnalyticsSnapshot aggregates over all active habits. It is a read-time
// projection; an empty store yields a zero-valued snapshot, not an error.
type AnalyticsSnapshot struct {
	TotalHabits      int            `json:"total_habits"`
	TotalCompletions int            `json:"total_completions"`
	AverageStreak    float64        `json:"average_streak"`
	WindowDays       int            `json:"window_days"`
	WindowRate       float64        `json:"window_rate"` // percent over trailing window
	TodayCompleted   int            `json:"today_completed"`
	TodayRate        float64        `json:"today_rate"` // percent of active habits done today
	Categories       map[string]int `json:"categories,omitempty"`
	TopStreaks       []TopStreak    `json:"top_streaks,omitempty"`
}

// StatusFilter selects which habits ListHabits returns.
type StatusFilter string

const (
	FilterActive   StatusFilter = "active"
	FilterArchived StatusFilter = "archived"
	FilterAll      StatusFilter = "all"
)

// CreateHabitParams holds the input for creating a new habit.
type CreateHabitParams struct {
	Name         string
	Description  string
	Category     string
	Frequency    string
	TimesPerWeek int
}

// UpdateHabitParams holds partial metadata edits for a habit.
type UpdateHabitParams struct {
	Name        *string
	Description *string
	Category    *string
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds habit store configuration.
type Config struct {
	DataDir       string
	MaxNoteLength int
	// Now overrides the clock; nil means time.Now. Streak currency and
	// trailing windows are anchored at this clock's UTC calendar day.
	Now func() time.Time
}

// DefaultConfig returns the default configuration for the habit store.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:       filepath.Join(home, ".habitflow"),
		MaxNoteLength: 500,
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the habit store backed by SQLite. Mutating operations are
// serialized by a mutex so derived reads always see a consistent snapshot.
type Store struct {
	db  *sql.DB
	cfg Config
	mu  sync.Mutex
}

// New creates a Store with the given configuration. It creates the data
// directory if needed, opens SQLite with WAL mode, and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("habit: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "habits.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("habit: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("habit: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("habit: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS habits (
			id             TEXT PRIMARY KEY,
			name           TEXT    NOT NULL,
			description    TEXT    NOT NULL DEFAULT '',
			category       TEXT    NOT NULL DEFAULT '',
			cadence        TEXT    NOT NULL DEFAULT 'daily',
			times_per_week INTEGER NOT NULL DEFAULT 1,
			archived       INTEGER NOT NULL DEFAULT 0,
			created_at     TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_habits_created  ON habits(created_at);
		CREATE INDEX IF NOT EXISTS idx_habits_archived ON habits(archived);

		CREATE TABLE IF NOT EXISTS completions (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			habit_id  TEXT NOT NULL,
			date      TEXT NOT NULL,
			note      TEXT NOT NULL DEFAULT '',
			logged_at TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (habit_id) REFERENCES habits(id),
			UNIQUE (habit_id, date)
		);

		CREATE INDEX IF NOT EXISTS idx_completions_habit ON completions(habit_id, date);
		CREATE INDEX IF NOT EXISTS idx_completions_date  ON completions(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// now returns the configured clock, in UTC.
func (s *Store) now() time.Time {
	if s.cfg.Now != nil {
		return s.cfg.Now().UTC()
	}
	return time.Now().UTC()
}

// Today returns the store's current UTC calendar day.
func (s *Store) Today() string {
	return Day(s.now())
}

// ─── Habits ──────────────────────────────────────────────────────────────────

// CreateHabit validates the input, assigns a fresh ID and creation
// timestamp, and stores the habit as active.
func (s *Store) CreateHabit(p CreateHabitParams) (*Habit, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	cadence, err := ParseCadence(p.Frequency, p.TimesPerWeek)
	if err != nil {
		return nil, err
	}

	h := &Habit{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(p.Description),
		Category:    strings.TrimSpace(strings.ToLower(p.Category)),
		Cadence:     cadence,
		CreatedAt:   s.now().Format("2006-01-02 15:04:05"),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		`INSERT INTO habits (id, name, description, category, cadence, times_per_week, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Description, h.Category,
		string(h.Cadence.Kind), weeklyTarget(h.Cadence), h.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("habit: insert: %w", err)
	}
	return h, nil
}

// GetHabit retrieves a habit by ID.
func (s *Store) GetHabit(id string) (*Habit, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, category, cadence, times_per_week, archived, created_at
		 FROM habits WHERE id = ?`, id,
	)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return h, err
}

// UpdateHabit applies partial metadata edits to a habit.
func (s *Store) UpdateHabit(id string, p UpdateHabitParams) (*Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.GetHabit(id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		h.Name = name
	}
	if p.Description != nil {
		h.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		h.Category = strings.TrimSpace(strings.ToLower(*p.Category))
	}

	_, err = s.db.Exec(
		`UPDATE habits SET name = ?, description = ?, category = ? WHERE id = ?`,
		h.Name, h.Description, h.Category, id,
	)
	if err != nil {
		return nil, fmt.Errorf("habit: update: %w", err)
	}
	return h, nil
}

// ArchiveHabit marks a habit as archived. Archived habits keep their
// completion log but drop out of active listings and analytics.
func (s *Store) ArchiveHabit(id string) error {
	return s.setArchived(id, true)
}

// RestoreHabit returns an archived habit to active status.
func (s *Store) RestoreHabit(id string) error {
	return s.setArchived(id, false)
}

func (s *Store) setArchived(id string, archived bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE habits SET archived = ? WHERE id = ?`, boolInt(archived), id)
	if err != nil {
		return fmt.Errorf("habit: archive: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// ListHabits returns habits matching the filter, ordered by creation time
// ascending, each with its recomputed streak.
func (s *Store) ListHabits(filter StatusFilter) ([]HabitWithStreak, error) {
	query := `
		SELECT id, name, description, category, cadence, times_per_week, archived, created_at
		FROM habits
	`
	switch filter {
	case FilterArchived:
		query += " WHERE archived = 1"
	case FilterAll:
		// no clause
	default:
		query += " WHERE archived = 0"
	}
	query += " ORDER BY datetime(created_at) ASC, rowid ASC"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("habit: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var habits []Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	today := s.now()
	var results []HabitWithStreak
	for _, h := range habits {
		dates, err := s.completionDates(h.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, HabitWithStreak{
			Habit:            h,
			Streak:           ComputeStreakState(h.Cadence, dates, today),
			TotalCompletions: len(dates),
		})
	}
	return results, nil
}

// ─── Completions ─────────────────────────────────────────────────────────────

// LogCompletion appends a completion entry for the given UTC calendar day.
// Logging the same (habit, date) twice is idempotent: the existing entry is
// returned untouched and created is false. An empty date means today.
func (s *Store) LogCompletion(habitID, date, note string) (entry *Completion, created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.GetHabit(habitID); err != nil {
		return nil, false, err
	}

	if date == "" {
		date = s.Today()
	}
	if _, err := ParseDay(date); err != nil {
		return nil, false, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrValidation, date)
	}
	note = strings.TrimSpace(note)
	if s.cfg.MaxNoteLength > 0 && len(note) > s.cfg.MaxNoteLength {
		note = note[:s.cfg.MaxNoteLength]
	}

	if existing, err := s.getCompletion(habitID, date); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	res, err := s.db.Exec(
		`INSERT INTO completions (habit_id, date, note, logged_at) VALUES (?, ?, ?, ?)`,
		habitID, date, note, s.now().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return nil, false, fmt.Errorf("habit: log completion: %w", err)
	}
	id, _ := res.LastInsertId()

	entry, err = s.getCompletionByID(id)
	if err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

func (s *Store) getCompletion(habitID, date string) (*Completion, error) {
	row := s.db.QueryRow(
		`SELECT id, habit_id, date, note, logged_at FROM completions WHERE habit_id = ? AND date = ?`,
		habitID, date,
	)
	var c Completion
	if err := row.Scan(&c.ID, &c.HabitID, &c.Date, &c.Note, &c.LoggedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) getCompletionByID(id int64) (*Completion, error) {
	row := s.db.QueryRow(
		`SELECT id, habit_id, date, note, logged_at FROM completions WHERE id = ?`, id,
	)
	var c Completion
	if err := row.Scan(&c.ID, &c.HabitID, &c.Date, &c.Note, &c.LoggedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Completions returns the completion log for a habit, oldest first.
// from/to bound the range by calendar day (inclusive); empty means unbounded.
func (s *Store) Completions(habitID, from, to string) ([]Completion, error) {
	if _, err := s.GetHabit(habitID); err != nil {
		return nil, err
	}

	query := `SELECT id, habit_id, date, note, logged_at FROM completions WHERE habit_id = ?`
	args := []any{habitID}
	if from != "" {
		query += " AND date >= ?"
		args = append(args, from)
	}
	if to != "" {
		query += " AND date <= ?"
		args = append(args, to)
	}
	query += " ORDER BY date ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("habit: completions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Completion
	for rows.Next() {
		var c Completion
		if err := rows.Scan(&c.ID, &c.HabitID, &c.Date, &c.Note, &c.LoggedAt); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// completionDates returns the distinct completion days for a habit,
// ascending. The UNIQUE constraint makes distinctness a given.
func (s *Store) completionDates(habitID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT date FROM completions WHERE habit_id = ? ORDER BY date ASC`, habitID,
	)
	if err != nil {
		return nil, fmt.Errorf("habit: completion dates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// ComputeStreak recomputes the streak state for one habit from its
// completion log. Deterministic and side-effect-free for a fixed clock.
func (s *Store) ComputeStreak(habitID string) (*StreakState, error) {
	h, err := s.GetHabit(habitID)
	if err != nil {
		return nil, err
	}
	dates, err := s.completionDates(habitID)
	if err != nil {
		return nil, err
	}
	st := ComputeStreakState(h.Cadence, dates, s.now())
	return &st, nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

type rowLike interface {
	Scan(dest ...any) error
}

func scanHabit(row rowLike) (*Habit, error) {
	var (
		h       Habit
		kind    string
		perWeek int
	)
	if err := row.Scan(&h.ID, &h.Name, &h.Description, &h.Category, &kind, &perWeek, &h.Archived, &h.CreatedAt); err != nil {
		return nil, err
	}
	h.Cadence.Kind = CadenceKind(kind)
	if h.Cadence.Kind == CadenceWeekly {
		h.Cadence.TimesPerWeek = perWeek
	}
	return &h, nil
}

func weeklyTarget(c Cadence) int {
	if c.Kind == CadenceWeekly {
		return c.TimesPerWeek
	}
	return 1
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

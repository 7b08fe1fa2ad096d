// Package recording persists simulation results to SQLite.
//
// Each table is declared from a sample struct whose exported fields become
// the columns. Rows are buffered in memory and written in one transaction
// per Flush. A recorder created with New also flushes at process exit.
package recording

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/fatih/structs"
	// Pure-Go SQLite driver, registered as "sqlite".
	_ "github.com/glebarez/go-sqlite"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"

	"github.com/inference-sim/os-sim/sim/internal/logging"
)

// DefaultBatchSize is the number of buffered rows that triggers a Flush.
const DefaultBatchSize = 10000

// Recorder records flat structs into named tables.
type Recorder interface {
	// CreateTable declares tableName with one column per field of sampleEntry.
	CreateTable(tableName string, sampleEntry any) error

	// InsertData buffers entry for tableName. Entry must have the sample's type.
	InsertData(tableName string, entry any) error

	// ListTables returns the declared table names in sorted order.
	ListTables() []string

	// Flush writes all buffered rows.
	Flush() error

	// Close flushes and closes the database.
	Close() error
}

type table struct {
	structType reflect.Type
	entries    []any
}

// sqliteRecorder writes into a SQLite database.
type sqliteRecorder struct {
	*sql.DB

	path       string
	tables     map[string]*table
	batchSize  int
	entryCount int
	closed     bool

	log logrus.FieldLogger
}

// DefaultPath returns a fresh database path under dir, named with a unique id.
func DefaultPath(dir string) string {
	return filepath.Join(dir, "ossim_recording_"+xid.New().String()+".sqlite3")
}

// New opens a new SQLite database at path (DefaultPath("") when empty).
// Refuses to overwrite an existing file.
func New(path string, logger logrus.FieldLogger) (Recorder, error) {
	if path == "" {
		path = DefaultPath("")
	}
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("recording: file %s already exists", path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("recording: opening %s: %w", path, err)
	}
	r := newRecorder(db, path, logger)
	r.log.Infof("Database created for recording: %s", path)
	atexit.Register(func() { _ = r.Flush() })
	return r, nil
}

// NewWithDB records into an already-open database.
func NewWithDB(db *sql.DB, logger logrus.FieldLogger) Recorder {
	return newRecorder(db, "", logger)
}

func newRecorder(db *sql.DB, path string, logger logrus.FieldLogger) *sqliteRecorder {
	return &sqliteRecorder{
		DB:        db,
		path:      path,
		tables:    make(map[string]*table),
		batchSize: DefaultBatchSize,
		log:       logging.Component(logger, "recording"),
	}
}

func isAllowedKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func checkStructFields(entry any) (reflect.Type, error) {
	typ := reflect.TypeOf(entry)
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("recording: entry must be a struct, got %T", entry)
	}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			return nil, fmt.Errorf("recording: field %s of %s is unexported", field.Name, typ.Name())
		}
		if !isAllowedKind(field.Type.Kind()) {
			return nil, fmt.Errorf("recording: field %s of %s has unsupported kind %s", field.Name, typ.Name(), field.Type.Kind())
		}
	}
	return typ, nil
}

func (r *sqliteRecorder) CreateTable(tableName string, sampleEntry any) error {
	if _, exists := r.tables[tableName]; exists {
		return fmt.Errorf("recording: table %s already exists", tableName)
	}
	typ, err := checkStructFields(sampleEntry)
	if err != nil {
		return err
	}

	names := structs.Names(sampleEntry)
	for i, n := range names {
		names[i] = `"` + n + `"`
	}
	columns := strings.Join(names, ",\n\t")
	if _, err := r.Exec("CREATE TABLE " + tableName + " (\n\t" + columns + "\n);"); err != nil {
		return fmt.Errorf("recording: creating table %s: %w", tableName, err)
	}
	r.tables[tableName] = &table{structType: typ}
	r.log.Debugf("Created table %s", tableName)
	return nil
}

func (r *sqliteRecorder) InsertData(tableName string, entry any) error {
	t, exists := r.tables[tableName]
	if !exists {
		return fmt.Errorf("recording: table %s does not exist", tableName)
	}
	if reflect.TypeOf(entry) != t.structType {
		return fmt.Errorf("recording: table %s expects %s, got %T", tableName, t.structType, entry)
	}
	t.entries = append(t.entries, entry)
	r.entryCount++
	if r.entryCount >= r.batchSize {
		return r.Flush()
	}
	return nil
}

func (r *sqliteRecorder) ListTables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *sqliteRecorder) Flush() error {
	if r.entryCount == 0 || r.closed {
		return nil
	}

	tx, err := r.Begin()
	if err != nil {
		return fmt.Errorf("recording: begin: %w", err)
	}
	for _, name := range r.ListTables() {
		t := r.tables[name]
		if len(t.entries) == 0 {
			continue
		}
		if err := insertAll(tx, name, t.entries); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("recording: commit: %w", err)
	}

	for _, t := range r.tables {
		t.entries = nil
	}
	r.log.Debugf("Flushed %d rows", r.entryCount)
	r.entryCount = 0
	return nil
}

func insertAll(tx *sql.Tx, tableName string, entries []any) error {
	placeholders := make([]string, len(structs.Names(entries[0])))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmt, err := tx.Prepare("INSERT INTO " + tableName + " VALUES (" + strings.Join(placeholders, ", ") + ")")
	if err != nil {
		return fmt.Errorf("recording: preparing insert into %s: %w", tableName, err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.Exec(structs.Values(entry)...); err != nil {
			return fmt.Errorf("recording: inserting into %s: %w", tableName, err)
		}
	}
	return nil
}

func (r *sqliteRecorder) Close() error {
	if r.closed {
		return nil
	}
	if err := r.Flush(); err != nil {
		return err
	}
	r.closed = true
	return r.DB.Close()
}

// Package datarecording stores the results of paging simulations in SQLite
// databases.
package datarecording

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder is a backend that can record and store data
type DataRecorder interface {
	// CreateTable creates a new table whose columns are the fields of the
	// sample entry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers an entry for a table that already exists.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all tables created by the recorder.
	ListTables() []string

	// Flush writes all the buffered entries into the database.
	Flush()

	// Close flushes and closes the database.
	Close() error
}

const defaultBatchSize = 10000

// New creates a recorder that writes into a new database file. The
// ".sqlite3" extension is added when missing. An empty path picks a unique
// file name. The recorder is flushed when the program exits through atexit.
func New(path string) (DataRecorder, error) {
	filename := databaseFilename(path)

	_, err := os.Stat(filename)
	if err == nil {
		return nil, fmt.Errorf("file %s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, err
	}

	w := newSQLiteWriter(db)
	w.filename = filename

	atexit.Register(func() { w.Flush() })

	return w, nil
}

// NewWithDB creates a recorder that writes into an existing database.
func NewWithDB(db *sql.DB) DataRecorder {
	return newSQLiteWriter(db)
}

// Filename returns the database file of a recorder created by New.
func Filename(r DataRecorder) string {
	w, ok := r.(*sqliteWriter)
	if !ok {
		return ""
	}

	return w.filename
}

func databaseFilename(path string) string {
	if path == "" {
		path = "pagesim_" + xid.New().String()
	}

	if !strings.HasSuffix(path, ".sqlite3") {
		path += ".sqlite3"
	}

	return path
}

func newSQLiteWriter(db *sql.DB) *sqliteWriter {
	return &sqliteWriter{
		DB:        db,
		batchSize: defaultBatchSize,
		tables:    make(map[string]*table),
	}
}

type table struct {
	structType reflect.Type
	columns    []string
	entries    []any
}

// sqliteWriter is the writer that writes data into SQLite database
type sqliteWriter struct {
	*sql.DB

	filename   string
	tables     map[string]*table
	tableOrder []string
	batchSize  int
	entryCount int
	closed     bool
}

func isAllowedKind(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func checkStructFields(entry any) error {
	t := reflect.TypeOf(entry)
	if t == nil || t.Kind() != reflect.Struct {
		return errors.New("entry must be a struct")
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !isAllowedKind(field.Type.Kind()) {
			return fmt.Errorf("field %s of kind %s cannot be recorded",
				field.Name, field.Type.Kind())
		}
	}

	return nil
}

func (t *sqliteWriter) CreateTable(tableName string, sampleEntry any) {
	err := checkStructFields(sampleEntry)
	if err != nil {
		panic(err)
	}

	if _, exists := t.tables[tableName]; exists {
		panic(fmt.Sprintf("table %s already exists", tableName))
	}

	columns := structs.Names(sampleEntry)
	createTableSQL := `CREATE TABLE IF NOT EXISTS ` + tableName +
		` (` + "\n\t" + strings.Join(columns, ", \n\t") + "\n" + `);`
	t.mustExecute(createTableSQL)

	t.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
		columns:    columns,
	}
	t.tableOrder = append(t.tableOrder, tableName)
}

func (t *sqliteWriter) InsertData(tableName string, entry any) {
	table, exists := t.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != table.structType {
		panic(fmt.Sprintf("entry of type %T does not fit table %s",
			entry, tableName))
	}

	table.entries = append(table.entries, entry)

	t.entryCount++
	if t.entryCount >= t.batchSize {
		t.Flush()
	}
}

func (t *sqliteWriter) ListTables() []string {
	tables := make([]string, len(t.tableOrder))
	copy(tables, t.tableOrder)

	return tables
}

func (t *sqliteWriter) Flush() {
	if t.entryCount == 0 || t.closed {
		return
	}

	tx, err := t.Begin()
	if err != nil {
		panic(err)
	}

	for _, tableName := range t.tableOrder {
		table := t.tables[tableName]
		if len(table.entries) == 0 {
			continue
		}

		t.flushTable(tx, tableName, table)
	}

	err = tx.Commit()
	if err != nil {
		panic(err)
	}

	t.entryCount = 0
}

func (t *sqliteWriter) flushTable(tx *sql.Tx, tableName string, table *table) {
	stmt, err := tx.Prepare(insertStatement(tableName, len(table.columns)))
	if err != nil {
		panic(err)
	}
	defer stmt.Close()

	for _, entry := range table.entries {
		_, err := stmt.Exec(structs.Values(entry)...)
		if err != nil {
			panic(err)
		}
	}

	table.entries = nil
}

func (t *sqliteWriter) Close() error {
	if t.closed {
		return nil
	}

	t.Flush()
	t.closed = true

	return t.DB.Close()
}

func (t *sqliteWriter) mustExecute(query string) sql.Result {
	res, err := t.Exec(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}

func insertStatement(tableName string, numColumns int) string {
	placeholders := make([]string, numColumns)
	for i := range placeholders {
		placeholders[i] = "?"
	}

	return "INSERT INTO " + tableName +
		" VALUES (" + strings.Join(placeholders, ", ") + ")"
}

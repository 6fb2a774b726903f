// Package record dumps a net's tables into a SQLite database for
// offline inspection.
package record

import (
	"database/sql"
	"fmt"

	// sqlite driver registration
	_ "github.com/mattn/go-sqlite3"

	"github.com/san-kum/gridsim/internal/network"
)

type Recorder struct {
	db *sql.DB
}

func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &Recorder{db: db}, nil
}

func (r *Recorder) Close() error {
	return r.db.Close()
}

// SaveNet writes every cell of every net table as a (table, row, column,
// value) record. Object cells are stored by their display form.
func (r *Recorder) SaveNet(net *network.Net) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`CREATE TABLE IF NOT EXISTS net_cells (
		tbl TEXT NOT NULL,
		row_id INTEGER NOT NULL,
		col TEXT NOT NULL,
		value TEXT
	)`)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM net_cells`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO net_cells (tbl, row_id, col, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, name := range net.TableNames() {
		tab, ok := net.Table(name)
		if !ok {
			continue
		}
		cols := tab.Columns()
		for _, id := range tab.Index() {
			for _, col := range cols {
				if tab.IsNull(id, col) {
					continue
				}
				v, _ := tab.At(id, col)
				if _, err := stmt.Exec(name, id, col, fmt.Sprint(v)); err != nil {
					return err
				}
			}
		}
	}

	return tx.Commit()
}

// CellCount returns the number of recorded cells, mainly as a sanity
// check after SaveNet.
func (r *Recorder) CellCount() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM net_cells`).Scan(&n)
	return n, err
}

// Package export serializes finished records to the CSV and JSON formats
// handed to downstream consumers.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/iiTzGuzz/LLMSDATA/etl/registro"
)

// WriteCSV writes the records with the destination schema as header. The
// column order is the downstream contract and must not change.
func WriteCSV(w io.Writer, records []*registro.Registro) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(registro.Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the records as a JSON array of objects whose keys
// follow the destination schema order, flags rendered as "1"/"".
func WriteJSON(w io.Writer, records []*registro.Registro) error {
	if _, err := io.WriteString(w, "[\n"); err != nil {
		return err
	}
	for i, r := range records {
		if i > 0 {
			if _, err := io.WriteString(w, ",\n"); err != nil {
				return err
			}
		}
		if err := writeObject(w, r); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n]\n")
	return err
}

// writeObject emits one record with keys in Columns order. encoding/json
// sorts map keys alphabetically, so the object is assembled by hand.
func writeObject(w io.Writer, r *registro.Registro) error {
	row := r.Row()
	if _, err := io.WriteString(w, "  {"); err != nil {
		return err
	}
	for i, col := range registro.Columns {
		if i > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		key, err := json.Marshal(col)
		if err != nil {
			return err
		}
		val, err := json.Marshal(row[i])
		if err != nil {
			return err
		}
		if _, err := w.Write(key); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ": "); err != nil {
			return err
		}
		if _, err := w.Write(val); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}")
	return err
}

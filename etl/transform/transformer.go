package transform

import (
	"strings"

	"github.com/iiTzGuzz/LLMSDATA/etl/fixedwidth"
	"github.com/iiTzGuzz/LLMSDATA/etl/registro"
)

// Transformer builds finished records from raw 22-column rows. One
// instance covers one file: the ingestion date and source name stamp every
// record of the batch.
type Transformer struct {
	yyyymmdd   string
	sourceName string
}

// NewTransformer creates a transformer for one ingestion run. The date
// must be an 8-digit YYYYMMDD string; the batch driver validates it before
// any row is read.
func NewTransformer(yyyymmdd, sourceName string) (*Transformer, error) {
	if len(yyyymmdd) != 8 {
		return nil, fixedwidth.ErrBadDate().WithDetail("fecha", yyyymmdd)
	}
	for _, r := range yyyymmdd {
		if r < '0' || r > '9' {
			return nil, fixedwidth.ErrBadDate().WithDetail("fecha", yyyymmdd)
		}
	}
	return &Transformer{yyyymmdd: yyyymmdd, sourceName: sourceName}, nil
}

// slice returns s[start:end] by character offsets with Python slicing
// semantics: out-of-range bounds clamp instead of panicking.
func slice(s string, start, end int) string {
	runes := []rune(s)
	if start > len(runes) {
		start = len(runes)
	}
	if end < 0 || end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

func sliceFrom(s string, start int) string { return slice(s, start, -1) }

// Build maps one raw row to a Registro. The row must have exactly 22
// columns; anything else is a structural error for that row (the caller
// attaches the line number). Build is pure: same inputs, same record.
func (t *Transformer) Build(cols []string) (*registro.Registro, error) {
	if len(cols) != fixedwidth.ColumnCount {
		return nil, registro.ErrBadColumnCount().
			WithDetail("expected", fixedwidth.ColumnCount).
			WithDetail("got", len(cols))
	}

	// Column 1 is filler. Packed columns split by fixed character offsets:
	// col 5 = producto(5)+poliza, col 6 = periodo(1)+valor_asegurado,
	// col 16 = fecha_venta(10)+fecha_nacimiento(10)+tipo_trans(3)+beneficiarios,
	// col 17 = genero(1)+sucursal.
	producto := strings.TrimSpace(slice(cols[4], 0, 5))
	poliza := strings.TrimSpace(sliceFrom(cols[4], 5))
	periodo := strings.TrimSpace(slice(cols[5], 0, 1))
	valorAsegurado := strings.TrimSpace(sliceFrom(cols[5], 1))

	fechaVenta := strings.TrimSpace(slice(cols[15], 0, 10))
	fechaNacimiento := strings.TrimSpace(slice(cols[15], 10, 20))
	tipoTrans := strings.TrimSpace(slice(cols[15], 20, 23))
	beneficiarios := strings.TrimSpace(sliceFrom(cols[15], 23))

	genero := strings.TrimSpace(slice(cols[16], 0, 1))
	sucursal := strings.TrimSpace(sliceFrom(cols[16], 1))

	fechaIni := strings.TrimSpace(cols[8])
	if fechaIni != "" {
		fechaIni = slice(fechaIni, 0, 10)
	}

	// The preferences column is matched, never stored.
	preferencias := cols[21]
	flags := Flags{
		Telefono: ContainsAny(preferencias, PhrasesTelefono),
		Whatsapp: ContainsAny(preferencias, PhrasesWhatsapp),
		Texto:    ContainsAny(preferencias, PhrasesTexto),
		Email:    ContainsAny(preferencias, PhrasesEmail),
		Fisica:   ContainsAny(preferencias, PhrasesFisica),
	}

	phones := [3]string{cols[10], cols[11], cols[12]}

	// The email address is always empty at parse time; the resolver's
	// email fallback becomes reachable only after downstream enrichment.
	mejorCanal, contactarAl := ResolveBestChannel(flags, phones, "")

	return &registro.Registro{
		TipoDocumento:        strings.TrimSpace(cols[1]),
		Documento:            strings.TrimSpace(cols[2]),
		Nombre:               strings.TrimSpace(cols[3]),
		Producto:             producto,
		Poliza:               poliza,
		Periodo:              periodo,
		ValorAsegurado:       valorAsegurado,
		ValorPrima:           strings.TrimSpace(cols[6]),
		DocCobro:             strings.TrimSpace(cols[7]),
		FechaIni:             fechaIni,
		FechaFin:             "",
		Dias:                 strings.TrimSpace(cols[9]),
		Telefono1:            strings.TrimSpace(cols[10]),
		Telefono2:            strings.TrimSpace(cols[11]),
		Telefono3:            strings.TrimSpace(cols[12]),
		Ciudad:               strings.TrimSpace(cols[13]),
		Departamento:         strings.TrimSpace(cols[14]),
		FechaVenta:           fechaVenta,
		FechaNacimiento:      fechaNacimiento,
		TipoTrans:            tipoTrans,
		Beneficiarios:        beneficiarios,
		Genero:               genero,
		Sucursal:             sucursal,
		UltimosDigitosCuenta: strings.TrimSpace(cols[17]),
		EntidadBancaria:      strings.TrimSpace(cols[18]),
		NombreBanco:          strings.TrimSpace(cols[19]),
		EstadoDebito:         strings.TrimSpace(cols[20]),
		FechaEntregaColmena:  t.yyyymmdd[0:4] + "-" + t.yyyymmdd[4:6] + "-" + t.yyyymmdd[6:8],
		MesATrabajar:         t.yyyymmdd[4:6],
		NombreDB:             t.sourceName,
		Telefono:             flags.Telefono,
		Whatsapp:             flags.Whatsapp,
		Texto:                flags.Texto,
		Email:                flags.Email,
		Fisica:               flags.Fisica,
		MejorCanal:           mejorCanal,
		ContactarAl:          contactarAl,
	}, nil
}

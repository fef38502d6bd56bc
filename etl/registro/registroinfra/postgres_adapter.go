package registroinfra

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/iiTzGuzz/LLMSDATA/etl/registro"
	"github.com/iiTzGuzz/LLMSDATA/pkg/kernel"
)

// insertBatchSize bounds one multi-row INSERT; matches the historical
// loader's batching.
const insertBatchSize = 1000

// PostgresRegistroRepository implements registro.Repository using PostgreSQL
type PostgresRegistroRepository struct {
	db *sqlx.DB
}

// NewPostgresRegistroRepository creates a new PostgreSQL registro repository
func NewPostgresRegistroRepository(db *sqlx.DB) *PostgresRegistroRepository {
	return &PostgresRegistroRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type registroModel struct {
	TipoDocumento        string     `db:"tipo_documento"`
	Documento            string     `db:"documento"`
	Nombre               string     `db:"nombre"`
	Producto             string     `db:"producto"`
	Poliza               string     `db:"poliza"`
	Periodo              string     `db:"periodo"`
	ValorAsegurado       *string    `db:"valor_asegurado"`
	ValorPrima           *string    `db:"valor_prima"`
	DocCobro             string     `db:"doc_cobro"`
	FechaIni             *time.Time `db:"fecha_ini"`
	FechaFin             *time.Time `db:"fecha_fin"`
	Dias                 *int64     `db:"dias"`
	Telefono1            string     `db:"telefono_1"`
	Telefono2            string     `db:"telefono_2"`
	Telefono3            string     `db:"telefono_3"`
	Ciudad               string     `db:"ciudad"`
	Departamento         string     `db:"departamento"`
	FechaVenta           *time.Time `db:"fecha_venta"`
	FechaNacimiento      *time.Time `db:"fecha_nacimiento"`
	TipoTrans            string     `db:"tipo_trans"`
	Beneficiarios        string     `db:"beneficiarios"`
	Genero               string     `db:"genero"`
	Sucursal             string     `db:"sucursal"`
	TipoCuenta           string     `db:"tipo_cuenta"`
	UltimosDigitosCuenta string     `db:"ultimos_digitos_cuenta"`
	EntidadBancaria      string     `db:"entidad_bancaria"`
	NombreBanco          string     `db:"nombre_banco"`
	EstadoDebito         string     `db:"estado_debito"`
	CausalRechazo        string     `db:"causal_rechazo"`
	CodigoCanal          string     `db:"codigo_canal"`
	DescripcionCanal     string     `db:"descripcion_canal"`
	CodigoEstrategia     string     `db:"codigo_estrategia"`
	TipoEstrategia       string     `db:"tipo_estrategia"`
	CorreoElectronico    string     `db:"correo_electronico"`
	FechaEntregaColmena  *time.Time `db:"fecha_entrega_colmena"`
	MesATrabajar         string     `db:"mes_a_trabajar"`
	NombreDB             string     `db:"nombre_db"`
	Telefono             bool       `db:"telefono"`
	Whatsapp             bool       `db:"whatsapp"`
	Texto                bool       `db:"texto"`
	Email                bool       `db:"email"`
	Fisica               bool       `db:"fisica"`
	MejorCanal           string     `db:"mejor_canal"`
	ContactarAl          string     `db:"contactar_al"`
}

// fromEntity converts a pipeline record to storage-typed columns. All
// coercion to dates/decimals/ints lives here, not in the parsing core.
func fromEntity(r *registro.Registro) *registroModel {
	return &registroModel{
		TipoDocumento:        r.TipoDocumento,
		Documento:            r.Documento,
		Nombre:               r.Nombre,
		Producto:             r.Producto,
		Poliza:               r.Poliza,
		Periodo:              r.Periodo,
		ValorAsegurado:       toDecimal(r.ValorAsegurado),
		ValorPrima:           toDecimal(r.ValorPrima),
		DocCobro:             r.DocCobro,
		FechaIni:             toDate(r.FechaIni),
		FechaFin:             nil, // empty by rule
		Dias:                 toInt(r.Dias),
		Telefono1:            r.Telefono1,
		Telefono2:            r.Telefono2,
		Telefono3:            r.Telefono3,
		Ciudad:               r.Ciudad,
		Departamento:         r.Departamento,
		FechaVenta:           toDate(r.FechaVenta),
		FechaNacimiento:      toDate(r.FechaNacimiento),
		TipoTrans:            r.TipoTrans,
		Beneficiarios:        r.Beneficiarios,
		Genero:               r.Genero,
		Sucursal:             r.Sucursal,
		TipoCuenta:           "",
		UltimosDigitosCuenta: r.UltimosDigitosCuenta,
		EntidadBancaria:      r.EntidadBancaria,
		NombreBanco:          r.NombreBanco,
		EstadoDebito:         r.EstadoDebito,
		CausalRechazo:        r.CausalRechazo,
		CodigoCanal:          r.CodigoCanal,
		DescripcionCanal:     r.DescripcionCanal,
		CodigoEstrategia:     r.CodigoEstrategia,
		TipoEstrategia:       r.TipoEstrategia,
		CorreoElectronico:    r.CorreoElectronico,
		FechaEntregaColmena:  toDate(r.FechaEntregaColmena),
		MesATrabajar:         r.MesATrabajar,
		NombreDB:             r.NombreDB,
		Telefono:             r.Telefono,
		Whatsapp:             r.Whatsapp,
		Texto:                r.Texto,
		Email:                r.Email,
		Fisica:               r.Fisica,
		MejorCanal:           r.MejorCanal,
		ContactarAl:          r.ContactarAl,
	}
}

// ============================================================================
// Coercion helpers
// ============================================================================

// toDate parses an ISO YYYY-MM-DD value, returning nil for anything else.
func toDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// toInt parses a digits-only value, returning nil otherwise.
func toInt(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

var numberPartsRE = regexp.MustCompile(`\d+|[.,]`)

// normalizeNumber repairs locale-formatted amounts ("1.234.567,89") into
// a plain decimal string. Values that already parse are returned as-is.
func normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if isDecimal(s) {
		return s
	}
	// Dots as thousand separators, comma as decimal point.
	s2 := strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	if isDecimal(s2) {
		return s2
	}
	// Last resort: keep digits and separators, treat only the final
	// separator as the decimal point.
	comp := strings.ReplaceAll(strings.Join(numberPartsRE.FindAllString(s, -1), ""), ",", ".")
	pieces := strings.Split(comp, ".")
	if len(pieces) > 2 {
		comp = strings.Join(pieces[:len(pieces)-1], "") + "." + pieces[len(pieces)-1]
	}
	return comp
}

func isDecimal(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// toDecimal normalizes a numeric field, returning nil when no number can
// be recovered.
func toDecimal(s string) *string {
	n := normalizeNumber(s)
	if n == "" || !isDecimal(n) {
		return nil
	}
	return &n
}

// ============================================================================
// Repository Implementation
// ============================================================================

const insertQuery = `
	INSERT INTO registros (
		tipo_documento, documento, nombre, producto, poliza, periodo,
		valor_asegurado, valor_prima, doc_cobro, fecha_ini, fecha_fin, dias,
		telefono_1, telefono_2, telefono_3, ciudad, departamento,
		fecha_venta, fecha_nacimiento, tipo_trans, beneficiarios, genero,
		sucursal, tipo_cuenta, ultimos_digitos_cuenta, entidad_bancaria,
		nombre_banco, estado_debito, causal_rechazo, codigo_canal,
		descripcion_canal, codigo_estrategia, tipo_estrategia,
		correo_electronico, fecha_entrega_colmena, mes_a_trabajar, nombre_db,
		telefono, whatsapp, texto, email, fisica, mejor_canal, contactar_al
	) VALUES (
		:tipo_documento, :documento, :nombre, :producto, :poliza, :periodo,
		:valor_asegurado, :valor_prima, :doc_cobro, :fecha_ini, :fecha_fin, :dias,
		:telefono_1, :telefono_2, :telefono_3, :ciudad, :departamento,
		:fecha_venta, :fecha_nacimiento, :tipo_trans, :beneficiarios, :genero,
		:sucursal, :tipo_cuenta, :ultimos_digitos_cuenta, :entidad_bancaria,
		:nombre_banco, :estado_debito, :causal_rechazo, :codigo_canal,
		:descripcion_canal, :codigo_estrategia, :tipo_estrategia,
		:correo_electronico, :fecha_entrega_colmena, :mes_a_trabajar, :nombre_db,
		:telefono, :whatsapp, :texto, :email, :fisica, :mejor_canal, :contactar_al
	)
`

// BulkInsert stores records in transactional batches, preserving input
// order. Returns the number of rows inserted.
func (r *PostgresRegistroRepository) BulkInsert(ctx context.Context, records []*registro.Registro) (int, error) {
	total := 0
	for start := 0; start < len(records); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(records) {
			end = len(records)
		}

		models := make([]*registroModel, 0, end-start)
		for _, rec := range records[start:end] {
			models = append(models, fromEntity(rec))
		}

		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return total, fmt.Errorf("begin bulk insert tx: %w", err)
		}
		if _, err := tx.NamedExecContext(ctx, insertQuery, models); err != nil {
			_ = tx.Rollback()
			if pqErr, ok := err.(*pq.Error); ok {
				return total, registro.ErrInsertFailed().
					WithDetail("pq_code", string(pqErr.Code)).
					WithDetail("pq_message", pqErr.Message).
					WithCause(err)
			}
			return total, registro.ErrInsertFailed().WithCause(err)
		}
		if err := tx.Commit(); err != nil {
			return total, fmt.Errorf("commit bulk insert tx: %w", err)
		}
		total += end - start
	}
	return total, nil
}

// Latest retrieves the most recently inserted rows, newest first.
func (r *PostgresRegistroRepository) Latest(ctx context.Context, limit int) ([]registro.StoredRegistro, error) {
	rows := []registro.StoredRegistro{}
	query := `SELECT * FROM registros ORDER BY id DESC LIMIT $1`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("query latest registros: %w", err)
	}
	return rows, nil
}

// List retrieves one page of rows, newest first, with totals.
func (r *PostgresRegistroRepository) List(ctx context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[registro.StoredRegistro], error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}

	rows := []registro.StoredRegistro{}
	query := `SELECT * FROM registros ORDER BY id DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, opts.PageSize, opts.Offset()); err != nil {
		return nil, fmt.Errorf("query registros page: %w", err)
	}
	return kernel.NewPaginated(rows, total, opts), nil
}

// Count returns the total number of stored records.
func (r *PostgresRegistroRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM registros`); err != nil {
		return 0, fmt.Errorf("count registros: %w", err)
	}
	return count, nil
}

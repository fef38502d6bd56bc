package registro

import (
	"time"

	"github.com/iiTzGuzz/LLMSDATA/pkg/fsx"
	"github.com/iiTzGuzz/LLMSDATA/pkg/kernel"
)

// ProcessPathRequest - DTO for processing a file already on disk
type ProcessPathRequest struct {
	Path         string `json:"path" validate:"required"`
	Fecha        string `json:"fecha,omitempty"`         // YYYYMMDD override
	OriginalName string `json:"original_name,omitempty"` // provenance tag
}

// ProcessResult - outcome of one ingestion run
type ProcessResult struct {
	BatchID    kernel.BatchID `json:"batch_id"`
	SavedAs    string         `json:"saved_as,omitempty"`
	Insertados int            `json:"insertados"`
	CSVPath    string         `json:"csv_path,omitempty"`
	JSONPath   string         `json:"json_path,omitempty"`
}

// StoredRegistro mirrors one persisted row with storage-typed values, as
// returned to API clients.
type StoredRegistro struct {
	ID                   kernel.RegistroID `db:"id" json:"id"`
	TipoDocumento        string            `db:"tipo_documento" json:"tipo_documento"`
	Documento            string            `db:"documento" json:"documento"`
	Nombre               string            `db:"nombre" json:"nombre"`
	Producto             string            `db:"producto" json:"producto"`
	Poliza               string            `db:"poliza" json:"poliza"`
	Periodo              string            `db:"periodo" json:"periodo"`
	ValorAsegurado       *string           `db:"valor_asegurado" json:"valor_asegurado"`
	ValorPrima           *string           `db:"valor_prima" json:"valor_prima"`
	DocCobro             string            `db:"doc_cobro" json:"doc_cobro"`
	FechaIni             *time.Time        `db:"fecha_ini" json:"fecha_ini"`
	FechaFin             *time.Time        `db:"fecha_fin" json:"fecha_fin"`
	Dias                 *int64            `db:"dias" json:"dias"`
	Telefono1            string            `db:"telefono_1" json:"telefono_1"`
	Telefono2            string            `db:"telefono_2" json:"telefono_2"`
	Telefono3            string            `db:"telefono_3" json:"telefono_3"`
	Ciudad               string            `db:"ciudad" json:"ciudad"`
	Departamento         string            `db:"departamento" json:"departamento"`
	FechaVenta           *time.Time        `db:"fecha_venta" json:"fecha_venta"`
	FechaNacimiento      *time.Time        `db:"fecha_nacimiento" json:"fecha_nacimiento"`
	TipoTrans            string            `db:"tipo_trans" json:"tipo_trans"`
	Beneficiarios        string            `db:"beneficiarios" json:"beneficiarios"`
	Genero               string            `db:"genero" json:"genero"`
	Sucursal             string            `db:"sucursal" json:"sucursal"`
	TipoCuenta           string            `db:"tipo_cuenta" json:"tipo_cuenta"`
	UltimosDigitosCuenta string            `db:"ultimos_digitos_cuenta" json:"ultimos_digitos_cuenta"`
	EntidadBancaria      string            `db:"entidad_bancaria" json:"entidad_bancaria"`
	NombreBanco          string            `db:"nombre_banco" json:"nombre_banco"`
	EstadoDebito         string            `db:"estado_debito" json:"estado_debito"`
	CausalRechazo        string            `db:"causal_rechazo" json:"causal_rechazo"`
	CodigoCanal          string            `db:"codigo_canal" json:"codigo_canal"`
	DescripcionCanal     string            `db:"descripcion_canal" json:"descripcion_canal"`
	CodigoEstrategia     string            `db:"codigo_estrategia" json:"codigo_estrategia"`
	TipoEstrategia       string            `db:"tipo_estrategia" json:"tipo_estrategia"`
	CorreoElectronico    string            `db:"correo_electronico" json:"correo_electronico"`
	FechaEntregaColmena  *time.Time        `db:"fecha_entrega_colmena" json:"fecha_entrega_colmena"`
	MesATrabajar         string            `db:"mes_a_trabajar" json:"mes_a_trabajar"`
	NombreDB             string            `db:"nombre_db" json:"nombre_db"`
	Telefono             bool              `db:"telefono" json:"telefono"`
	Whatsapp             bool              `db:"whatsapp" json:"whatsapp"`
	Texto                bool              `db:"texto" json:"texto"`
	Email                bool              `db:"email" json:"email"`
	Fisica               bool              `db:"fisica" json:"fisica"`
	MejorCanal           string            `db:"mejor_canal" json:"mejor_canal"`
	ContactarAl          string            `db:"contactar_al" json:"contactar_al"`
	CreatedAt            time.Time         `db:"created_at" json:"created_at"`
}

// LatestResponse - DTO for the last-N query
type LatestResponse struct {
	OK    bool             `json:"ok"`
	Count int              `json:"count"`
	Rows  []StoredRegistro `json:"rows"`
}

// UploadResponse - DTO returned after a multipart upload is processed
type UploadResponse struct {
	OK         bool           `json:"ok"`
	SavedAs    string         `json:"saved_as"`
	Insertados int            `json:"insertados"`
	BatchID    kernel.BatchID `json:"batch_id"`
}

// ExportsResponse - DTO listing the generated export files
type ExportsResponse struct {
	OK    bool           `json:"ok"`
	Files []fsx.FileInfo `json:"files"`
}

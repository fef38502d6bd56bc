// Package registro holds the customer-record entity produced by the
// fixed-width pipeline and the ports around it.
package registro

// Canal values for MejorCanal.
const (
	CanalTexto    = "texto"
	CanalEmail    = "email"
	CanalTelefono = "telefono"
	CanalWhatsapp = "whatsapp"
	CanalFisica   = "fisica"
)

// ChannelPriority is the fixed resolution order for the best contact
// channel.
var ChannelPriority = []string{CanalTexto, CanalEmail, CanalTelefono, CanalWhatsapp, CanalFisica}

// Columns is the destination schema, in order. It is a compatibility
// contract with the relational table and the CSV export header; renaming
// or reordering entries breaks downstream consumers.
var Columns = []string{
	"tipo_documento", "documento", "nombre", "producto", "poliza", "periodo", "valor_asegurado",
	"valor_prima", "doc_cobro", "fecha_ini", "fecha_fin", "dias", "telefono_1", "telefono_2", "telefono_3",
	"ciudad", "departamento", "fecha_venta", "fecha_nacimiento", "tipo_trans", "beneficiarios", "genero",
	"sucursal", "tipo_cuenta", "ultimos_digitos_cuenta", "entidad_bancaria", "nombre_banco",
	"estado_debito", "causal_rechazo", "codigo_canal", "descripcion_canal", "codigo_estrategia",
	"tipo_estrategia", "correo_electronico", "fecha_entrega_colmena", "mes_a_trabajar", "id",
	"nombre_db", "telefono", "whatsapp", "texto", "email", "fisica", "mejor_canal", "contactar_al",
}

// Registro is one fully transformed customer record. Every field is a
// string except the channel flags, which are real booleans internally and
// serialized to the persisted "1"/"" convention only at the export
// boundary (Row). A Registro is never mutated after construction.
type Registro struct {
	TipoDocumento        string `json:"tipo_documento"`
	Documento            string `json:"documento"`
	Nombre               string `json:"nombre"`
	Producto             string `json:"producto"`
	Poliza               string `json:"poliza"`
	Periodo              string `json:"periodo"`
	ValorAsegurado       string `json:"valor_asegurado"`
	ValorPrima           string `json:"valor_prima"`
	DocCobro             string `json:"doc_cobro"`
	FechaIni             string `json:"fecha_ini"`
	FechaFin             string `json:"fecha_fin"` // always empty by rule
	Dias                 string `json:"dias"`
	Telefono1            string `json:"telefono_1"`
	Telefono2            string `json:"telefono_2"`
	Telefono3            string `json:"telefono_3"`
	Ciudad               string `json:"ciudad"`
	Departamento         string `json:"departamento"`
	FechaVenta           string `json:"fecha_venta"`
	FechaNacimiento      string `json:"fecha_nacimiento"`
	TipoTrans            string `json:"tipo_trans"`
	Beneficiarios        string `json:"beneficiarios"`
	Genero               string `json:"genero"`
	Sucursal             string `json:"sucursal"`
	TipoCuenta           string `json:"tipo_cuenta"` // always empty by rule
	UltimosDigitosCuenta string `json:"ultimos_digitos_cuenta"`
	EntidadBancaria      string `json:"entidad_bancaria"`
	NombreBanco          string `json:"nombre_banco"`
	EstadoDebito         string `json:"estado_debito"`
	CausalRechazo        string `json:"causal_rechazo"`
	CodigoCanal          string `json:"codigo_canal"`
	DescripcionCanal     string `json:"descripcion_canal"`
	CodigoEstrategia     string `json:"codigo_estrategia"`
	TipoEstrategia       string `json:"tipo_estrategia"`
	CorreoElectronico    string `json:"correo_electronico"` // populated by later enrichment, not by parsing
	FechaEntregaColmena  string `json:"fecha_entrega_colmena"`
	MesATrabajar         string `json:"mes_a_trabajar"`
	ID                   string `json:"id"` // assigned by storage, empty here
	NombreDB             string `json:"nombre_db"`

	// Channel opt-in flags derived from the free-text preferences column.
	Telefono bool `json:"telefono"`
	Whatsapp bool `json:"whatsapp"`
	Texto    bool `json:"texto"`
	Email    bool `json:"email"`
	Fisica   bool `json:"fisica"`

	MejorCanal  string `json:"mejor_canal"`
	ContactarAl string `json:"contactar_al"`
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return ""
}

// Row returns the record's values in Columns order, with the boolean
// flags rendered as "1" or "" to match the persisted convention.
func (r *Registro) Row() []string {
	return []string{
		r.TipoDocumento, r.Documento, r.Nombre, r.Producto, r.Poliza, r.Periodo, r.ValorAsegurado,
		r.ValorPrima, r.DocCobro, r.FechaIni, r.FechaFin, r.Dias, r.Telefono1, r.Telefono2, r.Telefono3,
		r.Ciudad, r.Departamento, r.FechaVenta, r.FechaNacimiento, r.TipoTrans, r.Beneficiarios, r.Genero,
		r.Sucursal, r.TipoCuenta, r.UltimosDigitosCuenta, r.EntidadBancaria, r.NombreBanco,
		r.EstadoDebito, r.CausalRechazo, r.CodigoCanal, r.DescripcionCanal, r.CodigoEstrategia,
		r.TipoEstrategia, r.CorreoElectronico, r.FechaEntregaColmena, r.MesATrabajar, r.ID,
		r.NombreDB, flag(r.Telefono), flag(r.Whatsapp), flag(r.Texto), flag(r.Email), flag(r.Fisica),
		r.MejorCanal, r.ContactarAl,
	}
}

// Map returns the record keyed by column name, with flags as "1"/"".
func (r *Registro) Map() map[string]string {
	row := r.Row()
	out := make(map[string]string, len(Columns))
	for i, col := range Columns {
		out[col] = row[i]
	}
	return out
}

package forms

// AttachmentKind etiqueta el estado del adjunto de un formulario.
// Es un sum type explícito: cada variante lleva sus propios datos y no hay
// combinaciones inválidas posibles (nada de booleanos sueltos + strings nulos).
type AttachmentKind int

const (
	// AttachNone: sin archivo.
	AttachNone AttachmentKind = iota
	// AttachExisting: el recurso ya tiene una imagen en el servidor (path relativo).
	AttachExisting
	// AttachNew: el usuario seleccionó un archivo nuevo (bytes + preview).
	AttachNew
)

func (k AttachmentKind) String() string {
	switch k {
	case AttachExisting:
		return "existing"
	case AttachNew:
		return "new"
	default:
		return "none"
	}
}

// Attachment es el estado del adjunto con los datos de su variante.
// Construir SOLO con NoFile / ExistingFile / NewFile.
type Attachment struct {
	kind    AttachmentKind
	path    string // AttachExisting
	data    []byte // AttachNew
	mime    string // AttachNew
	preview string // AttachNew: data-URL base64 para mostrar sin round-trip
}

// NoFile construye la variante sin archivo.
func NoFile() Attachment { return Attachment{kind: AttachNone} }

// ExistingFile construye la variante "ya existe en el servidor".
func ExistingFile(path string) Attachment {
	if path == "" {
		return NoFile()
	}
	return Attachment{kind: AttachExisting, path: path}
}

// NewFile construye la variante "archivo recién seleccionado".
func NewFile(data []byte, mime, preview string) Attachment {
	return Attachment{kind: AttachNew, data: data, mime: mime, preview: preview}
}

func (a Attachment) Kind() AttachmentKind { return a.kind }

// Path devuelve el path del archivo existente ("" si no aplica).
func (a Attachment) Path() string { return a.path }

// Data devuelve los bytes del archivo nuevo (nil si no aplica).
func (a Attachment) Data() []byte { return a.data }

// MIME devuelve el tipo detectado del archivo nuevo ("" si no aplica).
func (a Attachment) MIME() string { return a.mime }

// Preview devuelve el data-URL del archivo nuevo, o el path existente como
// referencia de preview. "" para NoFile.
func (a Attachment) Preview() string {
	switch a.kind {
	case AttachNew:
		return a.preview
	case AttachExisting:
		return a.path
	default:
		return ""
	}
}

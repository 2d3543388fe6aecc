package forms

// Mode distingue alta de edición.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// EditableResource es el sobre genérico de un recurso en alta/edición:
// modo, id existente (solo edición) y estado del adjunto con su historial
// mínimo (el ExistingFile previo, para poder revertir una selección).
type EditableResource struct {
	Mode       Mode
	ExistingID string

	attachment  Attachment
	predecessor *Attachment // ExistingFile desplazado por un NewFile
	dirty       bool
}

// NewCreate arma el sobre en modo alta (sin adjunto).
func NewCreate() *EditableResource {
	return &EditableResource{Mode: ModeCreate, attachment: NoFile()}
}

// NewEdit arma el sobre en modo edición. Si el payload trae una referencia de
// imagen no vacía el adjunto arranca en ExistingFile, si no en NoFile.
func NewEdit(id, imagePath string) *EditableResource {
	return &EditableResource{
		Mode:       ModeEdit,
		ExistingID: id,
		attachment: ExistingFile(imagePath), // NoFile si path==""
	}
}

// Attachment devuelve el estado actual del adjunto.
func (e *EditableResource) Attachment() Attachment { return e.attachment }

// Dirty indica si el formulario tiene cambios sin enviar (gate del cancel).
func (e *EditableResource) Dirty() bool { return e.dirty }

// MarkDirty marca el sobre como modificado (campos escalares editados).
func (e *EditableResource) MarkDirty() { e.dirty = true }

// HasExistingAttachment reporta si el servidor conserva una imagen para este
// recurso: el adjunto actual es ExistingFile, o un NewFile lo desplazó sin
// haberlo borrado. Este flag alimenta BuildSchema.
func (e *EditableResource) HasExistingAttachment() bool {
	if e.attachment.Kind() == AttachExisting {
		return true
	}
	return e.predecessor != nil
}

// SelectFile acepta un archivo YA validado (ver upload.Check) y transiciona a
// NewFile. Si el estado actual era ExistingFile se guarda como predecesor para
// poder revertir. Una validación fallida NUNCA debe llegar acá: el estado
// previo queda intacto porque el rechazo ocurre antes de esta llamada.
func (e *EditableResource) SelectFile(att Attachment) {
	if att.Kind() != AttachNew {
		return
	}
	if e.attachment.Kind() == AttachExisting {
		prev := e.attachment
		e.predecessor = &prev
	}
	e.attachment = att
	e.dirty = true
}

// RemoveAttachment aplica la transición de quitar el adjunto:
//   - NewFile con predecesor ExistingFile → revertir al existente
//     (descarta el archivo nuevo, restaura el preview anterior);
//   - NewFile sin predecesor → NoFile;
//   - ExistingFile → NoFile (acción destructiva: la validación pasa a exigir
//     un archivo nuevo);
//   - NoFile → no-op.
func (e *EditableResource) RemoveAttachment() {
	switch e.attachment.Kind() {
	case AttachNew:
		if e.predecessor != nil {
			e.attachment = *e.predecessor
			e.predecessor = nil
		} else {
			e.attachment = NoFile()
		}
		e.dirty = true
	case AttachExisting:
		e.attachment = NoFile()
		e.predecessor = nil
		e.dirty = true
	}
}

package forms_test

import (
	"testing"

	"github.com/dropDatabas3/comanda/internal/forms"
)

func newPNG() forms.Attachment {
	return forms.NewFile([]byte{0x89, 0x50}, "image/png", "data:image/png;base64,iVA=")
}

func TestNewEdit_AttachmentFromPayload(t *testing.T) {
	env := forms.NewEdit("id-1", "foto.png")
	if env.Attachment().Kind() != forms.AttachExisting {
		t.Fatalf("con path el adjunto arranca existente: %v", env.Attachment().Kind())
	}
	if env.Attachment().Path() != "foto.png" {
		t.Fatalf("path: %q", env.Attachment().Path())
	}

	env = forms.NewEdit("id-2", "")
	if env.Attachment().Kind() != forms.AttachNone {
		t.Fatalf("sin path el adjunto arranca vacío: %v", env.Attachment().Kind())
	}
}

func TestSelectFile_DisplacesExisting(t *testing.T) {
	env := forms.NewEdit("id-1", "vieja.png")
	env.SelectFile(newPNG())

	if env.Attachment().Kind() != forms.AttachNew {
		t.Fatalf("tras seleccionar: %v", env.Attachment().Kind())
	}
	// El existente desplazado sigue contando para el schema
	if !env.HasExistingAttachment() {
		t.Fatal("el archivo previo desplazado debe seguir reportándose")
	}
	if !env.Dirty() {
		t.Fatal("seleccionar archivo marca el formulario dirty")
	}
}

// Quitar un archivo nuevo que desplazó a uno existente revierte al existente,
// no a vacío: el usuario recupera el preview anterior.
func TestRemoveAttachment_RevertsToPredecessor(t *testing.T) {
	env := forms.NewEdit("id-1", "vieja.png")
	env.SelectFile(newPNG())
	env.RemoveAttachment()

	att := env.Attachment()
	if att.Kind() != forms.AttachExisting {
		t.Fatalf("debe revertir al existente: %v", att.Kind())
	}
	if att.Path() != "vieja.png" {
		t.Fatalf("path restaurado: %q", att.Path())
	}

	// Segunda quita: ahora sí es destructiva
	env.RemoveAttachment()
	if env.Attachment().Kind() != forms.AttachNone {
		t.Fatalf("segunda quita: %v", env.Attachment().Kind())
	}
	if env.HasExistingAttachment() {
		t.Fatal("sin adjunto ni predecesor no debe reportar existente")
	}
}

func TestRemoveAttachment_NewWithoutPredecessor(t *testing.T) {
	env := forms.NewCreate()
	env.SelectFile(newPNG())
	env.RemoveAttachment()

	if env.Attachment().Kind() != forms.AttachNone {
		t.Fatalf("nuevo sin predecesor va a vacío: %v", env.Attachment().Kind())
	}
}

func TestRemoveAttachment_NoFileIsNoop(t *testing.T) {
	env := forms.NewCreate()
	env.RemoveAttachment()
	if env.Attachment().Kind() != forms.AttachNone {
		t.Fatalf("no-op sobre vacío: %v", env.Attachment().Kind())
	}
	if env.Dirty() {
		t.Fatal("un no-op no marca dirty")
	}
}

func TestSelectFile_IgnoresNonNew(t *testing.T) {
	env := forms.NewCreate()
	env.SelectFile(forms.ExistingFile("x.png"))
	if env.Attachment().Kind() != forms.AttachNone {
		t.Fatalf("solo variantes nuevas entran por SelectFile: %v", env.Attachment().Kind())
	}
}

func TestAttachmentPreview(t *testing.T) {
	if p := newPNG().Preview(); p != "data:image/png;base64,iVA=" {
		t.Fatalf("preview de archivo nuevo: %q", p)
	}
	if p := forms.ExistingFile("foto.png").Preview(); p != "foto.png" {
		t.Fatalf("preview de existente: %q", p)
	}
	if p := forms.NoFile().Preview(); p != "" {
		t.Fatalf("preview vacío: %q", p)
	}
}

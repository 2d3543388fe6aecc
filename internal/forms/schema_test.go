package forms_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dropDatabas3/comanda/internal/forms"
)

func TestBuildSchema_AttachmentRule(t *testing.T) {
	cases := []struct {
		name          string
		mode          forms.Mode
		hasExisting   bool
		requiresImage bool
		want          forms.AttachmentRule
	}{
		{"create requiere nuevo", forms.ModeCreate, false, true, forms.AttachmentRequiredNew},
		{"create ignora hasExisting", forms.ModeCreate, true, true, forms.AttachmentRequiredNew},
		{"edit con imagen previa", forms.ModeEdit, true, true, forms.AttachmentExistingOrNew},
		{"edit sin imagen previa", forms.ModeEdit, false, true, forms.AttachmentRequiredNew},
		{"sin imagen: create", forms.ModeCreate, false, false, forms.AttachmentOptional},
		{"sin imagen: edit", forms.ModeEdit, true, false, forms.AttachmentOptional},
	}

	for _, c := range cases {
		s := forms.BuildSchema(c.mode, c.hasExisting, c.requiresImage)
		if s.Attachment != c.want {
			t.Fatalf("%s: attachment rule = %v, quiero %v", c.name, s.Attachment, c.want)
		}
	}
}

// El schema se re-deriva en cada evaluación: quitar la imagen existente en
// edición tiene que endurecer el requisito a "archivo nuevo" inmediatamente.
func TestBuildSchema_RemovalHardensRequirement(t *testing.T) {
	env := forms.NewEdit("id-1", "foto.png")

	s := forms.BuildSchema(env.Mode, env.HasExistingAttachment(), true)
	if s.Attachment != forms.AttachmentExistingOrNew {
		t.Fatalf("con imagen previa: %v", s.Attachment)
	}

	env.RemoveAttachment()
	s = forms.BuildSchema(env.Mode, env.HasExistingAttachment(), true)
	if s.Attachment != forms.AttachmentRequiredNew {
		t.Fatalf("tras quitar la imagen: %v, quiero RequiredNew", s.Attachment)
	}
	if errs := s.Validate(nil, env.Attachment()); len(errs) == 0 {
		t.Fatal("sin adjunto el schema endurecido debe fallar")
	}
}

func TestSchemaValidate_Fields(t *testing.T) {
	s := forms.BuildSchema(forms.ModeCreate, false, false,
		forms.FieldRule{Name: "title", Required: true, MaxLen: 10},
		forms.FieldRule{Name: "price_cents", Required: true, Numeric: true},
		forms.FieldRule{Name: "unit", Check: func(v string) error {
			if v != "g" && v != "ml" {
				return errors.New("unidad desconocida")
			}
			return nil
		}},
	)

	errs := s.Validate(map[string]string{
		"title":       "  ",
		"price_cents": "-5",
		"unit":        "kg",
	}, forms.NoFile())

	got := map[string]string{}
	for _, e := range errs {
		got[e.Field] = e.Message
	}
	if len(errs) != 3 {
		t.Fatalf("quiero 3 errores, tengo %d: %v", len(errs), errs)
	}
	if _, ok := got["title"]; !ok {
		t.Fatal("title vacío debe fallar required")
	}
	if _, ok := got["price_cents"]; !ok {
		t.Fatal("precio negativo debe fallar numeric")
	}
	if _, ok := got["unit"]; !ok {
		t.Fatal("unidad inválida debe fallar el check")
	}

	ok := s.Validate(map[string]string{
		"title":       "Milanesa",
		"price_cents": "125000",
		"unit":        "g",
	}, forms.NoFile())
	if len(ok) != 0 {
		t.Fatalf("valores válidos no deben fallar: %v", ok)
	}
}

func TestSchemaValidate_MaxLenAndTrim(t *testing.T) {
	s := forms.BuildSchema(forms.ModeCreate, false, false,
		forms.FieldRule{Name: "title", Required: true, MaxLen: 5},
	)
	if errs := s.Validate(map[string]string{"title": strings.Repeat("x", 6)}, forms.NoFile()); len(errs) != 1 {
		t.Fatalf("excede MaxLen: %v", errs)
	}
	// El trim corre antes del largo
	if errs := s.Validate(map[string]string{"title": "  abc  "}, forms.NoFile()); len(errs) != 0 {
		t.Fatalf("valor trimmeado válido: %v", errs)
	}
}

func TestSchemaValidate_AttachmentRules(t *testing.T) {
	newFile := forms.NewFile([]byte{1, 2, 3}, "image/png", "data:image/png;base64,AQID")
	existing := forms.ExistingFile("foto.png")

	s := forms.Schema{Attachment: forms.AttachmentRequiredNew}
	if errs := s.Validate(nil, existing); len(errs) != 1 {
		t.Fatalf("RequiredNew no acepta existente: %v", errs)
	}
	if errs := s.Validate(nil, newFile); len(errs) != 0 {
		t.Fatalf("RequiredNew acepta nuevo: %v", errs)
	}

	s = forms.Schema{Attachment: forms.AttachmentExistingOrNew}
	if errs := s.Validate(nil, existing); len(errs) != 0 {
		t.Fatalf("ExistingOrNew acepta existente: %v", errs)
	}
	if errs := s.Validate(nil, forms.NoFile()); len(errs) != 1 {
		t.Fatalf("ExistingOrNew no acepta vacío: %v", errs)
	}

	s = forms.Schema{Attachment: forms.AttachmentOptional}
	if errs := s.Validate(nil, forms.NoFile()); len(errs) != 0 {
		t.Fatalf("Optional acepta vacío: %v", errs)
	}
}

// Package resources implementa el controller genérico de recursos con imagen
// del menú. Todos los recursos comparten la misma mecánica: formulario
// multipart, schema de validación derivado de (modo, imagen previa) y
// adjunto etiquetado (sin archivo / existente / nuevo). Lo específico de cada
// entidad vive en su Binding.
package resources

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/comanda/internal/forms"
	httperrors "github.com/dropDatabas3/comanda/internal/http/errors"
	"github.com/dropDatabas3/comanda/internal/http/helpers"
	"github.com/dropDatabas3/comanda/internal/observability/logger"
	"github.com/dropDatabas3/comanda/internal/upload"
)

// maxFormMemory limita el buffer en memoria del parse multipart.
const maxFormMemory = 8 << 20

// Binding describe una entidad concreta detrás del controller genérico.
// Los closures adaptan el contrato genérico (valores planos + path de imagen)
// a las operaciones tipadas del service.
type Binding struct {
	// Name identifica el recurso en logs y métricas (categories, products, ...).
	Name string
	// RequiresImage exige imagen en alta y edición (regla del schema).
	RequiresImage bool
	// Fields son las reglas de los campos escalares del formulario.
	Fields []forms.FieldRule
	// FilterParam es el query param de filtro de la lista ("category_id", "").
	FilterParam string

	List   func(ctx context.Context, filter string) (any, error)
	Get    func(ctx context.Context, id string) (imagePath string, err error)
	Create func(ctx context.Context, values map[string]string, imagePath, preview string) (any, error)
	Update func(ctx context.Context, id string, values map[string]string, imagePath, preview string) (any, error)
	Delete func(ctx context.Context, id string) error
}

// Controller sirve el CRUD de un recurso con imagen.
type Controller struct {
	binding Binding
	media   upload.Config
}

func NewController(b Binding, media upload.Config) *Controller {
	return &Controller{binding: b, media: media}
}

// HandleList maneja GET /v1/{recurso}.
func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := ""
	if c.binding.FilterParam != "" {
		filter = r.URL.Query().Get(c.binding.FilterParam)
	}
	out, err := c.binding.List(r.Context(), filter)
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate maneja POST /v1/{recurso} (multipart/form-data).
func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	c.handleSubmit(w, r, "")
}

// HandleUpdate maneja PUT /v1/{recurso}/{id} (multipart/form-data).
func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("falta el id"))
		return
	}
	c.handleSubmit(w, r, id)
}

// handleSubmit es el camino común de alta y edición:
//
//  1. armar el sobre (create, o edit con la imagen previa del registro);
//  2. aplicar la entrada de adjunto (archivo nuevo / quitar / conservar);
//  3. derivar el schema de (modo, imagen previa) y validar TODO junto;
//  4. resolver el path final de imagen y delegar en el service.
//
// Un archivo rechazado corta ANTES de tocar el sobre: el adjunto previo del
// recurso queda intacto, igual que los demás campos.
func (c *Controller) handleSubmit(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Resource(c.binding.Name),
	)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("formulario multipart inválido"))
		return
	}

	var env *forms.EditableResource
	if id == "" {
		env = forms.NewCreate()
	} else {
		imagePath, err := c.binding.Get(ctx, id)
		if err != nil {
			httperrors.WriteStoreError(w, err)
			return
		}
		env = forms.NewEdit(id, imagePath)
	}

	// Entrada de adjunto: archivo nuevo gana, remove_image revierte/quita
	if file, _, err := r.FormFile("image"); err == nil {
		data, err := io.ReadAll(io.LimitReader(file, c.media.MaxBytes+1))
		file.Close()
		if err != nil {
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("no se pudo leer el archivo"))
			return
		}
		mime, err := c.media.Check(data)
		if err != nil {
			// Rechazo: el sobre NO se tocó, el adjunto previo sigue vigente
			log.Debug("archivo rechazado", logger.Err(err))
			c.writeUploadError(w, err)
			return
		}
		env.SelectFile(forms.NewFile(data, mime, upload.PreviewDataURL(data, mime)))
	} else if r.FormValue("remove_image") == "true" {
		env.RemoveAttachment()
	}

	values := make(map[string]string)
	for _, f := range c.binding.Fields {
		values[f.Name] = r.FormValue(f.Name)
	}

	schema := forms.BuildSchema(env.Mode, env.HasExistingAttachment(), c.binding.RequiresImage, c.binding.Fields...)
	if errs := schema.Validate(values, env.Attachment()); len(errs) > 0 {
		details := make([]httperrors.FieldDetail, 0, len(errs))
		for _, e := range errs {
			details = append(details, httperrors.FieldDetail{Field: e.Field, Message: e.Message})
		}
		httperrors.WriteValidationError(w, details)
		return
	}

	imagePath, preview, err := c.resolveAttachment(env.Attachment())
	if err != nil {
		log.Error("no se pudo almacenar el archivo", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	var out any
	if id == "" {
		out, err = c.binding.Create(ctx, values, imagePath, preview)
	} else {
		out, err = c.binding.Update(ctx, id, values, imagePath, preview)
	}
	if err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	log.Info("recurso guardado", logger.String("mode", env.Mode.String()))
	helpers.WriteJSON(w, status, out)
}

// resolveAttachment materializa el adjunto a un path relativo:
// nuevo → persistir bytes; existente → conservar path; ninguno → vacío.
func (c *Controller) resolveAttachment(att forms.Attachment) (imagePath, preview string, err error) {
	switch att.Kind() {
	case forms.AttachNew:
		path, err := c.media.Store(att.Data(), att.MIME())
		if err != nil {
			return "", "", err
		}
		return path, att.Preview(), nil
	case forms.AttachExisting:
		return att.Path(), "", nil
	default:
		return "", "", nil
	}
}

// HandleDelete maneja DELETE /v1/{recurso}/{id}.
// El registro (y su imagen) se borra SOLO si el store confirma; un fallo deja
// todo como estaba y el cliente conserva su lista intacta.
func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("falta el id"))
		return
	}
	if err := c.binding.Delete(r.Context(), id); err != nil {
		httperrors.WriteStoreError(w, err)
		return
	}
	logger.From(r.Context()).Info("recurso borrado",
		logger.Resource(c.binding.Name), logger.ID(id))
	helpers.NoContent(w)
}

func (c *Controller) writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		httperrors.WriteError(w, httperrors.ErrBodyTooLarge)
	case errors.Is(err, upload.ErrBadType):
		httperrors.WriteError(w, httperrors.ErrInvalidFile)
	default:
		httperrors.WriteError(w, httperrors.ErrBadRequest)
	}
}

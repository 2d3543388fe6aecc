package resources_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/http/controllers/resources"
	"github.com/dropDatabas3/comanda/internal/http/services"
	"github.com/dropDatabas3/comanda/internal/store/memory"
	"github.com/dropDatabas3/comanda/internal/upload"
)

var ctx = context.Background()

// pngBytes arma un payload que DetectContentType clasifica como image/png.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

// newEnv monta los controllers de categorías e ingredientes sobre un store en
// memoria y un media root temporal, ruteados con chi para que los handlers
// resuelvan {id} igual que en producción.
func newEnv(t *testing.T) (*chi.Mux, *memory.Store, upload.Config) {
	t.Helper()
	st := memory.New()
	media := upload.Config{
		Root:         t.TempDir(),
		BaseURL:      "/media",
		MaxBytes:     1 << 20,
		AllowedMIMEs: []string{"image/png", "image/jpeg"},
	}
	svcs := services.New(services.Deps{Repo: st, CacheTTL: time.Minute, Media: media})

	cats := resources.NewCategoriesController(svcs.Catalog, media)
	ings := resources.NewIngredientsController(svcs.Catalog, media)

	r := chi.NewRouter()
	r.Get("/v1/categories", cats.HandleList)
	r.Post("/v1/categories", cats.HandleCreate)
	r.Put("/v1/categories/{id}", cats.HandleUpdate)
	r.Delete("/v1/categories/{id}", cats.HandleDelete)
	r.Post("/v1/ingredients", ings.HandleCreate)
	return r, st, media
}

// doForm envía un multipart/form-data con campos escalares y, si file no es
// nil, un part "image".
func doForm(t *testing.T, h http.Handler, method, path string, fields map[string]string, file []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		part, err := mw.CreateFormFile("image", "foto.png")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	mw.Close()

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "cuerpo: %s", rec.Body.String())
	return out
}

// fieldNames extrae los campos anotados de una respuesta de validación.
func fieldNames(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	body := decode(t, rec)
	raw, ok := body["fields"].([]any)
	require.True(t, ok, "respuesta sin anotaciones de campos: %s", rec.Body.String())
	var names []string
	for _, f := range raw {
		names = append(names, f.(map[string]any)["field"].(string))
	}
	return names
}

func TestCreateCategory_WithImage(t *testing.T) {
	h, st, _ := newEnv(t)

	rec := doForm(t, h, http.MethodPost, "/v1/categories", map[string]string{"title": "Bebidas"}, pngBytes)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(t, rec)
	require.Equal(t, "Bebidas", body["title"])
	require.Contains(t, body["image_url"], "/media/")
	require.Contains(t, body["preview"], "data:image/png;base64,")

	cats, err := st.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	require.NotEmpty(t, cats[0].ImagePath)
}

func TestCreateCategory_MissingImage(t *testing.T) {
	h, st, _ := newEnv(t)

	rec := doForm(t, h, http.MethodPost, "/v1/categories", map[string]string{"title": "Bebidas"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"image"}, fieldNames(t, rec))

	cats, _ := st.ListCategories(ctx)
	require.Empty(t, cats, "una validación fallida no debe crear el registro")
}

func TestCreateCategory_MissingTitle(t *testing.T) {
	h, _, _ := newEnv(t)

	rec := doForm(t, h, http.MethodPost, "/v1/categories", map[string]string{"title": "  "}, pngBytes)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"title"}, fieldNames(t, rec))
}

func TestCreateCategory_BadFileType(t *testing.T) {
	h, st, _ := newEnv(t)

	rec := doForm(t, h, http.MethodPost, "/v1/categories", map[string]string{"title": "Bebidas"}, []byte("#!/bin/sh\necho hola"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_FILE", decode(t, rec)["code"])

	cats, _ := st.ListCategories(ctx)
	require.Empty(t, cats, "un archivo rechazado no debe crear el registro")
}

func TestCreateCategory_FileTooLarge(t *testing.T) {
	h, _, media := newEnv(t)

	huge := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, int(media.MaxBytes))...)
	rec := doForm(t, h, http.MethodPost, "/v1/categories", map[string]string{"title": "Bebidas"}, huge)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Equal(t, "BODY_TOO_LARGE", decode(t, rec)["code"])
}

// En edición, sin archivo nuevo el recurso conserva su imagen previa.
func TestUpdateCategory_KeepsExistingImage(t *testing.T) {
	h, st, _ := newEnv(t)

	created := decode(t, doForm(t, h, http.MethodPost, "/v1/categories", map[string]string{"title": "Bebidas"}, pngBytes))
	id := created["id"].(string)
	before, err := st.GetCategory(ctx, id)
	require.NoError(t, err)

	rec := doForm(t, h, http.MethodPut, "/v1/categories/"+id, map[string]string{"title": "Tragos"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	after, err := st.GetCategory(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Tragos", after.Title)
	require.Equal(t, before.ImagePath, after.ImagePath, "la imagen previa debe conservarse")
}

// Un archivo rechazado en edición corta antes de tocar el adjunto: el registro
// y su imagen previa quedan exactamente como estaban.
func TestUpdateCategory_RejectedFileLeavesAttachmentIntact(t *testing.T) {
	h, st, _ := newEnv(t)

	created := decode(t, doForm(t, h, http.MethodPost, "/v1/categories", map[string]string{"title": "Bebidas"}, pngBytes))
	id := created["id"].(string)

	rec := doForm(t, h, http.MethodPut, "/v1/categories/"+id, map[string]string{"title": "Tragos"}, []byte("texto plano nomás"))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	got, err := st.GetCategory(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Bebidas", got.Title, "el rechazo no debe modificar el registro")
	require.NotEmpty(t, got.ImagePath)
}

// Quitar la imagen de un recurso que la exige endurece el requisito: sin
// archivo nuevo la edición no pasa la validación.
func TestUpdateCategory_RemoveImageHardensRequirement(t *testing.T) {
	h, st, _ := newEnv(t)

	created := decode(t, doForm(t, h, http.MethodPost, "/v1/categories", map[string]string{"title": "Bebidas"}, pngBytes))
	id := created["id"].(string)

	rec := doForm(t, h, http.MethodPut, "/v1/categories/"+id,
		map[string]string{"title": "Bebidas", "remove_image": "true"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"image"}, fieldNames(t, rec))

	// Quitar y subir en el mismo request sí pasa
	before, _ := st.GetCategory(ctx, id)
	rec = doForm(t, h, http.MethodPut, "/v1/categories/"+id,
		map[string]string{"title": "Bebidas", "remove_image": "true"}, pngBytes)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got, _ := st.GetCategory(ctx, id)
	require.NotEmpty(t, got.ImagePath)
	require.NotEqual(t, before.ImagePath, got.ImagePath, "la imagen debe haberse reemplazado")
}

// Los ingredientes no exigen imagen: el alta sin archivo es válida.
func TestCreateIngredient_ImageOptional(t *testing.T) {
	h, st, _ := newEnv(t)

	rec := doForm(t, h, http.MethodPost, "/v1/ingredients", map[string]string{"title": "Harina", "unit": "g"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	ings, _ := st.ListIngredients(ctx)
	require.Len(t, ings, 1)
	require.Empty(t, ings[0].ImagePath)

	// La regla Check del campo unit sigue corriendo
	rec = doForm(t, h, http.MethodPost, "/v1/ingredients", map[string]string{"title": "Leche", "unit": "litros"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"unit"}, fieldNames(t, rec))
}

func TestDeleteCategory_ConfirmThenRemove(t *testing.T) {
	h, st, _ := newEnv(t)

	created := decode(t, doForm(t, h, http.MethodPost, "/v1/categories", map[string]string{"title": "Bebidas"}, pngBytes))
	id := created["id"].(string)

	req := httptest.NewRequest(http.MethodDelete, "/v1/categories/"+id, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	cats, _ := st.ListCategories(ctx)
	require.Empty(t, cats)
}

// Un borrado que el store rechaza deja el registro como estaba.
func TestDeleteCategory_InUseConflict(t *testing.T) {
	h, st, _ := newEnv(t)

	created := decode(t, doForm(t, h, http.MethodPost, "/v1/categories", map[string]string{"title": "Bebidas"}, pngBytes))
	id := created["id"].(string)
	sub := domain.Subcategory{ID: "sc-1", CategoryID: id, Title: "Gaseosas"}
	require.NoError(t, st.CreateSubcategory(ctx, &sub))

	req := httptest.NewRequest(http.MethodDelete, "/v1/categories/"+id, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	require.Equal(t, "CONFLICT", decode(t, rec)["code"])

	_, err := st.GetCategory(ctx, id)
	require.NoError(t, err, "el registro debe seguir existiendo")
}

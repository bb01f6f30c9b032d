package web

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/goliatone/go-lessonplan/internal/apispec"
	"github.com/goliatone/go-lessonplan/pkg/catalog"
	"github.com/goliatone/go-lessonplan/pkg/form"
	"github.com/goliatone/go-lessonplan/pkg/presentation"
	"github.com/goliatone/go-lessonplan/pkg/printdoc"
	"github.com/goliatone/go-lessonplan/pkg/render"
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	cat, name, err := s.resolveCatalog(r, r.URL.Query().Get(fieldCatalog))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.writeRendered(w, r, presentation.RendererName, http.StatusOK, form.NewState(cat).Snapshot(), pageOptions(cat, name))
}

// handleSubmit restores the posted state, applies the pressed toggle and
// renders the next page. A rejected trait comes back with the notice dialog.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	values, ok := s.parseForm(w, r)
	if !ok {
		return
	}
	cat, name, err := s.resolveCatalog(r, values.Get(fieldCatalog))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	opts := pageOptions(cat, name)

	submitted := apispec.FillDefaults(snapshotFromForm(values), cat)
	state, err := form.Restore(submitted)
	if err != nil {
		fresh := form.NewState(cat).Snapshot()
		fresh.HighContrast = submitted.HighContrast
		opts.Errors = map[string][]string{render.FieldTraits: {err.Error()}}
		s.writeRendered(w, r, presentation.RendererName, http.StatusUnprocessableEntity, fresh, opts)
		return
	}
	restored := state.Snapshot()

	notices := &form.Notices{}
	f := form.New(cat, form.WithState(state), form.WithNotifier(notices))
	if event, ok := eventFromForm(values); ok {
		if err := f.Apply(r.Context(), event); err != nil {
			s.log.Error("apply event failed", "op", event.Op, "error", err)
			http.Error(w, "could not apply event", http.StatusInternalServerError)
			return
		}
	}

	next := f.Snapshot()
	if err := apispec.CheckCatalog(next, cat); err != nil {
		opts.Errors = errorPayload(err)
		s.writeRendered(w, r, presentation.RendererName, http.StatusUnprocessableEntity, restored, opts)
		return
	}
	opts.Notices = notices.Messages()
	s.writeRendered(w, r, presentation.RendererName, http.StatusOK, next, opts)
}

// handlePrint renders the printable document for the posted state.
func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	values, ok := s.parseForm(w, r)
	if !ok {
		return
	}
	cat, _, err := s.resolveCatalog(r, values.Get(fieldCatalog))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	snap := apispec.FillDefaults(snapshotFromForm(values), cat)
	state, err := form.Restore(snap)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	snap = state.Snapshot()
	if err := apispec.CheckCatalog(snap, cat); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.writeDocument(w, r, snap, cat)
}

// handleAPIPrint is the JSON twin of handlePrint, validated against the
// OpenAPI contract.
func (s *Server) handleAPIPrint(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeProblem(w, http.StatusRequestEntityTooLarge, render.ErrorMapping{Form: []string{"request body too large"}})
			return
		}
		writeProblem(w, http.StatusBadRequest, render.ErrorMapping{Form: []string{"could not read request body"}})
		return
	}

	req, err := s.contract.DecodePrintRequest(body)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, apispec.ErrMalformed) {
			status = http.StatusBadRequest
		}
		writeProblem(w, status, problemMapping(err))
		return
	}

	cat, _, err := s.resolveCatalog(r, req.Catalog)
	if err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, render.ErrorMapping{Form: []string{err.Error()}})
		return
	}
	snap := apispec.FillDefaults(req.Snapshot, cat)
	if err := apispec.CheckCatalog(snap, cat); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, problemMapping(err))
		return
	}
	state, err := form.Restore(snap)
	if err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, render.MapErrorPayload(map[string][]string{render.FieldTraits: {err.Error()}}))
		return
	}
	s.writeDocument(w, r, state.Snapshot(), cat)
}

func (s *Server) handleContract(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	if _, err := w.Write(apispec.Raw()); err != nil {
		s.log.Warn("write contract failed", "error", err)
	}
}

func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) (url.Values, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return nil, false
	}
	return r.PostForm, true
}

// writeDocument prints the snapshot through the PrintBridge straight into the
// response.
func (s *Server) writeDocument(w http.ResponseWriter, r *http.Request, snap form.Snapshot, cat catalog.Catalog) {
	title := form.DocumentTitle(snap.Name, cat)
	style := printdoc.DefaultPageStyle().WithFontFamily(cat.Document.FontFamily)

	w.Header().Set("Content-Type", s.documentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{
		"filename": printdoc.FileName(title),
	}))

	out := &statusRecorder{ResponseWriter: w}
	bridge := printdoc.WriterBridge{W: out, Renderer: s.document}
	if err := printdoc.Print(r.Context(), bridge, printdoc.BuildView(snap, cat), title, style); err != nil {
		if out.status != 0 {
			s.log.Warn("write document failed", "title", title, "error", err)
			return
		}
		s.log.Error("print failed", "title", title, "error", err)
		w.Header().Del("Content-Disposition")
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func (s *Server) writeRendered(w http.ResponseWriter, r *http.Request, name string, status int, snap form.Snapshot, opts render.RenderOptions) {
	renderer, err := s.registry.Get(name)
	if err != nil {
		s.log.Error("renderer lookup failed", "renderer", name, "error", err)
		http.Error(w, "renderer unavailable", http.StatusInternalServerError)
		return
	}
	out, err := renderer.Render(r.Context(), snap, opts)
	if err != nil {
		s.log.Error("render failed", "renderer", name, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		s.log.Warn("write response failed", "renderer", name, "error", err)
	}
}

func pageOptions(cat catalog.Catalog, name string) render.RenderOptions {
	return render.RenderOptions{
		Catalog: cat,
		Hidden:  []render.HiddenField{render.Hidden(fieldCatalog, name)},
	}
}

func problemMapping(err error) render.ErrorMapping {
	var validation *apispec.ValidationError
	if errors.As(err, &validation) {
		return validation.Mapping
	}
	return render.ErrorMapping{Form: []string{err.Error()}}
}

// errorPayload turns a mapping back into the keyed payload RenderOptions
// expects; form-level messages use the empty key.
func errorPayload(err error) map[string][]string {
	mapping := problemMapping(err)
	payload := make(map[string][]string, len(mapping.Fields)+1)
	for field, messages := range mapping.Fields {
		payload[field] = messages
	}
	if len(mapping.Form) > 0 {
		payload[""] = mapping.Form
	}
	return payload
}

func writeProblem(w http.ResponseWriter, status int, mapping render.ErrorMapping) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(mapping)
}

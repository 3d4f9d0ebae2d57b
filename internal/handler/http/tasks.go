package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

const (
	xlsxContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFileName     = "tasks.xlsx"
	attachmentField    = "attachment"
	maxMultipartMemory = 10 << 20
)

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := identityOrReject(w, r)
	if !ok {
		return
	}

	var (
		input      models.TaskInput
		attachment *models.Attachment
	)
	if isMultipart(r) {
		form, ok := parseForm(w, r)
		if !ok {
			return
		}
		defer form.RemoveAll()

		input = models.TaskInput{
			Title:       formValue(form, "title"),
			Description: formValue(form, "description"),
			StartDate:   formValue(form, "start_date"),
			EndDate:     formValue(form, "end_date"),
			Priority:    formValue(form, "priority"),
			Assignees:   formValues(form, "assignees"),
			Projects:    formValues(form, "projects"),
		}

		var err error
		attachment, err = formAttachment(r)
		if err != nil {
			log.Err(err).Msg("reading attachment failed")
			utils.WriteJSON(w, invalidFormResponse, http.StatusBadRequest)
			return
		}
		defer closeAttachment(attachment)
	} else if !decodeJSON(w, r, &input) {
		return
	}

	task, err := h.services.TaskService.CreateTask(ctx, identity.User.UserID, input, attachment)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("task_id", task.TaskID).Msg("task created")
	utils.WriteJSON(w, task, http.StatusCreated)
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrReject(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	// unparsable numbers fall back to the service defaults
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	tasks, err := h.services.TaskService.ListTasks(r.Context(), models.ListTasksRequest{
		UserID:     identity.User.UserID,
		Page:       page,
		Limit:      limit,
		SortColumn: query.Get("sortColumn"),
		SortOrder:  query.Get("sortOrder"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, tasks, http.StatusOK)
}

func (h *Handler) exportTasks(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrReject(w, r)
	if !ok {
		return
	}

	workbook, err := h.services.TaskService.ExportTasks(r.Context(), identity.User.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteAttachment(w, workbook, xlsxContentType, exportFileName)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.services.TaskService.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var (
		update     models.TaskUpdate
		attachment *models.Attachment
		err        error
	)
	if isMultipart(r) {
		form, ok := parseForm(w, r)
		if !ok {
			return
		}
		defer form.RemoveAll()

		update, err = taskUpdateFromForm(form)
		if err != nil {
			writeError(w, r, err)
			return
		}

		attachment, err = formAttachment(r)
		if err != nil {
			log.Err(err).Msg("reading attachment failed")
			utils.WriteJSON(w, invalidFormResponse, http.StatusBadRequest)
			return
		}
		defer closeAttachment(attachment)
	} else {
		update, err = taskUpdateFromJSON(r.Body)
		if err != nil {
			log.Debug().Err(err).Msg("Invalid JSON was passed")
			utils.WriteJSON(w, invalidJSONResponse, http.StatusBadRequest)
			return
		}
	}

	task, err := h.services.TaskService.UpdateTask(ctx, chi.URLParam(r, "id"), update, attachment)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("task_id", task.TaskID).Strs("keys", update.Keys).Msg("task updated")
	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.services.TaskService.DeleteTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) downloadAttachment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	content, key, err := h.services.TaskService.OpenAttachment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer content.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": path.Base(key)}))
	w.WriteHeader(http.StatusOK)

	if _, err = io.Copy(w, content); err != nil {
		log.Err(err).Str("key", key).Msg("streaming attachment failed")
	}
}

// taskUpdateFromJSON decodes an update body and records which keys it held.
func taskUpdateFromJSON(body io.Reader) (models.TaskUpdate, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return models.TaskUpdate{}, err
	}

	var fields map[string]json.RawMessage
	if err = json.Unmarshal(raw, &fields); err != nil {
		return models.TaskUpdate{}, err
	}

	var update models.TaskUpdate
	if err = json.NewDecoder(bytes.NewReader(raw)).Decode(&update); err != nil {
		return models.TaskUpdate{}, err
	}
	update.Keys = sortedKeys(fields)

	return update, nil
}

func taskUpdateFromForm(form *multipart.Form) (models.TaskUpdate, error) {
	update := models.TaskUpdate{Keys: sortedKeys(form.Value)}

	if _, ok := form.Value["title"]; ok {
		title := formValue(form, "title")
		update.Title = &title
	}
	if _, ok := form.Value["description"]; ok {
		description := formValue(form, "description")
		update.Description = &description
	}
	if _, ok := form.Value["priority"]; ok {
		priority := formValue(form, "priority")
		update.Priority = &priority
	}
	if _, ok := form.Value["completed"]; ok {
		completed, err := strconv.ParseBool(formValue(form, "completed"))
		if err != nil {
			return models.TaskUpdate{}, validators.ValidationErrors{{
				Type:     "field",
				Msg:      "Completed must be a boolean",
				Path:     "completed",
				Location: "body",
			}}
		}
		update.Completed = &completed
	}

	return update, nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func parseForm(w http.ResponseWriter, r *http.Request) (*multipart.Form, bool) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("Invalid form was passed")
		utils.WriteJSON(w, invalidFormResponse, http.StatusBadRequest)
		return nil, false
	}
	return r.MultipartForm, true
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// formValues collects repeated fields sent both as key and key[].
func formValues(form *multipart.Form, key string) []string {
	values := slices.Clone(form.Value[key])
	return append(values, form.Value[key+"[]"]...)
}

// formAttachment returns nil when the form carries no file part.
func formAttachment(r *http.Request) (*models.Attachment, error) {
	file, header, err := r.FormFile(attachmentField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &models.Attachment{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Content:     file,
	}, nil
}

func closeAttachment(attachment *models.Attachment) {
	if attachment == nil {
		return
	}
	if c, ok := attachment.Content.(io.Closer); ok {
		c.Close()
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

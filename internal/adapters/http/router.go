package httpadapter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
	"github.com/jobtrackd/jobtrackd/internal/core/ports"
	"github.com/jobtrackd/jobtrackd/internal/core/usecase"
)

// usageRecorder receives domain-level observations from the read endpoints.
type usageRecorder interface {
	RecordTimelineBuild(service string, err error)
	RecordReportExport(service string, err error)
}

type Router struct {
	apps       *usecase.ApplicationUseCase
	notes      *usecase.NoteUseCase
	comms      *usecase.CommunicationUseCase
	reminders  *usecase.ReminderUseCase
	documents  *usecase.DocumentUseCase
	checklists *usecase.ChecklistUseCase
	patterns   *usecase.PatternUseCase
	stats      *usecase.StatsUseCase
	timeline   ports.TimelineBuilder
	engine     ports.DueReminderEngine
	exporter   ports.ReportExporter
	verifier   ports.IdentityVerifier

	service  string
	recorder usageRecorder
}

type RouterDeps struct {
	Applications   *usecase.ApplicationUseCase
	Notes          *usecase.NoteUseCase
	Communications *usecase.CommunicationUseCase
	Reminders      *usecase.ReminderUseCase
	Documents      *usecase.DocumentUseCase
	Checklists     *usecase.ChecklistUseCase
	Patterns       *usecase.PatternUseCase
	Stats          *usecase.StatsUseCase
	Timeline       ports.TimelineBuilder
	Engine         ports.DueReminderEngine
	Exporter       ports.ReportExporter
	Verifier       ports.IdentityVerifier

	Service  string
	Recorder usageRecorder
}

func NewRouter(deps RouterDeps) *Router {
	return &Router{
		apps:       deps.Applications,
		notes:      deps.Notes,
		comms:      deps.Communications,
		reminders:  deps.Reminders,
		documents:  deps.Documents,
		checklists: deps.Checklists,
		patterns:   deps.Patterns,
		stats:      deps.Stats,
		timeline:   deps.Timeline,
		engine:     deps.Engine,
		exporter:   deps.Exporter,
		verifier:   deps.Verifier,
		service:    deps.Service,
		recorder:   deps.Recorder,
	}
}

func (rt *Router) Handler() http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("POST /v1/applications", rt.createApplication)
	api.HandleFunc("GET /v1/applications", rt.listApplications)
	api.HandleFunc("GET /v1/applications/{id}", rt.getApplication)
	api.HandleFunc("PUT /v1/applications/{id}", rt.updateApplication)
	api.HandleFunc("DELETE /v1/applications/{id}", rt.deleteApplication)
	api.HandleFunc("GET /v1/applications/{id}/timeline", rt.getTimeline)

	api.HandleFunc("POST /v1/applications/{id}/notes", rt.addNote)
	api.HandleFunc("GET /v1/applications/{id}/notes", rt.listNotes)
	api.HandleFunc("PUT /v1/notes/{id}", rt.updateNote)
	api.HandleFunc("DELETE /v1/notes/{id}", rt.deleteNote)

	api.HandleFunc("POST /v1/applications/{id}/communications", rt.addCommunication)
	api.HandleFunc("GET /v1/applications/{id}/communications", rt.listCommunications)
	api.HandleFunc("DELETE /v1/communications/{id}", rt.deleteCommunication)

	api.HandleFunc("POST /v1/applications/{id}/reminders", rt.addReminder)
	api.HandleFunc("GET /v1/applications/{id}/reminders", rt.listApplicationReminders)
	api.HandleFunc("GET /v1/reminders", rt.listOwnerReminders)
	api.HandleFunc("GET /v1/reminders/due", rt.currentDueReminder)
	api.HandleFunc("POST /v1/reminders/due/dismiss", rt.dismissDueReminder)
	api.HandleFunc("PUT /v1/reminders/check-interval", rt.setCheckInterval)
	api.HandleFunc("POST /v1/reminders/{id}/complete", rt.completeReminder)
	api.HandleFunc("POST /v1/reminders/{id}/snooze", rt.snoozeReminder)
	api.HandleFunc("POST /v1/reminders/{id}/toggle", rt.toggleReminder)
	api.HandleFunc("DELETE /v1/reminders/{id}", rt.deleteReminder)

	api.HandleFunc("POST /v1/applications/{id}/documents", rt.addDocument)
	api.HandleFunc("GET /v1/applications/{id}/documents", rt.listDocuments)
	api.HandleFunc("GET /v1/applications/{id}/documents/search", rt.searchDocuments)
	api.HandleFunc("DELETE /v1/documents/{id}", rt.deleteDocument)

	api.HandleFunc("GET /v1/templates", rt.listTemplates)
	api.HandleFunc("POST /v1/templates", rt.addTemplate)
	api.HandleFunc("GET /v1/applications/{id}/checklist", rt.listChecklist)
	api.HandleFunc("POST /v1/applications/{id}/checklist", rt.addChecklistItem)
	api.HandleFunc("POST /v1/applications/{id}/checklist/seed", rt.seedChecklist)
	api.HandleFunc("POST /v1/checklist-items/{id}/toggle", rt.toggleChecklistItem)
	api.HandleFunc("DELETE /v1/checklist-items/{id}", rt.deleteChecklistItem)

	api.HandleFunc("POST /v1/patterns", rt.addPattern)
	api.HandleFunc("GET /v1/patterns", rt.listPatterns)
	api.HandleFunc("GET /v1/patterns/{id}", rt.getPattern)
	api.HandleFunc("PUT /v1/patterns/{id}", rt.updatePattern)
	api.HandleFunc("DELETE /v1/patterns/{id}", rt.deletePattern)
	api.HandleFunc("POST /v1/patterns/{id}/duplicate", rt.duplicatePattern)
	api.HandleFunc("POST /v1/patterns/{id}/default", rt.setDefaultPattern)

	api.HandleFunc("GET /v1/stats", rt.getStats)
	api.HandleFunc("GET /v1/appointments", rt.listAppointments)
	api.HandleFunc("GET /v1/export", rt.exportReport)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	mux.Handle("/v1/", authMiddleware(rt.verifier, api))

	return requestIDMiddleware(accessLogMiddleware(mux))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type applicationRequest struct {
	Company       string     `json:"company"`
	Location      string     `json:"location"`
	Position      string     `json:"position"`
	Status        string     `json:"status"`
	AppliedOn     time.Time  `json:"applied_on"`
	AppointmentAt *time.Time `json:"appointment_at"`
}

func (req applicationRequest) toInput() usecase.ApplicationInput {
	return usecase.ApplicationInput{
		Company:       req.Company,
		Location:      req.Location,
		Position:      req.Position,
		Status:        domain.ApplicationStatus(req.Status),
		AppliedOn:     req.AppliedOn,
		AppointmentAt: req.AppointmentAt,
	}
}

func (rt *Router) createApplication(w http.ResponseWriter, r *http.Request) {
	var req applicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	app, err := rt.apps.Create(r.Context(), ownerFromContext(r.Context()), req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (rt *Router) listApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := rt.apps.List(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (rt *Router) getApplication(w http.ResponseWriter, r *http.Request) {
	app, err := rt.apps.Get(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (rt *Router) updateApplication(w http.ResponseWriter, r *http.Request) {
	var req applicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	app, err := rt.apps.Update(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"), req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (rt *Router) deleteApplication(w http.ResponseWriter, r *http.Request) {
	if err := rt.apps.Delete(r.Context(), ownerFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) getTimeline(w http.ResponseWriter, r *http.Request) {
	items, err := rt.timeline.BuildTimeline(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"))
	if rt.recorder != nil {
		rt.recorder.RecordTimelineBuild(rt.service, err)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (rt *Router) addNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := rt.notes.Add(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"), req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (rt *Router) listNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := rt.notes.ListForApplication(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (rt *Router) updateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := rt.notes.Update(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"), req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (rt *Router) deleteNote(w http.ResponseWriter, r *http.Request) {
	if err := rt.notes.Delete(r.Context(), ownerFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) addCommunication(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Channel       string    `json:"channel"`
		Subject       string    `json:"subject"`
		Content       string    `json:"content"`
		OccurredAt    time.Time `json:"occurred_at"`
		Direction     string    `json:"direction"`
		ContactPerson string    `json:"contact_person"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	comm, err := rt.comms.Add(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"), usecase.CommunicationInput{
		Channel:       domain.CommunicationChannel(req.Channel),
		Subject:       req.Subject,
		Content:       req.Content,
		OccurredAt:    req.OccurredAt,
		Direction:     domain.CommunicationDirection(req.Direction),
		ContactPerson: req.ContactPerson,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, comm)
}

func (rt *Router) listCommunications(w http.ResponseWriter, r *http.Request) {
	comms, err := rt.comms.ListForApplication(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comms)
}

func (rt *Router) deleteCommunication(w http.ResponseWriter, r *http.Request) {
	if err := rt.comms.Delete(r.Context(), ownerFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) addReminder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DueAt               time.Time `json:"due_at"`
		ReminderText        string    `json:"reminder_text"`
		NotifyBeforeMinutes int       `json:"notify_before_minutes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	reminder, err := rt.reminders.Add(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"),
		req.DueAt, req.ReminderText, req.NotifyBeforeMinutes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reminder)
}

func (rt *Router) listApplicationReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := rt.reminders.ListForApplication(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reminders)
}

func (rt *Router) listOwnerReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := rt.reminders.ListForOwner(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reminders)
}

func (rt *Router) currentDueReminder(w http.ResponseWriter, r *http.Request) {
	notice := rt.engine.Current(ownerFromContext(r.Context()))
	writeJSON(w, http.StatusOK, map[string]any{"notice": notice})
}

func (rt *Router) dismissDueReminder(w http.ResponseWriter, r *http.Request) {
	rt.engine.Dismiss(ownerFromContext(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) setCheckInterval(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seconds int `json:"seconds"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Seconds <= 0 {
		writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "set check interval", fmt.Errorf("seconds must be positive")))
		return
	}

	rt.engine.SetInterval(time.Duration(req.Seconds) * time.Second)
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) completeReminder(w http.ResponseWriter, r *http.Request) {
	if err := rt.engine.MarkComplete(r.Context(), ownerFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) snoozeReminder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Minutes int `json:"minutes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := rt.engine.Snooze(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"), req.Minutes); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) toggleReminder(w http.ResponseWriter, r *http.Request) {
	reminder, err := rt.reminders.ToggleCompletion(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reminder)
}

func (rt *Router) deleteReminder(w http.ResponseWriter, r *http.Request) {
	if err := rt.reminders.Delete(r.Context(), ownerFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) addDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string   `json:"name"`
		Category string   `json:"category"`
		FileType string   `json:"file_type"`
		FileSize int64    `json:"file_size"`
		Tags     []string `json:"tags"`
		Version  int      `json:"version"`
		DataURI  string   `json:"data_uri"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	doc, err := rt.documents.Add(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"), usecase.DocumentInput{
		Name:     req.Name,
		Category: domain.DocumentCategory(req.Category),
		FileType: req.FileType,
		FileSize: req.FileSize,
		Tags:     req.Tags,
		Version:  req.Version,
		DataURI:  req.DataURI,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := rt.documents.ListForApplication(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (rt *Router) searchDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := rt.documents.Search(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (rt *Router) deleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := rt.documents.Delete(r.Context(), ownerFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := rt.checklists.ListTemplates(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (rt *Router) addTemplate(w http.ResponseWriter, r *http.Request) {
	var req domain.ChecklistTemplate
	if !decodeJSON(w, r, &req) {
		return
	}

	template, err := rt.checklists.AddTemplate(r.Context(), ownerFromContext(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, template)
}

func (rt *Router) listChecklist(w http.ResponseWriter, r *http.Request) {
	items, err := rt.checklists.ListForApplication(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (rt *Router) addChecklistItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Task     string     `json:"task"`
		Category string     `json:"category"`
		Position int        `json:"position"`
		Priority string     `json:"priority"`
		DueOn    *time.Time `json:"due_on"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := rt.checklists.AddItem(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"), usecase.ChecklistItemInput{
		Task:     req.Task,
		Category: req.Category,
		Position: req.Position,
		Priority: domain.Priority(req.Priority),
		DueOn:    req.DueOn,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (rt *Router) seedChecklist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID string `json:"template_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.TemplateID) == "" {
		writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "seed checklist", fmt.Errorf("template_id is required")))
		return
	}

	items, err := rt.checklists.SeedFromTemplate(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"), req.TemplateID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, items)
}

func (rt *Router) toggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	item, err := rt.checklists.ToggleItem(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (rt *Router) deleteChecklistItem(w http.ResponseWriter, r *http.Request) {
	if err := rt.checklists.DeleteItem(r.Context(), ownerFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type patternRequest struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	IsDefault bool     `json:"is_default"`
}

func (req patternRequest) toInput() usecase.PatternInput {
	return usecase.PatternInput{
		Name:      req.Name,
		Type:      domain.PatternType(req.Type),
		Content:   req.Content,
		Tags:      req.Tags,
		IsDefault: req.IsDefault,
	}
}

func (rt *Router) addPattern(w http.ResponseWriter, r *http.Request) {
	var req patternRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pattern, err := rt.patterns.Add(r.Context(), ownerFromContext(r.Context()), req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, pattern)
}

func (rt *Router) listPatterns(w http.ResponseWriter, r *http.Request) {
	patternType := domain.PatternType(r.URL.Query().Get("type"))
	patterns, err := rt.patterns.List(r.Context(), ownerFromContext(r.Context()), patternType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, patterns)
}

func (rt *Router) getPattern(w http.ResponseWriter, r *http.Request) {
	pattern, err := rt.patterns.Get(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pattern)
}

func (rt *Router) updatePattern(w http.ResponseWriter, r *http.Request) {
	var req patternRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pattern, err := rt.patterns.Update(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"), req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pattern)
}

func (rt *Router) deletePattern(w http.ResponseWriter, r *http.Request) {
	if err := rt.patterns.Delete(r.Context(), ownerFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) duplicatePattern(w http.ResponseWriter, r *http.Request) {
	pattern, err := rt.patterns.Duplicate(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, pattern)
}

func (rt *Router) setDefaultPattern(w http.ResponseWriter, r *http.Request) {
	pattern, err := rt.patterns.SetDefault(r.Context(), ownerFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pattern)
}

func (rt *Router) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := rt.stats.Dashboard(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (rt *Router) listAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := rt.stats.UpcomingAppointments(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (rt *Router) exportReport(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromContext(r.Context())
	apps, err := rt.apps.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	stats := usecase.CalculateStats(apps)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="applications.xlsx"`)
	err = rt.exporter.WriteApplicationsReport(w, apps, stats)
	if rt.recorder != nil {
		rt.recorder.RecordReportExport(rt.service, err)
	}
	if err != nil {
		// Headers are already out; all we can do is log.
		slog.Error("report_export_failed",
			"request_id", requestIDFromContext(r.Context()),
			"owner_id", owner,
			"error", err,
		)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

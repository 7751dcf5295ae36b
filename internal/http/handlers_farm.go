package http

import (
	"net/http"

	"github.com/google/uuid"

	"farmbook/internal/core"
)

func (s *Server) handleAnimals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		animals, err := s.store.ListAnimals(r.Context())
		if err != nil {
			respondStoreError(w, r, err, "animals")
			return
		}
		if animals == nil {
			animals = []core.Animal{}
		}
		writeJSON(w, http.StatusOK, animals)

	case http.MethodPost:
		var a core.Animal
		if !decodeJSON(w, r, &a) {
			return
		}
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.Status == "" {
			a.Status = "active"
		}
		if err := a.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := s.store.CreateAnimal(r.Context(), a); err != nil {
			respondStoreError(w, r, err, "animal")
			return
		}
		writeJSON(w, http.StatusCreated, a)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleAnimalByID(w http.ResponseWriter, r *http.Request) {
	id, action := pathSuffix(r, "/api/animals/")
	if id == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if action == "events" {
		s.handleAnimalEvents(w, r, id)
		return
	}
	if action != "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a, err := s.store.GetAnimal(r.Context(), id)
		if err != nil {
			respondStoreError(w, r, err, "animal")
			return
		}
		writeJSON(w, http.StatusOK, a)

	case http.MethodPut:
		var a core.Animal
		if !decodeJSON(w, r, &a) {
			return
		}
		a.ID = id
		if err := a.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := s.store.UpdateAnimal(r.Context(), a); err != nil {
			respondStoreError(w, r, err, "animal")
			return
		}
		writeJSON(w, http.StatusOK, a)

	case http.MethodDelete:
		if err := s.store.DeleteAnimal(r.Context(), id); err != nil {
			respondStoreError(w, r, err, "animal")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleAnimalEvents(w http.ResponseWriter, r *http.Request, animalID string) {
	switch r.Method {
	case http.MethodGet:
		events, err := s.store.ListAnimalEvents(r.Context(), animalID)
		if err != nil {
			respondStoreError(w, r, err, "animal events")
			return
		}
		if events == nil {
			events = []core.AnimalEvent{}
		}
		writeJSON(w, http.StatusOK, events)

	case http.MethodPost:
		// The animal must exist before history can be attached to it.
		if _, err := s.store.GetAnimal(r.Context(), animalID); err != nil {
			respondStoreError(w, r, err, "animal")
			return
		}

		var e core.AnimalEvent
		if !decodeJSON(w, r, &e) {
			return
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		e.AnimalID = animalID
		if err := e.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := s.store.AddAnimalEvent(r.Context(), e); err != nil {
			respondStoreError(w, r, err, "animal event")
			return
		}
		writeJSON(w, http.StatusCreated, e)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tasks, err := s.store.ListTasks(r.Context())
		if err != nil {
			respondStoreError(w, r, err, "tasks")
			return
		}
		if tasks == nil {
			tasks = []core.Task{}
		}
		writeJSON(w, http.StatusOK, tasks)

	case http.MethodPost:
		var t core.Task
		if !decodeJSON(w, r, &t) {
			return
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if err := t.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := s.store.CreateTask(r.Context(), t); err != nil {
			respondStoreError(w, r, err, "task")
			return
		}
		writeJSON(w, http.StatusCreated, t)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleTaskByID(w http.ResponseWriter, r *http.Request) {
	id, action := pathSuffix(r, "/api/tasks/")
	if id == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch {
	case action == "done" && r.Method == http.MethodPost:
		if err := s.store.MarkTaskDone(r.Context(), id); err != nil {
			respondStoreError(w, r, err, "task")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case action == "" && r.Method == http.MethodPut:
		var t core.Task
		if !decodeJSON(w, r, &t) {
			return
		}
		t.ID = id
		if err := t.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := s.store.UpdateTask(r.Context(), t); err != nil {
			respondStoreError(w, r, err, "task")
			return
		}
		writeJSON(w, http.StatusOK, t)

	case action == "" && r.Method == http.MethodDelete:
		if err := s.store.DeleteTask(r.Context(), id); err != nil {
			respondStoreError(w, r, err, "task")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zafiri/staff-portal/internal/api/metrics"
	"github.com/zafiri/staff-portal/internal/core/domain"
	"github.com/zafiri/staff-portal/internal/core/ports"
)

// unknownDepartment buckets users with a missing or blank department.
const unknownDepartment = "Unknown"

// rowPhase is the lifecycle of a single roster row:
// viewing → editing → (saving → viewing | viewing) and
// viewing → deleting → (removed | viewing).
type rowPhase int

const (
	rowViewing rowPhase = iota
	rowEditing
	rowSaving
	rowDeleting
)

// rosterState is the per-session collection plus the single edit cursor.
// editingID being a pointer makes "at most one row editable" structural.
type rosterState struct {
	users     []domain.UserRecord
	editingID *string
	phases    map[string]rowPhase
}

func (st *rosterState) phase(id string) rowPhase {
	return st.phases[id]
}

func (st *rosterState) find(id string) *domain.UserRecord {
	for i := range st.users {
		if st.users[i].ID == id {
			return &st.users[i]
		}
	}
	return nil
}

// RosterService manages each session's user collection: fetch, department
// stats, inline edit, save, and delete. Backend calls run outside the
// lock; row phases guard against re-entrant transitions while a call is
// in flight.
type RosterService struct {
	client ports.DirectoryClient
	audit  ports.AuditSink
	logger zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*rosterState
}

func NewRosterService(client ports.DirectoryClient, audit ports.AuditSink, logger zerolog.Logger) *RosterService {
	return &RosterService{
		client:   client,
		audit:    audit,
		logger:   logger,
		sessions: make(map[string]*rosterState),
	}
}

func (s *RosterService) Users(ctx context.Context, sessionID string) ([]domain.UserRecord, error) {
	s.mu.Lock()
	if st, ok := s.sessions[sessionID]; ok {
		users := append([]domain.UserRecord(nil), st.users...)
		s.mu.Unlock()
		return users, nil
	}
	s.mu.Unlock()
	return s.Refresh(ctx, sessionID)
}

func (s *RosterService) Refresh(ctx context.Context, sessionID string) ([]domain.UserRecord, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sessionID] = &rosterState{
		users:  users,
		phases: make(map[string]rowPhase),
	}
	out := append([]domain.UserRecord(nil), users...)
	s.mu.Unlock()
	return out, nil
}

// Stats recomputes the department counts from the current collection on
// every call. The reduction is order-independent and never cached.
func (s *RosterService) Stats(ctx context.Context, sessionID string) (map[string]int, error) {
	users, err := s.Users(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return DepartmentCounts(users), nil
}

// DepartmentCounts groups users by trimmed department, blank → "Unknown".
func DepartmentCounts(users []domain.UserRecord) map[string]int {
	counts := make(map[string]int)
	for _, u := range users {
		dept := strings.TrimSpace(u.Department)
		if dept == "" {
			dept = unknownDepartment
		}
		counts[dept]++
	}
	return counts
}

// StartEdit opens the edit form for one row. Any other in-progress edit
// is cancelled implicitly; the password field is never prefilled.
func (s *RosterService) StartEdit(ctx context.Context, sessionID, userID string) (*ports.EditForm, error) {
	if _, err := s.Users(ctx, sessionID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	row := st.find(userID)
	if row == nil {
		return nil, domain.ErrUserNotFound
	}
	if p := st.phase(userID); p == rowSaving || p == rowDeleting {
		return nil, domain.ErrRowBusy
	}

	if st.editingID != nil && *st.editingID != userID {
		delete(st.phases, *st.editingID)
	}
	id := userID
	st.editingID = &id
	st.phases[userID] = rowEditing

	return &ports.EditForm{
		Username:   row.Username,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		Email:      row.Email,
		Department: row.Department,
	}, nil
}

func (s *RosterService) CancelEdit(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok || st.editingID == nil {
		return domain.ErrNoActiveEdit
	}
	if st.phase(*st.editingID) == rowSaving {
		return domain.ErrRowBusy
	}
	delete(st.phases, *st.editingID)
	st.editingID = nil
	return nil
}

// SaveEdit diffs the form against the row under edit, PATCHes only the
// changed fields (plus the password when the toggle is on), and merges
// the backend's response into the local collection.
func (s *RosterService) SaveEdit(ctx context.Context, sessionID string, form ports.EditForm, changePassword bool) (*domain.UserRecord, error) {
	s.mu.Lock()
	st, ok := s.sessions[sessionID]
	if !ok || st.editingID == nil {
		s.mu.Unlock()
		return nil, domain.ErrNoActiveEdit
	}
	id := *st.editingID
	if st.phase(id) == rowSaving {
		s.mu.Unlock()
		return nil, domain.ErrRowBusy
	}
	row := st.find(id)
	if row == nil {
		st.editingID = nil
		s.mu.Unlock()
		return nil, domain.ErrUserNotFound
	}

	fields := changedFields(*row, form)
	if changePassword && form.Password != "" {
		fields["password"] = form.Password
	}
	st.phases[id] = rowSaving
	s.mu.Unlock()

	updated, err := s.client.UpdateUser(ctx, id, fields)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Session may have been refreshed while the call was in flight;
	// discard the stale result instead of touching new state.
	st, ok = s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrNoActiveEdit
	}

	if err != nil {
		st.phases[id] = rowEditing
		metrics.RosterOpsTotal.WithLabelValues("save", "failed").Inc()
		s.submitAudit(sessionID, "update_user", id, ports.AuditOutcomeFailed, err.Error())
		return nil, err
	}

	row = st.find(id)
	if row != nil {
		mergeRow(row, updated, fields)
	}
	delete(st.phases, id)
	if st.editingID != nil && *st.editingID == id {
		st.editingID = nil
	}

	metrics.RosterOpsTotal.WithLabelValues("save", "ok").Inc()
	s.submitAudit(sessionID, "update_user", id, ports.AuditOutcomeOK, "")

	if row == nil {
		return updated, nil
	}
	merged := *row
	return &merged, nil
}

// Delete removes a row after explicit confirmation. A failed backend
// delete leaves the collection untouched.
func (s *RosterService) Delete(ctx context.Context, sessionID, userID string, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmRequired
	}
	if _, err := s.Users(ctx, sessionID); err != nil {
		return err
	}

	s.mu.Lock()
	st, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return domain.ErrUserNotFound
	}
	if st.find(userID) == nil {
		s.mu.Unlock()
		return domain.ErrUserNotFound
	}
	if p := st.phase(userID); p == rowSaving || p == rowDeleting {
		s.mu.Unlock()
		return domain.ErrRowBusy
	}
	st.phases[userID] = rowDeleting
	s.mu.Unlock()

	err := s.client.DeleteUser(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok = s.sessions[sessionID]
	if !ok {
		return err
	}

	if err != nil {
		delete(st.phases, userID)
		metrics.RosterOpsTotal.WithLabelValues("delete", "failed").Inc()
		s.submitAudit(sessionID, "delete_user", userID, ports.AuditOutcomeFailed, err.Error())
		return err
	}

	kept := st.users[:0]
	for _, u := range st.users {
		if u.ID != userID {
			kept = append(kept, u)
		}
	}
	st.users = kept
	delete(st.phases, userID)
	if st.editingID != nil && *st.editingID == userID {
		st.editingID = nil
	}

	metrics.RosterOpsTotal.WithLabelValues("delete", "ok").Inc()
	s.submitAudit(sessionID, "delete_user", userID, ports.AuditOutcomeOK, "")
	s.logger.Info().Str("user_id", userID).Msg("user deleted")
	return nil
}

// changedFields returns only the edit-form fields that differ from the
// current row, keyed by the backend's update field names.
func changedFields(row domain.UserRecord, form ports.EditForm) map[string]any {
	fields := make(map[string]any)
	if form.Username != row.Username {
		fields["username"] = form.Username
	}
	if form.FirstName != row.FirstName {
		fields["first_name"] = form.FirstName
	}
	if form.LastName != row.LastName {
		fields["last_name"] = form.LastName
	}
	if form.Email != row.Email {
		fields["email"] = form.Email
	}
	if form.Department != row.Department {
		fields["department"] = form.Department
	}
	return fields
}

// mergeRow applies the backend response first, then the local payload on
// top, so what the operator just typed always wins the render.
func mergeRow(row *domain.UserRecord, updated *domain.UserRecord, fields map[string]any) {
	if updated != nil {
		id := row.ID
		*row = *updated
		if row.ID == "" {
			row.ID = id
		}
	}
	for key, val := range fields {
		str, _ := val.(string)
		switch key {
		case "username":
			row.Username = str
		case "first_name":
			row.FirstName = str
		case "last_name":
			row.LastName = str
		case "email":
			row.Email = str
		case "department":
			row.Department = str
		}
		// password intentionally never lands in the row
	}
}

func (s *RosterService) submitAudit(actor, action, target, outcome, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Submit(ports.AuditEntry{
		Actor:   actor,
		Action:  action,
		Target:  target,
		Outcome: outcome,
		Detail:  detail,
		At:      time.Now().UTC(),
	})
}

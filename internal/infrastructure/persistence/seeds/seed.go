// Package seeds populates a development database with demo users and
// tickets.
package seeds

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/logger"

	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "FHSU1234"

type seedUser struct {
	email       string
	displayName string
	role        authorization.UserRole
}

type seedHistory struct {
	actor   string // email of the acting user
	summary string
	changes map[string]interface{}
}

type seedTicket struct {
	key         string
	title       string
	description string
	status      string
	priority    string
	ticketType  string
	reporter    string
	assignee    string
	watchers    []string
	history     []seedHistory
	dueIn       time.Duration
	resolvedNow bool
	closedNow   bool
}

// Run inserts the demo dataset. Users are upserted by email and
// tickets are skipped when their key already exists, so reseeding is
// safe.
func Run(db *gorm.DB) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	userIDs := make(map[string]uint)
	for _, su := range seedUsers() {
		id, err := upsertUser(db, su, string(passwordHash))
		if err != nil {
			return err
		}
		userIDs[su.email] = id
	}

	for _, st := range seedTickets() {
		if err := createTicket(db, st, userIDs); err != nil {
			return err
		}
	}

	logger.Info("seed complete", "users", len(userIDs))
	return nil
}

func upsertUser(db *gorm.DB, su seedUser, passwordHash string) (uint, error) {
	var model models.UserModel
	err := db.Where("email = ?", su.email).First(&model).Error

	switch {
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		model = models.UserModel{
			Email:        su.email,
			PasswordHash: passwordHash,
			DisplayName:  su.displayName,
			Role:         su.role.String(),
			IsActive:     true,
		}
		if err := db.Create(&model).Error; err != nil {
			return 0, fmt.Errorf("failed to seed user %s: %w", su.email, err)
		}
	case err != nil:
		return 0, fmt.Errorf("failed to look up user %s: %w", su.email, err)
	default:
		updates := map[string]interface{}{
			"display_name": su.displayName,
			"role":         su.role.String(),
			"is_active":    true,
		}
		if err := db.Model(&model).Updates(updates).Error; err != nil {
			return 0, fmt.Errorf("failed to update user %s: %w", su.email, err)
		}
	}

	return model.ID, nil
}

func createTicket(db *gorm.DB, st seedTicket, userIDs map[string]uint) error {
	var existing int64
	if err := db.Model(&models.TicketModel{}).Where("`key` = ?", st.key).Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to check ticket %s: %w", st.key, err)
	}
	if existing > 0 {
		return nil
	}

	now := time.Now()

	model := models.TicketModel{
		Key:         st.key,
		Title:       st.title,
		Description: st.description,
		Status:      st.status,
		Priority:    st.priority,
		Type:        st.ticketType,
		ReporterID:  userIDs[st.reporter],
	}

	if st.assignee != "" {
		assigneeID := userIDs[st.assignee]
		model.AssigneeID = &assigneeID
	}
	if st.dueIn > 0 {
		due := now.Add(st.dueIn)
		model.DueAt = &due
	}
	if st.resolvedNow {
		model.ResolvedAt = &now
	}
	if st.closedNow {
		model.ClosedAt = &now
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to seed ticket %s: %w", st.key, err)
		}

		for _, w := range st.watchers {
			watcher := models.WatcherModel{TicketID: model.ID, UserID: userIDs[w]}
			if err := tx.Create(&watcher).Error; err != nil {
				return fmt.Errorf("failed to seed watcher on %s: %w", st.key, err)
			}
		}

		for _, h := range st.history {
			entry := models.TicketHistoryModel{
				TicketID: model.ID,
				Summary:  h.summary,
			}
			if h.actor != "" {
				actorID := userIDs[h.actor]
				entry.ActorID = &actorID
			}
			if h.changes != nil {
				changesJSON, err := json.Marshal(h.changes)
				if err != nil {
					return fmt.Errorf("failed to marshal seed history for %s: %w", st.key, err)
				}
				entry.Changes = changesJSON
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to seed history on %s: %w", st.key, err)
			}
		}

		return nil
	})
}

func seedUsers() []seedUser {
	return []seedUser{
		{email: "kylewhat@gmail.com", displayName: "Kyle Frischman", role: authorization.RoleAdmin},
		{email: "k_gibson4@mail.fhsu.edu", displayName: "Kyle Gibson", role: authorization.RoleAdmin},
		{email: "cmguinnee@mail.fhsu.edu", displayName: "Cameron Guinnee", role: authorization.RoleAdmin},
		{email: "j_swanson2@mail.fhsu.edu", displayName: "Jordan Swanson", role: authorization.RoleAdmin},
		{email: "alex.lee@example.com", displayName: "Alex Lee", role: authorization.RoleUser},
		{email: "sam.taylor@example.com", displayName: "Sam Taylor", role: authorization.RoleUser},
		{email: "riley.morgan@example.com", displayName: "Riley Morgan", role: authorization.RoleUser},
		{email: "jamie.chen@example.com", displayName: "Jamie Chen", role: authorization.RoleUser},
	}
}

func statusChange(from, to string) map[string]interface{} {
	return map[string]interface{}{
		"status": map[string]interface{}{"from": from, "to": to},
	}
}

func seedTickets() []seedTicket {
	return []seedTicket{
		{
			key:         "TCK-1",
			title:       "Login fails with 401 for student portal",
			description: "Users report 401 on valid credentials.",
			status:      "OPEN",
			priority:    "HIGH",
			ticketType:  "BUG",
			reporter:    "kylewhat@gmail.com",
			assignee:    "alex.lee@example.com",
			watchers:    []string{"kylewhat@gmail.com", "sam.taylor@example.com"},
			history: []seedHistory{
				{actor: "kylewhat@gmail.com", summary: "Ticket created"},
			},
		},
		{
			key:         "TCK-2",
			title:       "Add \"Forgot Password\" flow",
			description: "Implement email reset with token.",
			status:      "IN_PROGRESS",
			priority:    "MEDIUM",
			ticketType:  "FEATURE",
			reporter:    "k_gibson4@mail.fhsu.edu",
			assignee:    "sam.taylor@example.com",
			watchers:    []string{"k_gibson4@mail.fhsu.edu", "riley.morgan@example.com"},
			history: []seedHistory{
				{actor: "k_gibson4@mail.fhsu.edu", summary: "Ticket created"},
				{actor: "sam.taylor@example.com", summary: "Ticket updated", changes: statusChange("OPEN", "IN_PROGRESS")},
			},
		},
		{
			key:         "TCK-3",
			title:       "Outage on lab printers (3rd floor)",
			description: "Intermittent jam + overheating alert.",
			status:      "RESOLVED",
			priority:    "CRITICAL",
			ticketType:  "INCIDENT",
			reporter:    "cmguinnee@mail.fhsu.edu",
			assignee:    "jamie.chen@example.com",
			watchers:    []string{"cmguinnee@mail.fhsu.edu", "jamie.chen@example.com"},
			resolvedNow: true,
			history: []seedHistory{
				{actor: "cmguinnee@mail.fhsu.edu", summary: "Ticket created"},
				{actor: "jamie.chen@example.com", summary: "Ticket updated", changes: statusChange("IN_PROGRESS", "RESOLVED")},
			},
		},
		{
			key:         "TCK-4",
			title:       "Orientation form typo",
			description: "\"Adress\" -> \"Address\" on step 2.",
			status:      "CLOSED",
			priority:    "LOW",
			ticketType:  "TASK",
			reporter:    "j_swanson2@mail.fhsu.edu",
			assignee:    "riley.morgan@example.com",
			watchers:    []string{"j_swanson2@mail.fhsu.edu"},
			closedNow:   true,
			history: []seedHistory{
				{actor: "j_swanson2@mail.fhsu.edu", summary: "Ticket created"},
				{actor: "riley.morgan@example.com", summary: "Ticket updated", changes: statusChange("RESOLVED", "CLOSED")},
			},
		},
		{
			key:         "TCK-5",
			title:       "Re-open: MFA prompt loops",
			description: "Users stuck in a loop after successful MFA.",
			status:      "REOPENED",
			priority:    "HIGH",
			ticketType:  "BUG",
			reporter:    "kylewhat@gmail.com",
			assignee:    "alex.lee@example.com",
			watchers:    []string{"k_gibson4@mail.fhsu.edu", "alex.lee@example.com"},
			history: []seedHistory{
				{actor: "kylewhat@gmail.com", summary: "Ticket created"},
				{actor: "kylewhat@gmail.com", summary: "Ticket updated", changes: statusChange("CLOSED", "REOPENED")},
			},
		},
		{
			key:         "TCK-6",
			title:       "Waiting on vendor response for SSO mapping",
			description: "Vendor ticket #84923 pending.",
			status:      "ON_HOLD",
			priority:    "MEDIUM",
			ticketType:  "SUPPORT",
			reporter:    "k_gibson4@mail.fhsu.edu",
			assignee:    "sam.taylor@example.com",
			watchers:    []string{"sam.taylor@example.com"},
			dueIn:       72 * time.Hour,
			history: []seedHistory{
				{actor: "k_gibson4@mail.fhsu.edu", summary: "Ticket created"},
				{actor: "sam.taylor@example.com", summary: "Ticket updated", changes: statusChange("IN_PROGRESS", "ON_HOLD")},
			},
		},
		{
			key:         "TCK-7",
			title:       "Student profile picture upload fails",
			description: "Multipart form boundary mismatch.",
			status:      "OPEN",
			priority:    "MEDIUM",
			ticketType:  "BUG",
			reporter:    "cmguinnee@mail.fhsu.edu",
			assignee:    "riley.morgan@example.com",
			watchers:    []string{"riley.morgan@example.com"},
			history: []seedHistory{
				{actor: "cmguinnee@mail.fhsu.edu", summary: "Ticket created"},
			},
		},
		{
			key:         "TCK-8",
			title:       "Add dark mode to help center",
			description: "Theme toggle + persisted preference.",
			status:      "IN_PROGRESS",
			priority:    "LOW",
			ticketType:  "FEATURE",
			reporter:    "j_swanson2@mail.fhsu.edu",
			assignee:    "jamie.chen@example.com",
			watchers:    []string{"j_swanson2@mail.fhsu.edu", "jamie.chen@example.com"},
			history: []seedHistory{
				{actor: "j_swanson2@mail.fhsu.edu", summary: "Ticket created"},
				{actor: "jamie.chen@example.com", summary: "Ticket updated", changes: statusChange("OPEN", "IN_PROGRESS")},
			},
		},
	}
}

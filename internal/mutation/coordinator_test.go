package mutation_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clubos/community-backend/internal/database"
	"github.com/clubos/community-backend/internal/models"
	"github.com/clubos/community-backend/internal/mutation"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createProfile(t *testing.T, db *gorm.DB, subject, email string, admin bool) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		ID:         uuid.New(),
		ExternalID: &subject,
		Email:      email,
		IsAdmin:    admin,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return profile
}

type recordingNotifier struct {
	slots  []models.DemoSlot
	emails []string
}

func (r *recordingNotifier) DemoSlotStatusChanged(slot models.DemoSlot, email string) {
	r.slots = append(r.slots, slot)
	r.emails = append(r.emails, email)
}

func newCoordinator(db *gorm.DB, notifier mutation.Notifier) *mutation.Coordinator {
	registry := mutation.NewRegistry(&mutation.Env{Notifier: notifier})
	return mutation.NewCoordinator(db, registry)
}

func userCtx(subject string) *mutation.Context {
	return &mutation.Context{Subject: subject, Role: mutation.RoleUser}
}

func adminCtx(subject string) *mutation.Context {
	return &mutation.Context{Subject: subject, Role: mutation.RoleAdmin}
}

func exec(t *testing.T, c *mutation.Coordinator, ec *mutation.Context, name string, args any) mutation.Result {
	t.Helper()
	raw, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("marshal args: %v", err)
	}
	results, err := c.Execute(context.Background(), ec, []mutation.Request{
		{ID: 1, ClientID: "client-1", Name: name, Args: raw},
	})
	if err != nil {
		t.Fatalf("execute %s: %v", name, err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	return results[0]
}

func mustSucceed(t *testing.T, res mutation.Result) map[string]any {
	t.Helper()
	if res.Result.Error != "" {
		t.Fatalf("expected success, got error: %s", res.Result.Message)
	}
	data, ok := res.Result.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected map payload, got %T", res.Result.Data)
	}
	return data
}

func mustFail(t *testing.T, res mutation.Result) string {
	t.Helper()
	if res.Result.Error != "app" {
		t.Fatalf("expected app error, got %+v", res.Result)
	}
	return res.Result.Message
}

func TestProfileUpdateRejectsForeignSubject(t *testing.T) {
	db := newTestDB(t)
	c := newCoordinator(db, nil)

	p1 := createProfile(t, db, "subject-1", "one@example.org", false)
	db.Model(p1).Update("bio", "original")

	res := exec(t, c, userCtx("subject-2"), "profiles.update", map[string]any{
		"id": p1.ID.String(), "bio": "x",
	})
	mustFail(t, res)

	var after models.Profile
	if err := db.First(&after, "id = ?", p1.ID).Error; err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if after.Bio != "original" {
		t.Fatalf("bio changed despite rejection: %q", after.Bio)
	}
}

func TestProfileUpdateHasNoAdminOverride(t *testing.T) {
	db := newTestDB(t)
	c := newCoordinator(db, nil)

	p1 := createProfile(t, db, "subject-1", "one@example.org", false)
	createProfile(t, db, "subject-admin", "admin@example.org", true)

	res := exec(t, c, adminCtx("subject-admin"), "profiles.update", map[string]any{
		"id": p1.ID.String(), "bio": "admin edit",
	})
	mustFail(t, res)
}

func TestProfileCreateLinksSubjectOnce(t *testing.T) {
	db := newTestDB(t)
	c := newCoordinator(db, nil)

	data := mustSucceed(t, exec(t, c, userCtx("subject-1"), "profiles.create", map[string]any{
		"email": "one@example.org",
	}))
	if data["id"] == "" {
		t.Fatal("expected new profile id")
	}

	msg := mustFail(t, exec(t, c, userCtx("subject-1"), "profiles.create", map[string]any{
		"email": "other@example.org",
	}))
	if msg != "account is already linked to a profile" {
		t.Fatalf("unexpected conflict message: %q", msg)
	}

	// Email uniqueness across subjects.
	mustFail(t, exec(t, c, userCtx("subject-2"), "profiles.create", map[string]any{
		"email": "one@example.org",
	}))

	var count int64
	db.Model(&models.Profile{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 profile, got %d", count)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	db := newTestDB(t)
	c := newCoordinator(db, nil)
	p1 := createProfile(t, db, "subject-1", "one@example.org", false)

	data := mustSucceed(t, exec(t, c, userCtx("subject-1"), "projects.create", map[string]any{
		"memberId":    p1.ID.String(),
		"title":       "Mesh Radio",
		"description": "LoRa mesh for the clubhouse",
		"tags":        []string{"hardware", "radio"},
		"repoUrl":     "https://example.org/mesh",
		"demoUrl":     "https://mesh.example.org",
	}))

	id, err := uuid.Parse(data["id"].(string))
	if err != nil {
		t.Fatalf("bad project id: %v", err)
	}

	var project models.Project
	if err := db.First(&project, "id = ?", id).Error; err != nil {
		t.Fatalf("read back project: %v", err)
	}
	if project.Title != "Mesh Radio" || project.Description != "LoRa mesh for the clubhouse" {
		t.Fatalf("string fields changed on round trip: %+v", project)
	}
	if project.RepoURL != "https://example.org/mesh" || project.DemoURL != "https://mesh.example.org" {
		t.Fatalf("link fields changed on round trip: %+v", project)
	}

	want := map[string]bool{"hardware": true, "radio": true}
	if len(project.Tags) != len(want) {
		t.Fatalf("tag count mismatch: %v", project.Tags)
	}
	for _, tag := range project.Tags {
		if !want[tag] {
			t.Fatalf("unexpected tag %q", tag)
		}
	}
}

func TestProjectCreateRequiresOwnMemberID(t *testing.T) {
	db := newTestDB(t)
	c := newCoordinator(db, nil)
	p1 := createProfile(t, db, "subject-1", "one@example.org", false)
	createProfile(t, db, "subject-2", "two@example.org", false)

	mustFail(t, exec(t, c, userCtx("subject-2"), "projects.create", map[string]any{
		"memberId": p1.ID.String(),
		"title":    "Not mine",
	}))

	var count int64
	db.Model(&models.Project{}).Count(&count)
	if count != 0 {
		t.Fatalf("project created despite rejection")
	}
}

func TestProjectUpdateAndDeleteOwnership(t *testing.T) {
	db := newTestDB(t)
	c := newCoordinator(db, nil)
	p1 := createProfile(t, db, "subject-1", "one@example.org", false)
	createProfile(t, db, "subject-2", "two@example.org", false)

	data := mustSucceed(t, exec(t, c, userCtx("subject-1"), "projects.create", map[string]any{
		"memberId": p1.ID.String(), "title": "Original",
	}))
	projectID := data["id"].(string)

	mustFail(t, exec(t, c, userCtx("subject-2"), "projects.update", map[string]any{
		"id": projectID, "title": "Hijacked",
	}))
	var project models.Project
	db.First(&project, "id = ?", projectID)
	if project.Title != "Original" {
		t.Fatalf("title changed despite rejection: %q", project.Title)
	}

	mustFail(t, exec(t, c, userCtx("subject-2"), "projects.delete", map[string]any{"id": projectID}))
	var count int64
	db.Model(&models.Project{}).Count(&count)
	if count != 1 {
		t.Fatal("project deleted despite rejection")
	}

	mustSucceed(t, exec(t, c, userCtx("subject-1"), "projects.delete", map[string]any{"id": projectID}))
	db.Model(&models.Project{}).Count(&count)
	if count != 0 {
		t.Fatal("project not deleted by owner")
	}

	mustFail(t, exec(t, c, userCtx("subject-1"), "projects.update", map[string]any{
		"id": uuid.NewString(), "title": "Ghost",
	}))
}

func TestCheckInDuplicateIsDistinctConflict(t *testing.T) {
	db := newTestDB(t)
	c := newCoordinator(db, nil)
	p1 := createProfile(t, db, "subject-1", "one@example.org", false)

	args := map[string]any{"memberId": p1.ID.String(), "lumaEventId": "evt-123"}
	mustSucceed(t, exec(t, c, userCtx("subject-1"), "attendance.checkIn", args))

	msg := mustFail(t, exec(t, c, userCtx("subject-1"), "attendance.checkIn", args))
	if msg != "already checked in to this event" {
		t.Fatalf("expected distinct conflict message, got %q", msg)
	}

	var count int64
	db.Model(&models.Attendance{}).
		Where("member_id = ? AND luma_event_id = ?", p1.ID, "evt-123").
		Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 attendance row, got %d", count)
	}

	var after models.Profile
	db.First(&after, "id = ?", p1.ID)
	if after.AttendanceStreak != 1 {
		t.Fatalf("streak bumped on rejected check-in: %d", after.AttendanceStreak)
	}
}

func TestCheckInRejectsForeignMember(t *testing.T) {
	db := newTestDB(t)
	c := newCoordinator(db, nil)
	p1 := createProfile(t, db, "subject-1", "one@example.org", false)
	createProfile(t, db, "subject-2", "two@example.org", false)

	mustFail(t, exec(t, c, userCtx("subject-2"), "attendance.checkIn", map[string]any{
		"memberId": p1.ID.String(), "lumaEventId": "evt-123",
	}))

	var count int64
	db.Model(&models.Attendance{}).Count(&count)
	if count != 0 {
		t.Fatal("attendance written despite rejection")
	}
}

func TestSurveyResponseUpsertIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	c := newCoordinator(db, nil)
	p1 := createProfile(t, db, "subject-1", "one@example.org", false)

	mustSucceed(t, exec(t, c, userCtx("subject-1"), "surveyResponses.submit", map[string]any{
		"memberId": p1.ID.String(),
		"surveyId": "spring-2026",
		"answers":  map[string]any{"q1": "first pass"},
	}))

	data := mustSucceed(t, exec(t, c, userCtx("subject-1"), "surveyResponses.submit", map[string]any{
		"memberId":  p1.ID.String(),
		"surveyId":  "spring-2026",
		"answers":   map[string]any{"q1": "second pass", "q2": "new"},
		"completed": true,
	}))
	if data["updated"] != true {
		t.Fatalf("second submit should update, got %+v", data)
	}

	var responses []models.SurveyResponse
	db.Where("member_id = ? AND survey_id = ?", p1.ID, "spring-2026").Find(&responses)
	if len(responses) != 1 {
		t.Fatalf("expected exactly 1 response row, got %d", len(responses))
	}
	if responses[0].Answers["q1"] != "second pass" {
		t.Fatalf("answers not replaced by second submit: %+v", responses[0].Answers)
	}
	if !responses[0].Completed {
		t.Fatal("completed flag not updated")
	}
}

func TestDemoSlotLifecycle(t *testing.T) {
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	c := newCoordinator(db, notifier)

	p1 := createProfile(t, db, "subject-1", "one@example.org", false)
	createProfile(t, db, "subject-2", "two@example.org", false)
	createProfile(t, db, "subject-admin", "admin@example.org", true)

	data := mustSucceed(t, exec(t, c, userCtx("subject-1"), "demoSlots.request", map[string]any{
		"memberId":    p1.ID.String(),
		"lumaEventId": "evt-9",
		"title":       "Live demo",
	}))
	if data["status"] != models.DemoSlotPending {
		t.Fatalf("initial status must be pending, got %v", data["status"])
	}
	slotID := data["id"].(string)

	// A different non-admin profile cannot touch the slot.
	mustFail(t, exec(t, c, userCtx("subject-2"), "demoSlots.updateStatus", map[string]any{
		"id": slotID, "status": "confirmed",
	}))

	// The owner can confirm pending → confirmed.
	data = mustSucceed(t, exec(t, c, userCtx("subject-1"), "demoSlots.updateStatus", map[string]any{
		"id": slotID, "status": "confirmed",
	}))
	if data["status"] != models.DemoSlotConfirmed {
		t.Fatalf("expected confirmed, got %v", data["status"])
	}
	if len(notifier.slots) != 1 || notifier.emails[0] != "one@example.org" {
		t.Fatalf("owner not notified after commit: %+v", notifier.emails)
	}

	// Confirmed is terminal, even for a replay of the same status.
	msg := mustFail(t, exec(t, c, userCtx("subject-1"), "demoSlots.updateStatus", map[string]any{
		"id": slotID, "status": "confirmed",
	}))
	if msg != "slot is already confirmed" {
		t.Fatalf("unexpected terminal-state message: %q", msg)
	}
	if len(notifier.slots) != 1 {
		t.Fatal("notifier fired for a rejected transition")
	}
}

func TestDemoSlotAdminOverride(t *testing.T) {
	db := newTestDB(t)
	c := newCoordinator(db, nil)

	p1 := createProfile(t, db, "subject-1", "one@example.org", false)
	createProfile(t, db, "subject-admin", "admin@example.org", true)

	data := mustSucceed(t, exec(t, c, userCtx("subject-1"), "demoSlots.request", map[string]any{
		"memberId":    p1.ID.String(),
		"lumaEventId": "evt-9",
		"title":       "Live demo",
	}))
	slotID := data["id"].(string)

	data = mustSucceed(t, exec(t, c, adminCtx("subject-admin"), "demoSlots.updateStatus", map[string]any{
		"id": slotID, "status": "confirmed",
	}))
	if data["status"] != models.DemoSlotConfirmed {
		t.Fatalf("admin override failed: %v", data)
	}

	var slot models.DemoSlot
	db.First(&slot, "id = ?", slotID)
	if !slot.OrganizerConfirmed {
		t.Fatal("organizer confirmation flag not set on admin confirm")
	}
}

func TestBatchIsolatesFailures(t *testing.T) {
	db := newTestDB(t)
	c := newCoordinator(db, nil)

	raw := func(v any) json.RawMessage {
		b, _ := json.Marshal(v)
		return b
	}

	results, err := c.Execute(context.Background(), userCtx("subject-1"), []mutation.Request{
		{ID: 1, ClientID: "c1", Name: "profiles.create", Args: raw(map[string]any{"email": "one@example.org"})},
		{ID: 2, ClientID: "c2", Name: "bogus.op", Args: raw(map[string]any{})},
	})
	if err != nil {
		t.Fatalf("batch execute: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Result.Error != "" {
		t.Fatalf("first mutation should succeed: %+v", results[0])
	}
	if results[1].Result.Error != "app" {
		t.Fatalf("second mutation should fail as app error: %+v", results[1])
	}
	if results[1].ID.ID != 2 || results[1].ID.ClientID != "c2" {
		t.Fatalf("result ids not echoed: %+v", results[1].ID)
	}

	// First mutation's effect is committed despite the sibling failure.
	var count int64
	db.Model(&models.Profile{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected committed profile, got %d rows", count)
	}
}

func TestValidationFailsBeforeAnyWrite(t *testing.T) {
	db := newTestDB(t)
	c := newCoordinator(db, nil)
	p1 := createProfile(t, db, "subject-1", "one@example.org", false)

	// Missing required title: rejected by the schema.
	mustFail(t, exec(t, c, userCtx("subject-1"), "projects.create", map[string]any{
		"memberId": p1.ID.String(),
	}))

	// Empty title: rejected by minLength.
	mustFail(t, exec(t, c, userCtx("subject-1"), "projects.create", map[string]any{
		"memberId": p1.ID.String(), "title": "",
	}))

	var count int64
	db.Model(&models.Project{}).Count(&count)
	if count != 0 {
		t.Fatal("project written despite validation failure")
	}
}

package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/shared/storage/object/local"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(portfolio.NewService(portfolio.NewMemoryRepo()), nil, nil)
}

func TestDiscardLeavesStoreUntouched(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	before := svc.Portfolio.GetData(ctx, portfolio.LangEN)
	if len(before.Projects) != 6 {
		t.Fatalf("seed projects = %d, want 6", len(before.Projects))
	}

	sess := svc.Open(ctx, portfolio.LangEN)
	if err := svc.RemoveItem(sess.ID, "projects", 2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.AddItem(sess.ID, "projects"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Discard(sess.ID); err != nil {
		t.Fatalf("discard: %v", err)
	}

	after := svc.Portfolio.GetData(ctx, portfolio.LangEN)
	if len(after.Projects) != 6 {
		t.Fatalf("projects after discard = %d, want 6", len(after.Projects))
	}
	for i := range before.Projects {
		if after.Projects[i].ID != before.Projects[i].ID {
			t.Fatalf("projects[%d] changed after discard", i)
		}
	}
}

func TestRapidAddsYieldUniqueIDs(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Open(context.Background(), portfolio.LangEN)

	for i := 0; i < 20; i++ {
		if _, err := svc.AddItem(sess.ID, "experience"); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	got, err := svc.Get(sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	seen := map[string]bool{}
	for _, e := range got.Draft.Experience {
		if seen[e.ID] {
			t.Fatalf("duplicate id %q", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestAddPrependsNewItem(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Open(context.Background(), portfolio.LangEN)

	item, err := svc.AddItem(sess.ID, "projects")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	added := item.(portfolio.Project)

	got, err := svc.Get(sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Draft.Projects[0].ID != added.ID {
		t.Fatalf("new project is not first")
	}
	if len(got.Draft.Projects) != 7 {
		t.Fatalf("projects = %d, want 7", len(got.Draft.Projects))
	}
}

func TestRemoveShiftsTailLeft(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Open(context.Background(), portfolio.LangEN)

	before, _ := svc.Get(sess.ID)
	if err := svc.RemoveItem(sess.ID, "projects", 2); err != nil {
		t.Fatalf("remove: %v", err)
	}

	after, _ := svc.Get(sess.ID)
	if len(after.Draft.Projects) != len(before.Draft.Projects)-1 {
		t.Fatalf("length after remove = %d", len(after.Draft.Projects))
	}
	if after.Draft.Projects[2].ID != before.Draft.Projects[3].ID {
		t.Fatalf("tail did not shift left")
	}
}

func TestUpdateItemRejectsFilterOnlyCategory(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Open(context.Background(), portfolio.LangEN)

	raw, _ := json.Marshal(map[string]string{"category": "all"})
	err := svc.UpdateItem(sess.ID, "projects", 0, raw)
	if !errors.Is(err, portfolio.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestRejectedUpdateLeavesDraftUntouched(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Open(context.Background(), portfolio.LangEN)

	before, _ := svc.Get(sess.ID)
	beforeJSON, err := json.Marshal(before.Draft)
	if err != nil {
		t.Fatalf("marshal draft: %v", err)
	}

	// The second array element aborts the decode after the first has already
	// been consumed; the draft must not see the partial result.
	err = svc.UpdateItem(sess.ID, "experience", 0, json.RawMessage(`{"description":["INJECTED",123]}`))
	if !errors.Is(err, portfolio.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}

	// Rejected after a clean decode, by the category gate.
	err = svc.UpdateItem(sess.ID, "projects", 0, json.RawMessage(`{"category":"all","title":"INJECTED"}`))
	if !errors.Is(err, portfolio.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}

	after, _ := svc.Get(sess.ID)
	afterJSON, err := json.Marshal(after.Draft)
	if err != nil {
		t.Fatalf("marshal draft: %v", err)
	}
	if !bytes.Equal(beforeJSON, afterJSON) {
		t.Fatalf("draft mutated by rejected update")
	}
}

func TestUpdateItemKeepsID(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Open(context.Background(), portfolio.LangEN)

	before, _ := svc.Get(sess.ID)
	raw, _ := json.Marshal(map[string]string{"id": "forged", "title": "Renamed"})
	if err := svc.UpdateItem(sess.ID, "projects", 0, raw); err != nil {
		t.Fatalf("update: %v", err)
	}

	after, _ := svc.Get(sess.ID)
	if after.Draft.Projects[0].ID != before.Draft.Projects[0].ID {
		t.Fatalf("id changed to %q", after.Draft.Projects[0].ID)
	}
	if after.Draft.Projects[0].Title != "Renamed" {
		t.Fatalf("title = %q", after.Draft.Projects[0].Title)
	}
}

func TestPasswordChangeWithFallbackOldPassword(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Open(context.Background(), portfolio.LangEN)

	if err := svc.ChangePassword(sess.ID, portfolio.FallbackAdminPassword, "newpass", "newpass"); err != nil {
		t.Fatalf("change: %v", err)
	}

	got, _ := svc.Get(sess.ID)
	if got.Draft.AdminConfig.Password != "newpass" {
		t.Fatalf("password = %q", got.Draft.AdminConfig.Password)
	}
}

func TestPasswordChangeFailuresLeaveDraftUntouched(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Open(context.Background(), portfolio.LangEN)

	cases := []struct {
		name              string
		old, new, confirm string
		want              error
	}{
		{"wrong old", "nope", "newpass", "newpass", ErrWrongOldPassword},
		{"mismatch", portfolio.FallbackAdminPassword, "newpass", "other", ErrPasswordMismatch},
		{"too short", portfolio.FallbackAdminPassword, "abc", "abc", ErrPasswordTooShort},
	}
	for _, tc := range cases {
		if err := svc.ChangePassword(sess.ID, tc.old, tc.new, tc.confirm); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
		got, _ := svc.Get(sess.ID)
		if got.Draft.AdminConfig.Password != portfolio.FallbackAdminPassword {
			t.Fatalf("%s: draft password mutated to %q", tc.name, got.Draft.AdminConfig.Password)
		}
	}
}

func TestOversizedImageRejectedWithoutMutation(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Open(context.Background(), portfolio.LangEN)

	before, _ := svc.Get(sess.ID)
	big := bytes.Repeat([]byte{0xFF}, MaxImageBytes+1)

	_, err := svc.SetImage(context.Background(), sess.ID, "profile", "big.png", "image/png", big)
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}

	after, _ := svc.Get(sess.ID)
	if after.Draft.PersonalInfo.Image != before.Draft.PersonalInfo.Image {
		t.Fatalf("image mutated despite rejection")
	}
}

func TestSetImageEncodesDataURL(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Open(context.Background(), portfolio.LangEN)

	if _, err := svc.SetImage(context.Background(), sess.ID, "project:1", "shot.jpg", "image/jpeg", []byte{0x01, 0x02}); err != nil {
		t.Fatalf("set image: %v", err)
	}

	got, _ := svc.Get(sess.ID)
	img := got.Draft.Projects[1].Image
	if want := "data:image/jpeg;base64,AQI="; img != want {
		t.Fatalf("image = %q, want %q", img, want)
	}
}

func TestSetImageArchivesOriginal(t *testing.T) {
	store := local.New(t.TempDir())
	svc := NewService(portfolio.NewService(portfolio.NewMemoryRepo()), nil, store)
	ctx := context.Background()
	sess := svc.Open(ctx, portfolio.LangEN)

	payload := []byte{0x01, 0x02, 0x03}
	key, err := svc.SetImage(ctx, sess.ID, "profile", "avatar.png", "image/png", payload)
	if err != nil {
		t.Fatalf("set image: %v", err)
	}
	if !strings.HasPrefix(key, "media/en/") {
		t.Fatalf("media key = %q", key)
	}

	rc, err := svc.OpenMedia(ctx, key)
	if err != nil {
		t.Fatalf("open media: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read media: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("archived bytes = %v", got)
	}
}

func TestOpenMediaUnknownKey(t *testing.T) {
	store := local.New(t.TempDir())
	svc := NewService(portfolio.NewService(portfolio.NewMemoryRepo()), nil, store)

	if _, err := svc.OpenMedia(context.Background(), "media/en/missing.png"); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}

	svc = newTestService(t)
	if _, err := svc.OpenMedia(context.Background(), "anything"); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound without a store, got %v", err)
	}
}

func TestCommitPersistsWholeDraft(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sess := svc.Open(ctx, portfolio.LangAR)
	err := svc.UpdatePersonalInfo(sess.ID, func(info *portfolio.PersonalInfo) error {
		info.Location = "مدينة جديدة"
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Commit(ctx, sess.ID); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if got := svc.Portfolio.GetData(ctx, portfolio.LangAR).PersonalInfo.Location; got != "مدينة جديدة" {
		t.Fatalf("ar location = %q", got)
	}
	if got := svc.Portfolio.GetData(ctx, portfolio.LangEN).PersonalInfo.Location; got == "مدينة جديدة" {
		t.Fatalf("en document affected by ar commit")
	}
}

func TestUnknownSessionAndCollection(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	sess := svc.Open(context.Background(), portfolio.LangEN)
	if _, err := svc.AddItem(sess.ID, "themes"); !errors.Is(err, ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
}

package submitterController

import (
	"context"
	"errors"
	"fmt"
	. "registry/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionRepo struct {
	sessions  []SubmitterSession
	findErr   error
	createErr error
	touchErr  error

	findCalls   int
	createCalls int
	touchCalls  int
}

func (f *fakeSessionRepo) FindLatestByIdentity(
	ctx context.Context,
	name, mobile string,
) (*SubmitterSession, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}

	var latest *SubmitterSession
	for i := range f.sessions {
		s := &f.sessions[i]
		if s.SubmitterName == name && s.SubmitterMobile == mobile {
			if latest == nil || s.LastActiveAt.After(latest.LastActiveAt) {
				latest = s
			}
		}
	}
	if latest == nil {
		return nil, nil
	}

	found := *latest
	return &found, nil
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *SubmitterSession) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	if session.ID == "" {
		session.ID = fmt.Sprintf("session-%d", len(f.sessions)+1)
	}
	f.sessions = append(f.sessions, *session)
	return nil
}

func (f *fakeSessionRepo) Touch(
	ctx context.Context,
	session *SubmitterSession,
	at time.Time,
) error {
	f.touchCalls++
	if f.touchErr != nil {
		return f.touchErr
	}
	for i := range f.sessions {
		if f.sessions[i].ID == session.ID {
			f.sessions[i].LastActiveAt = at
		}
	}
	session.LastActiveAt = at
	return nil
}

type fakeProfileRepo struct {
	profiles []Profile

	exactErr error
	allErr   error

	exactCalls int
	allCalls   int
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id int) (*Profile, error) {
	for i := range f.profiles {
		if f.profiles[i].ID == id {
			return &f.profiles[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeProfileRepo) GetAll(ctx context.Context) ([]Profile, error) {
	return f.profiles, nil
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *Profile) error {
	profile.ID = len(f.profiles) + 1
	f.profiles = append(f.profiles, *profile)
	return nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, profile *Profile) error {
	for i := range f.profiles {
		if f.profiles[i].ID == profile.ID {
			f.profiles[i] = *profile
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeProfileRepo) Delete(ctx context.Context, id int) error {
	for i := range f.profiles {
		if f.profiles[i].ID == id {
			f.profiles = append(f.profiles[:i], f.profiles[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeProfileRepo) GetBySubmitterMobile(
	ctx context.Context,
	mobile string,
) ([]Profile, error) {
	f.exactCalls++
	if f.exactErr != nil {
		return nil, f.exactErr
	}

	var matches []Profile
	for _, p := range f.profiles {
		if p.SubmitterMobile == mobile {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (f *fakeProfileRepo) GetAllWithSubmitterMobile(ctx context.Context) ([]Profile, error) {
	f.allCalls++
	if f.allErr != nil {
		return nil, f.allErr
	}

	var matches []Profile
	for _, p := range f.profiles {
		if p.SubmitterMobile != "" {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (f *fakeProfileRepo) GetLatestBySubmitterIdentity(
	ctx context.Context,
	name, mobile string,
) (*Profile, error) {
	var latest *Profile
	for i := range f.profiles {
		p := &f.profiles[i]
		if p.SubmitterName == name && p.SubmitterMobile == mobile {
			if latest == nil || p.ID > latest.ID {
				latest = p
			}
		}
	}
	if latest == nil {
		return nil, nil
	}
	found := *latest
	return &found, nil
}

func newTestController(
	sessionRepo *fakeSessionRepo,
	profileRepo *fakeProfileRepo,
) *SubmitterController {
	controller := New(sessionRepo, profileRepo)
	if sessionRepo == nil {
		// New would store a typed nil; clear it so the store-absent guard fires.
		controller.sessionRepo = nil
	}
	return controller
}

func TestResolve_CreatesSessionOnFirstEntry(t *testing.T) {
	sessionRepo := &fakeSessionRepo{}
	controller := newTestController(sessionRepo, &fakeProfileRepo{})

	resolved := controller.Resolve(context.Background(), "Aarav Sharma", "+91 98765 43210")

	assert.Equal(t, SessionCreated, resolved.Outcome)
	assert.Equal(t, "Aarav Sharma", resolved.Session.SubmitterName)
	assert.Equal(t, "+91 98765 43210", resolved.Session.SubmitterMobile)
	assert.NotEmpty(t, resolved.Session.ID)
	assert.False(t, resolved.Session.CreatedAt.IsZero())
	assert.Equal(t, resolved.Session.CreatedAt, resolved.Session.LastActiveAt)
	assert.Len(t, sessionRepo.sessions, 1)
}

func TestResolve_RefreshesExistingSession(t *testing.T) {
	sessionRepo := &fakeSessionRepo{}
	controller := newTestController(sessionRepo, &fakeProfileRepo{})

	first := controller.Resolve(context.Background(), "Aarav Sharma", "9876543210")
	require.Equal(t, SessionCreated, first.Outcome)

	controller.now = func() time.Time { return first.Session.LastActiveAt.Add(time.Minute) }

	second := controller.Resolve(context.Background(), "Aarav Sharma", "9876543210")

	assert.Equal(t, SessionRefreshed, second.Outcome)
	assert.Equal(t, first.Session.ID, second.Session.ID)
	assert.False(t, second.Session.LastActiveAt.Before(first.Session.LastActiveAt),
		"last-active-at must be monotonically non-decreasing")
	assert.Len(t, sessionRepo.sessions, 1)
}

func TestResolve_PicksMostRecentlyActiveDuplicate(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	sessionRepo := &fakeSessionRepo{
		sessions: []SubmitterSession{
			{ID: "older", SubmitterName: "A", SubmitterMobile: "1", LastActiveAt: base},
			{ID: "newer", SubmitterName: "A", SubmitterMobile: "1", LastActiveAt: base.Add(time.Hour)},
		},
	}
	controller := newTestController(sessionRepo, &fakeProfileRepo{})

	resolved := controller.Resolve(context.Background(), "A", "1")

	assert.Equal(t, SessionRefreshed, resolved.Outcome)
	assert.Equal(t, "newer", resolved.Session.ID)
}

func TestResolve_TouchFailureReturnsFoundRow(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	sessionRepo := &fakeSessionRepo{
		sessions: []SubmitterSession{
			{ID: "existing", SubmitterName: "A", SubmitterMobile: "1", LastActiveAt: base},
		},
		touchErr: errors.New("update rejected"),
	}
	controller := newTestController(sessionRepo, &fakeProfileRepo{})

	resolved := controller.Resolve(context.Background(), "A", "1")

	assert.Equal(t, SessionRefreshed, resolved.Outcome)
	assert.Equal(t, "existing", resolved.Session.ID)
	assert.Equal(t, base, resolved.Session.LastActiveAt, "failed touch must not alter the returned row")
}

func TestResolve_InsertFailureFallsBack(t *testing.T) {
	sessionRepo := &fakeSessionRepo{createErr: errors.New("table does not exist")}
	controller := newTestController(sessionRepo, &fakeProfileRepo{})

	resolved := controller.Resolve(context.Background(), "Aarav Sharma", "9876543210")

	assert.Equal(t, SessionFallback, resolved.Outcome)
	assert.Equal(t, "Aarav Sharma", resolved.Session.SubmitterName)
	assert.Equal(t, "9876543210", resolved.Session.SubmitterMobile)
	assert.Empty(t, resolved.Session.ID)
	assert.True(t, resolved.Session.CreatedAt.IsZero())
	assert.True(t, resolved.Session.LastActiveAt.IsZero())
	assert.True(t, resolved.Session.Transient())
}

func TestResolve_StoreAbsentFallsBack(t *testing.T) {
	controller := newTestController(nil, &fakeProfileRepo{})

	resolved := controller.Resolve(context.Background(), "A", "1")

	assert.Equal(t, SessionFallback, resolved.Outcome)
	assert.Equal(t, "A", resolved.Session.SubmitterName)
	assert.Equal(t, "1", resolved.Session.SubmitterMobile)
	assert.True(t, resolved.Session.Transient())
}

func TestResolve_LookupErrorStillAttemptsInsert(t *testing.T) {
	sessionRepo := &fakeSessionRepo{findErr: errors.New("query failed")}
	controller := newTestController(sessionRepo, &fakeProfileRepo{})

	resolved := controller.Resolve(context.Background(), "A", "1")

	assert.Equal(t, SessionCreated, resolved.Outcome)
	assert.Equal(t, 1, sessionRepo.createCalls)
}

func TestResolve_TrimsIdentityKey(t *testing.T) {
	sessionRepo := &fakeSessionRepo{}
	controller := newTestController(sessionRepo, &fakeProfileRepo{})

	resolved := controller.Resolve(context.Background(), "  Aarav Sharma  ", " 9876543210 ")

	assert.Equal(t, "Aarav Sharma", resolved.Session.SubmitterName)
	assert.Equal(t, "9876543210", resolved.Session.SubmitterMobile)
}

func TestFindRecordsByMobile_ExactMatch(t *testing.T) {
	profileRepo := &fakeProfileRepo{
		profiles: []Profile{
			{BaseModel: BaseModel{ID: 1}, Name: "Aarav", SubmitterName: "Aarav Sharma", SubmitterMobile: "9876543210"},
			{BaseModel: BaseModel{ID: 2}, Name: "Meera", SubmitterName: "Aarav Sharma", SubmitterMobile: "9876543210"},
			{BaseModel: BaseModel{ID: 3}, Name: "Other", SubmitterName: "B", SubmitterMobile: "1112223334"},
		},
	}
	controller := newTestController(&fakeSessionRepo{}, profileRepo)

	profiles, submitterName := controller.FindRecordsByMobile(context.Background(), "9876543210")

	require.Len(t, profiles, 2)
	assert.Equal(t, 1, profiles[0].ID)
	assert.Equal(t, 2, profiles[1].ID)
	assert.Equal(t, "Aarav Sharma", submitterName)
	assert.Equal(t, 0, profileRepo.allCalls, "exact match must not trigger the full scan")
}

func TestFindRecordsByMobile_NormalizedFallback(t *testing.T) {
	profileRepo := &fakeProfileRepo{
		profiles: []Profile{
			{BaseModel: BaseModel{ID: 1}, SubmitterName: "Aarav Sharma", SubmitterMobile: "+91 98765 43210"},
			{BaseModel: BaseModel{ID: 2}, SubmitterName: "B", SubmitterMobile: "1112223334"},
		},
	}
	controller := newTestController(&fakeSessionRepo{}, profileRepo)

	profiles, submitterName := controller.FindRecordsByMobile(context.Background(), "919876543210")

	require.Len(t, profiles, 1)
	assert.Equal(t, 1, profiles[0].ID)
	assert.Equal(t, "Aarav Sharma", submitterName)
	assert.Equal(t, 1, profileRepo.allCalls)
}

func TestFindRecordsByMobile_PlaceholderGuard(t *testing.T) {
	for _, rawMobile := range []string{"", "undefined", "null"} {
		t.Run("mobile="+rawMobile, func(t *testing.T) {
			profileRepo := &fakeProfileRepo{
				profiles: []Profile{
					{BaseModel: BaseModel{ID: 1}, SubmitterMobile: "9876543210"},
				},
			}
			controller := newTestController(&fakeSessionRepo{}, profileRepo)

			profiles, submitterName := controller.FindRecordsByMobile(context.Background(), rawMobile)

			assert.Empty(t, profiles)
			assert.Empty(t, submitterName)
			assert.Equal(t, 0, profileRepo.exactCalls, "placeholder values must not reach the store")
			assert.Equal(t, 0, profileRepo.allCalls)
		})
	}
}

func TestFindRecordsByMobile_StoreErrorReturnsEmpty(t *testing.T) {
	t.Run("exact stage", func(t *testing.T) {
		profileRepo := &fakeProfileRepo{exactErr: errors.New("store down")}
		controller := newTestController(&fakeSessionRepo{}, profileRepo)

		profiles, submitterName := controller.FindRecordsByMobile(context.Background(), "9876543210")

		assert.Empty(t, profiles)
		assert.Empty(t, submitterName)
	})

	t.Run("fallback stage", func(t *testing.T) {
		profileRepo := &fakeProfileRepo{allErr: errors.New("store down")}
		controller := newTestController(&fakeSessionRepo{}, profileRepo)

		profiles, submitterName := controller.FindRecordsByMobile(context.Background(), "9876543210")

		assert.Empty(t, profiles)
		assert.Empty(t, submitterName)
	})
}

func TestFindRecordsByMobile_NoMatches(t *testing.T) {
	profileRepo := &fakeProfileRepo{
		profiles: []Profile{
			{BaseModel: BaseModel{ID: 1}, SubmitterMobile: "1112223334"},
		},
	}
	controller := newTestController(&fakeSessionRepo{}, profileRepo)

	profiles, submitterName := controller.FindRecordsByMobile(context.Background(), "9999999999")

	assert.Empty(t, profiles)
	assert.Empty(t, submitterName)
}

func TestGetSession_StoredSessionWins(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	sessionRepo := &fakeSessionRepo{
		sessions: []SubmitterSession{
			{ID: "s1", SubmitterName: "A", SubmitterMobile: "1", LastActiveAt: base},
		},
	}
	controller := newTestController(sessionRepo, &fakeProfileRepo{})

	session := controller.GetSession(context.Background(), "A", "1")

	require.NotNil(t, session)
	assert.Equal(t, "s1", session.ID)
	assert.Equal(t, 0, sessionRepo.touchCalls, "GetSession must not touch the row")
}

func TestGetSession_FallsBackToProfiles(t *testing.T) {
	profileRepo := &fakeProfileRepo{
		profiles: []Profile{
			{BaseModel: BaseModel{ID: 4}, SubmitterName: "A", SubmitterMobile: "1"},
		},
	}
	controller := newTestController(&fakeSessionRepo{}, profileRepo)

	session := controller.GetSession(context.Background(), "A", "1")

	require.NotNil(t, session)
	assert.True(t, session.Transient())
	assert.Equal(t, "A", session.SubmitterName)
	assert.Equal(t, "1", session.SubmitterMobile)
}

func TestGetSession_UnknownIdentity(t *testing.T) {
	controller := newTestController(&fakeSessionRepo{}, &fakeProfileRepo{})

	session := controller.GetSession(context.Background(), "A", "1")

	assert.Nil(t, session)
}

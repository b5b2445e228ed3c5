package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/tarpehcare/portal/internal/domain/auth"
	"github.com/tarpehcare/portal/internal/domain/model"
	"github.com/tarpehcare/portal/internal/mocks"
	mocksauth "github.com/tarpehcare/portal/internal/mocks/auth"
	"github.com/tarpehcare/portal/internal/service"
)

// routerFixture wires a full router over mocked repositories and an in-memory
// session store so request flows can be exercised end to end.
type routerFixture struct {
	handler  http.Handler
	shifts   *mocks.MockShiftRepository
	clients  *mocks.MockClientRepository
	intakes  *mocks.MockIntakeRepository
	sessions *mocksauth.MemorySessionStore
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	shiftRepo := mocks.NewMockShiftRepository(ctrl)
	clientRepo := mocks.NewMockClientRepository(ctrl)
	caregiverRepo := mocks.NewMockCaregiverRepository(ctrl)
	familyRepo := mocks.NewMockFamilyMemberRepository(ctrl)
	messageRepo := mocks.NewMockMessageRepository(ctrl)
	intakeRepo := mocks.NewMockIntakeRepository(ctrl)
	bookingRepo := mocks.NewMockBookingRepository(ctrl)

	sessions := mocksauth.NewMemorySessionStore()
	auth := service.NewAuthService(service.AuthServiceOptions{
		Credentials: &mocksauth.MockCredentialAuthenticator{
			Email:    "carer@example.com",
			Password: "hunter22",
			Identity: domainauth.Identity{
				UserID:    "user-cg",
				Email:     "carer@example.com",
				FirstName: "Cara",
				LastName:  "Giver",
				ExpiresAt: time.Now().Add(time.Hour),
			},
		},
		Sessions: sessions,
		Resolver: mocksauth.StaticRoleResolver{
			AdminEmail:      "owner@example.com",
			CaregiverEmails: map[string]string{"carer@example.com": "cg-1"},
			FamilyEmails:    map[string]string{"family@example.com": "fm-1"},
			FamilyClients:   map[string][]string{"fm-1": {"client-a", "client-b"}},
		},
		Mode: "password",
	})

	handler := NewRouter(RouterServices{
		Auth:        auth,
		Clients:     service.NewClientService(service.ClientServiceOptions{Clients: clientRepo}),
		Caregivers:  service.NewCaregiverService(service.CaregiverServiceOptions{Caregivers: caregiverRepo}),
		Families:    service.NewFamilyService(service.FamilyServiceOptions{Members: familyRepo}),
		Shifts:      service.NewShiftService(service.ShiftServiceOptions{Shifts: shiftRepo}),
		Messages:    service.NewMessageService(service.MessageServiceOptions{Messages: messageRepo, Shifts: shiftRepo}),
		Submissions: service.NewSubmissionService(service.SubmissionServiceOptions{Intakes: intakeRepo, Bookings: bookingRepo}),
		CookieName:  testCookieName,
	})

	return &routerFixture{
		handler:  handler,
		shifts:   shiftRepo,
		clients:  clientRepo,
		intakes:  intakeRepo,
		sessions: sessions,
	}
}

// login performs a password login against the router and returns the session cookie.
func (f *routerFixture) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	body := strings.NewReader(`{"email":"` + email + `","password":"` + password + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestRouter_Healthz(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_PublicIntakeNeedsNoSession(t *testing.T) {
	f := newRouterFixture(t)

	f.intakes.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(&model.IntakeSubmission{ID: "in-1", Status: model.SubmissionStatusNew}, nil)

	body := strings.NewReader(`{
		"contact_name": "Pat Caller",
		"contact_email": "pat@example.com",
		"recipient_name": "Lou Caller",
		"care_needs": "daily companion visits"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/intakes", body)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRouter_CaregiverShiftsScopedToSession(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.login(t, "carer@example.com", "hunter22")

	f.shifts.EXPECT().
		ListWithOptions(gomock.Any(), gomock.Cond(func(opts model.ShiftsListOptions) bool {
			return opts.CaregiverID != nil && *opts.CaregiverID == "cg-1" && opts.ClientID == nil
		})).
		Return([]*model.Shift{{ID: "sh-1", CaregiverID: "cg-1"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/caregiver/shifts?caregiver_id=someone-else", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Shifts []model.Shift `json:"shifts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Shifts, 1)
	assert.Equal(t, "sh-1", resp.Shifts[0].ID)
}

func TestRouter_CaregiverDeniedAdminArea(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.login(t, "carer@example.com", "hunter22")

	req := httptest.NewRequest(http.MethodGet, "/admin/clients", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_permissions")
}

func TestRouter_CaregiverLoginForwardsLiveSession(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.login(t, "carer@example.com", "hunter22")

	req := httptest.NewRequest(http.MethodGet, "/caregiver/login", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/caregiver/dashboard", w.Header().Get("Location"))
}

func TestRouter_AdminAreaUnauthenticated(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/clients", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_required")
}

func TestRouter_LogoutInvalidatesServerSession(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.login(t, "carer@example.com", "hunter22")
	require.Equal(t, 1, f.sessions.Len())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, f.sessions.Len())

	// The old cookie no longer opens the caregiver area.
	req = httptest.NewRequest(http.MethodGet, "/caregiver/shifts", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
